package mocks

import (
	"sync"
	"time"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/subscription"
)

// MockSubscriptionManager реализует subscription.Manager и дополнительно
// запоминает все опубликованные события для проверок в тестах.
type MockSubscriptionManager struct {
	mu            sync.Mutex
	subs          map[string][]chan any // topic -> список каналов подписчиков
	notifications map[string][]any      // Для отслеживания в тестах
}

func NewMockSubscriptionManager() *MockSubscriptionManager {
	return &MockSubscriptionManager{
		subs:          make(map[string][]chan any),
		notifications: make(map[string][]any),
	}
}

func (m *MockSubscriptionManager) Subscribe(topic string) (<-chan any, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan any, 1)

	m.subs[topic] = append(m.subs[topic], ch)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			subscribers := m.subs[topic]
			for i, sub := range subscribers {
				if sub == ch {
					m.subs[topic] = append(subscribers[:i], subscribers[i+1:]...)
					close(ch)
					break
				}
			}
		})
	}

	return ch, cancel
}

func (m *MockSubscriptionManager) Publish(topic string, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subs[topic] {
		select {
		case sub <- payload:
		case <-time.After(500 * time.Millisecond):
		}
	}

	m.notifications[topic] = append(m.notifications[topic], payload)
}

// Notifications - вспомогательный метод для тестирования,
// возвращает все события, опубликованные в топик
func (m *MockSubscriptionManager) Notifications(topic string) []any {
	m.mu.Lock()
	defer m.mu.Unlock()

	return append([]any(nil), m.notifications[topic]...)
}

// PostEvents возвращает события топика POST
func (m *MockSubscriptionManager) PostEvents() []*model.PostSubscriptionPayload {
	var events []*model.PostSubscriptionPayload
	for _, n := range m.Notifications(subscription.PostTopic) {
		if e, ok := n.(*model.PostSubscriptionPayload); ok {
			events = append(events, e)
		}
	}
	return events
}

// CommentEvents возвращает события по комментариям поста
func (m *MockSubscriptionManager) CommentEvents(postID string) []*model.CommentSubscriptionPayload {
	var events []*model.CommentSubscriptionPayload
	for _, n := range m.Notifications(subscription.CommentTopic(postID)) {
		if e, ok := n.(*model.CommentSubscriptionPayload); ok {
			events = append(events, e)
		}
	}
	return events
}

// Reset очищает накопленные уведомления
func (m *MockSubscriptionManager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.notifications = make(map[string][]any)
}
