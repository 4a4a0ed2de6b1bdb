package subscription

import (
	"sync"
	"time"
)

// publishTimeout - сколько ждем медленного подписчика, прежде чем пропустить событие для него
const publishTimeout = 500 * time.Millisecond

var _ Manager = (*SubscriptionManager)(nil)

type SubscriptionManager struct {
	mu   sync.Mutex
	subs map[string][]chan any // topic -> список каналов подписчиков
}

func NewSubscriptionManager() *SubscriptionManager {
	return &SubscriptionManager{
		subs: make(map[string][]chan any),
	}
}

func (m *SubscriptionManager) Subscribe(topic string) (<-chan any, func()) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ch := make(chan any, 1) // Буфер 1, чтобы не блокировался писатель

	m.subs[topic] = append(m.subs[topic], ch)

	// функция для отписки, повторный вызов ничего не делает
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

func (m *SubscriptionManager) Publish(topic string, payload any) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, sub := range m.subs[topic] {
		select {
		case sub <- payload:
		case <-time.After(publishTimeout):
			// подписчик не успевает читать - событие для него теряется
		}
	}
}

// SubscriberCount возвращает число активных подписчиков топика.
func (m *SubscriptionManager) SubscriberCount(topic string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.subs[topic])
}
