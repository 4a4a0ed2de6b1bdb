package subscription

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/stretchr/testify/assert"
)

func newCommentEvent(id, postID string) *model.CommentSubscriptionPayload {
	return &model.CommentSubscriptionPayload{
		Mutation: model.MutationTypeCreated,
		Data: &model.Comment{
			ID:       id,
			Text:     "Test comment",
			AuthorID: "789",
			PostID:   postID,
		},
	}
}

func TestCommentTopic(t *testing.T) {
	assert.Equal(t, "COMMENT 42", CommentTopic("42"))
	assert.Equal(t, "POST", PostTopic)
}

func TestSubscriptionManager_Subscribe(t *testing.T) {
	t.Run("Should create a subscription channel", func(t *testing.T) {
		manager := NewSubscriptionManager()
		topic := CommentTopic("123")

		ch, cancel := manager.Subscribe(topic)
		assert.NotNil(t, ch)
		assert.NotNil(t, cancel)
		assert.Equal(t, 1, manager.SubscriberCount(topic))

		cancel()
		assert.Equal(t, 0, manager.SubscriberCount(topic))

		_, ok := <-ch
		assert.False(t, ok, "Channel should be closed after cancel")
	})

	t.Run("Cancel is idempotent", func(t *testing.T) {
		manager := NewSubscriptionManager()

		_, cancel := manager.Subscribe(PostTopic)
		cancel()
		assert.NotPanics(t, cancel)
		assert.Equal(t, 0, manager.SubscriberCount(PostTopic))
	})

	t.Run("Multiple subscriptions to the same topic", func(t *testing.T) {
		manager := NewSubscriptionManager()

		_, cancel1 := manager.Subscribe(PostTopic)
		_, cancel2 := manager.Subscribe(PostTopic)
		_, cancel3 := manager.Subscribe(PostTopic)
		assert.Equal(t, 3, manager.SubscriberCount(PostTopic))

		// Отменяем вторую подписку
		cancel2()
		assert.Equal(t, 2, manager.SubscriberCount(PostTopic))

		cancel1()
		cancel3()
		assert.Equal(t, 0, manager.SubscriberCount(PostTopic))
	})

	t.Run("Subscriptions to different topics", func(t *testing.T) {
		manager := NewSubscriptionManager()

		_, cancel1 := manager.Subscribe(CommentTopic("post1"))
		_, cancel2 := manager.Subscribe(CommentTopic("post2"))
		_, cancel3 := manager.Subscribe(PostTopic)

		manager.mu.Lock()
		assert.Len(t, manager.subs, 3)
		manager.mu.Unlock()

		cancel1()
		cancel2()
		cancel3()

		assert.Equal(t, 0, manager.SubscriberCount(CommentTopic("post1")))
		assert.Equal(t, 0, manager.SubscriberCount(CommentTopic("post2")))
		assert.Equal(t, 0, manager.SubscriberCount(PostTopic))
	})
}

func TestSubscriptionManager_Publish(t *testing.T) {
	t.Run("Should send payload to subscribers", func(t *testing.T) {
		manager := NewSubscriptionManager()
		topic := CommentTopic("123")

		ch, cancel := manager.Subscribe(topic)
		defer cancel()

		event := newCommentEvent("456", "123")
		manager.Publish(topic, event)

		select {
		case received := <-ch:
			assert.Equal(t, event, received)
		case <-time.After(time.Second):
			t.Fatal("Timed out waiting for event")
		}
	})

	t.Run("Multiple subscribers should all receive the payload", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ch1, cancel1 := manager.Subscribe(PostTopic)
		ch2, cancel2 := manager.Subscribe(PostTopic)
		ch3, cancel3 := manager.Subscribe(PostTopic)
		defer cancel1()
		defer cancel2()
		defer cancel3()

		event := &model.PostSubscriptionPayload{
			Mutation: model.MutationTypeCreated,
			Data:     &model.Post{ID: "1", Title: "Hello", Published: true, AuthorID: "2"},
		}
		manager.Publish(PostTopic, event)

		for i, ch := range []<-chan any{ch1, ch2, ch3} {
			select {
			case received := <-ch:
				assert.Equal(t, event, received, "Subscriber %d did not receive correct event", i+1)
			case <-time.After(time.Second):
				t.Fatalf("Subscriber %d timed out waiting for event", i+1)
			}
		}
	})

	t.Run("Should only send to subscribers of the specific topic", func(t *testing.T) {
		manager := NewSubscriptionManager()

		ch1, cancel1 := manager.Subscribe(CommentTopic("post1"))
		ch2, cancel2 := manager.Subscribe(CommentTopic("post2"))
		defer cancel1()
		defer cancel2()

		event := newCommentEvent("456", "post1")
		manager.Publish(CommentTopic("post1"), event)

		select {
		case received := <-ch1:
			assert.Equal(t, event, received)
		case <-time.After(time.Second):
			t.Fatal("Subscriber of post1 timed out waiting for event")
		}

		select {
		case <-ch2:
			t.Fatal("Subscriber of post2 should not receive the event")
		case <-time.After(100 * time.Millisecond):
		}
	})

	t.Run("Slow subscriber does not block publisher forever", func(t *testing.T) {
		manager := NewSubscriptionManager()

		_, cancel := manager.Subscribe(PostTopic)
		defer cancel()

		// первый заполняет буфер, второй ждет publishTimeout и пропускается
		start := time.Now()
		manager.Publish(PostTopic, "first")
		manager.Publish(PostTopic, "second")
		assert.Less(t, time.Since(start), 2*publishTimeout)
	})

	t.Run("Publishing to a topic with no subscribers should not panic", func(t *testing.T) {
		manager := NewSubscriptionManager()

		assert.NotPanics(t, func() {
			manager.Publish(CommentTopic("post1"), newCommentEvent("456", "post1"))
		})
	})
}

func TestSubscriptionManager_Concurrent(t *testing.T) {
	t.Run("Concurrent subscriptions and publications", func(t *testing.T) {
		manager := NewSubscriptionManager()
		topic := CommentTopic("123")

		numSubscribers := 10
		numPublications := 5

		var wg sync.WaitGroup

		cancels := make([]func(), numSubscribers)
		received := make([]int, numSubscribers)

		var mu sync.Mutex

		for i := 0; i < numSubscribers; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				ch, cancel := manager.Subscribe(topic)
				cancels[idx] = cancel

				go func(idx int, ch <-chan any) {
					for payload := range ch {
						event, ok := payload.(*model.CommentSubscriptionPayload)
						if assert.True(t, ok) {
							assert.Equal(t, "123", event.Data.PostID)
						}
						mu.Lock()
						received[idx]++
						mu.Unlock()
					}
				}(idx, ch)
			}(i)
		}

		wg.Wait()

		for i := 0; i < numPublications; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				manager.Publish(topic, newCommentEvent(strconv.Itoa(1000+idx), "123"))
			}(i)
		}

		wg.Wait()

		// Даем время на обработку всех сообщений
		time.Sleep(1000 * time.Millisecond)

		for _, cancel := range cancels {
			cancel()
		}

		mu.Lock()
		for i := 0; i < numSubscribers; i++ {
			assert.Equal(t, numPublications, received[i], "Subscriber %d did not receive all publications", i)
		}
		mu.Unlock()
	})

	t.Run("Concurrent subscribes and unsubscribes", func(t *testing.T) {
		manager := NewSubscriptionManager()

		var wg sync.WaitGroup
		numOperations := 100

		for i := 0; i < numOperations; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				ch, cancel := manager.Subscribe(PostTopic)
				time.Sleep(5 * time.Millisecond)
				cancel()

				_, ok := <-ch
				assert.False(t, ok, "Channel should be closed after cancel")
			}()
		}

		wg.Wait()

		assert.Equal(t, 0, manager.SubscriberCount(PostTopic))
	})
}
