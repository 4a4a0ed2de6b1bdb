package graph

import "context"

// forward подписывается на топик и перекладывает события нужного типа в канал
// для gqlgen. Подписка снимается, когда клиент отключается (ctx отменен).
func forward[T any](ctx context.Context, r *Resolver, topic string) <-chan T {
	events, cancel := r.SubscriptionManager.Subscribe(topic)
	out := make(chan T, 1)

	r.logger().Debug("subscription opened", "topic", topic)

	go func() {
		defer close(out)
		defer cancel()
		defer r.logger().Debug("subscription closed", "topic", topic)

		for {
			select {
			case <-ctx.Done():
				return
			case payload, ok := <-events:
				if !ok {
					return
				}
				event, ok := payload.(T)
				if !ok {
					r.logger().Warn("unexpected payload type", "topic", topic)
					continue
				}
				select {
				case out <- event:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
