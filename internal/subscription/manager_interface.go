package subscription

type Manager interface {
	Subscribe(topic string) (<-chan any, func())
	Publish(topic string, payload any)
}
