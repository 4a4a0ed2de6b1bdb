package storage

import (
	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/subscription"
)

// Event - отложенная публикация: бэкенды собирают события под блокировкой
// и отправляют их уже после того, как изменения применены.
type Event struct {
	Topic   string
	Payload any
}

func PostEvent(mutation model.MutationType, post *model.Post) Event {
	return Event{
		Topic:   subscription.PostTopic,
		Payload: &model.PostSubscriptionPayload{Mutation: mutation, Data: post},
	}
}

func CommentEvent(mutation model.MutationType, comment *model.Comment) Event {
	return Event{
		Topic:   subscription.CommentTopic(comment.PostID),
		Payload: &model.CommentSubscriptionPayload{Mutation: mutation, Data: comment},
	}
}

// Publish отправляет события через менеджер подписок; nil-менеджер допустим.
func Publish(manager subscription.Manager, events ...Event) {
	if manager == nil {
		return
	}
	for _, e := range events {
		manager.Publish(e.Topic, e.Payload)
	}
}

// PostUpdateEvent решает, какое событие публиковать после updatePost.
// Если published передан, событие есть только при смене видимости:
// снятие с публикации - DELETED со старыми данными, публикация - CREATED.
// Без published правка опубликованного поста дает UPDATED, черновика - ничего.
func PostUpdateEvent(before, after *model.Post, publishedSet bool) (Event, bool) {
	if publishedSet {
		switch {
		case before.Published && !after.Published:
			return PostEvent(model.MutationTypeDeleted, before), true
		case !before.Published && after.Published:
			return PostEvent(model.MutationTypeCreated, after), true
		}
		return Event{}, false
	}

	if after.Published {
		return PostEvent(model.MutationTypeUpdated, after), true
	}
	return Event{}, false
}
