package storage_test

import (
	"fmt"
	"testing"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/mocks"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostUpdateEvent(t *testing.T) {
	tests := []struct {
		name         string
		before       bool
		after        bool
		publishedSet bool
		wantOK       bool
		wantType     model.MutationType
		wantOld      bool
	}{
		{name: "unpublish", before: true, after: false, publishedSet: true, wantOK: true, wantType: model.MutationTypeDeleted, wantOld: true},
		{name: "publish", before: false, after: true, publishedSet: true, wantOK: true, wantType: model.MutationTypeCreated},
		{name: "edit published", before: true, after: true, wantOK: true, wantType: model.MutationTypeUpdated},
		{name: "edit published with published=true", before: true, after: true, publishedSet: true, wantOK: false},
		{name: "edit draft", before: false, after: false, wantOK: false},
		{name: "edit draft with published=false", before: false, after: false, publishedSet: true, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := &model.Post{ID: "1", Title: "old", Published: tt.before}
			after := &model.Post{ID: "1", Title: "new", Published: tt.after}

			event, ok := storage.PostUpdateEvent(before, after, tt.publishedSet)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}

			assert.Equal(t, "POST", event.Topic)
			payload, isPost := event.Payload.(*model.PostSubscriptionPayload)
			require.True(t, isPost)
			assert.Equal(t, tt.wantType, payload.Mutation)
			if tt.wantOld {
				assert.Same(t, before, payload.Data)
			} else {
				assert.Same(t, after, payload.Data)
			}
		})
	}
}

func TestCommentEvent(t *testing.T) {
	comment := &model.Comment{ID: "5", PostID: "10"}

	event := storage.CommentEvent(model.MutationTypeUpdated, comment)
	assert.Equal(t, "COMMENT 10", event.Topic)
	assert.Equal(t, &model.CommentSubscriptionPayload{Mutation: model.MutationTypeUpdated, Data: comment}, event.Payload)
}

func TestPublish(t *testing.T) {
	t.Run("Nil manager", func(t *testing.T) {
		assert.NotPanics(t, func() {
			storage.Publish(nil, storage.PostEvent(model.MutationTypeCreated, &model.Post{ID: "1"}))
		})
	})

	t.Run("Events are delivered in order", func(t *testing.T) {
		manager := mocks.NewMockSubscriptionManager()
		storage.Publish(manager,
			storage.PostEvent(model.MutationTypeCreated, &model.Post{ID: "1"}),
			storage.PostEvent(model.MutationTypeDeleted, &model.Post{ID: "1"}),
		)

		events := manager.PostEvents()
		require.Len(t, events, 2)
		assert.Equal(t, model.MutationTypeCreated, events[0].Mutation)
		assert.Equal(t, model.MutationTypeDeleted, events[1].Mutation)
	})
}

func TestSeed(t *testing.T) {
	fixture := storage.Seed()

	emails := make(map[string]bool)
	users := make(map[string]bool)
	for _, u := range fixture.Users {
		assert.False(t, emails[u.Email], "duplicate email %s", u.Email)
		emails[u.Email] = true
		users[u.ID] = true
	}

	posts := make(map[string]*model.Post)
	for _, p := range fixture.Posts {
		assert.True(t, users[p.AuthorID], fmt.Sprintf("post %s has unknown author", p.ID))
		posts[p.ID] = p
	}

	for _, c := range fixture.Comments {
		assert.True(t, users[c.AuthorID], "comment %s has unknown author", c.ID)
		assert.Contains(t, posts, c.PostID)
	}

	// каждый вызов отдает независимую копию
	again := storage.Seed()
	again.Users[0].Name = "changed"
	assert.NotEqual(t, "changed", fixture.Users[0].Name)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, storage.IsNotFound(storage.ErrUserNotFound))
	assert.True(t, storage.IsNotFound(fmt.Errorf("wrap: %w", storage.ErrCommentNotFound)))
	assert.True(t, storage.IsNotFound(storage.ErrUserOrPostNotFound))
	assert.True(t, storage.IsNotFound(storage.ErrNoPostExist))
	assert.True(t, storage.IsNotFound(storage.ErrNoPostFound))
	assert.False(t, storage.IsNotFound(storage.ErrEmailTaken))
}
