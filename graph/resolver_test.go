package graph

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/mocks"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/VitaminP8/blogql/internal/storage/memory"
	"github.com/VitaminP8/blogql/internal/subscription"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(db *memory.DB, manager subscription.Manager) *Resolver {
	return &Resolver{
		UserStore:           memory.NewUserMemoryStorage(db, manager),
		PostStore:           memory.NewPostMemoryStorage(db, manager),
		CommentStore:        memory.NewCommentMemoryStorage(db, manager),
		SubscriptionManager: manager,
	}
}

func strPtr(v string) *string {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func TestMutationResolver_Users(t *testing.T) {
	manager := mocks.NewMockSubscriptionManager()
	resolver := newTestResolver(memory.NewDB(), manager)
	ctx := context.Background()

	var userID string

	t.Run("Create user", func(t *testing.T) {
		user, err := resolver.Mutation().CreateUser(ctx, model.CreateUserInput{Name: "Anna", Email: "anna@example.com"})
		require.NoError(t, err)
		assert.NotEmpty(t, user.ID)
		userID = user.ID
	})

	t.Run("Duplicate email", func(t *testing.T) {
		user, err := resolver.Mutation().CreateUser(ctx, model.CreateUserInput{Name: "Other", Email: "anna@example.com"})
		assert.EqualError(t, err, "Email taken.")
		assert.Nil(t, user)
	})

	t.Run("Update user", func(t *testing.T) {
		user, err := resolver.Mutation().UpdateUser(ctx, userID, model.UpdateUserInput{Name: strPtr("Anna K.")})
		require.NoError(t, err)
		assert.Equal(t, "Anna K.", user.Name)
	})

	t.Run("Delete user", func(t *testing.T) {
		user, err := resolver.Mutation().DeleteUser(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, userID, user.ID)

		users, err := resolver.Query().Users(ctx)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("Delete missing user", func(t *testing.T) {
		_, err := resolver.Mutation().DeleteUser(ctx, userID)
		assert.EqualError(t, err, "User not found")
	})
}

func TestMutationResolver_PostsAndComments(t *testing.T) {
	manager := mocks.NewMockSubscriptionManager()
	resolver := newTestResolver(memory.NewDB(), manager)
	ctx := context.Background()

	author, err := resolver.Mutation().CreateUser(ctx, model.CreateUserInput{Name: "Anna", Email: "anna@example.com"})
	require.NoError(t, err)

	draft, err := resolver.Mutation().CreatePost(ctx, model.CreatePostInput{Title: "Draft", Body: "...", Author: author.ID})
	require.NoError(t, err)
	assert.Empty(t, manager.PostEvents())

	t.Run("Comment on a draft is rejected", func(t *testing.T) {
		_, err := resolver.Mutation().CreateComment(ctx, model.CreateCommentInput{Text: "hi", Author: author.ID, Post: draft.ID})
		assert.EqualError(t, err, "User or post might not exist")
	})

	t.Run("Publishing the draft emits CREATED", func(t *testing.T) {
		post, err := resolver.Mutation().UpdatePost(ctx, draft.ID, model.UpdatePostInput{Published: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, post.Published)

		events := manager.PostEvents()
		require.Len(t, events, 1)
		assert.Equal(t, model.MutationTypeCreated, events[0].Mutation)
	})

	var commentID string

	t.Run("Comment lifecycle", func(t *testing.T) {
		comment, err := resolver.Mutation().CreateComment(ctx, model.CreateCommentInput{Text: "hi", Author: author.ID, Post: draft.ID})
		require.NoError(t, err)
		commentID = comment.ID

		comment, err = resolver.Mutation().UpdateComment(ctx, commentID, model.UpdateCommentInput{Text: strPtr("hello")})
		require.NoError(t, err)
		assert.Equal(t, "hello", comment.Text)

		events := manager.CommentEvents(draft.ID)
		require.Len(t, events, 2)
		assert.Equal(t, model.MutationTypeCreated, events[0].Mutation)
		assert.Equal(t, model.MutationTypeUpdated, events[1].Mutation)
	})

	t.Run("Relation fields", func(t *testing.T) {
		postAuthor, err := resolver.Post().Author(ctx, draft)
		require.NoError(t, err)
		assert.Equal(t, author.ID, postAuthor.ID)

		postComments, err := resolver.Post().Comments(ctx, draft)
		require.NoError(t, err)
		require.Len(t, postComments, 1)
		assert.Equal(t, commentID, postComments[0].ID)

		commentPost, err := resolver.Comment().Post(ctx, postComments[0])
		require.NoError(t, err)
		assert.Equal(t, draft.ID, commentPost.ID)

		commentAuthor, err := resolver.Comment().Author(ctx, postComments[0])
		require.NoError(t, err)
		assert.Equal(t, author.ID, commentAuthor.ID)

		userPosts, err := resolver.User().Posts(ctx, author)
		require.NoError(t, err)
		assert.Len(t, userPosts, 1)

		userComments, err := resolver.User().Comments(ctx, author)
		require.NoError(t, err)
		assert.Len(t, userComments, 1)
	})

	t.Run("Delete comment", func(t *testing.T) {
		comment, err := resolver.Mutation().DeleteComment(ctx, commentID)
		require.NoError(t, err)
		assert.Equal(t, "hello", comment.Text)

		_, err = resolver.Mutation().DeleteComment(ctx, commentID)
		assert.EqualError(t, err, "No comment found")
	})

	t.Run("Delete post", func(t *testing.T) {
		manager.Reset()

		post, err := resolver.Mutation().DeletePost(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, draft.ID, post.ID)

		events := manager.PostEvents()
		require.Len(t, events, 1)
		assert.Equal(t, model.MutationTypeDeleted, events[0].Mutation)

		posts, err := resolver.Query().Posts(ctx)
		require.NoError(t, err)
		assert.Empty(t, posts)

		comments, err := resolver.Query().Comments(ctx)
		require.NoError(t, err)
		assert.Empty(t, comments)
	})

	t.Run("Create post for missing author", func(t *testing.T) {
		_, err := resolver.Mutation().CreatePost(ctx, model.CreatePostInput{Title: "x", Author: "missing"})
		assert.ErrorIs(t, err, storage.ErrUserNotFound)
	})
}

func TestSubscriptionResolver_Post(t *testing.T) {
	manager := subscription.NewSubscriptionManager()
	resolver := newTestResolver(memory.NewSeededDB(), manager)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := resolver.Subscription().Post(ctx)
	require.NoError(t, err)

	created, err := resolver.Mutation().CreatePost(context.Background(), model.CreatePostInput{
		Title:     "Live",
		Body:      "now",
		Published: true,
		Author:    "2",
	})
	require.NoError(t, err)

	select {
	case event := <-events:
		assert.Equal(t, model.MutationTypeCreated, event.Mutation)
		assert.Equal(t, created, event.Data)
	case <-time.After(time.Second):
		t.Fatal("Timeout waiting for post event")
	}

	// после отключения клиента канал закрывается и подписка снимается
	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("Channel was not closed after cancel")
	}
	assert.Eventually(t, func() bool {
		return manager.SubscriberCount(subscription.PostTopic) == 0
	}, time.Second, 10*time.Millisecond)
}

func TestSubscriptionResolver_Comment(t *testing.T) {
	manager := subscription.NewSubscriptionManager()
	resolver := newTestResolver(memory.NewSeededDB(), manager)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	t.Run("Unknown post", func(t *testing.T) {
		_, err := resolver.Subscription().Comment(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrPostNotFound)
	})

	t.Run("Unpublished post", func(t *testing.T) {
		_, err := resolver.Subscription().Comment(ctx, "11")
		assert.ErrorIs(t, err, storage.ErrPostNotFound)
	})

	t.Run("Receives events of its post only", func(t *testing.T) {
		events, err := resolver.Subscription().Comment(ctx, "10")
		require.NoError(t, err)

		// комментарий к другому посту не должен прийти
		_, err = resolver.Mutation().CreateComment(context.Background(), model.CreateCommentInput{Text: "elsewhere", Author: "3", Post: "12"})
		require.NoError(t, err)

		deleted, err := resolver.Mutation().DeleteComment(context.Background(), "100")
		require.NoError(t, err)

		select {
		case event := <-events:
			assert.Equal(t, model.MutationTypeDeleted, event.Mutation)
			assert.Equal(t, deleted, event.Data)
		case <-time.After(time.Second):
			t.Fatal("Timeout waiting for comment event")
		}
	})

	t.Run("Subscriptions disabled", func(t *testing.T) {
		noSubs := newTestResolver(memory.NewSeededDB(), nil)

		_, err := noSubs.Subscription().Comment(ctx, "10")
		assert.ErrorIs(t, err, errSubscriptionsDisabled)

		_, err = noSubs.Subscription().Post(ctx)
		assert.ErrorIs(t, err, errSubscriptionsDisabled)
	})
}

func TestResolver_StoreFailures(t *testing.T) {
	dbErr := errors.New("database is locked")
	posts := mocks.NewMockPostStorage(&model.Post{ID: "1", Title: "Hello", Published: true, AuthorID: "2"})
	posts.Err = dbErr

	resolver := &Resolver{
		PostStore:           posts,
		SubscriptionManager: mocks.NewMockSubscriptionManager(),
	}
	ctx := context.Background()

	t.Run("Query returns the storage error", func(t *testing.T) {
		_, err := resolver.Query().Posts(ctx)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("Comment subscription is not opened", func(t *testing.T) {
		events, err := resolver.Subscription().Comment(ctx, "1")
		assert.ErrorIs(t, err, dbErr)
		assert.Nil(t, events)
	})

	t.Run("Storage recovers", func(t *testing.T) {
		posts.Err = nil

		all, err := resolver.Query().Posts(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)

		userPosts, err := resolver.User().Posts(ctx, &model.User{ID: "2"})
		require.NoError(t, err)
		assert.Len(t, userPosts, 1)
	})

	assert.Equal(t, 4, posts.Calls())
}
