package sqlite

import (
	"context"
	"testing"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostSQLiteStorage_CreatePost(t *testing.T) {
	s := setupTestDB(t, true)
	ctx := context.Background()

	_, err := s.posts.CreatePost(ctx, model.CreatePostInput{Title: "x", Author: "missing", Published: true})
	assert.ErrorIs(t, err, storage.ErrUserNotFound)

	post, err := s.posts.CreatePost(ctx, model.CreatePostInput{Title: "Hello", Body: "World", Published: true, Author: "3"})
	require.NoError(t, err)
	assert.Equal(t, "3", post.AuthorID)

	events := s.manager.PostEvents()
	require.Len(t, events, 1)
	assert.Equal(t, model.MutationTypeCreated, events[0].Mutation)
	assert.Equal(t, post, events[0].Data)

	posts, err := s.posts.GetPostsByAuthor("3")
	require.NoError(t, err)
	assert.Equal(t, []*model.Post{post}, posts)
}

func TestPostSQLiteStorage_DeletePost(t *testing.T) {
	s := setupTestDB(t, true)
	ctx := context.Background()

	_, err := s.posts.DeletePost(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrNoPostExist)
	assert.EqualError(t, err, "No post exist")

	deleted, err := s.posts.DeletePost(ctx, "10")
	require.NoError(t, err)
	assert.True(t, deleted.Published)

	comments, err := s.comments.GetCommentsByPost("10")
	require.NoError(t, err)
	assert.Empty(t, comments)

	events := s.manager.PostEvents()
	require.Len(t, events, 1)
	assert.Equal(t, model.MutationTypeDeleted, events[0].Mutation)

	// черновик удаляется без события
	_, err = s.posts.DeletePost(ctx, "11")
	require.NoError(t, err)
	assert.Len(t, s.manager.PostEvents(), 1)
}

func TestPostSQLiteStorage_UpdatePost(t *testing.T) {
	s := setupTestDB(t, true)
	ctx := context.Background()

	t.Run("Post not found", func(t *testing.T) {
		_, err := s.posts.UpdatePost(ctx, "missing", model.UpdatePostInput{})
		assert.ErrorIs(t, err, storage.ErrNoPostFound)
		assert.EqualError(t, err, "No post found")
	})

	t.Run("Unpublish", func(t *testing.T) {
		s.manager.Reset()

		post, err := s.posts.UpdatePost(ctx, "10", model.UpdatePostInput{Title: strPtr("Renamed"), Published: boolPtr(false)})
		require.NoError(t, err)
		assert.False(t, post.Published)
		assert.Equal(t, "Renamed", post.Title)

		events := s.manager.PostEvents()
		require.Len(t, events, 1)
		assert.Equal(t, model.MutationTypeDeleted, events[0].Mutation)
		assert.Equal(t, "Getting started with GraphQL", events[0].Data.Title)
		assert.True(t, events[0].Data.Published)
	})

	t.Run("Edit draft", func(t *testing.T) {
		s.manager.Reset()

		_, err := s.posts.UpdatePost(ctx, "10", model.UpdatePostInput{Body: strPtr("draft body")})
		require.NoError(t, err)
		assert.Empty(t, s.manager.PostEvents())
	})

	t.Run("Publish", func(t *testing.T) {
		s.manager.Reset()

		post, err := s.posts.UpdatePost(ctx, "11", model.UpdatePostInput{Published: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, post.Published)

		events := s.manager.PostEvents()
		require.Len(t, events, 1)
		assert.Equal(t, model.MutationTypeCreated, events[0].Mutation)
	})

	t.Run("Edit published", func(t *testing.T) {
		s.manager.Reset()

		post, err := s.posts.UpdatePost(ctx, "12", model.UpdatePostInput{Body: strPtr("filled in")})
		require.NoError(t, err)
		assert.Equal(t, "filled in", post.Body)

		events := s.manager.PostEvents()
		require.Len(t, events, 1)
		assert.Equal(t, model.MutationTypeUpdated, events[0].Mutation)
		assert.Equal(t, "filled in", events[0].Data.Body)
	})

	t.Run("Published stays published", func(t *testing.T) {
		s.manager.Reset()

		post, err := s.posts.UpdatePost(ctx, "12", model.UpdatePostInput{Title: strPtr("Again"), Published: boolPtr(true)})
		require.NoError(t, err)
		assert.Equal(t, "Again", post.Title)
		assert.True(t, post.Published)

		assert.Empty(t, s.manager.PostEvents())
	})
}
