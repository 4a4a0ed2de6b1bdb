package memory

import (
	"context"
	"testing"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostMemoryStorage_CreatePost(t *testing.T) {
	s := newTestStores(NewDB())
	ctx := context.Background()
	author := createTestUser(t, s, "Anna", "anna@example.com")

	t.Run("Published post emits CREATED", func(t *testing.T) {
		post, err := s.posts.CreatePost(ctx, model.CreatePostInput{
			Title:     "Hello",
			Body:      "World",
			Published: true,
			Author:    author.ID,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, post.ID)
		assert.Equal(t, "Hello", post.Title)
		assert.Equal(t, "World", post.Body)
		assert.True(t, post.Published)
		assert.Equal(t, author.ID, post.AuthorID)

		events := s.manager.PostEvents()
		require.Len(t, events, 1)
		assert.Equal(t, model.MutationTypeCreated, events[0].Mutation)
		assert.Equal(t, post, events[0].Data)
	})

	t.Run("Draft emits nothing", func(t *testing.T) {
		s.manager.Reset()

		post := createTestPost(t, s, author.ID, false)
		assert.False(t, post.Published)
		assert.Empty(t, s.manager.PostEvents())
	})

	t.Run("Unknown author", func(t *testing.T) {
		s.manager.Reset()

		_, err := s.posts.CreatePost(ctx, model.CreatePostInput{Title: "x", Published: true, Author: "missing"})
		assert.ErrorIs(t, err, storage.ErrUserNotFound)
		assert.Empty(t, s.manager.PostEvents())

		posts, err := s.posts.GetAllPosts()
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})
}

func TestPostMemoryStorage_DeletePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Post not found", func(t *testing.T) {
		s := newTestStores(NewDB())

		_, err := s.posts.DeletePost(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrNoPostExist)
		assert.Equal(t, "No post exist", err.Error())
	})

	t.Run("Published post with comments", func(t *testing.T) {
		s := newTestStores(NewSeededDB())

		deleted, err := s.posts.DeletePost(ctx, "10")
		require.NoError(t, err)
		assert.Equal(t, "10", deleted.ID)

		_, err = s.posts.GetPostById("10")
		assert.ErrorIs(t, err, storage.ErrPostNotFound)

		comments, err := s.comments.GetCommentsByPost("10")
		require.NoError(t, err)
		assert.Empty(t, comments)

		// комментарии к другим постам остаются
		all, err := s.comments.GetAllComments()
		require.NoError(t, err)
		assert.Len(t, all, 2)

		events := s.manager.PostEvents()
		require.Len(t, events, 1)
		assert.Equal(t, model.MutationTypeDeleted, events[0].Mutation)
		assert.Equal(t, deleted, events[0].Data)
	})

	t.Run("Draft emits nothing", func(t *testing.T) {
		s := newTestStores(NewSeededDB())

		_, err := s.posts.DeletePost(ctx, "11")
		require.NoError(t, err)
		assert.Empty(t, s.manager.PostEvents())
	})
}

func TestPostMemoryStorage_UpdatePost(t *testing.T) {
	ctx := context.Background()

	t.Run("Post not found", func(t *testing.T) {
		s := newTestStores(NewDB())

		_, err := s.posts.UpdatePost(ctx, "missing", model.UpdatePostInput{Title: strPtr("x")})
		assert.ErrorIs(t, err, storage.ErrNoPostFound)
		assert.Equal(t, "No post found", err.Error())
	})

	tests := []struct {
		name      string
		published bool
		input     model.UpdatePostInput
		wantEvent bool
		wantType  model.MutationType
		wantTitle string
	}{
		{
			name:      "Unpublish sends DELETED with previous data",
			published: true,
			input:     model.UpdatePostInput{Title: strPtr("New title"), Published: boolPtr(false)},
			wantEvent: true,
			wantType:  model.MutationTypeDeleted,
			wantTitle: "Test Post",
		},
		{
			name:      "Publish sends CREATED",
			published: false,
			input:     model.UpdatePostInput{Published: boolPtr(true)},
			wantEvent: true,
			wantType:  model.MutationTypeCreated,
			wantTitle: "Test Post",
		},
		{
			name:      "Edit published post sends UPDATED",
			published: true,
			input:     model.UpdatePostInput{Body: strPtr("New body")},
			wantEvent: true,
			wantType:  model.MutationTypeUpdated,
			wantTitle: "Test Post",
		},
		{
			name:      "Edit published post with published=true sends nothing",
			published: true,
			input:     model.UpdatePostInput{Title: strPtr("New title"), Published: boolPtr(true)},
			wantEvent: false,
		},
		{
			name:      "Draft with published=false sends nothing",
			published: false,
			input:     model.UpdatePostInput{Body: strPtr("New body"), Published: boolPtr(false)},
			wantEvent: false,
		},
		{
			name:      "Edit draft sends nothing",
			published: false,
			input:     model.UpdatePostInput{Title: strPtr("New title")},
			wantEvent: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStores(NewDB())
			author := createTestUser(t, s, "Anna", "anna@example.com")
			post := createTestPost(t, s, author.ID, tt.published)
			s.manager.Reset()

			updated, err := s.posts.UpdatePost(ctx, post.ID, tt.input)
			require.NoError(t, err)

			if tt.input.Title != nil {
				assert.Equal(t, *tt.input.Title, updated.Title)
			}
			if tt.input.Body != nil {
				assert.Equal(t, *tt.input.Body, updated.Body)
			}
			if tt.input.Published != nil {
				assert.Equal(t, *tt.input.Published, updated.Published)
			}

			stored, err := s.posts.GetPostById(post.ID)
			require.NoError(t, err)
			assert.Equal(t, updated, stored)

			events := s.manager.PostEvents()
			if !tt.wantEvent {
				assert.Empty(t, events)
				return
			}
			require.Len(t, events, 1)
			assert.Equal(t, tt.wantType, events[0].Mutation)
			assert.Equal(t, tt.wantTitle, events[0].Data.Title)
		})
	}
}

func TestPostMemoryStorage_GetPostsByAuthor(t *testing.T) {
	s := newTestStores(NewSeededDB())

	posts, err := s.posts.GetPostsByAuthor("1")
	require.NoError(t, err)
	assert.Len(t, posts, 2)

	posts, err = s.posts.GetPostsByAuthor("3")
	require.NoError(t, err)
	assert.Empty(t, posts)
}
