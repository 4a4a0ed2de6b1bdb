package memory

import (
	"context"
	"testing"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentMemoryStorage_CreateComment(t *testing.T) {
	s := newTestStores(NewDB())
	ctx := context.Background()

	author := createTestUser(t, s, "Anna", "anna@example.com")
	published := createTestPost(t, s, author.ID, true)
	draft := createTestPost(t, s, author.ID, false)

	t.Run("Successful comment creation", func(t *testing.T) {
		comment, err := s.comments.CreateComment(ctx, model.CreateCommentInput{
			Text:   "Nice post",
			Author: author.ID,
			Post:   published.ID,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, comment.ID)
		assert.Equal(t, "Nice post", comment.Text)
		assert.Equal(t, author.ID, comment.AuthorID)
		assert.Equal(t, published.ID, comment.PostID)

		// Проверяем, что отправлено уведомление в канал поста
		events := s.manager.CommentEvents(published.ID)
		require.Len(t, events, 1)
		assert.Equal(t, model.MutationTypeCreated, events[0].Mutation)
		assert.Equal(t, comment, events[0].Data)
	})

	tests := []struct {
		name   string
		author string
		post   string
	}{
		{name: "Unknown user", author: "missing", post: published.ID},
		{name: "Unknown post", author: author.ID, post: "missing"},
		{name: "Unpublished post", author: author.ID, post: draft.ID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.comments.CreateComment(ctx, model.CreateCommentInput{Text: "x", Author: tt.author, Post: tt.post})
			assert.ErrorIs(t, err, storage.ErrUserOrPostNotFound)
			assert.Equal(t, "User or post might not exist", err.Error())
		})
	}

	t.Run("Failed creations change nothing", func(t *testing.T) {
		comments, err := s.comments.GetAllComments()
		require.NoError(t, err)
		assert.Len(t, comments, 1)
		assert.Empty(t, s.manager.CommentEvents(draft.ID))
	})
}

func TestCommentMemoryStorage_DeleteComment(t *testing.T) {
	ctx := context.Background()
	s := newTestStores(NewSeededDB())

	t.Run("Comment not found", func(t *testing.T) {
		_, err := s.comments.DeleteComment(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrCommentNotFound)
		assert.Equal(t, "No comment found", err.Error())
	})

	t.Run("Successful delete", func(t *testing.T) {
		deleted, err := s.comments.DeleteComment(ctx, "101")
		require.NoError(t, err)
		assert.Equal(t, "101", deleted.ID)

		comments, err := s.comments.GetCommentsByPost("10")
		require.NoError(t, err)
		require.Len(t, comments, 1)
		assert.Equal(t, "100", comments[0].ID)

		events := s.manager.CommentEvents("10")
		require.Len(t, events, 1)
		assert.Equal(t, model.MutationTypeDeleted, events[0].Mutation)
		assert.Equal(t, deleted, events[0].Data)
	})
}

func TestCommentMemoryStorage_UpdateComment(t *testing.T) {
	ctx := context.Background()
	s := newTestStores(NewSeededDB())

	t.Run("Comment not found", func(t *testing.T) {
		_, err := s.comments.UpdateComment(ctx, "missing", model.UpdateCommentInput{Text: strPtr("x")})
		assert.ErrorIs(t, err, storage.ErrCommentNotFound)
		assert.Equal(t, "No comment found", err.Error())
	})

	t.Run("Update text", func(t *testing.T) {
		updated, err := s.comments.UpdateComment(ctx, "103", model.UpdateCommentInput{Text: strPtr("edited")})
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Text)

		comments, err := s.comments.GetCommentsByAuthor("1")
		require.NoError(t, err)
		texts := make([]string, 0, len(comments))
		for _, c := range comments {
			texts = append(texts, c.Text)
		}
		assert.Contains(t, texts, "edited")

		events := s.manager.CommentEvents("12")
		require.Len(t, events, 1)
		assert.Equal(t, model.MutationTypeUpdated, events[0].Mutation)
		assert.Equal(t, "edited", events[0].Data.Text)
	})

	t.Run("Empty input still notifies subscribers", func(t *testing.T) {
		s.manager.Reset()

		updated, err := s.comments.UpdateComment(ctx, "103", model.UpdateCommentInput{})
		require.NoError(t, err)
		assert.Equal(t, "edited", updated.Text)
		assert.Len(t, s.manager.CommentEvents("12"), 1)
	})
}
