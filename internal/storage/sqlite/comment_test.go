package sqlite

import (
	"context"
	"testing"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentSQLiteStorage_CreateComment(t *testing.T) {
	s := setupTestDB(t, true)
	ctx := context.Background()

	tests := []struct {
		name   string
		author string
		post   string
	}{
		{name: "Unknown user", author: "missing", post: "10"},
		{name: "Unknown post", author: "1", post: "missing"},
		{name: "Unpublished post", author: "1", post: "11"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.comments.CreateComment(ctx, model.CreateCommentInput{Text: "x", Author: tt.author, Post: tt.post})
			assert.ErrorIs(t, err, storage.ErrUserOrPostNotFound)
		})
	}

	t.Run("Successful comment creation", func(t *testing.T) {
		comment, err := s.comments.CreateComment(ctx, model.CreateCommentInput{Text: "Nice", Author: "2", Post: "10"})
		require.NoError(t, err)
		assert.Equal(t, "10", comment.PostID)

		events := s.manager.CommentEvents("10")
		require.Len(t, events, 1)
		assert.Equal(t, model.MutationTypeCreated, events[0].Mutation)
		assert.Equal(t, comment, events[0].Data)

		comments, err := s.comments.GetCommentsByAuthor("2")
		require.NoError(t, err)
		assert.Len(t, comments, 2)
	})
}

func TestCommentSQLiteStorage_DeleteAndUpdateComment(t *testing.T) {
	s := setupTestDB(t, true)
	ctx := context.Background()

	_, err := s.comments.UpdateComment(ctx, "missing", model.UpdateCommentInput{Text: strPtr("x")})
	assert.ErrorIs(t, err, storage.ErrCommentNotFound)
	assert.EqualError(t, err, "No comment found")

	updated, err := s.comments.UpdateComment(ctx, "100", model.UpdateCommentInput{Text: strPtr("edited")})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)

	_, err = s.comments.DeleteComment(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrCommentNotFound)
	assert.EqualError(t, err, "No comment found")

	deleted, err := s.comments.DeleteComment(ctx, "100")
	require.NoError(t, err)
	assert.Equal(t, "edited", deleted.Text)

	events := s.manager.CommentEvents("10")
	require.Len(t, events, 2)
	assert.Equal(t, model.MutationTypeUpdated, events[0].Mutation)
	assert.Equal(t, model.MutationTypeDeleted, events[1].Mutation)

	comments, err := s.comments.GetCommentsByPost("10")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "101", comments[0].ID)
}
