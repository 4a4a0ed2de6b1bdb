package sqlite

import (
	"context"
	"testing"

	"github.com/99designs/gqlgen/graphql"
	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserSQLiteStorage_CreateUser(t *testing.T) {
	s := setupTestDB(t, false)
	ctx := context.Background()

	age := 30
	user, err := s.users.CreateUser(ctx, model.CreateUserInput{Name: "Anna", Email: "anna@example.com", Age: &age})
	require.NoError(t, err)
	_, err = uuid.Parse(user.ID)
	assert.NoError(t, err)
	require.NotNil(t, user.Age)
	assert.Equal(t, 30, *user.Age)

	stored, err := s.users.GetUserById(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user, stored)

	_, err = s.users.CreateUser(ctx, model.CreateUserInput{Name: "Other", Email: "anna@example.com"})
	assert.ErrorIs(t, err, storage.ErrEmailTaken)

	_, err = s.users.GetUserById("missing")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserSQLiteStorage_UpdateUser(t *testing.T) {
	s := setupTestDB(t, true)
	ctx := context.Background()

	t.Run("User not found", func(t *testing.T) {
		_, err := s.users.UpdateUser(ctx, "missing", model.UpdateUserInput{Name: strPtr("x")})
		assert.ErrorIs(t, err, storage.ErrUserNotFound)
	})

	t.Run("Email taken", func(t *testing.T) {
		_, err := s.users.UpdateUser(ctx, "1", model.UpdateUserInput{Name: strPtr("x"), Email: strPtr("boris@example.com")})
		assert.ErrorIs(t, err, storage.ErrEmailTaken)

		user, err := s.users.GetUserById("1")
		require.NoError(t, err)
		assert.Equal(t, "Anna", user.Name)
	})

	t.Run("Partial update", func(t *testing.T) {
		user, err := s.users.UpdateUser(ctx, "1", model.UpdateUserInput{Email: strPtr("anna@example.com"), Name: strPtr("Anna K.")})
		require.NoError(t, err)
		assert.Equal(t, "Anna K.", user.Name)
		assert.Equal(t, "anna@example.com", user.Email)
		require.NotNil(t, user.Age)
	})

	t.Run("Clear age", func(t *testing.T) {
		user, err := s.users.UpdateUser(ctx, "1", model.UpdateUserInput{Age: graphql.OmittableOf[*int](nil)})
		require.NoError(t, err)
		assert.Nil(t, user.Age)
	})

	t.Run("Empty input returns user as is", func(t *testing.T) {
		user, err := s.users.UpdateUser(ctx, "2", model.UpdateUserInput{})
		require.NoError(t, err)
		assert.Equal(t, "Boris", user.Name)
	})
}

func TestUserSQLiteStorage_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("User not found", func(t *testing.T) {
		s := setupTestDB(t, false)

		_, err := s.users.DeleteUser(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrUserNotFound)
	})

	t.Run("Cascade delete of posts and comments", func(t *testing.T) {
		s := setupTestDB(t, true)

		deleted, err := s.users.DeleteUser(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "Anna", deleted.Name)

		posts, err := s.posts.GetAllPosts()
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "12", posts[0].ID)

		comments, err := s.comments.GetAllComments()
		require.NoError(t, err)
		assert.Empty(t, comments)

		events := s.manager.PostEvents()
		require.Len(t, events, 1)
		assert.Equal(t, model.MutationTypeDeleted, events[0].Mutation)
		assert.Equal(t, "10", events[0].Data.ID)
	})
}
