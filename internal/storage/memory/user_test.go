package memory

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/99designs/gqlgen/graphql"
	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserMemoryStorage_CreateUser(t *testing.T) {
	s := newTestStores(NewDB())
	ctx := context.Background()

	t.Run("Successful user creation", func(t *testing.T) {
		user, err := s.users.CreateUser(ctx, model.CreateUserInput{
			Name:  "Anna",
			Email: "anna@example.com",
			Age:   intPtr(30),
		})
		require.NoError(t, err)

		_, err = uuid.Parse(user.ID)
		assert.NoError(t, err, "ID должен быть UUID")
		assert.Equal(t, "Anna", user.Name)
		assert.Equal(t, "anna@example.com", user.Email)
		require.NotNil(t, user.Age)
		assert.Equal(t, 30, *user.Age)

		stored, err := s.users.GetUserById(user.ID)
		require.NoError(t, err)
		assert.Equal(t, user, stored)
	})

	t.Run("Age is optional", func(t *testing.T) {
		user, err := s.users.CreateUser(ctx, model.CreateUserInput{Name: "Boris", Email: "boris@example.com"})
		require.NoError(t, err)
		assert.Nil(t, user.Age)
	})

	t.Run("Duplicate email", func(t *testing.T) {
		_, err := s.users.CreateUser(ctx, model.CreateUserInput{Name: "Other", Email: "anna@example.com"})
		assert.ErrorIs(t, err, storage.ErrEmailTaken)
		assert.Equal(t, "Email taken.", err.Error())

		users, err := s.users.GetAllUsers()
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})

	t.Run("Returned user is a copy", func(t *testing.T) {
		age := 40
		user, err := s.users.CreateUser(ctx, model.CreateUserInput{Name: "Vera", Email: "vera@example.com", Age: &age})
		require.NoError(t, err)

		age = 41
		user.Name = "changed"

		stored, err := s.users.GetUserById(user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Vera", stored.Name)
		assert.Equal(t, 40, *stored.Age)
	})
}

func TestUserMemoryStorage_UpdateUser(t *testing.T) {
	s := newTestStores(NewDB())
	ctx := context.Background()

	anna := createTestUser(t, s, "Anna", "anna@example.com")
	boris := createTestUser(t, s, "Boris", "boris@example.com")

	t.Run("User not found", func(t *testing.T) {
		_, err := s.users.UpdateUser(ctx, "missing", model.UpdateUserInput{Name: strPtr("x")})
		assert.ErrorIs(t, err, storage.ErrUserNotFound)
		assert.Equal(t, "User not found", err.Error())
	})

	t.Run("Update name only", func(t *testing.T) {
		user, err := s.users.UpdateUser(ctx, anna.ID, model.UpdateUserInput{Name: strPtr("Anna K.")})
		require.NoError(t, err)
		assert.Equal(t, "Anna K.", user.Name)
		assert.Equal(t, "anna@example.com", user.Email)
	})

	t.Run("Email taken by another user", func(t *testing.T) {
		_, err := s.users.UpdateUser(ctx, anna.ID, model.UpdateUserInput{
			Name:  strPtr("should not apply"),
			Email: strPtr(boris.Email),
		})
		assert.ErrorIs(t, err, storage.ErrEmailTaken)

		// неудачное обновление ничего не меняет
		stored, err := s.users.GetUserById(anna.ID)
		require.NoError(t, err)
		assert.Equal(t, "Anna K.", stored.Name)
		assert.Equal(t, "anna@example.com", stored.Email)
	})

	t.Run("Keeping own email is allowed", func(t *testing.T) {
		user, err := s.users.UpdateUser(ctx, anna.ID, model.UpdateUserInput{Email: strPtr(anna.Email)})
		require.NoError(t, err)
		assert.Equal(t, anna.Email, user.Email)
	})

	t.Run("Change email", func(t *testing.T) {
		user, err := s.users.UpdateUser(ctx, anna.ID, model.UpdateUserInput{Email: strPtr("anna@new.example.com")})
		require.NoError(t, err)
		assert.Equal(t, "anna@new.example.com", user.Email)

		// старый адрес освободился
		_, err = s.users.CreateUser(ctx, model.CreateUserInput{Name: "New Anna", Email: "anna@example.com"})
		assert.NoError(t, err)
	})

	t.Run("Set, keep and clear age", func(t *testing.T) {
		user, err := s.users.UpdateUser(ctx, boris.ID, model.UpdateUserInput{Age: graphql.OmittableOf(intPtr(25))})
		require.NoError(t, err)
		require.NotNil(t, user.Age)
		assert.Equal(t, 25, *user.Age)

		// поле age не передано - значение сохраняется
		user, err = s.users.UpdateUser(ctx, boris.ID, model.UpdateUserInput{Name: strPtr("Boris B.")})
		require.NoError(t, err)
		require.NotNil(t, user.Age)
		assert.Equal(t, 25, *user.Age)

		// age: null - возраст сбрасывается
		user, err = s.users.UpdateUser(ctx, boris.ID, model.UpdateUserInput{Age: graphql.OmittableOf[*int](nil)})
		require.NoError(t, err)
		assert.Nil(t, user.Age)
	})

	t.Run("Update publishes nothing", func(t *testing.T) {
		assert.Empty(t, s.manager.PostEvents())
	})
}

func TestUserMemoryStorage_DeleteUser(t *testing.T) {
	ctx := context.Background()

	t.Run("User not found", func(t *testing.T) {
		s := newTestStores(NewDB())

		_, err := s.users.DeleteUser(ctx, "missing")
		assert.ErrorIs(t, err, storage.ErrUserNotFound)
	})

	t.Run("Cascade delete of posts and comments", func(t *testing.T) {
		s := newTestStores(NewSeededDB())

		deleted, err := s.users.DeleteUser(ctx, "1")
		require.NoError(t, err)
		assert.Equal(t, "Anna", deleted.Name)

		_, err = s.users.GetUserById("1")
		assert.ErrorIs(t, err, storage.ErrUserNotFound)

		// остается только пост другого автора
		posts, err := s.posts.GetAllPosts()
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "12", posts[0].ID)

		// комментарии к постам пользователя и его собственные комментарии удалены
		comments, err := s.comments.GetAllComments()
		require.NoError(t, err)
		assert.Empty(t, comments)

		// событие только для опубликованного поста
		events := s.manager.PostEvents()
		require.Len(t, events, 1)
		assert.Equal(t, model.MutationTypeDeleted, events[0].Mutation)
		assert.Equal(t, "10", events[0].Data.ID)
	})

	t.Run("Other users' data is untouched", func(t *testing.T) {
		s := newTestStores(NewSeededDB())

		_, err := s.users.DeleteUser(ctx, "3")
		require.NoError(t, err)

		posts, err := s.posts.GetAllPosts()
		require.NoError(t, err)
		assert.Len(t, posts, 3)

		comments, err := s.comments.GetAllComments()
		require.NoError(t, err)
		assert.Len(t, comments, 3)
		for _, c := range comments {
			assert.NotEqual(t, "3", c.AuthorID)
		}
		assert.Empty(t, s.manager.PostEvents())
	})
}

func TestUserMemoryStorage_ConcurrentOperations(t *testing.T) {
	s := newTestStores(NewDB())
	ctx := context.Background()

	t.Run("Concurrent user creation", func(t *testing.T) {
		var wg sync.WaitGroup
		numGoroutines := 10

		for i := 0; i < numGoroutines; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()

				email := "concurrent" + strconv.Itoa(idx) + "@example.com"
				user, err := s.users.CreateUser(ctx, model.CreateUserInput{Name: "user " + strconv.Itoa(idx), Email: email})
				if assert.NoError(t, err) {
					assert.Equal(t, email, user.Email)
				}
			}(i)
		}

		wg.Wait()

		users, err := s.users.GetAllUsers()
		require.NoError(t, err)
		assert.Len(t, users, numGoroutines)
	})

	t.Run("Only one of concurrent duplicate emails wins", func(t *testing.T) {
		var wg sync.WaitGroup
		var mu sync.Mutex
		succeeded := 0

		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				_, err := s.users.CreateUser(ctx, model.CreateUserInput{Name: "dup", Email: "dup@example.com"})
				if err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, 1, succeeded)
	})
}
