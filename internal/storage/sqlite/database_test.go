package sqlite

import (
	"testing"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/mocks"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testStores struct {
	db       *DB
	users    *UserSQLiteStorage
	posts    *PostSQLiteStorage
	comments *CommentSQLiteStorage
	manager  *mocks.MockSubscriptionManager
}

// setupTestDB создает базу в памяти, при seed=true заполняет ее демо-данными
func setupTestDB(t *testing.T, seed bool) *testStores {
	t.Helper()

	db, err := Open(MemoryDSN)
	require.NoError(t, err, "Failed to open in-memory SQLite")
	t.Cleanup(func() { db.Close() })

	if seed {
		require.NoError(t, db.Load(storage.Seed()))
	}

	manager := mocks.NewMockSubscriptionManager()
	return &testStores{
		db:       db,
		users:    NewUserSQLiteStorage(db, manager),
		posts:    NewPostSQLiteStorage(db, manager),
		comments: NewCommentSQLiteStorage(db, manager),
		manager:  manager,
	}
}

func strPtr(v string) *string {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}

func TestOpenAndLoad(t *testing.T) {
	s := setupTestDB(t, true)
	fixture := storage.Seed()

	users, err := s.users.GetAllUsers()
	require.NoError(t, err)
	assert.Equal(t, fixture.Users, users)

	posts, err := s.posts.GetAllPosts()
	require.NoError(t, err)
	assert.Equal(t, fixture.Posts, posts)

	comments, err := s.comments.GetAllComments()
	require.NoError(t, err)
	assert.Equal(t, fixture.Comments, comments)
}

func TestLoadIsAtomic(t *testing.T) {
	s := setupTestDB(t, false)

	// второй пользователь с тем же email нарушает уникальность - откатывается все
	err := s.db.Load(storage.Fixture{Users: []*model.User{
		{ID: "1", Name: "a", Email: "same@example.com"},
		{ID: "2", Name: "b", Email: "same@example.com"},
	}})
	assert.Error(t, err)

	users, err := s.users.GetAllUsers()
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestCloseNilDB(t *testing.T) {
	var db *DB
	assert.NoError(t, db.Close())
}
