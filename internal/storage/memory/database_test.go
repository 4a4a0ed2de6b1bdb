package memory

import (
	"testing"

	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSeededDB(t *testing.T) {
	s := newTestStores(NewSeededDB())
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

func TestDB_CustomIDGenerator(t *testing.T) {
	db := NewDB()
	db.newID = func() string { return "fixed" }
	s := newTestStores(db)

	user := createTestUser(t, s, "Anna", "anna@example.com")
	assert.Equal(t, "fixed", user.ID)
}
