package memory

import (
	"context"
	"testing"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/mocks"
	"github.com/stretchr/testify/require"
)

type testStores struct {
	db       *DB
	users    *UserMemoryStorage
	posts    *PostMemoryStorage
	comments *CommentMemoryStorage
	manager  *mocks.MockSubscriptionManager
}

func newTestStores(db *DB) *testStores {
	manager := mocks.NewMockSubscriptionManager()
	return &testStores{
		db:       db,
		users:    NewUserMemoryStorage(db, manager),
		posts:    NewPostMemoryStorage(db, manager),
		comments: NewCommentMemoryStorage(db, manager),
		manager:  manager,
	}
}

func createTestUser(t *testing.T, s *testStores, name, email string) *model.User {
	t.Helper()

	user, err := s.users.CreateUser(context.Background(), model.CreateUserInput{Name: name, Email: email})
	require.NoError(t, err)
	return user
}

func createTestPost(t *testing.T, s *testStores, authorID string, published bool) *model.Post {
	t.Helper()

	post, err := s.posts.CreatePost(context.Background(), model.CreatePostInput{
		Title:     "Test Post",
		Body:      "Test Body",
		Published: published,
		Author:    authorID,
	})
	require.NoError(t, err)
	return post
}

func intPtr(v int) *int {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
