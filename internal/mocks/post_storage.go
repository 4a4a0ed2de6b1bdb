package mocks

import (
	"context"
	"strconv"
	"sync"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
)

// MockPostStorage - хранилище постов на map без проверки авторов и без событий.
// Если задан Err, любой вызов возвращает эту ошибку (имитация отказа базы).
type MockPostStorage struct {
	mu    sync.Mutex
	posts map[string]*model.Post
	order []string
	calls int

	Err error
}

func NewMockPostStorage(posts ...*model.Post) *MockPostStorage {
	m := &MockPostStorage{
		posts: make(map[string]*model.Post),
	}
	for _, p := range posts {
		m.posts[p.ID] = p
		m.order = append(m.order, p.ID)
	}
	return m
}

// Calls возвращает число обращений к хранилищу
func (m *MockPostStorage) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.calls
}

func (m *MockPostStorage) begin() error {
	m.mu.Lock()
	m.calls++
	if m.Err != nil {
		m.mu.Unlock()
		return m.Err
	}
	return nil
}

func (m *MockPostStorage) CreatePost(ctx context.Context, input model.CreatePostInput) (*model.Post, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()

	post := &model.Post{
		ID:        strconv.Itoa(len(m.order) + 1),
		Title:     input.Title,
		Body:      input.Body,
		Published: input.Published,
		AuthorID:  input.Author,
	}
	m.posts[post.ID] = post
	m.order = append(m.order, post.ID)
	return post, nil
}

func (m *MockPostStorage) DeletePost(ctx context.Context, id string) (*model.Post, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, storage.ErrNoPostExist
	}
	delete(m.posts, id)
	for i, pid := range m.order {
		if pid == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return post, nil
}

func (m *MockPostStorage) UpdatePost(ctx context.Context, id string, input model.UpdatePostInput) (*model.Post, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, storage.ErrNoPostFound
	}
	if input.Title != nil {
		post.Title = *input.Title
	}
	if input.Body != nil {
		post.Body = *input.Body
	}
	if input.Published != nil {
		post.Published = *input.Published
	}
	return post, nil
}

func (m *MockPostStorage) GetPostById(id string) (*model.Post, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()

	post, ok := m.posts[id]
	if !ok {
		return nil, storage.ErrPostNotFound
	}
	return post, nil
}

func (m *MockPostStorage) GetAllPosts() ([]*model.Post, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()

	posts := make([]*model.Post, 0, len(m.order))
	for _, id := range m.order {
		posts = append(posts, m.posts[id])
	}
	return posts, nil
}

func (m *MockPostStorage) GetPostsByAuthor(authorID string) ([]*model.Post, error) {
	if err := m.begin(); err != nil {
		return nil, err
	}
	defer m.mu.Unlock()

	posts := make([]*model.Post, 0)
	for _, id := range m.order {
		if m.posts[id].AuthorID == authorID {
			posts = append(posts, m.posts[id])
		}
	}
	return posts, nil
}
