package memory

import (
	"context"
	"slices"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/VitaminP8/blogql/internal/subscription"
)

type PostMemoryStorage struct {
	db      *DB
	manager subscription.Manager
}

func NewPostMemoryStorage(db *DB, manager subscription.Manager) *PostMemoryStorage {
	return &PostMemoryStorage{
		db:      db,
		manager: manager,
	}
}

func (s *PostMemoryStorage) CreatePost(ctx context.Context, input model.CreatePostInput) (*model.Post, error) {
	var created *model.Post

	events, err := s.db.mutate(func() ([]storage.Event, error) {
		if s.db.userIndex(input.Author) == -1 {
			return nil, storage.ErrUserNotFound
		}

		post := &model.Post{
			ID:        s.db.newID(),
			Title:     input.Title,
			Body:      input.Body,
			Published: input.Published,
			AuthorID:  input.Author,
		}
		s.db.posts = append(s.db.posts, post)
		created = clonePost(post)

		// черновики подписчикам не показываем
		if !post.Published {
			return nil, nil
		}
		return []storage.Event{storage.PostEvent(model.MutationTypeCreated, clonePost(post))}, nil
	})
	if err != nil {
		return nil, err
	}

	storage.Publish(s.manager, events...)
	return created, nil
}

func (s *PostMemoryStorage) DeletePost(ctx context.Context, id string) (*model.Post, error) {
	var deleted *model.Post

	events, err := s.db.mutate(func() ([]storage.Event, error) {
		idx := s.db.postIndex(id)
		if idx == -1 {
			return nil, storage.ErrNoPostExist
		}

		deleted = s.db.posts[idx]
		s.db.posts = slices.Delete(s.db.posts, idx, idx+1)
		s.db.comments = slices.DeleteFunc(s.db.comments, func(c *model.Comment) bool {
			return c.PostID == id
		})

		if !deleted.Published {
			return nil, nil
		}
		return []storage.Event{storage.PostEvent(model.MutationTypeDeleted, clonePost(deleted))}, nil
	})
	if err != nil {
		return nil, err
	}

	storage.Publish(s.manager, events...)
	return deleted, nil
}

func (s *PostMemoryStorage) UpdatePost(ctx context.Context, id string, input model.UpdatePostInput) (*model.Post, error) {
	var updated *model.Post

	events, err := s.db.mutate(func() ([]storage.Event, error) {
		idx := s.db.postIndex(id)
		if idx == -1 {
			return nil, storage.ErrNoPostFound
		}
		post := s.db.posts[idx]
		before := clonePost(post)

		if input.Title != nil {
			post.Title = *input.Title
		}
		if input.Body != nil {
			post.Body = *input.Body
		}
		if input.Published != nil {
			post.Published = *input.Published
		}

		updated = clonePost(post)

		event, ok := storage.PostUpdateEvent(before, clonePost(post), input.Published != nil)
		if !ok {
			return nil, nil
		}
		return []storage.Event{event}, nil
	})
	if err != nil {
		return nil, err
	}

	storage.Publish(s.manager, events...)
	return updated, nil
}

func (s *PostMemoryStorage) GetPostById(id string) (*model.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	idx := s.db.postIndex(id)
	if idx == -1 {
		return nil, storage.ErrPostNotFound
	}

	return clonePost(s.db.posts[idx]), nil
}

func (s *PostMemoryStorage) GetAllPosts() ([]*model.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	posts := make([]*model.Post, 0, len(s.db.posts))
	for _, p := range s.db.posts {
		posts = append(posts, clonePost(p))
	}

	return posts, nil
}

func (s *PostMemoryStorage) GetPostsByAuthor(authorID string) ([]*model.Post, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	posts := make([]*model.Post, 0)
	for _, p := range s.db.posts {
		if p.AuthorID == authorID {
			posts = append(posts, clonePost(p))
		}
	}

	return posts, nil
}
