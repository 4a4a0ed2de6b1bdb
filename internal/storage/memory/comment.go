package memory

import (
	"context"
	"slices"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/VitaminP8/blogql/internal/subscription"
)

type CommentMemoryStorage struct {
	db      *DB
	manager subscription.Manager
}

func NewCommentMemoryStorage(db *DB, manager subscription.Manager) *CommentMemoryStorage {
	return &CommentMemoryStorage{
		db:      db,
		manager: manager,
	}
}

func (s *CommentMemoryStorage) CreateComment(ctx context.Context, input model.CreateCommentInput) (*model.Comment, error) {
	var created *model.Comment

	events, err := s.db.mutate(func() ([]storage.Event, error) {
		userExists := s.db.userIndex(input.Author) != -1

		// комментировать можно только опубликованный пост
		postIdx := s.db.postIndex(input.Post)
		postPublished := postIdx != -1 && s.db.posts[postIdx].Published

		if !userExists || !postPublished {
			return nil, storage.ErrUserOrPostNotFound
		}

		comment := &model.Comment{
			ID:       s.db.newID(),
			Text:     input.Text,
			AuthorID: input.Author,
			PostID:   input.Post,
		}
		s.db.comments = append(s.db.comments, comment)
		created = cloneComment(comment)

		return []storage.Event{storage.CommentEvent(model.MutationTypeCreated, cloneComment(comment))}, nil
	})
	if err != nil {
		return nil, err
	}

	storage.Publish(s.manager, events...)
	return created, nil
}

func (s *CommentMemoryStorage) DeleteComment(ctx context.Context, id string) (*model.Comment, error) {
	var deleted *model.Comment

	events, err := s.db.mutate(func() ([]storage.Event, error) {
		idx := s.db.commentIndex(id)
		if idx == -1 {
			return nil, storage.ErrCommentNotFound
		}

		deleted = s.db.comments[idx]
		s.db.comments = slices.Delete(s.db.comments, idx, idx+1)

		return []storage.Event{storage.CommentEvent(model.MutationTypeDeleted, cloneComment(deleted))}, nil
	})
	if err != nil {
		return nil, err
	}

	storage.Publish(s.manager, events...)
	return deleted, nil
}

func (s *CommentMemoryStorage) UpdateComment(ctx context.Context, id string, input model.UpdateCommentInput) (*model.Comment, error) {
	var updated *model.Comment

	events, err := s.db.mutate(func() ([]storage.Event, error) {
		idx := s.db.commentIndex(id)
		if idx == -1 {
			return nil, storage.ErrCommentNotFound
		}
		comment := s.db.comments[idx]

		if input.Text != nil {
			comment.Text = *input.Text
		}

		updated = cloneComment(comment)
		return []storage.Event{storage.CommentEvent(model.MutationTypeUpdated, cloneComment(comment))}, nil
	})
	if err != nil {
		return nil, err
	}

	storage.Publish(s.manager, events...)
	return updated, nil
}

func (s *CommentMemoryStorage) GetAllComments() ([]*model.Comment, error) {
	return s.filter(func(*model.Comment) bool { return true }), nil
}

func (s *CommentMemoryStorage) GetCommentsByPost(postID string) ([]*model.Comment, error) {
	return s.filter(func(c *model.Comment) bool { return c.PostID == postID }), nil
}

func (s *CommentMemoryStorage) GetCommentsByAuthor(authorID string) ([]*model.Comment, error) {
	return s.filter(func(c *model.Comment) bool { return c.AuthorID == authorID }), nil
}

func (s *CommentMemoryStorage) filter(match func(*model.Comment) bool) []*model.Comment {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	comments := make([]*model.Comment, 0)
	for _, c := range s.db.comments {
		if match(c) {
			comments = append(comments, cloneComment(c))
		}
	}
	return comments
}
