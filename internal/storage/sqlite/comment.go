package sqlite

import (
	"context"
	"fmt"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/VitaminP8/blogql/internal/subscription"
	"github.com/VitaminP8/blogql/models"
	"github.com/jinzhu/gorm"
)

type CommentSQLiteStorage struct {
	db      *DB
	manager subscription.Manager
}

func NewCommentSQLiteStorage(db *DB, manager subscription.Manager) *CommentSQLiteStorage {
	return &CommentSQLiteStorage{
		db:      db,
		manager: manager,
	}
}

func (s *CommentSQLiteStorage) CreateComment(ctx context.Context, input model.CreateCommentInput) (*model.Comment, error) {
	comment := &models.Comment{
		ID:       s.db.newID(),
		Text:     input.Text,
		AuthorID: input.Author,
		PostID:   input.Post,
	}

	events, err := s.db.mutate(func(tx *gorm.DB) ([]storage.Event, error) {
		users, err := count(tx, &models.User{}, "id = ?", input.Author)
		if err != nil {
			return nil, err
		}
		// комментировать можно только опубликованный пост
		posts, err := count(tx, &models.Post{}, "id = ? AND published = ?", input.Post, true)
		if err != nil {
			return nil, err
		}
		if users == 0 || posts == 0 {
			return nil, storage.ErrUserOrPostNotFound
		}

		err = tx.Create(comment).Error
		if err != nil {
			return nil, fmt.Errorf("could not create comment: %w", err)
		}

		return []storage.Event{storage.CommentEvent(model.MutationTypeCreated, fromCommentRecord(comment))}, nil
	})
	if err != nil {
		return nil, err
	}

	storage.Publish(s.manager, events...)
	return fromCommentRecord(comment), nil
}

func (s *CommentSQLiteStorage) DeleteComment(ctx context.Context, id string) (*model.Comment, error) {
	var comment models.Comment

	events, err := s.db.mutate(func(tx *gorm.DB) ([]storage.Event, error) {
		err := tx.Where("id = ?", id).First(&comment).Error
		if gorm.IsRecordNotFoundError(err) {
			return nil, storage.ErrCommentNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("could not get comment by id: %w", err)
		}

		err = tx.Where("id = ?", id).Delete(&models.Comment{}).Error
		if err != nil {
			return nil, fmt.Errorf("could not delete comment: %w", err)
		}

		return []storage.Event{storage.CommentEvent(model.MutationTypeDeleted, fromCommentRecord(&comment))}, nil
	})
	if err != nil {
		return nil, err
	}

	storage.Publish(s.manager, events...)
	return fromCommentRecord(&comment), nil
}

func (s *CommentSQLiteStorage) UpdateComment(ctx context.Context, id string, input model.UpdateCommentInput) (*model.Comment, error) {
	var comment models.Comment

	events, err := s.db.mutate(func(tx *gorm.DB) ([]storage.Event, error) {
		err := tx.Where("id = ?", id).First(&comment).Error
		if gorm.IsRecordNotFoundError(err) {
			return nil, storage.ErrCommentNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("could not get comment by id: %w", err)
		}

		if input.Text != nil {
			err = tx.Model(&models.Comment{}).Where("id = ?", id).Update("text", *input.Text).Error
			if err != nil {
				return nil, fmt.Errorf("could not update comment: %w", err)
			}
			comment.Text = *input.Text
		}

		return []storage.Event{storage.CommentEvent(model.MutationTypeUpdated, fromCommentRecord(&comment))}, nil
	})
	if err != nil {
		return nil, err
	}

	storage.Publish(s.manager, events...)
	return fromCommentRecord(&comment), nil
}

func (s *CommentSQLiteStorage) GetAllComments() ([]*model.Comment, error) {
	return s.find("could not get comments", s.db.conn)
}

func (s *CommentSQLiteStorage) GetCommentsByPost(postID string) ([]*model.Comment, error) {
	return s.find("could not get comments by post", s.db.conn.Where("post_id = ?", postID))
}

func (s *CommentSQLiteStorage) GetCommentsByAuthor(authorID string) ([]*model.Comment, error) {
	return s.find("could not get comments by author", s.db.conn.Where("author_id = ?", authorID))
}

func (s *CommentSQLiteStorage) find(errMsg string, query *gorm.DB) ([]*model.Comment, error) {
	var comments []models.Comment
	err := query.Order("rowid").Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}

	results := make([]*model.Comment, 0, len(comments))
	for i := range comments {
		results = append(results, fromCommentRecord(&comments[i]))
	}
	return results, nil
}
