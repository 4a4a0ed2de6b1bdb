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

type PostSQLiteStorage struct {
	db      *DB
	manager subscription.Manager
}

func NewPostSQLiteStorage(db *DB, manager subscription.Manager) *PostSQLiteStorage {
	return &PostSQLiteStorage{
		db:      db,
		manager: manager,
	}
}

func (s *PostSQLiteStorage) CreatePost(ctx context.Context, input model.CreatePostInput) (*model.Post, error) {
	post := &models.Post{
		ID:        s.db.newID(),
		Title:     input.Title,
		Body:      input.Body,
		Published: input.Published,
		AuthorID:  input.Author,
	}

	events, err := s.db.mutate(func(tx *gorm.DB) ([]storage.Event, error) {
		authors, err := count(tx, &models.User{}, "id = ?", input.Author)
		if err != nil {
			return nil, err
		}
		if authors == 0 {
			return nil, storage.ErrUserNotFound
		}

		err = tx.Create(post).Error
		if err != nil {
			return nil, fmt.Errorf("could not create post: %w", err)
		}

		if !post.Published {
			return nil, nil
		}
		return []storage.Event{storage.PostEvent(model.MutationTypeCreated, fromPostRecord(post))}, nil
	})
	if err != nil {
		return nil, err
	}

	storage.Publish(s.manager, events...)
	return fromPostRecord(post), nil
}

func (s *PostSQLiteStorage) DeletePost(ctx context.Context, id string) (*model.Post, error) {
	var post models.Post

	events, err := s.db.mutate(func(tx *gorm.DB) ([]storage.Event, error) {
		err := tx.Where("id = ?", id).First(&post).Error
		if gorm.IsRecordNotFoundError(err) {
			return nil, storage.ErrNoPostExist
		}
		if err != nil {
			return nil, fmt.Errorf("could not get post by id: %w", err)
		}

		err = tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error
		if err != nil {
			return nil, fmt.Errorf("could not delete post comments: %w", err)
		}

		err = tx.Where("id = ?", id).Delete(&models.Post{}).Error
		if err != nil {
			return nil, fmt.Errorf("could not delete post: %w", err)
		}

		if !post.Published {
			return nil, nil
		}
		return []storage.Event{storage.PostEvent(model.MutationTypeDeleted, fromPostRecord(&post))}, nil
	})
	if err != nil {
		return nil, err
	}

	storage.Publish(s.manager, events...)
	return fromPostRecord(&post), nil
}

func (s *PostSQLiteStorage) UpdatePost(ctx context.Context, id string, input model.UpdatePostInput) (*model.Post, error) {
	var post models.Post

	events, err := s.db.mutate(func(tx *gorm.DB) ([]storage.Event, error) {
		err := tx.Where("id = ?", id).First(&post).Error
		if gorm.IsRecordNotFoundError(err) {
			return nil, storage.ErrNoPostFound
		}
		if err != nil {
			return nil, fmt.Errorf("could not get post by id: %w", err)
		}
		before := fromPostRecord(&post)

		updates := make(map[string]interface{})
		if input.Title != nil {
			updates["title"] = *input.Title
		}
		if input.Body != nil {
			updates["body"] = *input.Body
		}
		if input.Published != nil {
			updates["published"] = *input.Published
		}

		if len(updates) > 0 {
			err = tx.Model(&models.Post{}).Where("id = ?", id).Updates(updates).Error
			if err != nil {
				return nil, fmt.Errorf("could not update post: %w", err)
			}

			post = models.Post{}
			err = tx.Where("id = ?", id).First(&post).Error
			if err != nil {
				return nil, fmt.Errorf("could not reload post: %w", err)
			}
		}

		event, ok := storage.PostUpdateEvent(before, fromPostRecord(&post), input.Published != nil)
		if !ok {
			return nil, nil
		}
		return []storage.Event{event}, nil
	})
	if err != nil {
		return nil, err
	}

	storage.Publish(s.manager, events...)
	return fromPostRecord(&post), nil
}

func (s *PostSQLiteStorage) GetPostById(id string) (*model.Post, error) {
	var post models.Post
	err := s.db.conn.Where("id = ?", id).First(&post).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, storage.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get post by id: %w", err)
	}

	return fromPostRecord(&post), nil
}

func (s *PostSQLiteStorage) GetAllPosts() ([]*model.Post, error) {
	return s.find("could not get posts", s.db.conn)
}

func (s *PostSQLiteStorage) GetPostsByAuthor(authorID string) ([]*model.Post, error) {
	return s.find("could not get posts by author", s.db.conn.Where("author_id = ?", authorID))
}

func (s *PostSQLiteStorage) find(errMsg string, query *gorm.DB) ([]*model.Post, error) {
	var posts []models.Post
	err := query.Order("rowid").Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}

	results := make([]*model.Post, 0, len(posts))
	for i := range posts {
		results = append(results, fromPostRecord(&posts[i]))
	}
	return results, nil
}
