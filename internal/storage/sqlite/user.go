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

type UserSQLiteStorage struct {
	db      *DB
	manager subscription.Manager
}

func NewUserSQLiteStorage(db *DB, manager subscription.Manager) *UserSQLiteStorage {
	return &UserSQLiteStorage{
		db:      db,
		manager: manager,
	}
}

func (s *UserSQLiteStorage) CreateUser(ctx context.Context, input model.CreateUserInput) (*model.User, error) {
	user := &models.User{
		ID:    s.db.newID(),
		Name:  input.Name,
		Email: input.Email,
	}
	if input.Age != nil {
		age := *input.Age
		user.Age = &age
	}

	_, err := s.db.mutate(func(tx *gorm.DB) ([]storage.Event, error) {
		taken, err := count(tx, &models.User{}, "email = ?", input.Email)
		if err != nil {
			return nil, err
		}
		if taken > 0 {
			return nil, storage.ErrEmailTaken
		}

		err = tx.Create(user).Error
		if err != nil {
			return nil, fmt.Errorf("could not create user: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	return fromUserRecord(user), nil
}

func (s *UserSQLiteStorage) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	var user models.User

	events, err := s.db.mutate(func(tx *gorm.DB) ([]storage.Event, error) {
		err := tx.Where("id = ?", id).First(&user).Error
		if gorm.IsRecordNotFoundError(err) {
			return nil, storage.ErrUserNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("could not get user by id: %w", err)
		}

		var posts []models.Post
		err = tx.Where("author_id = ?", id).Order("rowid").Find(&posts).Error
		if err != nil {
			return nil, fmt.Errorf("could not get user posts: %w", err)
		}

		// опубликованные посты автора уходят подписчикам POST как DELETED
		var events []storage.Event
		postIDs := make([]string, 0, len(posts))
		for i := range posts {
			postIDs = append(postIDs, posts[i].ID)
			if posts[i].Published {
				events = append(events, storage.PostEvent(model.MutationTypeDeleted, fromPostRecord(&posts[i])))
			}
		}

		if len(postIDs) > 0 {
			err = tx.Where("post_id IN (?)", postIDs).Delete(&models.Comment{}).Error
			if err != nil {
				return nil, fmt.Errorf("could not delete comments of user posts: %w", err)
			}
		}

		err = tx.Where("author_id = ?", id).Delete(&models.Comment{}).Error
		if err != nil {
			return nil, fmt.Errorf("could not delete user comments: %w", err)
		}

		err = tx.Where("author_id = ?", id).Delete(&models.Post{}).Error
		if err != nil {
			return nil, fmt.Errorf("could not delete user posts: %w", err)
		}

		err = tx.Where("id = ?", id).Delete(&models.User{}).Error
		if err != nil {
			return nil, fmt.Errorf("could not delete user: %w", err)
		}

		return events, nil
	})
	if err != nil {
		return nil, err
	}

	storage.Publish(s.manager, events...)
	return fromUserRecord(&user), nil
}

func (s *UserSQLiteStorage) UpdateUser(ctx context.Context, id string, input model.UpdateUserInput) (*model.User, error) {
	var user models.User

	_, err := s.db.mutate(func(tx *gorm.DB) ([]storage.Event, error) {
		err := tx.Where("id = ?", id).First(&user).Error
		if gorm.IsRecordNotFoundError(err) {
			return nil, storage.ErrUserNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("could not get user by id: %w", err)
		}

		updates := make(map[string]interface{})
		if input.Email != nil {
			// собственный email пользователя занятым не считается
			taken, err := count(tx, &models.User{}, "email = ? AND id <> ?", *input.Email, id)
			if err != nil {
				return nil, err
			}
			if taken > 0 {
				return nil, storage.ErrEmailTaken
			}
			updates["email"] = *input.Email
		}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if age, ok := input.Age.ValueOK(); ok {
			if age == nil {
				updates["age"] = gorm.Expr("NULL")
			} else {
				updates["age"] = *age
			}
		}

		if len(updates) == 0 {
			return nil, nil
		}

		err = tx.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
		if err != nil {
			return nil, fmt.Errorf("could not update user: %w", err)
		}

		user = models.User{}
		err = tx.Where("id = ?", id).First(&user).Error
		if err != nil {
			return nil, fmt.Errorf("could not reload user: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	return fromUserRecord(&user), nil
}

func (s *UserSQLiteStorage) GetUserById(id string) (*model.User, error) {
	var user models.User
	err := s.db.conn.Where("id = ?", id).First(&user).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, storage.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("could not get user by id: %w", err)
	}

	return fromUserRecord(&user), nil
}

func (s *UserSQLiteStorage) GetAllUsers() ([]*model.User, error) {
	var users []models.User
	err := s.db.conn.Order("rowid").Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("could not get users: %w", err)
	}

	results := make([]*model.User, 0, len(users))
	for i := range users {
		results = append(results, fromUserRecord(&users[i]))
	}
	return results, nil
}
