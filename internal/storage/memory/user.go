package memory

import (
	"context"
	"slices"

	"github.com/VitaminP8/blogql/graph/model"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/VitaminP8/blogql/internal/subscription"
)

type UserMemoryStorage struct {
	db      *DB
	manager subscription.Manager
}

func NewUserMemoryStorage(db *DB, manager subscription.Manager) *UserMemoryStorage {
	return &UserMemoryStorage{
		db:      db,
		manager: manager,
	}
}

func (s *UserMemoryStorage) CreateUser(ctx context.Context, input model.CreateUserInput) (*model.User, error) {
	var created *model.User

	_, err := s.db.mutate(func() ([]storage.Event, error) {
		if s.db.emailTaken(input.Email, "") {
			return nil, storage.ErrEmailTaken
		}

		user := &model.User{
			ID:    s.db.newID(),
			Name:  input.Name,
			Email: input.Email,
			Age:   copyInt(input.Age),
		}
		s.db.users = append(s.db.users, user)
		created = cloneUser(user)
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (s *UserMemoryStorage) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	var deleted *model.User

	events, err := s.db.mutate(func() ([]storage.Event, error) {
		idx := s.db.userIndex(id)
		if idx == -1 {
			return nil, storage.ErrUserNotFound
		}

		deleted = s.db.users[idx]
		s.db.users = slices.Delete(s.db.users, idx, idx+1)

		// посты автора уходят вместе с ним; подписчики POST получают DELETED
		// по каждому опубликованному, как при обычном deletePost
		var events []storage.Event
		removedPosts := make(map[string]struct{})
		s.db.posts = slices.DeleteFunc(s.db.posts, func(p *model.Post) bool {
			if p.AuthorID != id {
				return false
			}
			removedPosts[p.ID] = struct{}{}
			if p.Published {
				events = append(events, storage.PostEvent(model.MutationTypeDeleted, clonePost(p)))
			}
			return true
		})

		// комментарии к удаленным постам и комментарии самого пользователя
		s.db.comments = slices.DeleteFunc(s.db.comments, func(c *model.Comment) bool {
			_, onRemovedPost := removedPosts[c.PostID]
			return onRemovedPost || c.AuthorID == id
		})

		return events, nil
	})
	if err != nil {
		return nil, err
	}

	storage.Publish(s.manager, events...)
	return deleted, nil
}

func (s *UserMemoryStorage) UpdateUser(ctx context.Context, id string, input model.UpdateUserInput) (*model.User, error) {
	var updated *model.User

	_, err := s.db.mutate(func() ([]storage.Event, error) {
		idx := s.db.userIndex(id)
		if idx == -1 {
			return nil, storage.ErrUserNotFound
		}
		user := s.db.users[idx]

		// проверяем все до изменения, чтобы ошибка не оставила запись наполовину обновленной.
		// Собственный email пользователя занятым не считается.
		if input.Email != nil && s.db.emailTaken(*input.Email, id) {
			return nil, storage.ErrEmailTaken
		}

		if input.Email != nil {
			user.Email = *input.Email
		}
		if input.Name != nil {
			user.Name = *input.Name
		}
		if age, ok := input.Age.ValueOK(); ok {
			user.Age = copyInt(age)
		}

		updated = cloneUser(user)
		return nil, nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *UserMemoryStorage) GetUserById(id string) (*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	idx := s.db.userIndex(id)
	if idx == -1 {
		return nil, storage.ErrUserNotFound
	}

	return cloneUser(s.db.users[idx]), nil
}

func (s *UserMemoryStorage) GetAllUsers() ([]*model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	users := make([]*model.User, 0, len(s.db.users))
	for _, u := range s.db.users {
		users = append(users, cloneUser(u))
	}

	return users, nil
}
