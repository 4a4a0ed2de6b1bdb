package user

import (
	"context"

	"github.com/VitaminP8/blogql/graph/model"
)

type UserStorage interface {
	CreateUser(ctx context.Context, input model.CreateUserInput) (*model.User, error)
	// DeleteUser удаляет пользователя вместе с его постами и всеми связанными комментариями
	DeleteUser(ctx context.Context, id string) (*model.User, error)
	UpdateUser(ctx context.Context, id string, input model.UpdateUserInput) (*model.User, error)
	GetUserById(id string) (*model.User, error)
	GetAllUsers() ([]*model.User, error)
}
