package post

import (
	"context"

	"github.com/VitaminP8/blogql/graph/model"
)

type PostStorage interface {
	CreatePost(ctx context.Context, input model.CreatePostInput) (*model.Post, error)
	// DeletePost удаляет пост и комментарии к нему
	DeletePost(ctx context.Context, id string) (*model.Post, error)
	UpdatePost(ctx context.Context, id string, input model.UpdatePostInput) (*model.Post, error)
	GetPostById(id string) (*model.Post, error)
	GetAllPosts() ([]*model.Post, error)
	GetPostsByAuthor(authorID string) ([]*model.Post, error)
}
