package comment

import (
	"context"

	"github.com/VitaminP8/blogql/graph/model"
)

type CommentStorage interface {
	CreateComment(ctx context.Context, input model.CreateCommentInput) (*model.Comment, error)
	DeleteComment(ctx context.Context, id string) (*model.Comment, error)
	UpdateComment(ctx context.Context, id string, input model.UpdateCommentInput) (*model.Comment, error)
	GetAllComments() ([]*model.Comment, error)
	GetCommentsByPost(postID string) ([]*model.Comment, error)
	GetCommentsByAuthor(authorID string) ([]*model.Comment, error)
}
