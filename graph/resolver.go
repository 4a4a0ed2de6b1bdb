package graph

//go:generate go run github.com/99designs/gqlgen generate

import (
	"log/slog"

	"github.com/VitaminP8/blogql/internal/comment"
	"github.com/VitaminP8/blogql/internal/logging"
	"github.com/VitaminP8/blogql/internal/post"
	"github.com/VitaminP8/blogql/internal/subscription"
	"github.com/VitaminP8/blogql/internal/user"
)

// Resolver служит корневой точкой для всех резолверов.
// Хранилища и менеджер подписок внедряются из cmd/server.
type Resolver struct {
	UserStore           user.UserStorage
	PostStore           post.PostStorage
	CommentStore        comment.CommentStorage
	SubscriptionManager subscription.Manager
	Logger              *slog.Logger
}

func (r *Resolver) logger() *slog.Logger {
	if r.Logger == nil {
		return logging.Nop()
	}
	return r.Logger
}
