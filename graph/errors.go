package graph

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/99designs/gqlgen/graphql"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

// Коды ошибок в extensions.code ответа
const (
	CodeNotFound   = "NOT_FOUND"
	CodeEmailTaken = "EMAIL_TAKEN"
	CodeInternal   = "INTERNAL"
)

const internalErrorMessage = "internal system error"

// NewErrorPresenter оставляет клиенту текст ошибки и добавляет код для
// известных нарушений предусловий. Прочие ошибки хранилища логируются.
func NewErrorPresenter(logger *slog.Logger) graphql.ErrorPresenterFunc {
	return func(ctx context.Context, err error) *gqlerror.Error {
		gqlErr := graphql.DefaultErrorPresenter(ctx, err)

		code := errorCode(err)
		if code == "" {
			return gqlErr
		}
		if code == CodeInternal {
			// подробности сбоя бэкенда остаются в логе
			logger.Error("resolver failed", "path", gqlErr.Path.String(), "error", err)
			gqlErr.Message = internalErrorMessage
		}

		if gqlErr.Extensions == nil {
			gqlErr.Extensions = make(map[string]interface{})
		}
		gqlErr.Extensions["code"] = code
		return gqlErr
	}
}

func errorCode(err error) string {
	switch {
	case storage.IsNotFound(err):
		return CodeNotFound
	case errors.Is(err, storage.ErrEmailTaken):
		return CodeEmailTaken
	case errors.Is(err, context.Canceled):
		return ""
	}

	// ошибки самого gqlgen (валидация, разбор аргументов) оставляем как есть
	var gqlErr *gqlerror.Error
	if errors.As(err, &gqlErr) && gqlErr.Err == nil {
		return ""
	}
	return CodeInternal
}

// NewRecoverFunc превращает панику в резолвере в ошибку ответа, не роняя сервер.
func NewRecoverFunc(logger *slog.Logger) graphql.RecoverFunc {
	return func(ctx context.Context, p interface{}) error {
		logger.Error("resolver panic", "panic", fmt.Sprint(p))
		return errors.New(internalErrorMessage)
	}
}
