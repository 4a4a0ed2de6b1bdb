package graph

import (
	"context"
	"log/slog"
	"time"

	"github.com/99designs/gqlgen/graphql"
)

// LogOperations пишет в лог каждую операцию: имя, тип, число ошибок и время.
// Для подписок запись появляется на каждое отправленное событие.
func LogOperations(logger *slog.Logger) graphql.OperationMiddleware {
	return func(ctx context.Context, next graphql.OperationHandler) graphql.ResponseHandler {
		oc := graphql.GetOperationContext(ctx)
		start := time.Now()

		opType := ""
		if oc.Operation != nil {
			opType = string(oc.Operation.Operation)
		}

		responses := next(ctx)
		return func(ctx context.Context) *graphql.Response {
			resp := responses(ctx)
			if resp == nil {
				return nil
			}

			level := slog.LevelInfo
			if len(resp.Errors) > 0 {
				level = slog.LevelWarn
			}
			logger.Log(ctx, level, "graphql operation",
				"operation", oc.OperationName,
				"type", opType,
				"errors", len(resp.Errors),
				"duration", time.Since(start),
			)
			return resp
		}
	}
}
