package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/99designs/gqlgen/graphql"
	"github.com/VitaminP8/blogql/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

func TestLogOperations(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Format: logging.FormatJSON, Output: &buf})
	middleware := LogOperations(logger)

	ctx := graphql.WithOperationContext(context.Background(), &graphql.OperationContext{
		OperationName: "CreateUser",
		Operation:     &ast.OperationDefinition{Operation: ast.Mutation},
	})

	t.Run("Successful operation", func(t *testing.T) {
		buf.Reset()

		handler := middleware(ctx, func(ctx context.Context) graphql.ResponseHandler {
			return func(ctx context.Context) *graphql.Response {
				return &graphql.Response{Data: []byte(`{}`)}
			}
		})
		require.NotNil(t, handler(ctx))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "graphql operation", entry["msg"])
		assert.Equal(t, "INFO", entry["level"])
		assert.Equal(t, "CreateUser", entry["operation"])
		assert.Equal(t, "mutation", entry["type"])
		assert.Equal(t, float64(0), entry["errors"])
	})

	t.Run("Operation with errors", func(t *testing.T) {
		buf.Reset()

		handler := middleware(ctx, func(ctx context.Context) graphql.ResponseHandler {
			return func(ctx context.Context) *graphql.Response {
				return &graphql.Response{Errors: gqlerror.List{gqlerror.Errorf("Email taken.")}}
			}
		})
		handler(ctx)

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "WARN", entry["level"])
		assert.Equal(t, float64(1), entry["errors"])
	})

	t.Run("End of subscription stream is not logged", func(t *testing.T) {
		buf.Reset()

		handler := middleware(ctx, func(ctx context.Context) graphql.ResponseHandler {
			return func(ctx context.Context) *graphql.Response { return nil }
		})
		assert.Nil(t, handler(ctx))
		assert.Empty(t, buf.String())
	})
}
