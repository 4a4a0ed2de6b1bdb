package graph

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/VitaminP8/blogql/internal/logging"
	"github.com/VitaminP8/blogql/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/gqlerror"
)

func TestErrorPresenter(t *testing.T) {
	var buf bytes.Buffer
	presenter := NewErrorPresenter(logging.New(logging.Config{Output: &buf}))
	ctx := context.Background()

	tests := []struct {
		name     string
		err      error
		wantMsg  string
		wantCode interface{}
	}{
		{name: "email taken", err: storage.ErrEmailTaken, wantMsg: "Email taken.", wantCode: CodeEmailTaken},
		{name: "user not found", err: storage.ErrUserNotFound, wantMsg: "User not found", wantCode: CodeNotFound},
		{name: "missing post on delete", err: storage.ErrNoPostExist, wantMsg: "No post exist", wantCode: CodeNotFound},
		{name: "missing comment", err: storage.ErrCommentNotFound, wantMsg: "No comment found", wantCode: CodeNotFound},
		{name: "missing relation", err: storage.ErrUserOrPostNotFound, wantMsg: "User or post might not exist", wantCode: CodeNotFound},
		{name: "backend failure", err: fmt.Errorf("could not commit transaction: %w", errors.New("disk I/O error")), wantMsg: "internal system error", wantCode: CodeInternal},
		{name: "framework error", err: gqlerror.Errorf("unknown field"), wantMsg: "unknown field", wantCode: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gqlErr := presenter(ctx, tt.err)
			require.NotNil(t, gqlErr)
			assert.Equal(t, tt.wantMsg, gqlErr.Message)
			if tt.wantCode == nil {
				assert.NotContains(t, gqlErr.Extensions, "code")
				return
			}
			assert.Equal(t, tt.wantCode, gqlErr.Extensions["code"])
		})
	}

	// клиент видит общий текст, причина сбоя только в логе
	assert.Contains(t, buf.String(), "disk I/O error")
	assert.NotContains(t, buf.String(), "Email taken.")
}

func TestRecoverFunc(t *testing.T) {
	var buf bytes.Buffer
	recoverFunc := NewRecoverFunc(logging.New(logging.Config{Output: &buf}))

	err := recoverFunc(context.Background(), "boom")
	assert.EqualError(t, err, "internal system error")
	assert.Contains(t, buf.String(), "boom")
}
