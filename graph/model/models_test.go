package model

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutationType_UnmarshalGQL(t *testing.T) {
	t.Run("Valid value", func(t *testing.T) {
		var m MutationType
		require.NoError(t, m.UnmarshalGQL("DELETED"))
		assert.Equal(t, MutationTypeDeleted, m)
	})

	t.Run("Unknown value", func(t *testing.T) {
		var m MutationType
		err := m.UnmarshalGQL("REMOVED")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not a valid MutationType")
	})

	t.Run("Not a string", func(t *testing.T) {
		var m MutationType
		assert.Error(t, m.UnmarshalGQL(42))
	})
}

func TestMutationType_MarshalGQL(t *testing.T) {
	for _, m := range AllMutationType {
		var buf bytes.Buffer
		m.MarshalGQL(&buf)
		assert.Equal(t, `"`+string(m)+`"`, buf.String())
	}
}
