package docstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behaviour every backend must share.
func runStoreContract(t *testing.T, s Store, collection string) {
	t.Helper()
	ctx := context.Background()

	t.Run("get missing", func(t *testing.T) {
		_, err := s.Get(ctx, collection, "missing")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("put and get", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, collection, "u1", []byte(`{"total":3,"days":["2024-01-01"]}`)))
		got, err := s.Get(ctx, collection, "u1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"total":3,"days":["2024-01-01"]}`, string(got))

		require.NoError(t, s.Put(ctx, collection, "u1", []byte(`{"total":4,"days":[]}`)))
		got, err = s.Get(ctx, collection, "u1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"total":4,"days":[]}`, string(got))
	})

	t.Run("put if absent", func(t *testing.T) {
		created, err := s.PutIfAbsent(ctx, collection, "u2:t1", []byte(`{"hours":1.5}`))
		require.NoError(t, err)
		assert.True(t, created)

		created, err = s.PutIfAbsent(ctx, collection, "u2:t1", []byte(`{"hours":9}`))
		require.NoError(t, err)
		assert.False(t, created)

		got, err := s.Get(ctx, collection, "u2:t1")
		require.NoError(t, err)
		assert.JSONEq(t, `{"hours":1.5}`, string(got))
	})

	t.Run("scan by prefix", func(t *testing.T) {
		require.NoError(t, s.Put(ctx, collection, "u2:t0", []byte(`{"hours":2}`)))
		entries, err := s.Scan(ctx, collection, "u2:")
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, "u2:t0", entries[0].Key)
		assert.Equal(t, "u2:t1", entries[1].Key)

		all, err := s.Scan(ctx, collection, "")
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}
