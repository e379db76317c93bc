package storage_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fatush13/simplestore/internal/adapters/storage"
	"github.com/Fatush13/simplestore/test/helpers"
)

func TestLocalStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := storage.NewLocalStorage(t.TempDir(), helpers.TestLogger())

	location, err := store.Upload(ctx, "reports/test.json", []byte(`{"ok":true}`), "application/json")
	require.NoError(t, err)
	assert.Contains(t, location, "reports")

	exists, err := store.Exists(ctx, "reports/test.json")
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := store.Download(ctx, "reports/test.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(data))

	keys, err := store.List(ctx, "reports/")
	require.NoError(t, err)
	assert.Equal(t, []string{"reports/test.json"}, keys)

	require.NoError(t, store.Delete(ctx, "reports/test.json"))
	exists, err = store.Exists(ctx, "reports/test.json")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting a missing key is not an error.
	assert.NoError(t, store.Delete(ctx, "reports/test.json"))
}
