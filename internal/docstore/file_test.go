package docstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	_, ok, err := store.Get(ctx, "standings")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, store.Put(ctx, "standings", []byte(`{"grade":"B2","standings":[]}`)))

	doc, ok, err := store.Get(ctx, "standings")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"grade":"B2","standings":[]}`, string(doc))
}

func TestFileStore_RewriteIsByteIdentical(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()
	doc := []byte(`{"grade":"B2","standings":[{"position":1,"team":"Marsden CC"}]}`)

	require.NoError(t, store.Put(ctx, "standings", doc))
	first, err := os.ReadFile(filepath.Join(store.Dir, "standings.json"))
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "standings", doc))
	second, err := os.ReadFile(filepath.Join(store.Dir, "standings.json"))
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public", "data")
	store := NewFileStore(dir)

	require.NoError(t, store.Put(context.Background(), "fixtures", []byte(`{}`)))
	_, err := os.Stat(filepath.Join(dir, "fixtures.json"))
	require.NoError(t, err)
}

func TestFileStore_KeysAreIndependent(t *testing.T) {
	store := NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "standings", []byte(`{"a":1}`)))
	require.NoError(t, store.Put(ctx, "fixtures", []byte(`{"b":2}`)))

	doc, ok, err := store.Get(ctx, "standings")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"a":1}`, string(doc))
}
