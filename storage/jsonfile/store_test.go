package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/poiesic/granttag/core"
	"github.com/poiesic/granttag/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGrant(name string, tags ...string) *core.Grant {
	return &core.Grant{Name: name, Description: name + " description", Tags: tags}
}

func grantNames(grants []*core.Grant) []string {
	out := make([]string, 0, len(grants))
	for _, g := range grants {
		out = append(out, g.Name)
	}
	return out
}

func openTestStore(t *testing.T) (storage.GrantStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "storage", "grants.json")
	store, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestOpen_CreatesEmptyCollection(t *testing.T) {
	_, path := openTestStore(t)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestOpen_KeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grants.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"grant_name":"kept","grant_description":"d","tags":["water"]}]`), 0644))

	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	grants, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, grants, 1)
	assert.Equal(t, "kept", grants[0].Name)
	assert.Equal(t, []string{}, grants[0].WebsiteURLs)
}

func TestStore_AppendWriteClear(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)

	require.NoError(t, store.AppendAll(ctx, []*core.Grant{testGrant("a"), testGrant("b")}))
	require.NoError(t, store.AppendAll(ctx, []*core.Grant{testGrant("c")}))

	grants, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, grantNames(grants))

	require.NoError(t, store.WriteAll(ctx, []*core.Grant{testGrant("z")}))
	grants, err = store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, grantNames(grants))

	require.NoError(t, store.ClearAll(ctx))
	grants, err = store.ReadAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, grants)
	assert.Empty(t, grants)
}

func TestStore_FileFormat(t *testing.T) {
	ctx := context.Background()
	store, path := openTestStore(t)

	require.NoError(t, store.WriteAll(ctx, []*core.Grant{testGrant("a", "water")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {\n    \"grant_name\": \"a\"")

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, []any{"water"}, raw[0]["tags"])
	assert.Equal(t, []any{}, raw[0]["website_urls"])
	assert.Equal(t, []any{}, raw[0]["document_urls"])
}

func TestStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	store, path := openTestStore(t)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	grants, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, grants)

	require.NoError(t, store.AppendAll(ctx, []*core.Grant{testGrant("fresh")}))
	grants, err = store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"fresh"}, grantNames(grants))
}

func TestStore_MissingFile(t *testing.T) {
	store, path := openTestStore(t)
	require.NoError(t, os.Remove(path))

	grants, err := store.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, grants)
}

func TestStore_Closed(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)
	require.NoError(t, store.Close())

	_, err := store.ReadAll(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
	assert.ErrorIs(t, store.AppendAll(ctx, nil), storage.ErrStorageClosed)
	assert.ErrorIs(t, store.WriteAll(ctx, nil), storage.ErrStorageClosed)
	assert.ErrorIs(t, store.ClearAll(ctx), storage.ErrStorageClosed)
}

func TestStore_NoTempFilesLeft(t *testing.T) {
	ctx := context.Background()
	store, path := openTestStore(t)

	for i := range 5 {
		require.NoError(t, store.AppendAll(ctx, []*core.Grant{testGrant(fmt.Sprint(i))}))
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "grants.json", entries[0].Name())
}

func TestStore_ConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	store, _ := openTestStore(t)

	var wg sync.WaitGroup
	for w := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 5 {
				assert.NoError(t, store.AppendAll(ctx, []*core.Grant{testGrant(fmt.Sprintf("w%d-%d", w, i))}))
			}
		}()
	}
	wg.Wait()

	grants, err := store.ReadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, grants, 40)
}
