package notes

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_MissingKey(t *testing.T) {
	store := openTestStore(t)

	value, err := store.Get("never-written")
	require.NoError(t, err)
	assert.Empty(t, value)
}

func TestStore_SetGet(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("k", "v1"))
	value, err := store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v1", value)

	// Overwrite replaces, last write wins.
	require.NoError(t, store.Set("k", "v2"))
	value, err = store.Get("k")
	require.NoError(t, err)
	assert.Equal(t, "v2", value)
}

func TestStore_Delete(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Set("k", "v"))
	require.NoError(t, store.Delete("k"))

	value, err := store.Get("k")
	require.NoError(t, err)
	assert.Empty(t, value)

	assert.NoError(t, store.Delete("k"), "deleting a missing key must not error")
}

func TestStore_Notes(t *testing.T) {
	store := openTestStore(t)

	text, err := store.Notes()
	require.NoError(t, err)
	assert.Empty(t, text)

	require.NoError(t, store.SaveNotes("remember: check safari support"))
	text, err = store.Notes()
	require.NoError(t, err)
	assert.Equal(t, "remember: check safari support", text)
}

func TestStore_Theme(t *testing.T) {
	store := openTestStore(t)

	theme, err := store.Theme()
	require.NoError(t, err)
	assert.Empty(t, theme)

	require.NoError(t, store.SaveTheme("dark"))
	theme, err = store.Theme()
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)

	assert.Error(t, store.SaveTheme("solarized"))
}

func TestStore_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.SaveNotes("survives reopen"))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	text, err := reopened.Notes()
	require.NoError(t, err)
	assert.Equal(t, "survives reopen", text)
}
