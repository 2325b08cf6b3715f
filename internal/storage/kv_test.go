package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]func() KV {
	t.Helper()
	dir := t.TempDir()
	return map[string]func() KV{
		"memory": func() KV { return NewMemory() },
		"file": func() KV {
			kv, err := NewFile(filepath.Join(dir, "prefs.json"))
			require.NoError(t, err)
			return kv
		},
		"sqlite": func() KV {
			kv, err := NewSQLite(filepath.Join(dir, "prefs.db"))
			require.NoError(t, err)
			t.Cleanup(func() { kv.Close() })
			return kv
		},
	}
}

func TestKVRoundTrip(t *testing.T) {
	for name, open := range backends(t) {
		t.Run(name, func(t *testing.T) {
			kv := open()

			_, ok, err := kv.Get("theme")
			require.NoError(t, err)
			assert.False(t, ok, "missing key should report absent")

			require.NoError(t, kv.Set("theme", "dark"))
			require.NoError(t, kv.Set("font-index", "2"))
			require.NoError(t, kv.Set("theme", "light"))

			v, ok, err := kv.Get("theme")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "light", v)

			keys, err := kv.Keys()
			require.NoError(t, err)
			assert.Equal(t, []string{"font-index", "theme"}, keys)

			require.NoError(t, kv.Delete("theme"))
			require.NoError(t, kv.Delete("never-set"))
			_, ok, err = kv.Get("theme")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestFileSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.json")

	kv, err := NewFile(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set("font-index", "3"))

	reopened, err := NewFile(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get("font-index")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3", v)
}

func TestSQLiteSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.db")

	kv, err := NewSQLite(path)
	require.NoError(t, err)
	require.NoError(t, kv.Set("theme", "dark"))
	require.NoError(t, kv.Close())

	reopened, err := NewSQLite(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, ok, err := reopened.Get("theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)
}

func TestFileRejectsCorruptData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	_, err := NewFile(path)
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	kv, err := Open(BackendMemory, "")
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, kv)

	kv, err = Open(BackendFile, filepath.Join(dir, "p.json"))
	require.NoError(t, err)
	assert.IsType(t, &File{}, kv)

	kv, err = Open(BackendSQLite, filepath.Join(dir, "p.db"))
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, kv)
	assert.NoError(t, Close(kv))

	_, err = Open("redis", "")
	assert.Error(t, err)
}
