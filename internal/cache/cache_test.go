package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tm.json")

	tm, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, 0, tm.Len())

	tm.Set("「お兄、あさー……むふー……」", "\"Big bro, morning... mmh...\"")
	require.NoError(t, tm.Flush())

	reopened, err := Open(path)
	require.NoError(t, err)
	got, ok := reopened.Get("「お兄、あさー……むふー……」")
	require.True(t, ok)
	assert.Equal(t, "\"Big bro, morning... mmh...\"", got)
}

func TestMissingFileIsEmpty(t *testing.T) {
	tm, err := Open(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	_, ok := tm.Get("anything")
	assert.False(t, ok)
}

func TestFlushSkipsWhenClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tm.json")
	tm, err := Open(path)
	require.NoError(t, err)

	// Nothing was set, so no file should appear.
	require.NoError(t, tm.Flush())
	_, err = Open(path)
	require.NoError(t, err)
}
