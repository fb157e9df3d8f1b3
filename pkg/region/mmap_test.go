//go:build unix

package region

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRegion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")

	r, err := OpenFile(path, 0, 128)
	require.NoError(t, err)

	view := r.Bytes()
	require.Len(t, view, 128)
	copy(view, "persisted")
	require.NoError(t, r.Close())

	// The mapping is shared, so the bytes are in the backing file.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("persisted"), data[:9])

	// And a fresh mapping of the same bounds sees them again.
	r2, err := OpenFile(path, 0, 128)
	require.NoError(t, err)
	defer r2.Close()
	assert.Equal(t, []byte("persisted"), r2.Bytes()[:9])
}

func TestFileRegionUnalignedOffset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "region.bin")

	// A start offset inside a page; the accessor maps the enclosing page
	// and the view must still cover exactly [start, start+length).
	r, err := OpenFile(path, 100, 64)
	require.NoError(t, err)
	defer r.Close()

	view := r.Bytes()
	require.Len(t, view, 64)
	view[0] = 0xCD

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, byte(0xCD), data[100])
}

func TestFileRegionInvalidLength(t *testing.T) {
	_, err := OpenFile(filepath.Join(t.TempDir(), "region.bin"), 0, 0)
	assert.Error(t, err)
}
