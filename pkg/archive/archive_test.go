package archive

import (
	"fmt"
	"io"
	"testing"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/muninn/pkg/codec"
)

// consumedRecord builds a real record the way the agent gets one: encoded
// into a region at fault time and consumed at boot.
func consumedRecord(t *testing.T, file string, line uint32, message string) *codec.Record {
	t.Helper()
	region := make([]byte, 256)
	codec.Encode(region, &codec.Location{File: file, Line: line, Column: 2}, func(w io.Writer) {
		io.WriteString(w, message)
	})
	rec, ok := codec.DetectAndConsume(region)
	require.True(t, ok)
	return rec
}

func TestArchivePutGet(t *testing.T) {
	arch, err := Open(t.TempDir())
	require.NoError(t, err)
	defer arch.Close()

	rec := consumedRecord(t, "motor.go", 88, "overcurrent")
	id, err := arch.Put(rec)
	require.NoError(t, err)

	entry, err := arch.Get(id.String())
	require.NoError(t, err)
	assert.Equal(t, id.String(), entry.ID)
	assert.Equal(t, "motor.go", entry.Filename)
	assert.Equal(t, uint32(88), entry.Line)
	assert.Equal(t, uint32(2), entry.Column)
	assert.Equal(t, "overcurrent", entry.Message)
	assert.False(t, entry.ConsumedAt.IsZero())
}

func TestArchiveGetMissing(t *testing.T) {
	arch, err := Open(t.TempDir())
	require.NoError(t, err)
	defer arch.Close()

	_, err = arch.Get(ksuid.New().String())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = arch.Get("not-a-ksuid")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestArchiveListAndCount(t *testing.T) {
	arch, err := Open(t.TempDir())
	require.NoError(t, err)
	defer arch.Close()

	want := map[string]bool{}
	for i := 0; i < 3; i++ {
		rec := consumedRecord(t, fmt.Sprintf("file%d.go", i), uint32(i+1), "boom")
		id, err := arch.Put(rec)
		require.NoError(t, err)
		want[id.String()] = true
	}

	entries, err := arch.List(0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.True(t, want[e.ID], "unexpected entry %s", e.ID)
	}

	limited, err := arch.List(2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	count, err := arch.Count()
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestArchiveEmptyList(t *testing.T) {
	arch, err := Open(t.TempDir())
	require.NoError(t, err)
	defer arch.Close()

	entries, err := arch.List(0)
	require.NoError(t, err)
	assert.Empty(t, entries)

	count, err := arch.Count()
	require.NoError(t, err)
	assert.Zero(t, count)
}
