package recorder

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndList(t *testing.T) {
	rec, err := Open(filepath.Join(t.TempDir(), "requests.db"))
	require.NoError(t, err)
	defer rec.Close()

	require.NoError(t, rec.Record(Entry{
		Method: "get", Path: "/test_file", Status: 200, BytesWritten: 1000,
	}))
	require.NoError(t, rec.Record(Entry{
		Method: "get", Path: "/data.bin", RangeHeader: "bytes=0-9", Status: 206, BytesWritten: 10,
	}))

	entries, err := rec.List()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Less(t, entries[0].ID, entries[1].ID)
	assert.Equal(t, "/test_file", entries[0].Path)
	assert.Equal(t, 200, entries[0].Status)
	assert.Empty(t, entries[0].RangeHeader)
	assert.False(t, entries[0].CreatedAt.IsZero())

	assert.Equal(t, "bytes=0-9", entries[1].RangeHeader)
	assert.Equal(t, 10, entries[1].BytesWritten)
}

func TestOpenReusesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "requests.db")

	rec, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, rec.Record(Entry{Method: "get", Path: "/a", Status: 404}))
	require.NoError(t, rec.Close())

	rec, err = Open(path)
	require.NoError(t, err)
	defer rec.Close()

	entries, err := rec.List()
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
