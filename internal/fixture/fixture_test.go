package fixture

import (
	"crypto/sha1"
	"os"
	"path/filepath"
	"testing"

	"github.com/AmirulAndalib/libtorrent/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	c := Generate(16*1024, 19)
	assert.Equal(t, 19*16*1024, c.TotalSize())

	data := c.Bytes()
	require.Len(t, data, c.TotalSize())
	assert.Equal(t, byte('A'), data[0])
	assert.Equal(t, byte('B'), data[1])
	assert.Equal(t, byte('A'), data[26])
	// Pieces repeat, so the second piece starts over at 'A'.
	assert.Equal(t, byte('A'), data[16*1024])
}

func TestPieceHashes(t *testing.T) {
	c := Generate(1024, 4)
	data := c.Bytes()

	want := sha1.Sum(data[:1024])
	for i := 0; i < c.NumPieces; i++ {
		assert.Equal(t, want, c.PieceHash(i), "piece %d", i)
	}
}

func TestWriteFile(t *testing.T) {
	c := Generate(512, 3)
	path := filepath.Join(t.TempDir(), "tmp1", "temporary")
	require.NoError(t, c.WriteFile(path))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, c.Bytes(), got)
}

func TestEnsureRelativeDir(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, EnsureRelativeDir(root))

	info, err := os.Stat(filepath.Join(root, config.RelativeDir))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Safe to call again.
	assert.NoError(t, EnsureRelativeDir(root))
}
