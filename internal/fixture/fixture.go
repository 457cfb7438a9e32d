// Package fixture builds the synthetic transfer content the test server
// serves: piece-structured payloads with precomputed digests, plus the
// directory layout the redirect fixtures rely on.
package fixture

import (
	"crypto/sha1"
	"os"
	"path/filepath"

	"github.com/AmirulAndalib/libtorrent/internal/config"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Content is a synthetic multi-piece payload. Every piece carries the same
// repeating alphabet pattern, so every piece hash is identical and
// corruption is obvious in a hex dump.
type Content struct {
	PieceSize int
	NumPieces int

	piece []byte
	hash  [sha1.Size]byte
}

// Generate builds a payload of numPieces pieces of pieceSize bytes each.
func Generate(pieceSize, numPieces int) *Content {
	piece := make([]byte, pieceSize)
	for i := range piece {
		piece[i] = byte('A' + i%26)
	}
	return &Content{
		PieceSize: pieceSize,
		NumPieces: numPieces,
		piece:     piece,
		hash:      sha1.Sum(piece),
	}
}

// TotalSize is the assembled payload length in bytes.
func (c *Content) TotalSize() int {
	return c.PieceSize * c.NumPieces
}

// PieceHash returns the SHA-1 digest of piece i.
func (c *Content) PieceHash(i int) [sha1.Size]byte {
	return c.hash
}

// Bytes assembles the full payload.
func (c *Content) Bytes() []byte {
	out := make([]byte, 0, c.TotalSize())
	for i := 0; i < c.NumPieces; i++ {
		out = append(out, c.piece...)
	}
	return out
}

// WriteFile materializes the payload at path, creating parent directories
// as needed.
func (c *Content) WriteFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", path)
	}
	if err := os.WriteFile(path, c.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "writing fixture %s", path)
	}
	log.Infof("wrote fixture %s (%s, %d pieces)", path, humanize.Bytes(uint64(c.TotalSize())), c.NumPieces)
	return nil
}

// EnsureRelativeDir creates the relative/ directory under root. It has to
// exist before the server starts so the relative-redirect target
// resolves against it.
func EnsureRelativeDir(root string) error {
	dir := filepath.Join(root, config.RelativeDir)
	return errors.Wrapf(os.MkdirAll(dir, 0o755), "creating %s", dir)
}
