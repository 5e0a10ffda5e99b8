package edinet

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
)

const archiveDir = "xbrl"

// ArchiveCache stores downloaded archives under <base>/xbrl/<docID>_xbrl.zip.
// Paths handed out are relative to the base directory.
type ArchiveCache struct {
	baseDir string
}

// NewArchiveCache creates the archive directory if needed.
func NewArchiveCache(baseDir string) (*ArchiveCache, error) {
	if err := os.MkdirAll(filepath.Join(baseDir, archiveDir), 0o755); err != nil {
		return nil, errors.Wrapf(err, "edinet: create archive dir under %s", baseDir)
	}
	return &ArchiveCache{baseDir: baseDir}, nil
}

// BaseDir returns the directory relative paths are resolved against.
func (c *ArchiveCache) BaseDir() string {
	return c.baseDir
}

// RelPath returns the relative path of a document's archive.
func (c *ArchiveCache) RelPath(docID string) string {
	return archiveDir + "/" + docID + "_xbrl.zip"
}

// Abs resolves a relative archive path.
func (c *ArchiveCache) Abs(rel string) string {
	return filepath.Join(c.baseDir, filepath.FromSlash(rel))
}

// Has reports whether a non-empty archive is already stored for docID.
func (c *ArchiveCache) Has(docID string) bool {
	info, err := os.Stat(c.Abs(c.RelPath(docID)))
	return err == nil && info.Size() > 0
}

// Store writes r as the archive of docID and returns its relative path. The
// file appears under its final name only once fully written.
func (c *ArchiveCache) Store(docID string, r io.Reader) (string, error) {
	rel := c.RelPath(docID)
	final := c.Abs(rel)

	tmp, err := os.CreateTemp(filepath.Dir(final), docID+"-*.part")
	if err != nil {
		return "", errors.Wrap(err, "edinet: create temp archive")
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", errors.Wrapf(err, "edinet: write archive %s", docID)
	}
	if err := tmp.Close(); err != nil {
		return "", errors.Wrapf(err, "edinet: close archive %s", docID)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		return "", errors.Wrapf(err, "edinet: move archive %s", docID)
	}
	return rel, nil
}

// Remove deletes a stored archive. A missing archive is not an error.
func (c *ArchiveCache) Remove(docID string) error {
	err := os.Remove(c.Abs(c.RelPath(docID)))
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "edinet: remove archive %s", docID)
	}
	return nil
}
