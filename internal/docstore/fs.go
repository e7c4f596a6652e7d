// Package docstore persists generated order documents on the local
// filesystem, one file per submission.
package docstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-faster/errors"
)

// FS stores order documents as files under a base directory.
type FS struct {
	dir string
}

// NewFS creates the base directory if needed and returns the store.
func NewFS(dir string) (*FS, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create documents dir")
	}
	return &FS{dir: dir}, nil
}

// Save writes the document under its name. The write goes through a
// temporary file and a rename so a crash mid-write never leaves a truncated
// document behind. A same-named document from an earlier order in the same
// minute is overwritten.
func (s *FS) Save(_ context.Context, name, content string) error {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return errors.Errorf("invalid document name %q", name)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return errors.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "write document")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "close temp file")
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "rename document")
	}
	return nil
}
