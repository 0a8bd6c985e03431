package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileSystem abstracts file reads for testability.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the local disk.
type OSFS struct{}

// ReadFile reads the file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	// #nosec G304 -- path comes from the operator
	return os.ReadFile(path)
}

// MapFSAdapter serves reads from an fs.FS rooted at Root, for tests.
type MapFSAdapter struct {
	FS   fs.FS
	Root string
}

// ReadFile reads path relative to Root.
func (m MapFSAdapter) ReadFile(path string) ([]byte, error) {
	return fs.ReadFile(m.FS, m.rel(path))
}

func (m MapFSAdapter) rel(path string) string {
	if !filepath.IsAbs(path) || m.Root == "" {
		return filepath.ToSlash(filepath.Clean(path))
	}
	rel := strings.TrimPrefix(path, m.Root)
	return filepath.ToSlash(strings.TrimPrefix(rel, string(filepath.Separator)))
}
