// Package pathutil holds the filesystem helpers behind the
// delete-or-reuse boundary.
package pathutil

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Exists reports whether path refers to an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ForceRemove deletes path: directories recursively, files singly.
// Read-only entries are made writable before a retry, so trees checked out
// with restrictive modes still go away.
func ForceRemove(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return os.Remove(path)
	}

	if err := os.RemoveAll(path); err == nil {
		return nil
	}

	// Retry after loosening permissions bottom-up.
	_ = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		_ = os.Chmod(p, 0o700)
		return nil
	})
	return os.RemoveAll(path)
}
