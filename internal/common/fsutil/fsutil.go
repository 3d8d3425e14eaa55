// Package fsutil holds the small filesystem helpers used to resolve and check
// the model asset.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrIsDir is returned by RegularFile when the path names a directory.
var ErrIsDir = errors.New("path is a directory")

// ExpandHome expands a leading "~" or "~/" to the user's home directory.
// Forms like "~other" are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home dir: %w", err)
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~/")), nil
}

// PathExists reports whether path exists. Errors other than "not exist"
// (for example a permission error) count as existing so the caller surfaces
// the real failure when it opens the file.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}

// RegularFile stats path and fails unless it is a regular file.
func RegularFile(path string) (os.FileInfo, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return nil, ErrIsDir
	}
	return fi, nil
}

// SizeMB returns the size of the file at path in whole MiB, at least 1 for an
// existing file and 0 when it cannot be stat'ed.
func SizeMB(path string) int {
	fi, err := os.Stat(path)
	if err != nil {
		return 0
	}
	mb := int(fi.Size() / (1024 * 1024))
	if mb <= 0 {
		mb = 1
	}
	return mb
}
