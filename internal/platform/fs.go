package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Default permissions for generated files and directories. PrivatePerm is
// for user settings.
const (
	FilePerm    os.FileMode = 0644
	DirPerm     os.FileMode = 0755
	PrivatePerm os.FileMode = 0600
)

// PathExists reports whether anything exists at path.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// FirstLine returns the trimmed first line of a text file.
func FirstLine(path string) (string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return strings.TrimSpace(line), true
}

// WriteText writes contents to path, creating parent directories first.
func WriteText(path string, contents []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, contents, FilePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// RemoveFile unlinks path. removed is false when the file was already gone.
// Other errors are the *fs.PathError from os.Remove.
func RemoveFile(path string) (removed bool, err error) {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ExistingFiles returns the entries of names that exist under dir, in order.
func ExistingFiles(dir string, names []string) []string {
	var found []string
	for _, name := range names {
		if PathExists(filepath.Join(dir, name)) {
			found = append(found, name)
		}
	}
	return found
}

// MakePrivate restricts path to its owner. Windows has no Unix permission
// bits, so it is left alone there.
func MakePrivate(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	if err := os.Chmod(path, PrivatePerm); err != nil {
		return fmt.Errorf("restricting %s: %w", path, err)
	}
	return nil
}
