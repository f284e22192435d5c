package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"rmod/internal/ports"
)

var _ ports.FileSystem = (*TestFileSystem)(nil)

// TestFileSystem is a ports.FileSystem rooted in a per-test temporary
// directory. Home-relative paths such as ~/.rmod-config.yaml and absolute
// paths both land inside the sandbox, so config, store and manifest files
// of one test never touch the real disk or each other.
type TestFileSystem struct {
	root string
}

func NewTestFileSystem(t *testing.T) *TestFileSystem {
	t.Helper()
	return &TestFileSystem{root: t.TempDir()}
}

func (f *TestFileSystem) resolve(path string) string {
	clean := filepath.Clean(strings.TrimPrefix(path, "~"))
	return filepath.Join(f.root, strings.TrimPrefix(clean, string(filepath.Separator)))
}

func (f *TestFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(f.resolve(path))
}

func (f *TestFileSystem) WriteFile(path string, content []byte, _ ports.AccessMode) error {
	if err := f.EnsureDirExists(path); err != nil {
		return err
	}
	return os.WriteFile(f.resolve(path), content, 0600)
}

func (f *TestFileSystem) EnsureDirExists(path string) error {
	return os.MkdirAll(filepath.Dir(f.resolve(path)), 0700)
}

func (f *TestFileSystem) FileExists(path string) (bool, error) {
	_, err := os.Stat(f.resolve(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
