package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rmod/internal/ports"
)

var _ ports.FileSystem = (*OsFileSystem)(nil)

// OsFileSystem reads and writes the local disk. Paths starting with ~ are
// resolved against the user's home directory.
type OsFileSystem struct {
	homeDir func() (string, error)
}

func ProvideOsFileSystem() *OsFileSystem {
	return &OsFileSystem{homeDir: os.UserHomeDir}
}

func (f *OsFileSystem) ReadFile(path string) ([]byte, error) {
	resolved, err := f.expand(path)
	if err != nil {
		return nil, err
	}
	return os.ReadFile(resolved)
}

func (f *OsFileSystem) WriteFile(path string, content []byte, accessMode ports.AccessMode) error {
	resolved, err := f.expand(path)
	if err != nil {
		return err
	}

	if err := f.EnsureDirExists(resolved); err != nil {
		return fmt.Errorf("failed to ensure directory exists: %w", err)
	}

	// Written to a sibling file, then renamed over the target.
	tmp := resolved + ".tmp"
	if err := os.WriteFile(tmp, content, getOsFileModeForAccessMode(accessMode)); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tmp, resolved); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace file: %w", err)
	}
	return nil
}

func (f *OsFileSystem) EnsureDirExists(path string) error {
	resolved, err := f.expand(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(resolved), getOsFileModeForAccessMode(ports.ReadWriteExecute)); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return nil
}

func (f *OsFileSystem) FileExists(path string) (bool, error) {
	resolved, err := f.expand(path)
	if err != nil {
		return false, err
	}

	_, err = os.Stat(resolved)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to check if file exists: %w", err)
}

func (f *OsFileSystem) expand(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, "~\\") {
		return path, nil
	}
	home, err := f.homeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

func getOsFileModeForAccessMode(accessMode ports.AccessMode) os.FileMode {
	switch accessMode {
	case ports.ReadWrite:
		return 0600
	case ports.ReadWriteExecute:
		return 0700
	case ports.ReadAllWriteOwner:
		return 0644
	default:
		return 0600
	}
}
