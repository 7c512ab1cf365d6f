package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/habyt/internal/constants"
)

// New returns the Provider for backend rooted at configDir.
func New(backend constants.Backend, configDir string) (Provider, error) {
	switch backend {
	case constants.BackendYAML, "":
		return NewYAMLStore(configDir), nil
	case constants.BackendSQLite:
		return NewSQLiteStore(configDir), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}

// ensureDir creates the config directory. It reports whether the directory
// was created by this call.
func ensureDir(dir string) (bool, error) {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return false, fmt.Errorf("config path %s is not a directory", dir)
		}
		return false, nil
	}
	if !os.IsNotExist(err) {
		return false, fmt.Errorf("failed to access config directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	return true, nil
}

// writeFileAtomic replaces path with data by writing a temporary file in the
// same directory and renaming it over the target.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0600); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
