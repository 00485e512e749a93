package storage

import (
	"os"
	"path/filepath"
)

const appDir = ".orient"

// DefaultStoragePath returns the default storage location, a dot directory
// in the user's home.
func DefaultStoragePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, appDir), nil
}
