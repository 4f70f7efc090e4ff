// Package storage provides atomic file operations for JSON state files.
package storage

import (
	"encoding/json"
	"path/filepath"

	"github.com/spf13/afero"
)

// SaveJSON atomically writes data as JSON to the specified path.
// It ensures the parent directory exists, writes to a temp file,
// then renames to the final path.
func SaveJSON(fs afero.Fs, path string, data any) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tempPath := path + ".tmp"

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}

	if err := afero.WriteFile(fs, tempPath, jsonData, 0o600); err != nil {
		return err
	}

	return fs.Rename(tempPath, path)
}

// LoadJSON reads JSON from the specified path into dest.
// Returns os.ErrNotExist if file doesn't exist (caller should handle).
func LoadJSON(fs afero.Fs, path string, dest any) error {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}
