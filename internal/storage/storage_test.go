package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
)

func TestSaveLoadJSON_Roundtrip(t *testing.T) {
	t.Parallel()

	fs := afero.NewOsFs()
	path := filepath.Join(t.TempDir(), "test.json")

	type Data struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	original := Data{Name: "test", Count: 42}

	if err := SaveJSON(fs, path, original); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	var loaded Data
	if err := LoadJSON(fs, path, &loaded); err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}

	if loaded != original {
		t.Errorf("roundtrip mismatch: got %+v, want %+v", loaded, original)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file should be renamed away")
	}
}

func TestLoadJSON_NotFound(t *testing.T) {
	t.Parallel()

	var data map[string]any
	err := LoadJSON(afero.NewMemMapFs(), "/state/nonexistent.json", &data)
	if err == nil {
		t.Fatal("expected error for non-existent file, got nil")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected os.ErrNotExist, got %v", err)
	}
}

func TestSaveJSON_CreatesDirectory(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	path := "/state/a/b/c/data.json"

	if err := SaveJSON(fs, path, map[string]string{"key": "value"}); err != nil {
		t.Fatalf("SaveJSON failed to create directories: %v", err)
	}

	var loaded map[string]string
	if err := LoadJSON(fs, path, &loaded); err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if loaded["key"] != "value" {
		t.Errorf("expected key=value, got key=%s", loaded["key"])
	}
}

func TestSaveJSON_Overwrites(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	path := "/state/data.json"

	for _, v := range []string{"first", "second"} {
		if err := SaveJSON(fs, path, map[string]string{"v": v}); err != nil {
			t.Fatalf("SaveJSON failed: %v", err)
		}
	}

	var loaded map[string]string
	if err := LoadJSON(fs, path, &loaded); err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if loaded["v"] != "second" {
		t.Errorf("expected second, got %s", loaded["v"])
	}
}
