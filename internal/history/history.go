// Package history tracks recently used projects.
// This lets devflow fall back to the last project when -p is not given.
package history

import (
	"errors"
	"os"
	"slices"
	"time"

	"github.com/spf13/afero"

	"github.com/raphi011/devflow/internal/storage"
)

// MaxEntries caps the number of remembered projects.
const MaxEntries = 20

// Entry records how often and how recently a project was used.
type Entry struct {
	Project  string    `json:"project"`
	LastUsed time.Time `json:"last_used"`
	Count    int       `json:"count"`
}

// History stores recently used projects, most recent first.
type History struct {
	Entries []Entry `json:"entries"`
}

// Load reads the history from path. A missing or corrupted file yields an
// empty history.
func Load(fs afero.Fs, path string) (*History, error) {
	var h History
	if err := storage.LoadJSON(fs, path, &h); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &History{}, nil
		}
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return nil, err
		}
		// Corrupted - start fresh
		return &History{}, nil
	}
	return &h, nil
}

// Save writes the history to path atomically.
func (h *History) Save(fs afero.Fs, path string) error {
	return storage.SaveJSON(fs, path, h)
}

// Record moves project to the front, bumping its count.
func (h *History) Record(project string, now time.Time) {
	entry := Entry{Project: project}
	if i := h.index(project); i >= 0 {
		entry = h.Entries[i]
		h.Entries = slices.Delete(h.Entries, i, i+1)
	}
	entry.LastUsed = now
	entry.Count++
	h.Entries = slices.Insert(h.Entries, 0, entry)
	if len(h.Entries) > MaxEntries {
		h.Entries = h.Entries[:MaxEntries]
	}
}

// MostRecent returns the last used project, or "".
func (h *History) MostRecent() string {
	if len(h.Entries) == 0 {
		return ""
	}
	return h.Entries[0].Project
}

// Retain drops projects for which keep returns false, e.g. projects that
// were removed from the config.
func (h *History) Retain(keep func(project string) bool) {
	h.Entries = slices.DeleteFunc(h.Entries, func(e Entry) bool { return !keep(e.Project) })
}

func (h *History) index(project string) int {
	return slices.IndexFunc(h.Entries, func(e Entry) bool { return e.Project == project })
}

// RecordAccess loads the history at path, records project and saves it.
func RecordAccess(fs afero.Fs, path, project string) error {
	h, err := Load(fs, path)
	if err != nil {
		return err
	}
	h.Record(project, time.Now())
	return h.Save(fs, path)
}
