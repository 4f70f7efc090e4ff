package journal

import (
	"context"
	"time"

	"github.com/raphi011/devflow/internal/project"
)

// Recorder writes every executed operation of one run to a Store.
// It implements engine.Observer.
type Recorder struct {
	store *Store
	runID string
	now   func() time.Time
}

// NewRecorder creates a recorder for runID.
func NewRecorder(store *Store, runID string) *Recorder {
	return &Recorder{store: store, runID: runID, now: time.Now}
}

// RunID returns the run id entries are recorded under.
func (r *Recorder) RunID() string {
	return r.runID
}

// OnResult records op and its result.
func (r *Recorder) OnResult(ctx context.Context, p project.Project, op project.Operation, res project.Result, started time.Time) error {
	return r.store.Record(ctx, Entry{
		RunID:       r.runID,
		Project:     p.Name,
		Operation:   string(op.Type),
		Description: op.Description,
		Params:      op.Params,
		Success:     res.Success,
		Message:     res.Message,
		Error:       res.Error,
		StartedAt:   started,
		Duration:    r.now().Sub(started),
	})
}
