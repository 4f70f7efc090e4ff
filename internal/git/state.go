package git

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// RepositoryState is a read-only snapshot of a repository's branch topology.
// It is recomputed on every call and never mutated afterwards.
type RepositoryState struct {
	CurrentBranch          string           `json:"currentBranch"`
	MainBranch             string           `json:"mainBranch"`
	IsMainBranch           bool             `json:"isMainBranch"`
	Divergence             Divergence       `json:"divergence"`
	LastSyncFromMain       time.Time        `json:"lastSyncFromMain"`
	UncommittedChanges     []FileChange     `json:"uncommittedChanges"`
	LocalChangesets        []LocalChangeset `json:"localChangesets"`
	UnsyncedRemoteBranches []RemoteBranch   `json:"unsyncedRemoteBranches"`
}

// IsDirty reports whether the snapshot recorded uncommitted changes.
func (s RepositoryState) IsDirty() bool {
	return len(s.UncommittedChanges) > 0
}

// InspectOptions tunes Inspect.
type InspectOptions struct {
	// MainBranchHint is tried before the default main branch names.
	MainBranchHint string
	// SkipRefresh disables the remote fetch before listing remote branches.
	SkipRefresh bool
}

// inspectConcurrency bounds parallel read-only git queries per repository.
const inspectConcurrency = 4

// Inspect builds a RepositoryState for dir. Returns ErrNotRepository when
// dir is not inside a work tree; every other failure degrades to an empty
// field.
//
// The remote refresh runs first on its own since it writes refs; the
// remaining queries are read-only and run in parallel.
func (c *Client) Inspect(ctx context.Context, dir string, opts InspectOptions) (RepositoryState, error) {
	if !c.IsRepository(ctx, dir) {
		return RepositoryState{}, ErrNotRepository
	}

	changesets := c.ResolveChangesets(ctx, dir, !opts.SkipRefresh)
	state := RepositoryState{
		MainBranch:             c.ResolveMainBranch(ctx, dir, opts.MainBranchHint),
		LocalChangesets:        changesets.Local,
		UnsyncedRemoteBranches: changesets.Unsynced,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(inspectConcurrency)

	g.Go(func() error {
		state.CurrentBranch = c.CurrentBranch(gctx, dir)
		return nil
	})
	g.Go(func() error {
		state.UncommittedChanges = c.Changes(gctx, dir)
		return nil
	})
	if state.MainBranch != "" {
		g.Go(func() error {
			state.Divergence = c.Divergence(gctx, dir, state.MainBranch)
			return nil
		})
		g.Go(func() error {
			state.LastSyncFromMain = c.LastSyncFromMain(gctx, dir, state.MainBranch)
			return nil
		})
	}

	_ = g.Wait() // Queries never fail; they degrade to zero values

	state.IsMainBranch = state.MainBranch != "" && state.CurrentBranch == state.MainBranch
	return state, nil
}
