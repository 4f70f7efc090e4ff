package git

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/raphi011/devflow/internal/log"
)

// LocalChangeset is a local changeset branch and its upstream, if any.
type LocalChangeset struct {
	Branch string `json:"branch"`
	// TrackingBranch is the upstream in short form (e.g. "origin/changeset/x"),
	// or "" when no upstream is configured.
	TrackingBranch string `json:"trackingBranch"`
}

// RemoteBranch is a remote-tracking ref and the time of its latest commit.
type RemoteBranch struct {
	Branch         string    `json:"branch"`
	LastCommitDate time.Time `json:"lastCommitDate"`
}

// Changesets is the resolved changeset view of a repository.
type Changesets struct {
	Local    []LocalChangeset `json:"localChangesets"`
	Unsynced []RemoteBranch   `json:"unsyncedRemoteBranches"`
}

// LocalChangesets lists local branches under the changeset/ prefix with
// their upstream. Returns nil on failure.
func (c *Client) LocalChangesets(ctx context.Context, dir string) []LocalChangeset {
	out, err := c.output(ctx, dir, "for-each-ref",
		"--format=%(refname:short)%00%(upstream:short)",
		"refs/heads/"+strings.TrimSuffix(ChangesetPrefix, "/"))
	if err != nil {
		return nil
	}

	var changesets []LocalChangeset
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		branch, upstream, _ := strings.Cut(line, "\x00")
		if !IsChangeset(branch) {
			continue
		}
		changesets = append(changesets, LocalChangeset{Branch: branch, TrackingBranch: upstream})
	}
	return changesets
}

// RemoteBranches lists every remote-tracking branch with its latest commit
// time, most recent first. Ties are broken by name, ascending.
// Symbolic HEAD refs are skipped. Returns nil on failure.
func (c *Client) RemoteBranches(ctx context.Context, dir string) []RemoteBranch {
	out, err := c.output(ctx, dir, "for-each-ref",
		"--format=%(refname:short)%00%(committerdate:unix)",
		"refs/remotes")
	if err != nil {
		return nil
	}

	var branches []RemoteBranch
	for _, line := range strings.Split(out, "\n") {
		if line == "" {
			continue
		}
		name, ts, _ := strings.Cut(line, "\x00")
		// "origin/HEAD" shows up as "origin" on newer git versions.
		if !strings.Contains(name, "/") || strings.HasSuffix(name, "/HEAD") {
			continue
		}
		branches = append(branches, RemoteBranch{Branch: name, LastCommitDate: parseUnix(ts)})
	}
	SortByRecency(branches)
	return branches
}

// SortByRecency orders branches newest first, then by name ascending.
func SortByRecency(branches []RemoteBranch) {
	sort.SliceStable(branches, func(i, j int) bool {
		a, b := branches[i], branches[j]
		if !a.LastCommitDate.Equal(b.LastCommitDate) {
			return a.LastCommitDate.After(b.LastCommitDate)
		}
		return a.Branch < b.Branch
	})
}

// RefreshRemotes prunes and fetches remote refs without merging anything.
func (c *Client) RefreshRemotes(ctx context.Context, dir string) error {
	return c.run(ctx, dir, "fetch", "--all", "--prune", "--quiet")
}

// ResolveChangesets lists local changesets and the remote branches none of
// them track. When refresh is set, remote refs are fetched first; a failed
// fetch falls back to the refs already known locally.
func (c *Client) ResolveChangesets(ctx context.Context, dir string, refresh bool) Changesets {
	if refresh {
		if err := c.RefreshRemotes(ctx, dir); err != nil {
			log.FromContext(ctx).Debug("remote refresh failed, using local refs", "dir", dir, "error", err)
		}
	}

	local := c.LocalChangesets(ctx, dir)
	return Changesets{
		Local:    local,
		Unsynced: UnsyncedRemoteBranches(c.RemoteBranches(ctx, dir), local),
	}
}

// UnsyncedRemoteBranches returns remotes minus every branch tracked by a
// local changeset, preserving order.
func UnsyncedRemoteBranches(remotes []RemoteBranch, local []LocalChangeset) []RemoteBranch {
	tracked := make(map[string]bool, len(local))
	for _, cs := range local {
		if cs.TrackingBranch != "" {
			tracked[cs.TrackingBranch] = true
		}
	}

	unsynced := make([]RemoteBranch, 0, len(remotes))
	for _, rb := range remotes {
		if !tracked[rb.Branch] {
			unsynced = append(unsynced, rb)
		}
	}
	return unsynced
}
