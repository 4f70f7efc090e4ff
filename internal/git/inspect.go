package git

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// DefaultMainBranches are tried in order after the configured hint.
var DefaultMainBranches = []string{"develop", "main", "master"}

// ResolveMainBranch returns the first of hint, develop, main and master that
// exists as a local branch or as a branch on origin. Returns "" if none does.
func (c *Client) ResolveMainBranch(ctx context.Context, dir, hint string) string {
	candidates := DefaultMainBranches
	if hint != "" {
		candidates = append([]string{hint}, DefaultMainBranches...)
	}
	for _, branch := range candidates {
		if c.refExists(ctx, dir, "refs/heads/"+branch) || c.refExists(ctx, dir, "refs/remotes/origin/"+branch) {
			return branch
		}
	}
	return ""
}

// mainRev returns the revision to compare against for mainBranch: the local
// branch when it exists, otherwise its origin counterpart.
func (c *Client) mainRev(ctx context.Context, dir, mainBranch string) string {
	if c.refExists(ctx, dir, "refs/heads/"+mainBranch) {
		return mainBranch
	}
	if c.refExists(ctx, dir, "refs/remotes/origin/"+mainBranch) {
		return "origin/" + mainBranch
	}
	return mainBranch
}

func (c *Client) refExists(ctx context.Context, dir, ref string) bool {
	return c.run(ctx, dir, "rev-parse", "--verify", "--quiet", ref) == nil
}

// CurrentBranch returns the checked out branch, or "" when HEAD is detached
// or dir is not a repository.
func (c *Client) CurrentBranch(ctx context.Context, dir string) string {
	out, err := c.output(ctx, dir, "branch", "--show-current")
	if err != nil {
		return ""
	}
	return out
}

// ChangeStatus is the normalized status of a working tree entry.
type ChangeStatus string

const (
	StatusModified  ChangeStatus = "Modified"
	StatusAdded     ChangeStatus = "Added"
	StatusDeleted   ChangeStatus = "Deleted"
	StatusRenamed   ChangeStatus = "Renamed"
	StatusCopied    ChangeStatus = "Copied"
	StatusUntracked ChangeStatus = "Untracked"
)

// FileChange is one uncommitted change in the working tree.
type FileChange struct {
	Status ChangeStatus `json:"status"`
	File   string       `json:"file"`
}

// Changes returns the uncommitted changes in dir, including untracked files.
// Returns nil on any failure.
func (c *Client) Changes(ctx context.Context, dir string) []FileChange {
	res, err := c.runner.Run(ctx, "", "git", gitArgs(dir, []string{"status", "--porcelain=v1", "-z"})...)
	if err != nil || !res.ExitSuccess {
		return nil
	}
	return parseStatus(string(res.Stdout))
}

// HasUncommittedChanges returns true if dir has staged, unstaged or untracked changes.
func (c *Client) HasUncommittedChanges(ctx context.Context, dir string) bool {
	return len(c.Changes(ctx, dir)) > 0
}

// parseStatus parses `git status --porcelain=v1 -z` output.
// Entries are NUL terminated "XY path"; renames and copies are followed by
// an extra field holding the source path.
func parseStatus(out string) []FileChange {
	var changes []FileChange
	fields := strings.Split(out, "\x00")
	for i := 0; i < len(fields); i++ {
		entry := fields[i]
		if len(entry) < 4 {
			continue
		}
		code := entry[:2]
		if strings.ContainsAny(code, "RC") {
			i++
		}
		changes = append(changes, FileChange{Status: statusFromCode(code), File: entry[3:]})
	}
	return changes
}

// statusFromCode maps a porcelain XY code onto the fixed status vocabulary.
// The index column wins over the work tree column; unknown codes are kept raw.
func statusFromCode(code string) ChangeStatus {
	if code == "??" {
		return StatusUntracked
	}
	for _, ch := range code {
		switch ch {
		case 'M':
			return StatusModified
		case 'A':
			return StatusAdded
		case 'D':
			return StatusDeleted
		case 'R':
			return StatusRenamed
		case 'C':
			return StatusCopied
		}
	}
	return ChangeStatus(strings.TrimSpace(code))
}

// Divergence counts commits between HEAD and the main branch.
type Divergence struct {
	Ahead  int `json:"ahead"`
	Behind int `json:"behind"`
}

// InSync reports whether HEAD and main point at the same history.
func (d Divergence) InSync() bool {
	return d.Ahead == 0 && d.Behind == 0
}

// Divergence returns how many commits HEAD is ahead of and behind mainBranch.
// A main branch that only exists on origin is compared as origin/<branch>.
// Returns {0,0} on any failure.
func (c *Client) Divergence(ctx context.Context, dir, mainBranch string) Divergence {
	if mainBranch == "" {
		return Divergence{}
	}
	rev := c.mainRev(ctx, dir, mainBranch)
	out, err := c.output(ctx, dir, "rev-list", "--left-right", "--count", "HEAD..."+rev)
	if err != nil {
		return Divergence{}
	}
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return Divergence{}
	}
	ahead, err1 := strconv.Atoi(fields[0])
	behind, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil || ahead < 0 || behind < 0 {
		return Divergence{}
	}
	return Divergence{Ahead: ahead, Behind: behind}
}

// LastSyncFromMain returns when the current branch last incorporated
// mainBranch: the commit time of the merge base of HEAD and mainBranch.
// When HEAD and mainBranch are the same commit, mainBranch's latest commit
// time is returned instead. A main branch that only exists on origin is
// compared as origin/<branch>. Returns the zero time on any failure.
func (c *Client) LastSyncFromMain(ctx context.Context, dir, mainBranch string) time.Time {
	if mainBranch == "" {
		return time.Time{}
	}
	rev := c.mainRev(ctx, dir, mainBranch)

	head, err := c.output(ctx, dir, "rev-parse", "HEAD")
	if err != nil {
		return time.Time{}
	}
	mainSHA, err := c.output(ctx, dir, "rev-parse", rev)
	if err != nil {
		return time.Time{}
	}
	if head == mainSHA {
		return c.commitTime(ctx, dir, rev)
	}

	base, err := c.output(ctx, dir, "merge-base", "HEAD", rev)
	if err != nil || base == "" {
		return time.Time{}
	}
	return c.commitTime(ctx, dir, base)
}

// commitTime returns the committer time of rev.
func (c *Client) commitTime(ctx context.Context, dir, rev string) time.Time {
	out, err := c.output(ctx, dir, "log", "-1", "--format=%ct", rev)
	if err != nil {
		return time.Time{}
	}
	return parseUnix(out)
}

// parseUnix parses a unix timestamp; invalid input yields the zero time.
func parseUnix(s string) time.Time {
	sec, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || sec <= 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0)
}
