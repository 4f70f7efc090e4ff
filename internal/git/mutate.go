package git

import (
	"context"
	"fmt"
)

// Stash saves all uncommitted changes, including untracked files, under message.
func (c *Client) Stash(ctx context.Context, dir, message string) error {
	if err := c.run(ctx, dir, "stash", "push", "-u", "-m", message); err != nil {
		return fmt.Errorf("failed to stash changes: %w", err)
	}
	return nil
}

// StashCount returns the number of stash entries. Returns 0 on failure.
func (c *Client) StashCount(ctx context.Context, dir string) int {
	out, err := c.output(ctx, dir, "stash", "list")
	if err != nil || out == "" {
		return 0
	}
	n := 1
	for _, ch := range out {
		if ch == '\n' {
			n++
		}
	}
	return n
}

// BranchExists checks if a local branch exists.
func (c *Client) BranchExists(ctx context.Context, dir, branch string) bool {
	return c.refExists(ctx, dir, "refs/heads/"+branch)
}

// Checkout switches to an existing branch.
func (c *Client) Checkout(ctx context.Context, dir, branch string) error {
	if err := c.run(ctx, dir, "checkout", branch); err != nil {
		return fmt.Errorf("failed to checkout %s: %w", branch, err)
	}
	return nil
}

// CheckoutNew creates branch at HEAD and switches to it.
func (c *Client) CheckoutNew(ctx context.Context, dir, branch string) error {
	if err := c.run(ctx, dir, "checkout", "-b", branch); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branch, err)
	}
	return nil
}

// CheckoutTracking creates local from remote with upstream tracking and
// switches to it. If local already exists it is checked out and its
// upstream is set to remote instead.
func (c *Client) CheckoutTracking(ctx context.Context, dir, local, remote string) error {
	if c.BranchExists(ctx, dir, local) {
		if err := c.Checkout(ctx, dir, local); err != nil {
			return err
		}
		if err := c.run(ctx, dir, "branch", "--set-upstream-to="+remote, local); err != nil {
			return fmt.Errorf("failed to set upstream of %s to %s: %w", local, remote, err)
		}
		return nil
	}
	if err := c.run(ctx, dir, "checkout", "-b", local, "--track", remote); err != nil {
		return fmt.Errorf("failed to checkout %s as %s: %w", remote, local, err)
	}
	return nil
}

// HasUpstream reports whether the current branch has an upstream configured.
func (c *Client) HasUpstream(ctx context.Context, dir string) bool {
	return c.run(ctx, dir, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}") == nil
}

// PullRebase pulls the current branch's upstream with rebase.
func (c *Client) PullRebase(ctx context.Context, dir string) error {
	if err := c.run(ctx, dir, "pull", "--rebase"); err != nil {
		return fmt.Errorf("failed to pull: %w", err)
	}
	return nil
}

// FetchBranch fetches a single branch from origin.
func (c *Client) FetchBranch(ctx context.Context, dir, branch string) error {
	if err := c.run(ctx, dir, "fetch", "origin", branch, "--quiet"); err != nil {
		return fmt.Errorf("failed to fetch origin/%s: %v", branch, err)
	}
	return nil
}

// Rebase rebases the current branch onto upstream.
func (c *Client) Rebase(ctx context.Context, dir, upstream string) error {
	if err := c.run(ctx, dir, "rebase", upstream); err != nil {
		return fmt.Errorf("failed to rebase onto %s: %w", upstream, err)
	}
	return nil
}

// CommitAll stages every change, including untracked files, and commits it.
func (c *Client) CommitAll(ctx context.Context, dir, message string) error {
	if err := c.run(ctx, dir, "add", "-A"); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	if err := c.run(ctx, dir, "commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// GitDir returns the absolute path of the repository's .git directory.
func (c *Client) GitDir(ctx context.Context, dir string) (string, error) {
	out, err := c.output(ctx, dir, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotRepository, err)
	}
	return out, nil
}
