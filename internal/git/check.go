package git

import (
	"context"
	"errors"
	"os/exec"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = errors.New("git not found: please install git (https://git-scm.com)")

// ErrNotRepository is returned by Inspect when dir is not inside a work tree.
var ErrNotRepository = errors.New("not a git repository")

// CheckGit verifies that git is available in PATH
func CheckGit() error {
	if _, err := exec.LookPath("git"); err != nil {
		return ErrGitNotFound
	}
	return nil
}

// IsRepository returns true if dir is inside a git work tree.
// Any failure, including a missing git binary, reports false.
func (c *Client) IsRepository(ctx context.Context, dir string) bool {
	out, err := c.output(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}
