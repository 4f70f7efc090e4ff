package git

import (
	"context"
	"strings"

	"github.com/raphi011/devflow/internal/cmd"
)

// Client runs git commands through a cmd.Runner.
type Client struct {
	runner cmd.Runner
}

// New creates a Client using runner for every git invocation.
func New(runner cmd.Runner) *Client {
	return &Client{runner: runner}
}

// gitArgs prepends -C <dir> to args if dir is non-empty.
func gitArgs(dir string, args []string) []string {
	if dir == "" {
		return args
	}
	return append([]string{"-C", dir}, args...)
}

// run executes a git command and returns stderr as the error on failure.
func (c *Client) run(ctx context.Context, dir string, args ...string) error {
	return cmd.Check(c.runner.Run(ctx, "", "git", gitArgs(dir, args)...))
}

// output executes a git command and returns its trimmed stdout.
func (c *Client) output(ctx context.Context, dir string, args ...string) (string, error) {
	res, err := c.runner.Run(ctx, "", "git", gitArgs(dir, args)...)
	if err := cmd.Check(res, err); err != nil {
		return "", err
	}
	return strings.TrimSpace(string(res.Stdout)), nil
}

// Run executes an arbitrary git command in dir.
func (c *Client) Run(ctx context.Context, dir string, args ...string) error {
	return c.run(ctx, dir, args...)
}
