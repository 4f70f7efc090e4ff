package git

import (
	"context"
	"fmt"
	"strings"
)

// OriginURL returns the fetch URL of the origin remote.
func (c *Client) OriginURL(ctx context.Context, dir string) (string, error) {
	out, err := c.output(ctx, dir, "remote", "get-url", "origin")
	if err != nil {
		return "", fmt.Errorf("failed to get origin URL: %v", err)
	}
	return out, nil
}

// TopLevel returns the root of the work tree containing dir.
func (c *Client) TopLevel(ctx context.Context, dir string) (string, error) {
	out, err := c.output(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNotRepository, err)
	}
	return out, nil
}

// RepoNameFromURL extracts the repository name from a git URL.
// Handles https, ssh and scp-like forms.
func RepoNameFromURL(url string) string {
	url = strings.TrimSuffix(strings.TrimSpace(url), "/")
	url = strings.TrimSuffix(url, ".git")
	if i := strings.LastIndexAny(url, "/:"); i >= 0 {
		url = url[i+1:]
	}
	return url
}

// Clone clones url into dir. The parent of dir must exist.
func (c *Client) Clone(ctx context.Context, url, dir string) error {
	if err := c.run(ctx, "", "clone", "--quiet", url, dir); err != nil {
		return fmt.Errorf("clone %s: %w", url, err)
	}
	return nil
}
