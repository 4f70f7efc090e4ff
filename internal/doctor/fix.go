package doctor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/raphi011/devflow/internal/config"
	"github.com/raphi011/devflow/internal/output"
)

// fixAllIssues applies fixes for all fixable issues.
func (d *Doctor) fixAllIssues(ctx context.Context, configPath string, issues []Issue) error {
	out := output.FromContext(ctx)
	var fixed, failed int

	out.Println("\nFixing issues...")
	for _, issue := range issues {
		var err error
		switch issue.FixAction {
		case FixNone:
			continue

		case FixInit:
			err = config.Init(d.fs, configPath, false)
			if err == nil {
				out.Printf("  ✓ Created %s\n", configPath)
			}

		case FixClone:
			if err = d.fs.MkdirAll(filepath.Dir(issue.Dir), 0o755); err == nil {
				err = d.git.Clone(ctx, issue.URL, issue.Dir)
			}
			if err == nil {
				out.Printf("  ✓ Cloned %s into %s\n", issue.URL, issue.Dir)
			}

		case FixFetch:
			err = d.git.RefreshRemotes(ctx, issue.Dir)
			if err == nil {
				out.Printf("  ✓ Fetched origin for %q\n", issue.Key)
			}

		default:
			err = fmt.Errorf("unknown fix action %q", issue.FixAction)
		}

		if err != nil {
			out.Printf("  ✗ Failed to fix %q: %v\n", issue.Key, err)
			failed++
			continue
		}
		fixed++
	}

	out.Printf("\nFixed %d issues", fixed)
	if failed > 0 {
		out.Printf(", %d failed", failed)
		out.Println()
		return fmt.Errorf("%d fixes failed", failed)
	}
	out.Println()
	return nil
}
