package doctor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/raphi011/devflow/internal/config"
	"github.com/raphi011/devflow/internal/git"
)

// Check runs every check against the config file at configPath.
func (d *Doctor) Check(ctx context.Context, configPath string) Report {
	var report Report

	if _, err := d.lookPath("git"); err != nil {
		report.Issues = append(report.Issues, Issue{
			Key:         "git",
			Description: "git not found in PATH",
			Category:    CategoryEnvironment,
		})
	}

	cfg, issue, ok := d.checkConfig(configPath)
	if issue != nil {
		report.Issues = append(report.Issues, *issue)
	}
	if !ok {
		return report
	}

	resolver := config.NewResolver(d.fs, &cfg)
	missing := make(map[string]bool)
	for _, name := range cfg.ProjectNames() {
		report.ProjectsTotal++
		issues := d.checkProject(ctx, resolver, name, missing)
		if len(issues) == 0 {
			report.ProjectsHealthy++
		}
		report.Issues = append(report.Issues, issues...)
	}
	return report
}

// checkConfig loads the config. ok is false when project checks cannot run.
func (d *Doctor) checkConfig(path string) (config.Config, *Issue, bool) {
	exists, err := afero.Exists(d.fs, path)
	if err != nil {
		return config.Config{}, &Issue{Key: path, Description: err.Error(), Category: CategoryConfig}, false
	}
	if !exists {
		return config.Config{}, &Issue{
			Key:         path,
			Description: "config file not found",
			Category:    CategoryConfig,
			FixAction:   FixInit,
		}, false
	}

	cfg, err := config.Load(d.fs, path)
	if err != nil {
		return config.Config{}, &Issue{Key: path, Description: err.Error(), Category: CategoryConfig}, false
	}
	return cfg, nil, true
}

// checkProject checks one project. missing collects binaries already
// reported so each is reported once.
func (d *Doctor) checkProject(ctx context.Context, resolver *config.Resolver, name string, missing map[string]bool) []Issue {
	resolved, err := resolver.Resolve(name)
	if err != nil {
		return []Issue{{Key: name, Description: err.Error(), Category: CategoryProject}}
	}
	p := resolved.Project
	dir := p.WorkingDirectory

	var issues []Issue
	exists, err := afero.DirExists(d.fs, dir)
	switch {
	case err != nil && !errors.Is(err, os.ErrNotExist):
		issues = append(issues, Issue{Key: name, Description: err.Error(), Category: CategoryProject, Dir: dir})
	case !exists:
		issue := Issue{
			Key:         name,
			Description: fmt.Sprintf("directory does not exist: %s", dir),
			Category:    CategoryProject,
			Dir:         dir,
		}
		if p.RepositoryURL != "" {
			issue.FixAction = FixClone
			issue.URL = p.RepositoryURL
		}
		issues = append(issues, issue)
	case !d.git.IsRepository(ctx, dir):
		issues = append(issues, Issue{
			Key:         name,
			Description: fmt.Sprintf("not a git repository: %s", dir),
			Category:    CategoryProject,
			Dir:         dir,
		})
	default:
		if d.git.ResolveMainBranch(ctx, dir, p.Config.DefaultBranch) == "" {
			issues = append(issues, Issue{
				Key:         name,
				Description: "no main branch found (" + triedBranches(p.Config.DefaultBranch) + ")",
				Category:    CategoryProject,
				FixAction:   FixFetch,
				Dir:         dir,
			})
		}
	}

	tc := d.toolchains(p.Config.Toolchain)
	binaries := tc.Binaries()
	if pm := p.Config.PackageManager; pm != "" {
		binaries = append(binaries, pm)
	}
	for _, bin := range binaries {
		if missing[bin] {
			continue
		}
		if _, err := d.lookPath(bin); err != nil {
			missing[bin] = true
			issues = append(issues, Issue{
				Key:         bin,
				Description: fmt.Sprintf("%s not found in PATH (needed by %s toolchain of %s)", bin, tc.Name(), name),
				Category:    CategoryToolchain,
			})
		}
	}
	return issues
}

func triedBranches(hint string) string {
	candidates := git.DefaultMainBranches
	if hint != "" {
		candidates = append([]string{hint}, candidates...)
	}
	return "tried: " + strings.Join(candidates, ", ")
}
