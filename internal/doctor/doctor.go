package doctor

import (
	"context"
	"os/exec"

	"github.com/spf13/afero"

	"github.com/raphi011/devflow/internal/git"
	"github.com/raphi011/devflow/internal/output"
	"github.com/raphi011/devflow/internal/toolchain"
)

// Doctor runs environment diagnostics.
type Doctor struct {
	git        *git.Client
	fs         afero.Fs
	toolchains func(id string) toolchain.Toolchain
	lookPath   func(file string) (string, error)
}

// New creates a Doctor. toolchains selects the adapter for a configured id.
func New(gitClient *git.Client, fs afero.Fs, toolchains func(id string) toolchain.Toolchain) *Doctor {
	return &Doctor{git: gitClient, fs: fs, toolchains: toolchains, lookPath: exec.LookPath}
}

// Run performs all checks, prints a report and optionally fixes issues.
func (d *Doctor) Run(ctx context.Context, configPath string, fix bool) (Report, error) {
	out := output.FromContext(ctx)

	out.Println("Checking environment, config and projects...")
	report := d.Check(ctx, configPath)

	printSummary(out, report)

	if len(report.Issues) == 0 {
		out.Println("\n✓ No issues found")
		return report, nil
	}

	out.Printf("\nFound %d issues:\n", len(report.Issues))
	printIssuesByCategory(out, report.Issues)

	if fix {
		return report, d.fixAllIssues(ctx, configPath, report.Issues)
	}

	if report.Fixable() > 0 {
		out.Println("\nRun 'devflow doctor --fix' to repair.")
	}
	return report, nil
}

// printSummary prints a categorized summary.
func printSummary(out *output.Printer, report Report) {
	out.Println()
	if report.ProjectsTotal > 0 {
		out.Printf("  ✓ %d of %d projects healthy\n", report.ProjectsHealthy, report.ProjectsTotal)
	}

	counts := make(map[IssueCategory]int)
	for _, issue := range report.Issues {
		counts[issue.Category]++
	}
	for _, cat := range Categories {
		if n := counts[cat]; n > 0 {
			out.Printf("  ⚠ %d %s issues\n", n, cat)
		}
	}
}

// printIssuesByCategory groups and prints issues.
func printIssuesByCategory(out *output.Printer, issues []Issue) {
	byCategory := make(map[IssueCategory][]Issue)
	for _, issue := range issues {
		byCategory[issue.Category] = append(byCategory[issue.Category], issue)
	}

	categoryNames := map[IssueCategory]string{
		CategoryEnvironment: "Environment issues",
		CategoryConfig:      "Config issues",
		CategoryProject:     "Project issues",
		CategoryToolchain:   "Toolchain issues",
	}

	for _, cat := range Categories {
		catIssues := byCategory[cat]
		if len(catIssues) == 0 {
			continue
		}

		out.Printf("\n%s:\n", categoryNames[cat])
		for _, issue := range catIssues {
			suffix := ""
			if issue.Fixable() {
				suffix = " (fix: " + string(issue.FixAction) + ")"
			}
			out.Printf("  • %s: %s%s\n", issue.Key, issue.Description, suffix)
		}
	}
}
