package main

import (
	"strings"
	"testing"
	"time"

	"github.com/raphi011/devflow/internal/config"
	"github.com/raphi011/devflow/internal/journal"
	"github.com/raphi011/devflow/internal/project"
	"github.com/raphi011/devflow/internal/ui"
)

func TestCommandTree(t *testing.T) {
	t.Parallel()

	groups := make(map[string]bool)
	for _, g := range rootCmd.Groups() {
		groups[g.ID] = true
	}

	seen := make(map[string]string)
	for _, c := range rootCmd.Commands() {
		if c.Hidden || c.Name() == "help" {
			continue
		}
		if !groups[c.GroupID] {
			t.Errorf("command %q has unknown group %q", c.Name(), c.GroupID)
		}
		for _, name := range append([]string{c.Name()}, c.Aliases...) {
			if other, ok := seen[name]; ok {
				t.Errorf("%q is used by both %s and %s", name, other, c.Name())
			}
			seen[name] = c.Name()
		}
	}

	for _, want := range []string{"status", "changesets", "run", "fresh", "switch", "exec", "history", "doctor", "config", "completion"} {
		if _, ok := seen[want]; !ok {
			t.Errorf("missing command %q", want)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"project", "verbose", "quiet"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag --%s", name)
		}
	}
	if f := rootCmd.PersistentFlags().ShorthandLookup("p"); f == nil || f.Name != "project" {
		t.Error("-p should select the project")
	}
}

func TestVersionString(t *testing.T) {
	t.Parallel()

	if got := versionString(); !strings.HasPrefix(got, "devflow dev (none, unknown, go") {
		t.Errorf("versionString() = %q", got)
	}
}

func TestRenderJournal(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	entries := []journal.Entry{
		{
			Project:   "api",
			Operation: "build",
			Success:   false,
			Message:   "Operation failed",
			Error:     "exit status 1\nmore output",
			StartedAt: now.Add(-5 * time.Minute),
			Duration:  2 * time.Second,
		},
		{
			Project:     "api",
			Operation:   "custom",
			Description: "setup",
			Success:     true,
			Message:     "Completed 3 operations",
			StartedAt:   now.Add(-2 * time.Hour),
			Duration:    90 * time.Second,
		},
	}

	out := ui.Plain(renderJournal(entries, now))
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header and 2 rows, got:\n%s", out)
	}
	if !strings.Contains(lines[1], "✗ Operation failed: exit status 1") || strings.Contains(out, "more output") {
		t.Errorf("failed row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "setup") || !strings.Contains(lines[2], "✓ Completed 3 operations") {
		t.Errorf("success row = %q", lines[2])
	}
}

func TestRenderConfig(t *testing.T) {
	t.Parallel()

	view := configView{
		ConfigPath:     "/home/test/.config/devflow/config.toml",
		ProcessTimeout: "30m0s",
		Project: project.Project{
			Name:             "app",
			WorkingDirectory: "/work/app",
			Config:           project.Configuration{Toolchain: "react-native", SavePreference: project.SaveBranch},
			Commands: []project.CustomCommand{{
				Name:       "setup",
				Operations: []project.Operation{project.NewOperation(project.Install), project.NewOperation(project.PodInstall)},
			}},
		},
		Hooks: []string{"notify"},
	}

	out := ui.Plain(renderConfig(view))
	for _, want := range []string{"/work/app", "react-native", "branch", "notify", "setup", "install, pod_install"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestHookNames(t *testing.T) {
	t.Parallel()

	off := false
	hc := config.HooksConfig{Hooks: map[string]config.Hook{
		"zeta":  {Command: "true"},
		"alpha": {Command: "true"},
		"off":   {Command: "true", Enabled: &off},
	}}
	got := hookNames(hc)
	if strings.Join(got, ",") != "alpha,zeta" {
		t.Errorf("hookNames() = %v", got)
	}
}
