package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"

	runcmd "github.com/raphi011/devflow/internal/cmd"
	"github.com/raphi011/devflow/internal/config"
	"github.com/raphi011/devflow/internal/engine"
	"github.com/raphi011/devflow/internal/git"
	"github.com/raphi011/devflow/internal/history"
	"github.com/raphi011/devflow/internal/hooks"
	"github.com/raphi011/devflow/internal/journal"
	"github.com/raphi011/devflow/internal/log"
	"github.com/raphi011/devflow/internal/project"
	"github.com/raphi011/devflow/internal/toolchain"
)

var osFs afero.Fs = afero.NewOsFs()

// services bundles the clients shared by every command.
type services struct {
	fs     afero.Fs
	runner runcmd.Runner
	git    *git.Client
}

func newServices(c *config.Config) *services {
	runner := runcmd.NewExecRunner(c.ProcessTimeout.Duration)
	return &services{
		fs:     osFs,
		runner: runner,
		git:    git.New(runner),
	}
}

func (s *services) toolchains(id string) toolchain.Toolchain {
	return toolchain.ByName(id, s.runner, s.fs)
}

// session is a resolved project with an engine wired to the journal and hooks.
type session struct {
	*services
	Project  project.Project
	Resolved *config.Resolved
	Engine   *engine.Engine
	RunID    string

	store *journal.Store
}

// Close releases the journal.
func (s *session) Close() {
	if s.store != nil {
		s.store.Close()
	}
}

// requireConfig returns the loaded config, or the error that prevented loading it.
func requireConfig() (*config.Config, error) {
	if cfgErr != nil {
		return nil, cfgErr
	}
	return cfg, nil
}

// openSession resolves the target project and builds its engine.
// Callers must Close the session.
func openSession(ctx context.Context, extra ...engine.Option) (*session, error) {
	c, err := requireConfig()
	if err != nil {
		return nil, err
	}
	l := log.FromContext(ctx)
	svc := newServices(c)

	hist, err := history.Load(svc.fs, c.HistoryPath)
	if err != nil {
		l.Debug("history unavailable", "error", err)
		hist = &history.History{}
	}

	name, err := selectProject(c, projectName, hist, workDir)
	if err != nil {
		return nil, err
	}

	resolved, err := config.NewResolver(svc.fs, c).Resolve(name)
	if err != nil {
		return nil, err
	}
	if resolved.LocalPath != "" {
		l.Debug("merged local config", "project", name, "path", resolved.LocalPath)
	}

	if err := history.RecordAccess(svc.fs, c.HistoryPath, name); err != nil {
		l.Debug("failed to record project access", "error", err)
	}

	s := &session{
		services: svc,
		Project:  resolved.Project,
		Resolved: resolved,
		RunID:    journal.NewRunID(),
	}

	opts := []engine.Option{engine.WithObserver(hooks.NewRunner(svc.runner, svc.git, resolved.Hooks))}
	if store, err := journal.Open(c.JournalPath); err != nil {
		l.Warnf("Warning: journal disabled: %v\n", err)
	} else {
		s.store = store
		opts = append(opts, engine.WithObserver(journal.NewRecorder(store, s.RunID)))
	}
	opts = append(opts, extra...)

	s.Engine = engine.New(svc.git, svc.toolchains, opts...)
	l.Debug("session ready", "project", name, "run", s.RunID)
	return s, nil
}

// selectProject picks the project to operate on: the explicit flag, then
// default_project, then the most recently used project, then the project
// whose directory contains dir.
func selectProject(c *config.Config, explicit string, hist *history.History, dir string) (string, error) {
	if len(c.Projects) == 0 {
		return "", fmt.Errorf("no projects configured: add a [projects.NAME] section to %s", cfgPath)
	}

	if explicit != "" {
		if _, ok := c.Projects[explicit]; !ok {
			return "", fmt.Errorf("%w: %s (configured: %s)", config.ErrProjectNotFound, explicit, strings.Join(c.ProjectNames(), ", "))
		}
		return explicit, nil
	}

	if c.DefaultProject != "" {
		return c.DefaultProject, nil
	}

	if hist != nil {
		hist.Retain(func(name string) bool {
			_, ok := c.Projects[name]
			return ok
		})
		if name := hist.MostRecent(); name != "" {
			return name, nil
		}
	}

	if name, ok := c.ProjectForDir(dir); ok {
		return name, nil
	}

	return "", fmt.Errorf("no project selected: use --project (configured: %s)", strings.Join(c.ProjectNames(), ", "))
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// interactive reports whether prompts and pickers may be shown.
func interactive() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stderr)
}

// failedError signals a failure whose details were already printed.
type failedError struct {
	msg string
}

func (e *failedError) Error() string { return e.msg }

func isSilentError(err error) bool {
	var fe *failedError
	return errors.As(err, &fe)
}

// resultsError returns a failedError when any result failed.
func resultsError(results []project.Result, total int) error {
	var failed int
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	if failed == 0 && len(results) == total {
		return nil
	}
	if failed == 0 {
		return &failedError{msg: fmt.Sprintf("%d of %d operations did not run", total-len(results), total)}
	}
	return &failedError{msg: fmt.Sprintf("%d of %d operations failed", failed, total)}
}
