package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/raphi011/devflow/internal/git"
	"github.com/raphi011/devflow/internal/log"
	"github.com/raphi011/devflow/internal/project"
	"github.com/raphi011/devflow/internal/toolchain"
)

// Toolchains returns the toolchain for a configured toolchain id.
type Toolchains func(id string) toolchain.Toolchain

// Observer is notified after every executed operation.
type Observer interface {
	OnResult(ctx context.Context, p project.Project, op project.Operation, res project.Result, started time.Time) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx context.Context, p project.Project, op project.Operation, res project.Result, started time.Time) error

func (f ObserverFunc) OnResult(ctx context.Context, p project.Project, op project.Operation, res project.Result, started time.Time) error {
	return f(ctx, p, op, res, started)
}

// Engine runs operations. It holds no per-project state and is safe to
// reuse across projects.
type Engine struct {
	git        *git.Client
	toolchains Toolchains
	now        func() time.Time
	observers  []Observer
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now, used for generated stash and branch names.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithObserver registers an observer.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observers = append(e.observers, o) }
}

// New creates an Engine.
func New(gitClient *git.Client, toolchains Toolchains, opts ...Option) *Engine {
	e := &Engine{
		git:        gitClient,
		toolchains: toolchains,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs op against p. It never panics and never returns an error:
// every failure is reported in the result.
func (e *Engine) Execute(ctx context.Context, op project.Operation, p project.Project) (res project.Result) {
	started := e.now()
	l := log.FromContext(ctx)
	l.Debug("executing operation", "project", p.Name, "operation", op.Type, "params", op.Params)

	defer func() {
		if r := recover(); r != nil {
			res = project.FromError(fmt.Errorf("panic: %v", r))
		}
		l.Debug("operation finished", "operation", op.Type, "success", res.Success, "duration", time.Since(started).Round(time.Millisecond))
		e.notify(ctx, p, op, res, started)
	}()

	return e.dispatch(ctx, op, p)
}

// ExecuteSequence runs ops in order. Without continueOnError it stops at
// the first failure, so the last result is the failing one. A cancelled
// context stops the sequence either way.
func (e *Engine) ExecuteSequence(ctx context.Context, ops []project.Operation, p project.Project, continueOnError bool) []project.Result {
	results := make([]project.Result, 0, len(ops))
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			results = append(results, project.FromError(err))
			break
		}
		res := e.Execute(ctx, op, p)
		results = append(results, res)
		if !res.Success && !continueOnError {
			break
		}
	}
	return results
}

// InspectRepositoryState snapshots the repository of p.
func (e *Engine) InspectRepositoryState(ctx context.Context, p project.Project) (git.RepositoryState, error) {
	return e.git.Inspect(ctx, p.WorkingDirectory, git.InspectOptions{MainBranchHint: p.Config.DefaultBranch})
}

// ResolveChangesets lists the changesets of p. With refresh, remote refs are
// fetched first.
func (e *Engine) ResolveChangesets(ctx context.Context, p project.Project, refresh bool) git.Changesets {
	return e.git.ResolveChangesets(ctx, p.WorkingDirectory, refresh)
}

func (e *Engine) dispatch(ctx context.Context, op project.Operation, p project.Project) project.Result {
	if op.Type.IsGitWorkflow() {
		release, err := e.git.Lock(ctx, p.WorkingDirectory)
		if err != nil {
			return project.FromError(err)
		}
		defer release()
	}

	var (
		res project.Result
		err error
	)
	switch op.Type {
	case project.CleanSlate:
		res, err = e.cleanSlate(ctx, op, p)
	case project.Save:
		res, err = e.save(ctx, op, p)
	case project.Update:
		res, err = e.update(ctx, p)
	case project.Fresh:
		res, err = e.fresh(ctx, op, p)
	case project.SwitchChangeset:
		res, err = e.switchChangeset(ctx, op, p)
	case project.Install, project.Build, project.Test, project.Run,
		project.Reset, project.RunScript, project.PodInstall:
		res = e.runToolchain(ctx, op, p)
	case project.Custom:
		res = e.custom(ctx, op, p)
	default:
		return project.Fail(fmt.Sprintf("Unknown operation type: %s", op.Type), "")
	}
	if err != nil {
		return project.FromError(err)
	}
	return res
}

func (e *Engine) notify(ctx context.Context, p project.Project, op project.Operation, res project.Result, started time.Time) {
	for _, o := range e.observers {
		if err := o.OnResult(ctx, p, op, res, started); err != nil {
			log.FromContext(ctx).Warnf("%s: %v", op.Type, err)
		}
	}
}

// timestamp formats the current time for generated stash and branch names.
func (e *Engine) timestamp() string {
	return e.now().UTC().Format("20060102-150405")
}
