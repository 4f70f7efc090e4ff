package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphi011/devflow/internal/engine"
	"github.com/raphi011/devflow/internal/log"
	"github.com/raphi011/devflow/internal/output"
	"github.com/raphi011/devflow/internal/project"
	"github.com/raphi011/devflow/internal/ui"
)

// runSequence opens a session and runs ops against the selected project.
func runSequence(ctx context.Context, ops []project.Operation, continueOnError bool) error {
	prog := newProgress()
	s, err := openSession(ctx, engine.WithObserver(prog))
	if err != nil {
		return err
	}
	defer s.Close()

	return executeOps(ctx, s, prog, ops, continueOnError)
}

// executeOps runs ops in an open session and prints one line per result.
func executeOps(ctx context.Context, s *session, prog *progress, ops []project.Operation, continueOnError bool) error {
	l := log.FromContext(ctx)
	out := output.FromContext(ctx)
	l.Debug("running sequence", "project", s.Project.Name, "operations", len(ops), "run", s.RunID)

	prog.Start(fmt.Sprintf("%s: %s", s.Project.Name, operationLabels(ops)))
	results := s.Engine.ExecuteSequence(ctx, ops, s.Project, continueOnError)
	prog.Stop()

	out.Render(ui.RenderResults(ops, results))

	if ctx.Err() != nil {
		return fmt.Errorf("interrupted: %w", ctx.Err())
	}
	return resultsError(results, len(ops))
}

func operationLabels(ops []project.Operation) string {
	labels := make([]string, len(ops))
	for i, op := range ops {
		labels[i] = op.Label()
	}
	return strings.Join(labels, ", ")
}
