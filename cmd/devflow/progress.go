package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/raphi011/devflow/internal/format"
	"github.com/raphi011/devflow/internal/project"
	"github.com/raphi011/devflow/internal/ui"
)

// progress shows a spinner while operations run. It is inert unless
// stderr is a terminal and neither -v nor -q is set.
type progress struct {
	enabled bool
	spinner *ui.Spinner
}

func newProgress() *progress {
	return &progress{enabled: !verbose && !quiet && isTerminal(os.Stderr)}
}

// Start shows message until Stop is called.
func (p *progress) Start(message string) {
	if !p.enabled {
		return
	}
	p.spinner = ui.NewSpinner(os.Stderr, message)
	p.spinner.Start()
}

// Stop removes the spinner.
func (p *progress) Stop() {
	if p.spinner != nil {
		p.spinner.Stop()
		p.spinner = nil
	}
}

// OnResult reports each finished operation on the spinner line.
func (p *progress) OnResult(ctx context.Context, _ project.Project, op project.Operation, res project.Result, started time.Time) error {
	if p.spinner == nil {
		return nil
	}
	status := "done"
	if !res.Success {
		status = "failed"
	}
	p.spinner.UpdateMessage(fmt.Sprintf("%s %s (%s)", op.Label(), status, format.Duration(time.Since(started))))
	return nil
}
