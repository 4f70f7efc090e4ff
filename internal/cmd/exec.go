package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/devflow/internal/log"
)

// ErrTimedOut is returned when a process exceeds the runner's timeout.
var ErrTimedOut = errors.New("timed out")

// Result is the captured outcome of a finished process.
type Result struct {
	ExitSuccess bool
	Stdout      []byte
	Stderr      []byte
}

// ErrorText returns stderr decoded as UTF-8 (invalid sequences replaced) and trimmed.
// Falls back to stdout when stderr is empty, since some tools report failures there.
func (r Result) ErrorText() string {
	text := strings.TrimSpace(strings.ToValidUTF8(string(r.Stderr), "�"))
	if text == "" {
		text = strings.TrimSpace(strings.ToValidUTF8(string(r.Stdout), "�"))
	}
	return text
}

// Runner executes an external program in a working directory.
//
// A non-zero exit is reported through Result.ExitSuccess, not as an error.
// The error is non-nil only when the process could not be started, timed out
// (ErrTimedOut) or the context was cancelled.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct {
	// Timeout bounds each process. Zero disables the timeout.
	Timeout time.Duration
	// Env is appended to the inherited environment.
	Env []string
}

// NewExecRunner creates an ExecRunner with the given per-process timeout.
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{Timeout: timeout}
}

// Run implements Runner.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	runCtx := ctx
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	c := exec.CommandContext(runCtx, name, args...)
	c.Dir = dir
	c.Stdout = &stdout
	c.Stderr = &stderr
	c.WaitDelay = 5 * time.Second
	if len(r.Env) > 0 {
		c.Env = append(c.Environ(), r.Env...)
	}

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	err := c.Run()
	done(time.Since(start))

	res := Result{
		ExitSuccess: err == nil,
		Stdout:      stdout.Bytes(),
		Stderr:      stderr.Bytes(),
	}
	if err == nil {
		return res, nil
	}

	// Parent cancellation wins over our own deadline.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return res, ctxErr
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return res, ErrTimedOut
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return res, nil
	}
	return res, fmt.Errorf("start %s: %w", name, err)
}

// Check converts a finished Result into an error carrying its stderr text.
// Returns err unchanged when the process never completed.
func Check(res Result, err error) error {
	if err != nil {
		return err
	}
	if !res.ExitSuccess {
		if text := res.ErrorText(); text != "" {
			return errors.New(text)
		}
		return errors.New("command exited with non-zero status")
	}
	return nil
}
