// Package cmdtest provides a scripted cmd.Runner for tests that must not
// spawn real processes.
package cmdtest

import (
	"context"
	"strings"
	"sync"

	"github.com/raphi011/devflow/internal/cmd"
)

// Call records one invocation. For git, a leading "-C <dir>" is folded
// into Dir so calls read like the command a user would type.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// String returns the command line without the directory.
func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Response is what the fake returns for a matched call.
type Response struct {
	Result cmd.Result
	Err    error
}

// OK is a successful response with the given stdout.
func OK(stdout string) Response {
	return Response{Result: cmd.Result{ExitSuccess: true, Stdout: []byte(stdout)}}
}

// Exit is a non-zero exit with the given stderr.
func Exit(stderr string) Response {
	return Response{Result: cmd.Result{Stderr: []byte(stderr)}}
}

// Error is a response where the process could not run to completion.
func Error(err error) Response {
	return Response{Err: err}
}

type rule struct {
	prefix string
	fn     func(Call) Response
}

// Runner is a fake cmd.Runner. Unmatched calls succeed with empty output.
// Rules match by command-line prefix; the most recently added rule wins.
type Runner struct {
	mu    sync.Mutex
	rules []rule
	calls []Call
}

var _ cmd.Runner = (*Runner)(nil)

// New returns an empty fake runner.
func New() *Runner {
	return &Runner{}
}

// On answers every call whose command line starts with prefix.
func (r *Runner) On(prefix string, resp Response) *Runner {
	return r.OnFunc(prefix, func(Call) Response { return resp })
}

// OnFunc answers matching calls with fn, for responses that depend on
// earlier calls.
func (r *Runner) OnFunc(prefix string, fn func(Call) Response) *Runner {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule{prefix: prefix, fn: fn})
	return r
}

// Run implements cmd.Runner.
func (r *Runner) Run(ctx context.Context, dir, name string, args ...string) (cmd.Result, error) {
	call := Call{Dir: dir, Name: name, Args: append([]string(nil), args...)}
	if name == "git" && len(call.Args) >= 2 && call.Args[0] == "-C" {
		call.Dir = call.Args[1]
		call.Args = call.Args[2:]
	}

	r.mu.Lock()
	r.calls = append(r.calls, call)
	var fn func(Call) Response
	line := call.String()
	for i := len(r.rules) - 1; i >= 0; i-- {
		if strings.HasPrefix(line, r.rules[i].prefix) {
			fn = r.rules[i].fn
			break
		}
	}
	r.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return cmd.Result{}, err
	}
	if fn == nil {
		return cmd.Result{ExitSuccess: true}, nil
	}
	resp := fn(call)
	return resp.Result, resp.Err
}

// Calls returns a copy of every recorded call in order.
func (r *Runner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Commands returns the command lines of every recorded call in order.
func (r *Runner) Commands() []string {
	calls := r.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

// Count returns how many recorded calls start with prefix.
func (r *Runner) Count(prefix string) int {
	n := 0
	for _, line := range r.Commands() {
		if strings.HasPrefix(line, prefix) {
			n++
		}
	}
	return n
}

// Index returns the position of the first call starting with prefix, or -1.
func (r *Runner) Index(prefix string) int {
	for i, line := range r.Commands() {
		if strings.HasPrefix(line, prefix) {
			return i
		}
	}
	return -1
}
