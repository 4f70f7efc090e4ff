package hooks

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/raphi011/devflow/internal/cmd"
	"github.com/raphi011/devflow/internal/config"
	"github.com/raphi011/devflow/internal/git"
	"github.com/raphi011/devflow/internal/log"
	"github.com/raphi011/devflow/internal/project"
)

// shellQuote escapes a string for safe use in shell commands.
// It wraps the value in single quotes and escapes any embedded single quotes.
func shellQuote(s string) string {
	// e.g., "it's" becomes 'it'\''s'
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// Context holds the values for placeholder substitution
type Context struct {
	Project   string            // project name
	Dir       string            // project directory, also the working directory
	Operation string            // operation type that triggered the hook
	Branch    string            // current branch after the operation
	Env       map[string]string // operation parameters
}

// Match is a hook selected for an operation.
type Match struct {
	Name string
	Hook config.Hook
}

// Select returns the enabled hooks whose "on" list contains t or "all",
// sorted by name. Hooks without "on" are never selected.
func Select(cfg config.HooksConfig, t project.OperationType) []Match {
	var matches []Match
	for name, hook := range cfg.Hooks {
		if hook.IsEnabled() && matchesOperation(hook, t) {
			matches = append(matches, Match{Name: name, Hook: hook})
		}
	}
	slices.SortFunc(matches, func(a, b Match) int { return strings.Compare(a.Name, b.Name) })
	return matches
}

// matchesOperation returns true if t is in the hook's "on" list.
// Special value "all" matches every operation type.
func matchesOperation(hook config.Hook, t project.OperationType) bool {
	for _, on := range hook.On {
		if on == config.HookOnAll {
			return true
		}
		if parsed, err := project.ParseOperationType(on); err == nil && parsed == t {
			return true
		}
	}
	return false
}

// Runner executes hooks after operations. It implements engine.Observer.
type Runner struct {
	runner cmd.Runner
	git    *git.Client
	cfg    config.HooksConfig
}

// NewRunner creates a hook runner for the given hooks.
func NewRunner(runner cmd.Runner, gitClient *git.Client, cfg config.HooksConfig) *Runner {
	return &Runner{runner: runner, git: gitClient, cfg: cfg}
}

// OnResult runs the hooks matching op after a successful operation. Every
// matching hook runs even if an earlier one fails; failures are joined into
// the returned error.
func (r *Runner) OnResult(ctx context.Context, p project.Project, op project.Operation, res project.Result, _ time.Time) error {
	if !res.Success {
		return nil
	}
	matches := Select(r.cfg, op.Type)
	if len(matches) == 0 {
		return nil
	}

	hctx := Context{
		Project:   p.Name,
		Dir:       p.WorkingDirectory,
		Operation: string(op.Type),
		Branch:    r.git.CurrentBranch(ctx, p.WorkingDirectory),
		Env:       op.Params,
	}

	var errs []error
	for _, m := range matches {
		if err := r.run(ctx, m, hctx); err != nil {
			errs = append(errs, fmt.Errorf("hook %q failed: %w", m.Name, err))
		}
	}
	return errors.Join(errs...)
}

// run executes a single hook with variable substitution.
func (r *Runner) run(ctx context.Context, m Match, hctx Context) error {
	l := log.FromContext(ctx)
	command := SubstitutePlaceholders(m.Hook.Command, hctx)

	l.Printf("Running hook '%s'...\n", m.Name)
	if err := cmd.Check(r.runner.Run(ctx, hctx.Dir, "sh", "-c", command)); err != nil {
		return err
	}
	if m.Hook.Description != "" {
		l.Printf("  ✓ %s\n", m.Hook.Description)
	}
	return nil
}

// envPlaceholderRegex matches {key}, {key:raw}, or {key:-default} patterns
// for parameter values. It is applied after the static replacements.
var envPlaceholderRegex = regexp.MustCompile(`\{([a-zA-Z_][a-zA-Z0-9_]*)(?:(:raw)|:-([^}]*))?\}`)

// SubstitutePlaceholders replaces {placeholder} with shell-quoted values from Context.
//
// Static placeholders: {project}, {dir}, {operation}, {branch}
// Parameter placeholders (from Context.Env):
//   - {key}          - shell-quoted value
//   - {key:raw}      - unquoted value (for embedding in existing quotes)
//   - {key:-default} - shell-quoted value with default if key missing
func SubstitutePlaceholders(command string, ctx Context) string {
	replacements := map[string]string{
		"{project}":   shellQuote(ctx.Project),
		"{dir}":       shellQuote(ctx.Dir),
		"{operation}": shellQuote(ctx.Operation),
		"{branch}":    shellQuote(ctx.Branch),
	}

	result := command
	for placeholder, value := range replacements {
		result = strings.ReplaceAll(result, placeholder, value)
	}

	return envPlaceholderRegex.ReplaceAllStringFunc(result, func(match string) string {
		submatch := envPlaceholderRegex.FindStringSubmatch(match)
		if submatch == nil {
			return match
		}
		key := submatch[1]
		isRaw := submatch[2] == ":raw"
		defaultVal := submatch[3]

		val, ok := ctx.Env[key]
		if !ok {
			val = defaultVal
		}
		if isRaw {
			return val
		}
		return shellQuote(val)
	})
}

// ParseEnv parses a slice of "key=value" strings into a map.
// Returns an error if any entry doesn't contain "=".
func ParseEnv(envSlice []string) (map[string]string, error) {
	result := make(map[string]string)
	for _, e := range envSlice {
		key, value, ok := strings.Cut(e, "=")
		if !ok {
			return nil, fmt.Errorf("invalid format %q: expected KEY=VALUE", e)
		}
		if key == "" {
			return nil, fmt.Errorf("invalid format %q: key cannot be empty", e)
		}
		result[key] = value
	}
	return result, nil
}
