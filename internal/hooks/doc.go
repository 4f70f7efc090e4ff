// Package hooks runs shell commands after successful operations.
//
// Hooks are defined in config and select operations by type:
//
//	[hooks.notify]
//	command = "notify-send {project} '{operation} done on {branch}'"
//	on = ["build", "test"]  # or ["all"]
//
// A hook without "on" never runs automatically.
//
// # Placeholder Substitution
//
// Static placeholders, shell-quoted:
//
//   - {project}: project name
//   - {dir}: project directory
//   - {operation}: operation type that triggered the hook
//   - {branch}: current branch after the operation
//
// Operation parameters are available as {key}, {key:raw} (unquoted) and
// {key:-default}.
//
// # Execution
//
// Hooks run through sh -c with the project directory as working directory,
// in name order. A failing hook is reported as a warning and never changes
// the operation result.
package hooks
