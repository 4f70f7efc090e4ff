// Package engine executes operations against a project.
//
// An Engine is built once per process from a git.Client and a toolchain
// selector and exposes four entry points:
//
//   - Execute runs one operation and always returns a project.Result.
//     Errors and panics from handlers are converted into a failed result.
//   - ExecuteSequence runs operations in order and stops at the first
//     failure unless continueOnError is set.
//   - InspectRepositoryState builds a read-only git.RepositoryState.
//   - ResolveChangesets lists local changesets and unsynced remote branches.
//
// # Git workflows
//
// clean_slate, save, update, fresh and switch_changeset mutate the
// repository and hold the per-repository lock (see git.Client.Lock) for
// their whole duration. fresh and switch_changeset stash uncommitted work
// before leaving the current branch and abort if the stash fails.
//
// # Observers
//
// Observers are told about every executed operation, including those run
// as part of a custom command. Observer errors are logged and never change
// a result.
package engine
