// Package git inspects and mutates repositories by calling the git CLI.
//
// All operations go through a [Client], which wraps an injected
// [cmd.Runner]. Tests substitute a fake runner; production code uses
// [cmd.ExecRunner]. Commands are issued as `git -C <dir> ...`.
//
// # Inspection
//
// Read-only queries are best-effort. A failing git call degrades to a zero
// value ("", false, nil, zero time) rather than an error, because the data
// is diagnostic and never drives a destructive decision on its own:
//
//   - [Client.IsRepository], [Client.ResolveMainBranch], [Client.CurrentBranch]
//   - [Client.Changes], [Client.HasUncommittedChanges]
//   - [Client.Divergence], [Client.LastSyncFromMain]
//   - [Client.Inspect] assembles all of the above into a [RepositoryState]
//
// IsRepository cannot tell "not a repository" apart from "git is not
// installed" or a permission error; all of them report false. Use
// [CheckGit] first when the distinction matters.
//
// # Changesets
//
// A changeset is a local branch under the "changeset/" prefix.
// [Client.ResolveChangesets] lists them with their upstream and computes the
// remote branches that no changeset tracks yet.
//
// # Mutation
//
// [Client.Stash], [Client.Checkout], [Client.CheckoutTracking],
// [Client.PullRebase] and friends return errors carrying git's stderr.
// Callers hold [Client.Lock] around mutations so two devflow processes never
// mutate the same working tree at once.
package git
