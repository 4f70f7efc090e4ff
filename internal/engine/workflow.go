package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphi011/devflow/internal/git"
	"github.com/raphi011/devflow/internal/log"
	"github.com/raphi011/devflow/internal/project"
)

// Branch types accepted by switch_changeset.
const (
	BranchLocal  = "local"
	BranchRemote = "remote"
)

// branchLabel names the current branch in generated names; a detached HEAD
// is labelled "HEAD".
func branchLabel(branch string) string {
	if branch == "" {
		return "HEAD"
	}
	return branch
}

// stashNote describes a stash made on the user's behalf.
func stashNote(stash string) string {
	if stash == "" {
		return ""
	}
	return fmt.Sprintf(" (uncommitted changes stashed as %q)", stash)
}

// switchChangeset checks out a local changeset, or turns a remote branch
// into a local changeset that tracks it. Uncommitted work is stashed first;
// if the stash fails nothing else happens.
func (e *Engine) switchChangeset(ctx context.Context, op project.Operation, p project.Project) (project.Result, error) {
	dir := p.WorkingDirectory
	branch := strings.TrimSpace(op.Params.Get(project.ParamBranchName))
	if branch == "" {
		return project.Fail("No branch name given", ""), nil
	}
	branchType := project.Resolve(op.Params.Get(project.ParamBranchType), "", BranchLocal)
	if branchType != BranchLocal && branchType != BranchRemote {
		return project.Fail(fmt.Sprintf("Unknown branch type: %s", branchType), "expected local or remote"), nil
	}

	var stash string
	if e.git.HasUncommittedChanges(ctx, dir) {
		stash = fmt.Sprintf("auto-stash-before-switch-%s-%s", branchLabel(e.git.CurrentBranch(ctx, dir)), e.timestamp())
		if err := e.git.Stash(ctx, dir, stash); err != nil {
			return project.Fail("Could not stash uncommitted changes, switch aborted", err.Error()), nil
		}
		log.FromContext(ctx).Debug("stashed changes", "stash", stash)
	}

	target := branch
	if branchType == BranchRemote {
		target = git.LocalNameForRemote(branch)
		if err := e.git.CheckoutTracking(ctx, dir, target, branch); err != nil {
			return project.Result{}, fmt.Errorf("%w%s", err, stashNote(stash))
		}
	} else if err := e.git.Checkout(ctx, dir, branch); err != nil {
		return project.Result{}, fmt.Errorf("%w%s", err, stashNote(stash))
	}

	return project.Ok("Switched to %s%s", target, stashNote(stash)), nil
}

// fresh creates a changeset from an up to date main branch, or resumes it
// if it already exists.
func (e *Engine) fresh(ctx context.Context, op project.Operation, p project.Project) (project.Result, error) {
	dir := p.WorkingDirectory
	l := log.FromContext(ctx)

	current := e.git.CurrentBranch(ctx, dir)

	var stash string
	if e.git.HasUncommittedChanges(ctx, dir) {
		stash = fmt.Sprintf("wip-%s-%s", branchLabel(current), e.timestamp())
		if err := e.git.Stash(ctx, dir, stash); err != nil {
			return project.Fail("Could not stash uncommitted changes, fresh aborted", err.Error()), nil
		}
		l.Debug("stashed changes", "stash", stash)
	}

	main := e.git.ResolveMainBranch(ctx, dir, p.Config.DefaultBranch)
	if main == "" {
		return project.Fail("No main branch found"+stashNote(stash), triedBranches(p.Config.DefaultBranch)), nil
	}

	if current != main {
		if err := e.git.Checkout(ctx, dir, main); err != nil {
			return project.Fail("Could not switch to "+main+stashNote(stash), err.Error()), nil
		}
	}
	if err := e.git.PullRebase(ctx, dir); err != nil {
		return project.Fail("Could not update "+main+stashNote(stash), err.Error()), nil
	}

	target := git.ChangesetBranch(op.Params.Get(project.ParamChangesetName))
	if e.git.BranchExists(ctx, dir, target) {
		if err := e.git.Checkout(ctx, dir, target); err != nil {
			return project.Result{}, err
		}
		l.Warnf("%s already exists, resuming it instead of creating it", target)
		return project.Ok("Resumed existing changeset %s%s", target, stashNote(stash)), nil
	}

	if err := e.git.CheckoutNew(ctx, dir, target); err != nil {
		return project.Result{}, err
	}
	return project.Ok("Created changeset %s from %s%s", target, main, stashNote(stash)), nil
}

// triedBranches lists the main branch candidates for error messages.
func triedBranches(hint string) string {
	candidates := git.DefaultMainBranches
	if hint != "" {
		candidates = append([]string{hint}, candidates...)
	}
	return "tried: " + strings.Join(candidates, ", ")
}
