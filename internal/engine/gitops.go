package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/raphi011/devflow/internal/project"
)

// WipBranchPrefix prefixes branches created by branch-mode saves.
const WipBranchPrefix = "wip/"

var errDetachedSave = errors.New("cannot save to a branch from a detached HEAD")

// preserve saves uncommitted work according to pref and returns a
// description of where it went. Branch mode commits everything to a new
// wip/ branch and returns to the original branch.
func (e *Engine) preserve(ctx context.Context, dir, current string, pref project.SavePreference, label, message string) (string, error) {
	ts := e.timestamp()

	if pref == project.SaveBranch {
		if current == "" {
			return "", errDetachedSave
		}
		wip := fmt.Sprintf("%s%s-%s", WipBranchPrefix, current, ts)
		if message == "" {
			message = "WIP on " + current
		}
		if err := e.git.CheckoutNew(ctx, dir, wip); err != nil {
			return "", err
		}
		if err := e.git.CommitAll(ctx, dir, message); err != nil {
			return "", err
		}
		if err := e.git.Checkout(ctx, dir, current); err != nil {
			return "", err
		}
		return "branch " + wip, nil
	}

	if message == "" {
		message = fmt.Sprintf("%s-%s-%s", label, branchLabel(current), ts)
	}
	if err := e.git.Stash(ctx, dir, message); err != nil {
		return "", err
	}
	return fmt.Sprintf("stash %q", message), nil
}

// savePreference resolves the save mode: explicit param, then project
// configuration, then stash.
func savePreference(op project.Operation, p project.Project) (project.SavePreference, bool) {
	pref := project.SavePreference(project.Resolve(
		op.Params.Get(project.ParamMode),
		string(p.Config.SavePreference),
		string(project.SaveStash),
	))
	return pref, pref.Valid()
}

func (e *Engine) save(ctx context.Context, op project.Operation, p project.Project) (project.Result, error) {
	dir := p.WorkingDirectory
	pref, ok := savePreference(op, p)
	if !ok {
		return project.Fail(fmt.Sprintf("Unknown save mode: %s", pref), "expected stash or branch"), nil
	}
	if !e.git.HasUncommittedChanges(ctx, dir) {
		return project.Ok("No changes to save"), nil
	}

	saved, err := e.preserve(ctx, dir, e.git.CurrentBranch(ctx, dir), pref, "save", op.Params.Get(project.ParamMessage))
	if err != nil {
		return project.Result{}, err
	}
	return project.Ok("Saved changes to %s", saved), nil
}

// cleanSlate saves uncommitted work, then leaves the project on an up to
// date main branch.
func (e *Engine) cleanSlate(ctx context.Context, op project.Operation, p project.Project) (project.Result, error) {
	dir := p.WorkingDirectory
	pref, ok := savePreference(op, p)
	if !ok {
		return project.Fail(fmt.Sprintf("Unknown save mode: %s", pref), "expected stash or branch"), nil
	}

	main := e.git.ResolveMainBranch(ctx, dir, p.Config.DefaultBranch)
	if main == "" {
		return project.Fail("No main branch found", triedBranches(p.Config.DefaultBranch)), nil
	}

	current := e.git.CurrentBranch(ctx, dir)
	var note string
	if e.git.HasUncommittedChanges(ctx, dir) {
		saved, err := e.preserve(ctx, dir, current, pref, "clean-slate", "")
		if err != nil {
			return project.Fail("Could not save uncommitted changes, clean slate aborted", err.Error()), nil
		}
		note = " (changes saved to " + saved + ")"
	}

	if current != main {
		if err := e.git.Checkout(ctx, dir, main); err != nil {
			return project.Result{}, err
		}
	}
	if err := e.git.PullRebase(ctx, dir); err != nil {
		return project.Result{}, err
	}
	return project.Ok("Clean slate on %s%s", main, note), nil
}

// update rebases the current branch on its upstream, or on origin's main
// branch when it has none.
func (e *Engine) update(ctx context.Context, p project.Project) (project.Result, error) {
	dir := p.WorkingDirectory
	current := branchLabel(e.git.CurrentBranch(ctx, dir))

	if e.git.HasUpstream(ctx, dir) {
		if err := e.git.PullRebase(ctx, dir); err != nil {
			return project.Result{}, err
		}
		return project.Ok("Updated %s from its upstream", current), nil
	}

	main := e.git.ResolveMainBranch(ctx, dir, p.Config.DefaultBranch)
	if main == "" {
		return project.Fail("No upstream and no main branch to rebase onto", triedBranches(p.Config.DefaultBranch)), nil
	}
	if err := e.git.FetchBranch(ctx, dir, main); err != nil {
		return project.Result{}, err
	}
	if err := e.git.Rebase(ctx, dir, "origin/"+main); err != nil {
		return project.Result{}, err
	}
	return project.Ok("Rebased %s onto origin/%s", current, main), nil
}
