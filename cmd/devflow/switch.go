package main

import (
	"fmt"
	"time"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/devflow/internal/engine"
	"github.com/raphi011/devflow/internal/format"
	"github.com/raphi011/devflow/internal/git"
	"github.com/raphi011/devflow/internal/ui"
)

// switchTarget is a branch and how switch_changeset should treat it.
type switchTarget struct {
	Branch string
	Type   string
}

// resolveSwitchTarget maps user input to a branch. Exact names win, then
// changeset/<query> and origin/<query>, then an existing local branch, then
// the best fuzzy match over changesets and unsynced remote branches.
func resolveSwitchTarget(query string, cs git.Changesets, remoteOnly bool, localExists func(string) bool) (switchTarget, error) {
	local := make([]string, 0, len(cs.Local))
	for _, c := range cs.Local {
		local = append(local, c.Branch)
	}
	remote := make([]string, 0, len(cs.Unsynced))
	for _, rb := range cs.Unsynced {
		remote = append(remote, rb.Branch)
	}

	if !remoteOnly {
		for _, candidate := range []string{query, git.ChangesetPrefix + query} {
			if contains(local, candidate) {
				return switchTarget{Branch: candidate, Type: engine.BranchLocal}, nil
			}
		}
	}
	for _, candidate := range []string{query, "origin/" + query} {
		if contains(remote, candidate) {
			return switchTarget{Branch: candidate, Type: engine.BranchRemote}, nil
		}
	}
	if !remoteOnly && localExists != nil && localExists(query) {
		return switchTarget{Branch: query, Type: engine.BranchLocal}, nil
	}

	var candidates []switchTarget
	if !remoteOnly {
		for _, b := range local {
			candidates = append(candidates, switchTarget{Branch: b, Type: engine.BranchLocal})
		}
	}
	for _, b := range remote {
		candidates = append(candidates, switchTarget{Branch: b, Type: engine.BranchRemote})
	}

	matches := fuzzy.FindFrom(query, targetSource(candidates))
	if len(matches) == 0 {
		return switchTarget{}, fmt.Errorf("no changeset or remote branch matches %q", query)
	}
	return candidates[matches[0].Index], nil
}

type targetSource []switchTarget

func (s targetSource) String(i int) string { return s[i].Branch }
func (s targetSource) Len() int            { return len(s) }

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// switchItems lists local changesets first, then unsynced remote branches.
func switchItems(cs git.Changesets, current string, remoteOnly bool, now time.Time) []ui.PickerItem {
	var items []ui.PickerItem
	if !remoteOnly {
		for _, c := range cs.Local {
			if c.Branch == current {
				continue
			}
			items = append(items, ui.PickerItem{
				Label:       c.Branch,
				Description: format.Tracking(c),
				Value:       engine.BranchLocal,
			})
		}
	}
	for _, rb := range cs.Unsynced {
		items = append(items, ui.PickerItem{
			Label:       rb.Branch,
			Description: "remote, " + format.RelativeTime(rb.LastCommitDate, now),
			Value:       engine.BranchRemote,
		})
	}
	return items
}
