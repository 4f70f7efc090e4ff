package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/raphi011/devflow/internal/format"
	"github.com/raphi011/devflow/internal/git"
	"github.com/raphi011/devflow/internal/project"
	"github.com/raphi011/devflow/internal/ui/styles"
)

// RenderState renders a repository snapshot for the status command.
func RenderState(projectName string, state git.RepositoryState, now time.Time) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", styles.Header.Render("Project"), projectName)

	branch := state.CurrentBranch
	if branch == "" {
		branch = "(detached)"
	}
	fmt.Fprintf(&b, "%s  %s\n", styles.Header.Render("Branch"), styles.Branch.Render(branch))

	if state.MainBranch == "" {
		fmt.Fprintf(&b, "%s    %s\n", styles.Header.Render("Main"), styles.WarningStyle.Render("not found"))
	} else {
		sync := format.Divergence(state.Divergence)
		syncStyle := styles.SuccessStyle
		if !state.Divergence.InSync() {
			syncStyle = styles.WarningStyle
		}
		fmt.Fprintf(&b, "%s    %s (%s, last sync %s)\n",
			styles.Header.Render("Main"),
			state.MainBranch,
			syncStyle.Render(sync),
			format.RelativeTime(state.LastSyncFromMain, now))
	}

	if state.IsDirty() {
		fmt.Fprintf(&b, "\n%s\n", styles.WarningStyle.Render(fmt.Sprintf("%d uncommitted changes", len(state.UncommittedChanges))))
		for _, c := range state.UncommittedChanges {
			fmt.Fprintf(&b, "  %s %s\n", styles.WarningStyle.Render(format.ChangeStatus(c.Status)), c.File)
		}
	} else {
		fmt.Fprintf(&b, "\n%s\n", styles.SuccessStyle.Render("Working tree clean"))
	}

	if cs := RenderChangesets(git.Changesets{Local: state.LocalChangesets, Unsynced: state.UnsyncedRemoteBranches}, state.CurrentBranch, now); cs != "" {
		b.WriteString("\n")
		b.WriteString(cs)
	}
	return b.String()
}

// RenderChangesets renders local changesets (current one marked) and the
// remote branches no local changeset tracks.
func RenderChangesets(cs git.Changesets, current string, now time.Time) string {
	var b strings.Builder

	if len(cs.Local) > 0 {
		b.WriteString(styles.Header.Render("Changesets") + "\n")
		rows := make([][]string, 0, len(cs.Local))
		for _, c := range cs.Local {
			marker := " "
			if c.Branch == current {
				marker = "*"
			}
			rows = append(rows, []string{marker, c.Branch, format.Tracking(c)})
		}
		b.WriteString(RenderTable([]string{"", "BRANCH", "UPSTREAM"}, rows))
	}

	if len(cs.Unsynced) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.Header.Render("Remote branches") + "\n")
		rows := make([][]string, 0, len(cs.Unsynced))
		for _, r := range cs.Unsynced {
			rows = append(rows, []string{r.Branch, git.LocalNameForRemote(r.Branch), format.RelativeTime(r.LastCommitDate, now)})
		}
		b.WriteString(RenderTable([]string{"REMOTE", "SWITCHES TO", "LAST COMMIT"}, rows))
	}
	return b.String()
}

// RenderResults renders one line per result, labelled with its operation.
// ops and results are matched by index; results may be shorter.
func RenderResults(ops []project.Operation, results []project.Result) string {
	var b strings.Builder
	for i, res := range results {
		label := ""
		if i < len(ops) {
			label = styles.MutedStyle.Render(ops[i].Label()) + " "
		}
		line := format.ResultLine(res)
		if res.Success {
			line = styles.SuccessStyle.Render(line)
		} else {
			line = styles.ErrorStyle.Render(line)
		}
		b.WriteString(label + line + "\n")
	}
	if skipped := len(ops) - len(results); skipped > 0 {
		b.WriteString(styles.MutedStyle.Render(fmt.Sprintf("%d skipped", skipped)) + "\n")
	}
	return b.String()
}
