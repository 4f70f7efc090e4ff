package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/raphi011/devflow/internal/git"
	"github.com/raphi011/devflow/internal/project"
)

// RelativeTime formats t relative to now.
func RelativeTime(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	d := now.Sub(t)
	if d < 0 {
		d = 0
	}

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return plural(int(d/time.Minute), "minute") + " ago"
	case d < 24*time.Hour:
		return plural(int(d/time.Hour), "hour") + " ago"
	case d < 48*time.Hour:
		return "yesterday"
	case d < 14*24*time.Hour:
		return plural(int(d/(24*time.Hour)), "day") + " ago"
	case d < 60*24*time.Hour:
		return plural(int(d/(7*24*time.Hour)), "week") + " ago"
	case d < 365*24*time.Hour:
		return plural(int(d/(30*24*time.Hour)), "month") + " ago"
	}
	return plural(int(d/(365*24*time.Hour)), "year") + " ago"
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

// Divergence formats ahead/behind counts.
func Divergence(d git.Divergence) string {
	switch {
	case d.InSync():
		return "in sync"
	case d.Behind == 0:
		return fmt.Sprintf("%d ahead", d.Ahead)
	case d.Ahead == 0:
		return fmt.Sprintf("%d behind", d.Behind)
	}
	return fmt.Sprintf("%d ahead, %d behind", d.Ahead, d.Behind)
}

// ChangeStatus returns the one-letter marker for a working tree entry.
func ChangeStatus(s git.ChangeStatus) string {
	switch s {
	case git.StatusModified:
		return "M"
	case git.StatusAdded:
		return "A"
	case git.StatusDeleted:
		return "D"
	case git.StatusRenamed:
		return "R"
	case git.StatusCopied:
		return "C"
	case git.StatusUntracked:
		return "?"
	}
	return "·"
}

// Tracking describes the upstream of a local changeset.
func Tracking(c git.LocalChangeset) string {
	if c.TrackingBranch == "" {
		return "local only"
	}
	return "tracks " + c.TrackingBranch
}

// ResultLine formats a result as "✓ message" or "✗ message: first error line".
func ResultLine(res project.Result) string {
	if res.Success {
		return "✓ " + res.Message
	}
	line := "✗ " + res.Message
	if detail := FirstLine(res.Error); detail != "" {
		line += ": " + detail
	}
	return line
}

// FirstLine returns the first non-empty line of s, trimmed.
func FirstLine(s string) string {
	for line := range strings.Lines(s) {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// Duration rounds d for display: milliseconds below a second, tenths of a
// second below a minute, whole seconds above.
func Duration(d time.Duration) string {
	switch {
	case d < time.Second:
		return d.Round(time.Millisecond).String()
	case d < time.Minute:
		return d.Round(100 * time.Millisecond).String()
	}
	return d.Round(time.Second).String()
}
