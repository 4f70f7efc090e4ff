package doctor

// IssueCategory groups issues by type.
type IssueCategory string

const (
	// CategoryEnvironment represents missing system tools.
	CategoryEnvironment IssueCategory = "environment"
	// CategoryConfig represents a missing or invalid config file.
	CategoryConfig IssueCategory = "config"
	// CategoryProject represents problems with a project directory or repository.
	CategoryProject IssueCategory = "project"
	// CategoryToolchain represents toolchain binaries missing from PATH.
	CategoryToolchain IssueCategory = "toolchain"
)

// Categories lists the categories in report order.
var Categories = []IssueCategory{CategoryEnvironment, CategoryConfig, CategoryProject, CategoryToolchain}

// FixAction names the repair --fix applies.
type FixAction string

const (
	FixNone  FixAction = ""
	FixInit  FixAction = "init"  // write the default config file
	FixClone FixAction = "clone" // clone repository_url into the project dir
	FixFetch FixAction = "fetch" // fetch origin so the main branch resolves
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Key         string        `json:"key"` // project name, binary or path
	Description string        `json:"description"`
	Category    IssueCategory `json:"category"`
	FixAction   FixAction     `json:"fix_action,omitempty"`
	Dir         string        `json:"dir,omitempty"` // project directory for clone/fetch
	URL         string        `json:"url,omitempty"` // clone source
}

// Fixable reports whether --fix can repair the issue.
func (i Issue) Fixable() bool {
	return i.FixAction != FixNone
}

// Report is the outcome of all checks.
type Report struct {
	Issues          []Issue `json:"issues"`
	ProjectsHealthy int     `json:"projects_healthy"`
	ProjectsTotal   int     `json:"projects_total"`
}

// Fixable counts the issues --fix can repair.
func (r Report) Fixable() int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Fixable() {
			n++
		}
	}
	return n
}
