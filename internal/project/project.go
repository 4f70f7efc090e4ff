// Package project defines the values devflow passes between its configuration,
// the operation engine and the CLI: projects, operations and their results.
//
// All types here are plain values. A Project is loaded once per invocation and
// never mutated afterwards; an Operation is built per call.
package project

import "slices"

// SavePreference selects how uncommitted work is preserved.
type SavePreference string

const (
	// SaveStash preserves work with git stash.
	SaveStash SavePreference = "stash"
	// SaveBranch commits work to a wip/ branch.
	SaveBranch SavePreference = "branch"
)

// Valid reports whether p is a known preference.
func (p SavePreference) Valid() bool {
	return p == SaveStash || p == SaveBranch
}

// Configuration holds per-project defaults consulted when an operation's
// parameters omit a value.
type Configuration struct {
	DefaultBranch  string         `json:"default_branch,omitempty"`
	SavePreference SavePreference `json:"save_preference,omitempty"`
	Toolchain      string         `json:"toolchain,omitempty"`
	PackageManager string         `json:"package_manager,omitempty"`
	Platform       string         `json:"platform,omitempty"`
	Device         string         `json:"device,omitempty"`
}

// CustomCommand is a named, ordered list of operations.
type CustomCommand struct {
	Name            string      `json:"name"`
	Description     string      `json:"description,omitempty"`
	Operations      []Operation `json:"operations"`
	ContinueOnError bool        `json:"continue_on_error,omitempty"`
}

// Project identifies a working directory and how to build it.
type Project struct {
	Name             string          `json:"name"`
	WorkingDirectory string          `json:"working_directory"`
	RepositoryURL    string          `json:"repository_url,omitempty"`
	Config           Configuration   `json:"configuration"`
	Commands         []CustomCommand `json:"commands,omitempty"`
}

// Command returns the custom command with the given name.
func (p Project) Command(name string) (CustomCommand, bool) {
	i := slices.IndexFunc(p.Commands, func(c CustomCommand) bool { return c.Name == name })
	if i < 0 {
		return CustomCommand{}, false
	}
	return p.Commands[i], true
}
