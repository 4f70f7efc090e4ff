package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/raphi011/devflow/internal/project"
)

// OperationConfig is one step of a custom command.
type OperationConfig struct {
	Type        string         `toml:"type" yaml:"type"`
	Description string         `toml:"description" yaml:"description"`
	Params      map[string]any `toml:"params" yaml:"params"`
}

// CommandConfig is a named list of operations.
type CommandConfig struct {
	Name            string            `toml:"name" yaml:"name"`
	Description     string            `toml:"description" yaml:"description"`
	ContinueOnError bool              `toml:"continue_on_error" yaml:"continue_on_error"`
	Operations      []OperationConfig `toml:"operations" yaml:"operations"`
}

// ProjectConfig is a [projects.NAME] section, or the body of a local
// .devflow.toml / .devflow.yaml file.
type ProjectConfig struct {
	Dir            string          `toml:"dir" yaml:"dir"`
	RepositoryURL  string          `toml:"repository_url" yaml:"repository_url"`
	DefaultBranch  string          `toml:"default_branch" yaml:"default_branch"`
	SavePreference string          `toml:"save_preference" yaml:"save_preference"`
	Toolchain      string          `toml:"toolchain" yaml:"toolchain"`
	PackageManager string          `toml:"package_manager" yaml:"package_manager"`
	Platform       string          `toml:"platform" yaml:"platform"`
	Device         string          `toml:"device" yaml:"device"`
	Commands       []CommandConfig `toml:"commands" yaml:"commands"`
}

// Operation converts the step into a project.Operation. Param values of
// any scalar type are stringified.
func (o OperationConfig) Operation() (project.Operation, error) {
	t, err := project.ParseOperationType(o.Type)
	if err != nil {
		return project.Operation{}, err
	}
	op := project.Operation{Type: t, Description: o.Description}
	if len(o.Params) > 0 {
		op.Params = make(project.Params, len(o.Params))
		for k, v := range o.Params {
			op.Params[k] = fmt.Sprint(v)
		}
	}
	return op, nil
}

// Project builds the project.Project for name. The configuration must
// already be validated.
func (p ProjectConfig) Project(name string) (project.Project, error) {
	proj := project.Project{
		Name:             name,
		WorkingDirectory: p.Dir,
		RepositoryURL:    p.RepositoryURL,
		Config: project.Configuration{
			DefaultBranch:  p.DefaultBranch,
			SavePreference: project.SavePreference(p.SavePreference),
			Toolchain:      p.Toolchain,
			PackageManager: p.PackageManager,
			Platform:       p.Platform,
			Device:         p.Device,
		},
	}

	for _, c := range p.Commands {
		cmd := project.CustomCommand{
			Name:            c.Name,
			Description:     c.Description,
			ContinueOnError: c.ContinueOnError,
		}
		for i, oc := range c.Operations {
			op, err := oc.Operation()
			if err != nil {
				return project.Project{}, fmt.Errorf("command %s operation %d: %w", c.Name, i, err)
			}
			cmd.Operations = append(cmd.Operations, op)
		}
		proj.Commands = append(proj.Commands, cmd)
	}
	return proj, nil
}

// ProjectForDir returns the project whose directory contains dir. When
// several match, the deepest directory wins.
func (c *Config) ProjectForDir(dir string) (string, bool) {
	dir = filepath.Clean(dir)
	best, bestLen := "", -1
	for _, name := range c.ProjectNames() {
		pdir := c.Projects[name].Dir
		if pdir == "" {
			continue
		}
		if dir != pdir && !strings.HasPrefix(dir, pdir+string(filepath.Separator)) {
			continue
		}
		if len(pdir) > bestLen {
			best, bestLen = name, len(pdir)
		}
	}
	return best, bestLen >= 0
}

// CommandNames lists the custom command names of a project.
func (p ProjectConfig) CommandNames() []string {
	names := make([]string, len(p.Commands))
	for i, c := range p.Commands {
		names[i] = c.Name
	}
	slices.Sort(names)
	return names
}
