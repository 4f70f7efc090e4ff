package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/raphi011/devflow/internal/project"
	"github.com/raphi011/devflow/internal/toolchain"
)

// HookOnAll makes a hook run after every operation.
const HookOnAll = "all"

// Valid enum values for configuration fields.
var ValidSavePreferences = []string{string(project.SaveStash), string(project.SaveBranch)}

// validate checks the whole configuration after parsing.
func (c *Config) validate() error {
	if c.ProcessTimeout.Duration < 0 {
		return fmt.Errorf("process_timeout must not be negative, got: %s", c.ProcessTimeout)
	}
	if c.DefaultProject != "" {
		if _, ok := c.Projects[c.DefaultProject]; !ok {
			return fmt.Errorf("default_project %q: %w", c.DefaultProject, ErrProjectNotFound)
		}
	}
	for _, name := range c.ProjectNames() {
		p := c.Projects[name]
		if p.Dir == "" {
			return fmt.Errorf("projects.%s.dir is required", name)
		}
		if err := ValidatePath(p.Dir, "projects."+name+".dir"); err != nil {
			return err
		}
		if err := validateProject(p, "projects."+name); err != nil {
			return err
		}
	}
	return validateHooks(c.Hooks, "")
}

// validateProject checks every field except dir. prefix names the section
// in error messages.
func validateProject(p ProjectConfig, prefix string) error {
	if err := validateEnum(p.SavePreference, prefix+".save_preference", ValidSavePreferences); err != nil {
		return err
	}
	if p.Toolchain != "" {
		if _, ok := toolchain.Canonical(p.Toolchain); !ok {
			return fmt.Errorf("invalid %s.toolchain %q: must be %s", prefix, p.Toolchain, formatOptions(toolchain.Names()))
		}
	}
	if err := validateEnum(p.PackageManager, prefix+".package_manager", toolchain.PackageManagers); err != nil {
		return err
	}

	seen := make(map[string]bool, len(p.Commands))
	for i, c := range p.Commands {
		if strings.TrimSpace(c.Name) == "" {
			return fmt.Errorf("%s.commands[%d].name is required", prefix, i)
		}
		if seen[c.Name] {
			return fmt.Errorf("%s.commands: duplicate command %q", prefix, c.Name)
		}
		seen[c.Name] = true
		for j, op := range c.Operations {
			if _, err := project.ParseOperationType(op.Type); err != nil {
				return fmt.Errorf("%s.commands[%d].operations[%d]: %w", prefix, i, j, err)
			}
		}
	}
	return nil
}

// validateHooks checks that every "on" entry names an operation type.
func validateHooks(hc HooksConfig, contextInfo string) error {
	for name, hook := range hc.Hooks {
		if hook.IsEnabled() && hook.Command == "" {
			return fmt.Errorf("hooks.%s.command is required%s", name, inContext(contextInfo))
		}
		for _, on := range hook.On {
			if on == HookOnAll {
				continue
			}
			if _, err := project.ParseOperationType(on); err != nil {
				return fmt.Errorf("hooks.%s.on%s: %w", name, inContext(contextInfo), err)
			}
		}
	}
	return nil
}

func inContext(contextInfo string) string {
	if contextInfo == "" {
		return ""
	}
	return " in " + contextInfo
}

// validateEnum checks that value (if non-empty) is one of the allowed values.
// Returns a formatted error mentioning the field name and allowed options.
func validateEnum(value, field string, allowed []string) error {
	if value == "" {
		return nil
	}
	if !slices.Contains(allowed, value) {
		return fmt.Errorf("invalid %s %q: must be %s", field, value, formatOptions(allowed))
	}
	return nil
}

// formatOptions formats a list of allowed values for error messages.
// E.g., ["a", "b", "c"] -> `"a", "b", or "c"`
func formatOptions(opts []string) string {
	quoted := make([]string, len(opts))
	for i, o := range opts {
		quoted[i] = fmt.Sprintf("%q", o)
	}
	if len(quoted) <= 2 {
		return strings.Join(quoted, " or ")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
}
