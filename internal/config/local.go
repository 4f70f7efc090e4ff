package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Local config file names, in lookup order.
const (
	LocalConfigFileName     = ".devflow.toml"
	LocalYAMLConfigFileName = ".devflow.yaml"
)

// LocalConfig holds per-project overrides read from the project directory.
// Zero-value fields inherit from the global project.
type LocalConfig struct {
	Project ProjectConfig
	Hooks   HooksConfig // merge by name into global
	Path    string      // file the overrides were read from
}

// rawLocalConfig is used for initial parsing before processing hooks
type rawLocalConfig struct {
	ProjectConfig `yaml:",inline"`
	Hooks         map[string]any `toml:"hooks" yaml:"hooks"`
}

// LoadLocal reads the local config of the project at dir. .devflow.toml
// takes precedence over .devflow.yaml.
// Returns nil (no error) if neither file exists.
// Returns an error only on parse or validation failure.
func LoadLocal(fs afero.Fs, dir string) (*LocalConfig, error) {
	for _, name := range []string{LocalConfigFileName, LocalYAMLConfigFileName} {
		configFile := filepath.Join(dir, name)
		data, err := afero.ReadFile(fs, configFile)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read local config %s: %w", configFile, err)
		}

		var raw rawLocalConfig
		if name == LocalConfigFileName {
			err = toml.Unmarshal(data, &raw)
		} else {
			err = yaml.Unmarshal(data, &raw)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse local config %s: %w", configFile, err)
		}

		if raw.Dir != "" {
			return nil, fmt.Errorf("dir cannot be set in local config %s", configFile)
		}
		if err := validateProject(raw.ProjectConfig, configFile); err != nil {
			return nil, err
		}
		hooks := parseHooksConfig(raw.Hooks)
		if err := validateHooks(hooks, configFile); err != nil {
			return nil, err
		}

		return &LocalConfig{Project: raw.ProjectConfig, Hooks: hooks, Path: configFile}, nil
	}
	return nil, nil
}
