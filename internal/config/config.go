package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

// ConfigEnv overrides the config file location.
const ConfigEnv = "DEVFLOW_CONFIG"

// DefaultProcessTimeout bounds every external process unless configured.
const DefaultProcessTimeout = 30 * time.Minute

// ErrProjectNotFound is returned when a project name is not configured.
var ErrProjectNotFound = errors.New("project not found")

// Duration is a time.Duration read from a string like "90s" or "30m".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Hook defines a command run after matching operations
type Hook struct {
	Command     string   `toml:"command" yaml:"command"`
	Description string   `toml:"description" yaml:"description"`
	On          []string `toml:"on" yaml:"on"` // operation types, or "all"
	Enabled     *bool    `toml:"enabled" yaml:"enabled"`
}

// IsEnabled reports whether the hook is active. Hooks are enabled unless
// explicitly disabled.
func (h Hook) IsEnabled() bool {
	return h.Enabled == nil || *h.Enabled
}

// HooksConfig holds hook-related configuration
type HooksConfig struct {
	Hooks map[string]Hook `toml:"-"` // parsed from [hooks.NAME] sections
}

// Config holds the devflow configuration
type Config struct {
	ProcessTimeout Duration                 `toml:"process_timeout"`
	JournalPath    string                   `toml:"journal_path"`
	HistoryPath    string                   `toml:"history_path"`
	DefaultProject string                   `toml:"default_project"`
	Hooks          HooksConfig              `toml:"-"` // custom parsing needed
	Projects       map[string]ProjectConfig `toml:"projects"`
}

// ProjectNames returns the configured project names, sorted.
func (c *Config) ProjectNames() []string {
	names := make([]string, 0, len(c.Projects))
	for name := range c.Projects {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Default returns the default configuration
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		ProcessTimeout: Duration{DefaultProcessTimeout},
		JournalPath:    filepath.Join(home, ".devflow", "journal.db"),
		HistoryPath:    filepath.Join(home, ".devflow", "history.json"),
		Hooks:          HooksConfig{Hooks: map[string]Hook{}},
		Projects:       map[string]ProjectConfig{},
	}
}

// ValidatePath checks that the path is absolute or starts with ~
// Returns error if path is relative (like "." or "..")
func ValidatePath(path, fieldName string) error {
	if path == "" {
		return nil // Empty is allowed (means not configured)
	}
	// Allow ~ paths
	if path[0] == '~' {
		return nil
	}
	if !filepath.IsAbs(path) {
		return fmt.Errorf("%s must be absolute or start with ~, got: %q", fieldName, path)
	}
	return nil
}

// expandPath expands ~ to the user's home directory
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand ~: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	if path == "~" {
		return os.UserHomeDir()
	}
	return path, nil
}

// Path returns the config file location: $DEVFLOW_CONFIG, or
// ~/.config/devflow/config.toml.
func Path() (string, error) {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "devflow", "config.toml"), nil
}

// rawConfig is used for initial TOML parsing before processing hooks
type rawConfig struct {
	ProcessTimeout *Duration                `toml:"process_timeout"`
	JournalPath    string                   `toml:"journal_path"`
	HistoryPath    string                   `toml:"history_path"`
	DefaultProject string                   `toml:"default_project"`
	Hooks          map[string]any           `toml:"hooks"`
	Projects       map[string]ProjectConfig `toml:"projects"`
}

// Load reads the config file at path from fs.
// Returns Default() if the file doesn't exist (no error).
// Returns an error only if the file exists but is invalid.
func Load(fs afero.Fs, path string) (Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config file: %w", err)
	}

	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Default(), fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	cfg := Default()
	if raw.ProcessTimeout != nil {
		cfg.ProcessTimeout = *raw.ProcessTimeout
	}
	cfg.DefaultProject = raw.DefaultProject
	cfg.Hooks = parseHooksConfig(raw.Hooks)
	if raw.Projects != nil {
		cfg.Projects = raw.Projects
	}

	for field, p := range map[string]*string{"journal_path": &raw.JournalPath, "history_path": &raw.HistoryPath} {
		if *p == "" {
			continue
		}
		if err := ValidatePath(*p, field); err != nil {
			return Default(), err
		}
		expanded, err := expandPath(*p)
		if err != nil {
			return Default(), fmt.Errorf("expand %s: %w", field, err)
		}
		*p = expanded
	}
	if raw.JournalPath != "" {
		cfg.JournalPath = raw.JournalPath
	}
	if raw.HistoryPath != "" {
		cfg.HistoryPath = raw.HistoryPath
	}

	if err := cfg.validate(); err != nil {
		return Default(), err
	}

	for name, p := range cfg.Projects {
		dir, err := expandPath(p.Dir)
		if err != nil {
			return Default(), fmt.Errorf("expand projects.%s.dir: %w", name, err)
		}
		p.Dir = filepath.Clean(dir)
		cfg.Projects[name] = p
	}

	return cfg, nil
}

// parseHooksConfig extracts HooksConfig from a raw TOML or YAML map
// Handles [hooks.NAME] sections
func parseHooksConfig(raw map[string]any) HooksConfig {
	hc := HooksConfig{
		Hooks: make(map[string]Hook),
	}

	for key, value := range raw {
		// Hook definitions are tables
		hookMap, ok := value.(map[string]any)
		if !ok {
			continue
		}
		hook := Hook{}
		if cmd, ok := hookMap["command"].(string); ok {
			hook.Command = cmd
		}
		if desc, ok := hookMap["description"].(string); ok {
			hook.Description = desc
		}
		if on, ok := hookMap["on"].([]any); ok {
			for _, v := range on {
				if s, ok := v.(string); ok {
					hook.On = append(hook.On, s)
				}
			}
		}
		if enabled, ok := hookMap["enabled"].(bool); ok {
			hook.Enabled = &enabled
		}
		hc.Hooks[key] = hook
	}

	return hc
}

const defaultConfig = `# devflow configuration

# Timeout applied to every external process (git, package managers, build tools).
# A hung process fails with "timed out". "0" disables the timeout.
process_timeout = "30m"

# Operation journal (SQLite) and last-used project file
# Must be absolute paths or start with ~
# journal_path = "~/.devflow/journal.db"
# history_path = "~/.devflow/history.json"

# Project used when -p/--project is not given
# default_project = "app"

# Projects
#
# [projects.app]
# dir = "~/code/app"                 # required
# repository_url = "git@github.com:acme/app.git"
# default_branch = "main"            # tried before develop, main, master
# save_preference = "stash"          # stash or branch
# toolchain = "react-native"         # node, react-native, vite, nextjs
# package_manager = "yarn"           # npm, yarn, pnpm, bun
# platform = "ios"
# device = "iPhone 15"
#
# Custom commands run their operations in order and stop at the first
# failure unless continue_on_error is set.
#
# [[projects.app.commands]]
# name = "ci"
# description = "Install, lint and test"
# continue_on_error = false
# operations = [
#   { type = "install" },
#   { type = "run_script", params = { scriptName = "lint" } },
#   { type = "test", params = { coverage = true } },
# ]
#
# Operation types: clean_slate, save, update, install, build, test, run,
# reset, pod_install, fresh, switch_changeset, run_script, custom

# Hooks - run shell commands after successful operations
#
# [hooks.notify]
# command = "osascript -e 'display notification \"{operation} done\" with title \"{project}\"'"
# description = "Desktop notification"
# on = ["build", "test"]   # operation types, or "all"
#
# Hooks run with the project directory as working directory.
#
# Available placeholders:
#   {project}   - project name
#   {dir}       - project directory
#   {operation} - operation type
#   {branch}    - current branch after the operation
`

// Init writes a commented default config file to path.
// If force is true, overwrites an existing file.
func Init(fs afero.Fs, path string, force bool) error {
	if !force {
		if exists, _ := afero.Exists(fs, path); exists {
			return errors.New("config file already exists: " + path)
		}
	}

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return afero.WriteFile(fs, path, []byte(defaultConfig), 0o644)
}
