// Package config handles loading and validation of devflow configuration.
//
// Configuration is read from ~/.config/devflow/config.toml, or from the file
// named by DEVFLOW_CONFIG. A missing file yields Default().
//
// # Key Settings
//
//   - process_timeout: per-process timeout as a Go duration (default "30m", "0" disables)
//   - journal_path: SQLite operation journal (default ~/.devflow/journal.db)
//   - history_path: last-used project file (default ~/.devflow/history.json)
//   - default_project: project used when -p is not given
//
// # Projects
//
// Projects are defined in [projects.NAME] sections:
//
//	[projects.app]
//	dir = "~/code/app"
//	toolchain = "react-native"
//	save_preference = "stash"
//
//	[[projects.app.commands]]
//	name = "ci"
//	operations = [
//	  { type = "install" },
//	  { type = "test", params = { coverage = true } },
//	]
//
// A project directory may contain .devflow.toml or .devflow.yaml with the
// same project keys (except dir) and [hooks.NAME] sections. Local values
// override the global project; commands are replaced by name.
//
// # Hooks
//
// Hooks run after successful operations listed in "on" ("all" matches every
// operation):
//
//	[hooks.notify]
//	command = "notify-send 'devflow: {operation} finished in {project}'"
//	on = ["fresh", "switch_changeset"]
//
// # Path Validation
//
// Paths must be absolute or start with ~ (no relative paths like "." or "..")
// to avoid confusion about the working directory.
package config
