package config

import "maps"

// MergeLocal merges local overrides into a global project, returning a new
// ProjectConfig without mutating global. Commands are replaced by name and
// new ones appended.
func MergeLocal(global ProjectConfig, local *LocalConfig) ProjectConfig {
	if local == nil {
		return global
	}

	merged := global
	l := local.Project

	// Simple field replace for non-zero values
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&merged.RepositoryURL, l.RepositoryURL},
		{&merged.DefaultBranch, l.DefaultBranch},
		{&merged.SavePreference, l.SavePreference},
		{&merged.Toolchain, l.Toolchain},
		{&merged.PackageManager, l.PackageManager},
		{&merged.Platform, l.Platform},
		{&merged.Device, l.Device},
	} {
		if f.src != "" {
			*f.dst = f.src
		}
	}

	merged.Commands = mergeCommands(global.Commands, l.Commands)
	return merged
}

// mergeCommands overlays local commands onto global ones by name.
// Returns a new slice (never mutates global).
func mergeCommands(global, local []CommandConfig) []CommandConfig {
	result := make([]CommandConfig, len(global))
	copy(result, global)

	index := make(map[string]int, len(result))
	for i, c := range result {
		index[c.Name] = i
	}
	for _, c := range local {
		if i, ok := index[c.Name]; ok {
			result[i] = c
			continue
		}
		index[c.Name] = len(result)
		result = append(result, c)
	}
	return result
}

// mergeHooks merges local hooks into global hooks.
// Local hooks with the same name override global hooks.
// Local hooks with enabled=false remove the global hook.
func mergeHooks(global, local HooksConfig) HooksConfig {
	merged := HooksConfig{
		Hooks: make(map[string]Hook, len(global.Hooks)),
	}

	// Copy global hooks
	maps.Copy(merged.Hooks, global.Hooks)

	// Overlay local hooks
	for name, hook := range local.Hooks {
		if !hook.IsEnabled() {
			// Disable: remove from merged
			delete(merged.Hooks, name)
			continue
		}
		merged.Hooks[name] = hook
	}

	return merged
}
