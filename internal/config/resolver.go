package config

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/raphi011/devflow/internal/project"
)

// Resolved is a project with its local overrides applied.
type Resolved struct {
	Project project.Project
	Hooks   HooksConfig
	// LocalPath is the local config file that was merged, if any.
	LocalPath string
}

// Resolver provides lazy per-project config resolution with caching.
// It loads and merges local config files with the global config on demand.
type Resolver struct {
	fs     afero.Fs
	global *Config
	cache  map[string]*Resolved // project name -> resolved project
}

// NewResolver creates a new Resolver backed by the given global config.
func NewResolver(fs afero.Fs, global *Config) *Resolver {
	return &Resolver{
		fs:     fs,
		global: global,
		cache:  make(map[string]*Resolved),
	}
}

// Resolve returns the effective project for name, merging any local config
// found in its directory. Results are cached per name.
func (r *Resolver) Resolve(name string) (*Resolved, error) {
	if cached, ok := r.cache[name]; ok {
		return cached, nil
	}

	pc, ok := r.global.Projects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}

	local, err := LoadLocal(r.fs, pc.Dir)
	if err != nil {
		return nil, err
	}

	merged := MergeLocal(pc, local)
	p, err := merged.Project(name)
	if err != nil {
		return nil, err
	}

	resolved := &Resolved{Project: p, Hooks: r.global.Hooks}
	if local != nil {
		resolved.Hooks = mergeHooks(r.global.Hooks, local.Hooks)
		resolved.LocalPath = local.Path
	}
	r.cache[name] = resolved
	return resolved, nil
}

// Global returns the global config (without any local overrides).
func (r *Resolver) Global() *Config {
	return r.global
}
