// Package doctor diagnoses the environment devflow runs in and optionally
// repairs what it can.
//
// Checks run in order:
//
//   - [CategoryEnvironment]: git is in PATH.
//   - [CategoryConfig]: the config file exists and loads.
//   - [CategoryProject]: each project resolves (including its local config
//     file), its directory exists and is a git repository, and a main branch
//     resolves.
//   - [CategoryToolchain]: the binaries each project's toolchain and
//     package manager need are in PATH.
//
// # Usage
//
//	d := doctor.New(gitClient, fs, selector)
//	err := d.Run(ctx, configPath, false)  // check only
//	err := d.Run(ctx, configPath, true)   // check and fix
//
// Fixable issues: a missing config file is initialized, a missing project
// directory is cloned from repository_url, and an unresolvable main branch
// triggers a fetch from origin.
package doctor
