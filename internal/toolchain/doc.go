// Package toolchain runs build, test and run commands for a project type.
//
// Each supported project type (plain node, React Native, Vite, Next.js)
// implements Toolchain by shelling out to its package manager and CLI
// through a cmd.Runner. Every method returns a project.Result; process
// failures are reported in the result, never as a Go error.
//
// ByName selects an implementation from the configured toolchain id and
// falls back to Node for unknown ids.
package toolchain
