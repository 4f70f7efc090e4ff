package toolchain

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/raphi011/devflow/internal/cmd"
	"github.com/raphi011/devflow/internal/project"
)

// Toolchain identifiers accepted in project configuration.
const (
	NameNode        = "node"
	NameReactNative = "react-native"
	NameVite        = "vite"
	NameNextJS      = "nextjs"
)

// Build and run modes.
const (
	ModeDebug   = "debug"
	ModeRelease = "release"
)

// DefaultPackageManager is used when neither the operation nor the project
// names one.
const DefaultPackageManager = "npm"

// PackageManagers lists the supported package managers.
var PackageManagers = []string{"npm", "yarn", "pnpm", "bun"}

// Toolchain is the uniform command surface of one project type.
type Toolchain interface {
	// Name returns the canonical toolchain id.
	Name() string

	// DefaultPlatform is used when neither the operation nor the project
	// configuration names a platform.
	DefaultPlatform() string

	// Binaries lists executables that must be in PATH.
	Binaries() []string

	Install(ctx context.Context, dir, packageManager string) project.Result
	Build(ctx context.Context, dir, mode, platform string) project.Result
	Run(ctx context.Context, dir, platform, device, mode string) project.Result
	Test(ctx context.Context, dir, testFile string, coverage bool) project.Result

	// Reset removes generated artifacts and installed dependencies.
	Reset(ctx context.Context, dir string) project.Result

	RunScript(ctx context.Context, dir, scriptName, packageManager string) project.Result
	PodInstall(ctx context.Context, dir string) project.Result

	// ExecuteCustomCommand runs command through sh -c in dir.
	ExecuteCustomCommand(ctx context.Context, command, dir string) project.Result
}

// ByName returns the toolchain for id. Unknown ids get the Node toolchain.
func ByName(id string, runner cmd.Runner, fs afero.Fs) Toolchain {
	b := base{runner: runner, fs: fs}
	name, _ := Canonical(id)
	switch name {
	case NameReactNative:
		return &ReactNative{base: b}
	case NameVite:
		return &Vite{base: b}
	case NameNextJS:
		return &NextJS{base: b}
	default:
		return &Node{base: b}
	}
}

// Canonical maps id and its aliases onto a canonical toolchain name.
// Returns (NameNode, false) for unknown ids; the empty id is NameNode.
func Canonical(id string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(id)) {
	case "", "node", "nodejs", "npm":
		return NameNode, true
	case "react-native", "react_native", "reactnative", "rn":
		return NameReactNative, true
	case "vite":
		return NameVite, true
	case "nextjs", "next", "next.js":
		return NameNextJS, true
	}
	return NameNode, false
}

// Names lists the canonical toolchain ids.
func Names() []string {
	return []string{NameNode, NameReactNative, NameVite, NameNextJS}
}

// ValidPackageManager reports whether pm is supported.
func ValidPackageManager(pm string) bool {
	return slices.Contains(PackageManagers, pm)
}

// IsRelease reports whether mode selects an optimized build.
func IsRelease(mode string) bool {
	switch strings.ToLower(mode) {
	case ModeRelease, "production", "prod":
		return true
	}
	return false
}

// base implements the commands shared by every toolchain.
type base struct {
	runner cmd.Runner
	fs     afero.Fs
}

// step runs one external command and shapes its outcome as a Result.
func (b base) step(ctx context.Context, dir, label, name string, args ...string) project.Result {
	res, err := b.runner.Run(ctx, dir, name, args...)
	if err != nil {
		return project.Fail(label+" failed", err.Error())
	}
	if !res.ExitSuccess {
		return project.Fail(label+" failed", res.ErrorText())
	}
	return project.Ok("%s succeeded", label)
}

func (b base) Install(ctx context.Context, dir, packageManager string) project.Result {
	pm := packageManager
	if pm == "" {
		pm = b.detectPackageManager(dir)
	}
	if !ValidPackageManager(pm) {
		return unsupportedPackageManager(pm)
	}
	return b.step(ctx, dir, "Install ("+pm+")", pm, "install")
}

func (b base) RunScript(ctx context.Context, dir, scriptName, packageManager string) project.Result {
	if scriptName == "" {
		return project.Fail("No script name given", "")
	}
	pm := packageManager
	if pm == "" {
		pm = b.detectPackageManager(dir)
	}
	if !ValidPackageManager(pm) {
		return unsupportedPackageManager(pm)
	}
	return b.step(ctx, dir, "Script "+scriptName, pm, "run", scriptName)
}

// Test runs the package's test script. npm needs "--" before script args.
func (b base) Test(ctx context.Context, dir, testFile string, coverage bool) project.Result {
	pm := b.detectPackageManager(dir)
	args := []string{"test"}
	if pm == "bun" {
		args = []string{"run", "test"}
	}

	var extra []string
	if testFile != "" {
		extra = append(extra, testFile)
	}
	if coverage {
		extra = append(extra, "--coverage")
	}
	if len(extra) > 0 {
		if pm == "npm" {
			args = append(args, "--")
		}
		args = append(args, extra...)
	}
	return b.step(ctx, dir, "Tests", pm, args...)
}

func (b base) PodInstall(context.Context, string) project.Result {
	return project.Fail("pod install is only supported for react-native projects", "")
}

func (b base) ExecuteCustomCommand(ctx context.Context, command, dir string) project.Result {
	if strings.TrimSpace(command) == "" {
		return project.Fail("No command given", "")
	}
	return b.step(ctx, dir, "Command", "sh", "-c", command)
}

// removeAll deletes the given paths relative to dir and reports which
// existed.
func (b base) removeAll(dir string, paths ...string) project.Result {
	var removed []string
	for _, p := range paths {
		full := filepath.Join(dir, p)
		exists, err := afero.Exists(b.fs, full)
		if err != nil {
			return project.Fail("Reset failed", err.Error())
		}
		if !exists {
			continue
		}
		if err := b.fs.RemoveAll(full); err != nil {
			return project.Fail("Reset failed", fmt.Sprintf("remove %s: %v", p, err))
		}
		removed = append(removed, p)
	}
	if len(removed) == 0 {
		return project.Ok("Nothing to reset")
	}
	return project.Ok("Removed %s", strings.Join(removed, ", "))
}

// lockFiles maps lock files to the package manager that writes them.
var lockFiles = []struct {
	file string
	pm   string
}{
	{"bun.lock", "bun"},
	{"bun.lockb", "bun"},
	{"pnpm-lock.yaml", "pnpm"},
	{"yarn.lock", "yarn"},
	{"package-lock.json", "npm"},
}

// detectPackageManager picks the package manager from the lock file in
// dir, defaulting to npm.
func (b base) detectPackageManager(dir string) string {
	for _, lf := range lockFiles {
		if ok, _ := afero.Exists(b.fs, filepath.Join(dir, lf.file)); ok {
			return lf.pm
		}
	}
	return DefaultPackageManager
}

func unsupportedPackageManager(pm string) project.Result {
	return project.Fail(fmt.Sprintf("Unsupported package manager: %s", pm),
		"supported: "+strings.Join(PackageManagers, ", "))
}

func unsupportedPlatform(toolchain, platform string) project.Result {
	return project.Fail(fmt.Sprintf("Unsupported platform for %s: %s", toolchain, platform), "")
}
