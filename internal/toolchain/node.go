package toolchain

import (
	"context"

	"github.com/raphi011/devflow/internal/project"
)

// Node runs package.json scripts. It is the fallback toolchain.
type Node struct {
	base
}

func (n *Node) Name() string            { return NameNode }
func (n *Node) DefaultPlatform() string { return "node" }
func (n *Node) Binaries() []string      { return []string{"node"} }

// Build runs the "build" script. Mode and platform are not passed through;
// package scripts decide for themselves.
func (n *Node) Build(ctx context.Context, dir, mode, _ string) project.Result {
	pm := n.detectPackageManager(dir)
	return n.step(ctx, dir, "Build ("+modeLabel(mode)+")", pm, "run", "build")
}

// Run runs the "dev" script in debug mode and "start" in release mode.
func (n *Node) Run(ctx context.Context, dir, _, _, mode string) project.Result {
	pm := n.detectPackageManager(dir)
	script := "dev"
	if IsRelease(mode) {
		script = "start"
	}
	return n.step(ctx, dir, "Run ("+script+")", pm, "run", script)
}

func (n *Node) Reset(_ context.Context, dir string) project.Result {
	return n.removeAll(dir, "node_modules", "dist", "build")
}

func modeLabel(mode string) string {
	if IsRelease(mode) {
		return ModeRelease
	}
	return ModeDebug
}
