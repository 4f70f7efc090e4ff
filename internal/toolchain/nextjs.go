package toolchain

import (
	"context"

	"github.com/raphi011/devflow/internal/project"
)

// NextJS drives the next CLI through npx.
type NextJS struct {
	base
}

func (n *NextJS) Name() string            { return NameNextJS }
func (n *NextJS) DefaultPlatform() string { return "web" }
func (n *NextJS) Binaries() []string      { return []string{"node", "npx"} }

func (n *NextJS) Build(ctx context.Context, dir, mode, _ string) project.Result {
	args := []string{"next", "build"}
	if !IsRelease(mode) {
		args = append(args, "--debug")
	}
	return n.step(ctx, dir, "Build ("+modeLabel(mode)+")", "npx", args...)
}

// Run starts next dev in debug mode and next start in release mode.
func (n *NextJS) Run(ctx context.Context, dir, _, _, mode string) project.Result {
	sub := "dev"
	if IsRelease(mode) {
		sub = "start"
	}
	return n.step(ctx, dir, "Run (next "+sub+")", "npx", "next", sub)
}

func (n *NextJS) Reset(_ context.Context, dir string) project.Result {
	return n.removeAll(dir, "node_modules", ".next", "out")
}
