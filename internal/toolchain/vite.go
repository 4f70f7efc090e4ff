package toolchain

import (
	"context"

	"github.com/raphi011/devflow/internal/project"
)

// Vite drives the vite and vitest CLIs through npx.
type Vite struct {
	base
}

func (v *Vite) Name() string            { return NameVite }
func (v *Vite) DefaultPlatform() string { return "web" }
func (v *Vite) Binaries() []string      { return []string{"node", "npx"} }

func viteMode(mode string) string {
	if IsRelease(mode) {
		return "production"
	}
	return "development"
}

func (v *Vite) Build(ctx context.Context, dir, mode, _ string) project.Result {
	return v.step(ctx, dir, "Build ("+viteMode(mode)+")", "npx", "vite", "build", "--mode", viteMode(mode))
}

// Run starts the dev server in debug mode and serves the production build
// in release mode.
func (v *Vite) Run(ctx context.Context, dir, _, _, mode string) project.Result {
	if IsRelease(mode) {
		return v.step(ctx, dir, "Preview", "npx", "vite", "preview", "--mode", viteMode(mode))
	}
	return v.step(ctx, dir, "Dev server", "npx", "vite", "--mode", viteMode(mode))
}

func (v *Vite) Test(ctx context.Context, dir, testFile string, coverage bool) project.Result {
	args := []string{"vitest", "run"}
	if testFile != "" {
		args = append(args, testFile)
	}
	if coverage {
		args = append(args, "--coverage")
	}
	return v.step(ctx, dir, "Tests", "npx", args...)
}

func (v *Vite) Reset(_ context.Context, dir string) project.Result {
	return v.removeAll(dir, "node_modules", "dist")
}
