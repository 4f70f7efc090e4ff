package engine

import (
	"context"
	"fmt"

	"github.com/raphi011/devflow/internal/project"
	"github.com/raphi011/devflow/internal/toolchain"
)

// maxCustomDepth bounds custom commands that invoke other custom commands.
const maxCustomDepth = 8

type depthKey struct{}

func customDepth(ctx context.Context) int {
	d, _ := ctx.Value(depthKey{}).(int)
	return d
}

// runToolchain resolves parameters (explicit, then project configuration,
// then toolchain default) and delegates to the project's toolchain.
func (e *Engine) runToolchain(ctx context.Context, op project.Operation, p project.Project) project.Result {
	tc := e.toolchains(p.Config.Toolchain)
	dir := p.WorkingDirectory
	params := op.Params

	platform := project.Resolve(params.Get(project.ParamPlatform), p.Config.Platform, tc.DefaultPlatform())
	mode := project.Resolve(params.Get(project.ParamMode), "", toolchain.ModeDebug)
	// An empty package manager lets the toolchain detect it from the lock file.
	pm := project.Resolve(params.Get(project.ParamPackageManager), p.Config.PackageManager, "")

	switch op.Type {
	case project.Install:
		return tc.Install(ctx, dir, pm)
	case project.Build:
		return tc.Build(ctx, dir, mode, platform)
	case project.Run:
		device := project.Resolve(params.Get(project.ParamDevice), p.Config.Device, "")
		return tc.Run(ctx, dir, platform, device, mode)
	case project.Test:
		return tc.Test(ctx, dir, params.Get(project.ParamTestFile), params.Bool(project.ParamCoverage))
	case project.Reset:
		return tc.Reset(ctx, dir)
	case project.RunScript:
		return tc.RunScript(ctx, dir, params.Get(project.ParamScriptName), pm)
	case project.PodInstall:
		return tc.PodInstall(ctx, dir)
	}
	return project.Fail(fmt.Sprintf("Unknown operation type: %s", op.Type), "")
}

// custom runs a named custom command of the project, or a shell command.
func (e *Engine) custom(ctx context.Context, op project.Operation, p project.Project) project.Result {
	if name := op.Params.Get(project.ParamName); name != "" {
		cmd, ok := p.Command(name)
		if !ok {
			return project.Fail(fmt.Sprintf("Unknown custom command: %s", name), "")
		}
		depth := customDepth(ctx)
		if depth >= maxCustomDepth {
			return project.Fail(fmt.Sprintf("Custom command %s nested too deeply", name), fmt.Sprintf("limit is %d", maxCustomDepth))
		}

		results := e.ExecuteSequence(context.WithValue(ctx, depthKey{}, depth+1), cmd.Operations, p, cmd.ContinueOnError)
		agg := project.Aggregate(results)
		agg.Message = name + ": " + agg.Message
		return agg
	}

	if command := op.Params.Get(project.ParamCommand); command != "" {
		return e.toolchains(p.Config.Toolchain).ExecuteCustomCommand(ctx, command, p.WorkingDirectory)
	}
	return project.Fail("Custom operation needs a name or command parameter", "")
}
