package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/devflow/internal/cmd"
	"github.com/raphi011/devflow/internal/git"
	"github.com/raphi011/devflow/internal/project"
	"github.com/raphi011/devflow/internal/toolchain"
)

// newGitEngine returns an engine backed by real git and a repository with
// origin. main is pushed; changeset/x exists locally.
func newGitEngine(t *testing.T) (*Engine, *git.Client, project.Project) {
	t.Helper()
	ctx := context.Background()
	runner := cmd.NewExecRunner(0)
	client := git.New(runner)

	tmp, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	origin := filepath.Join(tmp, "origin.git")
	repo := filepath.Join(tmp, "repo")

	mustGit := func(dir string, args ...string) {
		t.Helper()
		require.NoError(t, client.Run(ctx, dir, args...), "git %v", args)
	}
	mustGit("", "init", "--bare", "-b", "main", origin)
	mustGit("", "clone", origin, repo)
	mustGit(repo, "config", "user.email", "test@test.com")
	mustGit(repo, "config", "user.name", "Test User")
	mustGit(repo, "config", "commit.gpgsign", "false")
	require.NoError(t, os.WriteFile(filepath.Join(repo, "README.md"), []byte("# app\n"), 0o644))
	mustGit(repo, "add", "README.md")
	mustGit(repo, "commit", "-m", "initial")
	mustGit(repo, "push", "-u", "origin", "main")
	mustGit(repo, "branch", "changeset/x")
	mustGit(repo, "push", "origin", "main:refs/heads/changeset/foo")
	mustGit(repo, "fetch", "origin")

	selector := func(id string) toolchain.Toolchain { return toolchain.ByName(id, runner, afero.NewOsFs()) }
	e := New(client, selector)
	return e, client, project.Project{Name: "app", WorkingDirectory: repo}
}

func TestSwitchChangeset_DirtyTreeRealRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e, client, p := newGitEngine(t)
	require.NoError(t, os.WriteFile(filepath.Join(p.WorkingDirectory, "README.md"), []byte("# edited\n"), 0o644))

	res := e.Execute(ctx, project.NewOperation(project.SwitchChangeset,
		project.ParamBranchName, "changeset/x",
		project.ParamBranchType, BranchLocal), p)

	require.True(t, res.Success, res.Error)
	assert.Contains(t, res.Message, "Switched to changeset/x")
	assert.Equal(t, "changeset/x", client.CurrentBranch(ctx, p.WorkingDirectory))
	assert.Equal(t, 1, client.StashCount(ctx, p.WorkingDirectory))
	assert.False(t, client.HasUncommittedChanges(ctx, p.WorkingDirectory))
}

func TestSwitchChangeset_RemoteRealRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e, client, p := newGitEngine(t)

	res := e.Execute(ctx, project.NewOperation(project.SwitchChangeset,
		project.ParamBranchName, "origin/changeset/foo",
		project.ParamBranchType, BranchRemote), p)

	require.True(t, res.Success, res.Error)
	assert.Equal(t, "changeset/foo", client.CurrentBranch(ctx, p.WorkingDirectory))
	assert.False(t, client.BranchExists(ctx, p.WorkingDirectory, "changeset/changeset/foo"))

	cs := e.ResolveChangesets(ctx, p, false)
	for _, rb := range cs.Unsynced {
		assert.NotEqual(t, "origin/changeset/foo", rb.Branch, "tracked branch must not be unsynced")
	}
}

func TestFresh_RealRepository(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	e, client, p := newGitEngine(t)

	res := e.Execute(ctx, project.NewOperation(project.Fresh, project.ParamChangesetName, "login"), p)
	require.True(t, res.Success, res.Error)
	assert.Equal(t, "changeset/login", client.CurrentBranch(ctx, p.WorkingDirectory))

	state, err := e.InspectRepositoryState(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, "main", state.MainBranch)
	assert.True(t, state.Divergence.InSync())
	assert.False(t, state.IsMainBranch)

	again := e.Execute(ctx, project.NewOperation(project.Fresh, project.ParamChangesetName, "login"), p)
	require.True(t, again.Success, again.Error)
	assert.Contains(t, again.Message, "Resumed")
}
