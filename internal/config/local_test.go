package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadLocal_None(t *testing.T) {
	t.Parallel()

	local, err := LoadLocal(afero.NewMemMapFs(), "/code/app")
	require.NoError(t, err)
	assert.Nil(t, local)
}

func TestLoadLocal_TOML(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/code/app/.devflow.toml", `
toolchain = "vite"
package_manager = "pnpm"

[[commands]]
name = "check"
operations = [{ type = "run_script", params = { scriptName = "typecheck" } }]

[hooks.notify]
enabled = false
`)

	local, err := LoadLocal(fs, "/code/app")
	require.NoError(t, err)
	require.NotNil(t, local)
	assert.Equal(t, "/code/app/.devflow.toml", local.Path)
	assert.Equal(t, "vite", local.Project.Toolchain)
	assert.Equal(t, "pnpm", local.Project.PackageManager)
	require.Len(t, local.Project.Commands, 1)
	assert.Equal(t, "typecheck", local.Project.Commands[0].Operations[0].Params["scriptName"])
	assert.False(t, local.Hooks.Hooks["notify"].IsEnabled())
}

func TestLoadLocal_YAML(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/code/app/.devflow.yaml", `
toolchain: nextjs
default_branch: develop
commands:
  - name: ci
    continue_on_error: true
    operations:
      - type: install
      - type: test
        params:
          coverage: true
hooks:
  lint:
    command: npm run lint
    on: [build]
`)

	local, err := LoadLocal(fs, "/code/app")
	require.NoError(t, err)
	require.NotNil(t, local)
	assert.Equal(t, "nextjs", local.Project.Toolchain)
	assert.Equal(t, "develop", local.Project.DefaultBranch)
	require.Len(t, local.Project.Commands, 1)
	assert.True(t, local.Project.Commands[0].ContinueOnError)
	assert.Equal(t, []string{"build"}, local.Hooks.Hooks["lint"].On)

	op, err := local.Project.Commands[0].Operations[1].Operation()
	require.NoError(t, err)
	assert.Equal(t, "true", op.Params["coverage"])
}

func TestLoadLocal_TOMLWinsOverYAML(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	writeConfig(t, fs, "/code/app/.devflow.toml", `toolchain = "vite"`)
	writeConfig(t, fs, "/code/app/.devflow.yaml", `toolchain: nextjs`)

	local, err := LoadLocal(fs, "/code/app")
	require.NoError(t, err)
	assert.Equal(t, "vite", local.Project.Toolchain)
}

func TestLoadLocal_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"dir not allowed", ".devflow.toml", `dir = "/elsewhere"`, "dir cannot be set"},
		{"bad toolchain", ".devflow.yaml", "toolchain: flutter", "toolchain"},
		{"bad yaml", ".devflow.yaml", "toolchain: [", "failed to parse"},
		{"bad hook", ".devflow.toml", "[hooks.x]\ncommand = \"true\"\non = [\"nope\"]", "hooks.x.on"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fs := afero.NewMemMapFs()
			writeConfig(t, fs, "/code/app/"+tt.file, tt.content)

			_, err := LoadLocal(fs, "/code/app")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
