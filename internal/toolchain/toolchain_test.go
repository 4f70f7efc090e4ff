package toolchain

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raphi011/devflow/internal/cmd"
	"github.com/raphi011/devflow/internal/cmd/cmdtest"
)

const projectDir = "/work/app"

func newFS(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(projectDir, 0o755))
	for _, f := range files {
		path := filepath.Join(projectDir, f)
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, afero.WriteFile(fs, path, []byte("x"), 0o644))
	}
	return fs
}

func TestCanonical(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id    string
		want  string
		known bool
	}{
		{"", NameNode, true},
		{"node", NameNode, true},
		{"React-Native", NameReactNative, true},
		{"rn", NameReactNative, true},
		{"vite", NameVite, true},
		{"next.js", NameNextJS, true},
		{"flutter", NameNode, false},
	}

	for _, tt := range tests {
		got, known := Canonical(tt.id)
		assert.Equal(t, tt.want, got, "Canonical(%q)", tt.id)
		assert.Equal(t, tt.known, known, "Canonical(%q) known", tt.id)
	}
}

func TestByName_FallsBackToNode(t *testing.T) {
	t.Parallel()

	runner := cmdtest.New()
	fs := afero.NewMemMapFs()

	assert.Equal(t, NameReactNative, ByName("react-native", runner, fs).Name())
	assert.Equal(t, NameVite, ByName("vite", runner, fs).Name())
	assert.Equal(t, NameNextJS, ByName("nextjs", runner, fs).Name())
	assert.Equal(t, NameNode, ByName("unknown-toolchain", runner, fs).Name())
	assert.Equal(t, NameNode, ByName("", runner, fs).Name())
}

func TestInstall(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("explicit package manager", func(t *testing.T) {
		t.Parallel()
		runner := cmdtest.New()
		tc := ByName(NameNode, runner, newFS(t))

		res := tc.Install(ctx, projectDir, "pnpm")
		assert.True(t, res.Success, res.Error)
		assert.Equal(t, []string{"pnpm install"}, runner.Commands())
		assert.Equal(t, projectDir, runner.Calls()[0].Dir)
	})

	t.Run("detected from lock file", func(t *testing.T) {
		t.Parallel()
		runner := cmdtest.New()
		tc := ByName(NameVite, runner, newFS(t, "yarn.lock"))

		res := tc.Install(ctx, projectDir, "")
		assert.True(t, res.Success)
		assert.Equal(t, []string{"yarn install"}, runner.Commands())
	})

	t.Run("unsupported package manager", func(t *testing.T) {
		t.Parallel()
		runner := cmdtest.New()
		tc := ByName(NameNode, runner, newFS(t))

		res := tc.Install(ctx, projectDir, "maven")
		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "maven")
		assert.Empty(t, runner.Calls())
	})

	t.Run("failure carries stderr", func(t *testing.T) {
		t.Parallel()
		runner := cmdtest.New().On("npm install", cmdtest.Exit("ERESOLVE could not resolve\n"))
		tc := ByName(NameNode, runner, newFS(t))

		res := tc.Install(ctx, projectDir, "npm")
		assert.False(t, res.Success)
		assert.Equal(t, "Install (npm) failed", res.Message)
		assert.Equal(t, "ERESOLVE could not resolve", res.Error)
	})

	t.Run("timeout", func(t *testing.T) {
		t.Parallel()
		runner := cmdtest.New().On("npm install", cmdtest.Error(cmd.ErrTimedOut))
		tc := ByName(NameNode, runner, newFS(t))

		res := tc.Install(ctx, projectDir, "npm")
		assert.False(t, res.Success)
		assert.Equal(t, "timed out", res.Error)
	})
}

func TestReactNative_BuildAndRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name     string
		build    bool
		platform string
		device   string
		mode     string
		want     string
	}{
		{"build ios debug", true, PlatformIOS, "", ModeDebug, "npx react-native build-ios --mode Debug"},
		{"build android release", true, PlatformAndroid, "", ModeRelease, "npx react-native build-android --mode release"},
		{"run ios simulator", false, PlatformIOS, "iPhone 15", ModeDebug, "npx react-native run-ios --mode Debug --simulator iPhone 15"},
		{"run android device", false, PlatformAndroid, "emulator-5554", "", "npx react-native run-android --mode debug --deviceId emulator-5554"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runner := cmdtest.New()
			tc := ByName(NameReactNative, runner, newFS(t))

			if tt.build {
				assert.True(t, tc.Build(ctx, projectDir, tt.mode, tt.platform).Success)
			} else {
				assert.True(t, tc.Run(ctx, projectDir, tt.platform, tt.device, tt.mode).Success)
			}
			assert.Equal(t, []string{tt.want}, runner.Commands())
		})
	}

	t.Run("unsupported platform", func(t *testing.T) {
		t.Parallel()
		runner := cmdtest.New()
		tc := ByName(NameReactNative, runner, newFS(t))

		res := tc.Build(ctx, projectDir, ModeDebug, "windows")
		assert.False(t, res.Success)
		assert.Contains(t, res.Message, "windows")
		assert.Empty(t, runner.Calls())
	})
}

func TestPodInstall(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	runner := cmdtest.New()
	rn := ByName(NameReactNative, runner, newFS(t, "ios/Podfile"))
	res := rn.PodInstall(ctx, projectDir)
	require.True(t, res.Success, res.Error)
	require.Len(t, runner.Calls(), 1)
	assert.Equal(t, filepath.Join(projectDir, "ios"), runner.Calls()[0].Dir)
	assert.Equal(t, "pod install", runner.Commands()[0])

	noIOS := ByName(NameReactNative, cmdtest.New(), newFS(t))
	assert.False(t, noIOS.PodInstall(ctx, projectDir).Success)

	vite := ByName(NameVite, cmdtest.New(), newFS(t, "ios/Podfile"))
	assert.False(t, vite.PodInstall(ctx, projectDir).Success)
}

func TestTest(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name      string
		toolchain string
		lockFile  string
		file      string
		coverage  bool
		want      string
	}{
		{"npm plain", NameNode, "", "", false, "npm test"},
		{"npm args", NameNode, "", "src/a.test.ts", true, "npm test -- src/a.test.ts --coverage"},
		{"yarn args", NameNextJS, "yarn.lock", "a.test.ts", false, "yarn test a.test.ts"},
		{"bun", NameNode, "bun.lockb", "", true, "bun run test --coverage"},
		{"vitest", NameVite, "", "a.test.ts", true, "npx vitest run a.test.ts --coverage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var files []string
			if tt.lockFile != "" {
				files = append(files, tt.lockFile)
			}
			runner := cmdtest.New()
			tc := ByName(tt.toolchain, runner, newFS(t, files...))

			assert.True(t, tc.Test(ctx, projectDir, tt.file, tt.coverage).Success)
			assert.Equal(t, []string{tt.want}, runner.Commands())
		})
	}
}

func TestModes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	tests := []struct {
		name      string
		toolchain string
		build     bool
		mode      string
		want      string
	}{
		{"node build", NameNode, true, ModeRelease, "npm run build"},
		{"node run debug", NameNode, false, ModeDebug, "npm run dev"},
		{"node run release", NameNode, false, ModeRelease, "npm run start"},
		{"vite build", NameVite, true, ModeRelease, "npx vite build --mode production"},
		{"vite dev", NameVite, false, ModeDebug, "npx vite --mode development"},
		{"vite preview", NameVite, false, "production", "npx vite preview --mode production"},
		{"next build debug", NameNextJS, true, ModeDebug, "npx next build --debug"},
		{"next build release", NameNextJS, true, ModeRelease, "npx next build"},
		{"next dev", NameNextJS, false, ModeDebug, "npx next dev"},
		{"next start", NameNextJS, false, ModeRelease, "npx next start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			runner := cmdtest.New()
			tc := ByName(tt.toolchain, runner, newFS(t))

			if tt.build {
				assert.True(t, tc.Build(ctx, projectDir, tt.mode, tc.DefaultPlatform()).Success)
			} else {
				assert.True(t, tc.Run(ctx, projectDir, tc.DefaultPlatform(), "", tt.mode).Success)
			}
			assert.Equal(t, []string{tt.want}, runner.Commands())
		})
	}
}

func TestReset(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fs := newFS(t, "node_modules/react/index.js", "ios/Pods/Manifest.lock", "ios/Podfile", "src/App.tsx")
	tc := ByName(NameReactNative, cmdtest.New(), fs)

	res := tc.Reset(ctx, projectDir)
	require.True(t, res.Success, res.Error)
	assert.Contains(t, res.Message, "node_modules")

	for _, gone := range []string{"node_modules", "ios/Pods"} {
		exists, _ := afero.Exists(fs, filepath.Join(projectDir, gone))
		assert.False(t, exists, "%s should be removed", gone)
	}
	for _, kept := range []string{"ios/Podfile", "src/App.tsx"} {
		exists, _ := afero.Exists(fs, filepath.Join(projectDir, kept))
		assert.True(t, exists, "%s should be kept", kept)
	}

	again := tc.Reset(ctx, projectDir)
	assert.True(t, again.Success)
	assert.Equal(t, "Nothing to reset", again.Message)
}

func TestRunScriptAndCustomCommand(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	runner := cmdtest.New().On("sh -c exit 3", cmdtest.Exit(""))
	tc := ByName(NameNode, runner, newFS(t, "pnpm-lock.yaml"))

	assert.True(t, tc.RunScript(ctx, projectDir, "lint", "").Success)
	assert.True(t, tc.RunScript(ctx, projectDir, "lint", "yarn").Success)
	assert.False(t, tc.RunScript(ctx, projectDir, "", "").Success)

	assert.True(t, tc.ExecuteCustomCommand(ctx, "make generate", projectDir).Success)
	failed := tc.ExecuteCustomCommand(ctx, "exit 3", projectDir)
	assert.False(t, failed.Success)
	assert.Equal(t, "Command failed", failed.Message)
	assert.False(t, tc.ExecuteCustomCommand(ctx, "  ", projectDir).Success)

	assert.Equal(t, []string{
		"pnpm run lint",
		"yarn run lint",
		"sh -c make generate",
		"sh -c exit 3",
	}, runner.Commands())
}

func TestIsRelease(t *testing.T) {
	t.Parallel()

	for _, m := range []string{"release", "Release", "production", "prod"} {
		assert.True(t, IsRelease(m), m)
	}
	for _, m := range []string{"", "debug", "development"} {
		assert.False(t, IsRelease(m), m)
	}
}
