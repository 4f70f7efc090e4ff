package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOperationType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    OperationType
		wantErr bool
	}{
		{"build", Build, false},
		{"switch_changeset", SwitchChangeset, false},
		{"switch-changeset", SwitchChangeset, false},
		{" pod_install ", PodInstall, false},
		{"deploy", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := ParseOperationType(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOperationTypeIsGitWorkflow(t *testing.T) {
	t.Parallel()

	git := map[OperationType]bool{CleanSlate: true, Save: true, Update: true, Fresh: true, SwitchChangeset: true}
	for _, typ := range OperationTypes {
		assert.Equal(t, git[typ], typ.IsGitWorkflow(), "IsGitWorkflow(%s)", typ)
	}
}

func TestNewOperation(t *testing.T) {
	t.Parallel()

	op := NewOperation(Build, ParamPlatform, "ios", ParamMode, "release", "dangling")
	assert.Equal(t, Build, op.Type)
	assert.Equal(t, Params{ParamPlatform: "ios", ParamMode: "release"}, op.Params)

	bare := NewOperation(Install)
	assert.Nil(t, bare.Params)
	assert.Equal(t, "", bare.Params.Get(ParamPackageManager))
}

func TestParamsBool(t *testing.T) {
	t.Parallel()

	p := Params{"coverage": "true", "other": "nope"}
	assert.True(t, p.Bool("coverage"))
	assert.False(t, p.Bool("other"))
	assert.False(t, p.Bool("missing"))
}

func TestResolve(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "android", Resolve("android", "ios", "web"))
	assert.Equal(t, "ios", Resolve("", "ios", "web"))
	assert.Equal(t, "web", Resolve("", "", "web"))
}

func TestProjectCommand(t *testing.T) {
	t.Parallel()

	p := Project{Commands: []CustomCommand{{Name: "ship"}, {Name: "reset-all"}}}

	cmd, ok := p.Command("reset-all")
	require.True(t, ok)
	assert.Equal(t, "reset-all", cmd.Name)

	_, ok = p.Command("missing")
	assert.False(t, ok)
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("empty", func(t *testing.T) {
		t.Parallel()
		got := Aggregate(nil)
		assert.True(t, got.Success)
	})

	t.Run("all pass", func(t *testing.T) {
		t.Parallel()
		got := Aggregate([]Result{Ok("a"), Ok("b")})
		assert.True(t, got.Success)
		assert.Equal(t, "All 2 operations succeeded", got.Message)
		assert.Empty(t, got.Error)
	})

	t.Run("first failure error wins", func(t *testing.T) {
		t.Parallel()
		got := Aggregate([]Result{
			Ok("a"),
			Fail("Build failed", "xcodebuild exited 65"),
			Fail("Test failed", "jest exited 1"),
		})
		assert.False(t, got.Success)
		assert.Equal(t, "xcodebuild exited 65", got.Error)
		assert.Contains(t, got.Message, "2 of 3 operations failed")
	})
}

func TestSavePreferenceValid(t *testing.T) {
	t.Parallel()

	assert.True(t, SaveStash.Valid())
	assert.True(t, SaveBranch.Valid())
	assert.False(t, SavePreference("commit").Valid())
}
