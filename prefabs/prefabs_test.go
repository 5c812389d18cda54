package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedPrefabsDecode(t *testing.T) {
	tests := []struct {
		file       string
		components []string
	}{
		{"player.yaml", []string{"transform", "input", "physics_body", "footstep"}},
		{"walker.yaml", []string{"transform", "character_controller", "track", "footstep"}},
		{"stumbler.yaml", []string{"transform", "character_controller", "track", "footstep"}},
		{"faller.yaml", []string{"transform", "character_controller", "track", "footstep"}},
	}

	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			spec, err := LoadEntityBuildSpec(tc.file)
			require.NoError(t, err)
			for _, name := range tc.components {
				assert.Contains(t, spec.Components, name)
			}

			fs, err := DecodeComponentSpec[FootstepComponentSpec](spec.Components["footstep"])
			require.NoError(t, err)
			assert.NotEmpty(t, fs.Clips)
			assert.Positive(t, fs.Rate)
		})
	}
}

func TestFootstepSpecOptionalThresholds(t *testing.T) {
	spec, err := DecodeComponentSpec[FootstepComponentSpec](map[string]any{
		"rate":           0.3,
		"walk_threshold": 0,
	})
	require.NoError(t, err)
	require.NotNil(t, spec.WalkThreshold)
	assert.Zero(t, *spec.WalkThreshold)
	assert.Nil(t, spec.SprintThreshold)
	assert.Nil(t, spec.FallThreshold)

	empty, err := DecodeComponentSpec[FootstepComponentSpec](nil)
	require.NoError(t, err)
	assert.Zero(t, empty.Rate)
}

func TestLoadSimulationSpec(t *testing.T) {
	sim, err := LoadSimulationSpec("sim_walk.yaml")
	require.NoError(t, err)
	assert.Equal(t, "stumbler.yaml", sim.Prefab)
	assert.Equal(t, 0.05, sim.Dt)
	require.Len(t, sim.Holds, 1)
	assert.Equal(t, HoldSpec{At: 1.6, Duration: 0.5}, sim.Holds[0])

	fall, err := LoadSimulationSpec("prefabs/sim_fall.yaml")
	require.NoError(t, err)
	assert.Equal(t, "faller.yaml", fall.Prefab)

	_, err = LoadSimulationSpec("missing.yaml")
	assert.Error(t, err)
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"pace.tengo", "scripts/pace.tengo", "prefabs/scripts/walk_then_fall.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "vx")
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"player.yaml", "player.yaml"},
		{"prefabs/player.yaml", "player.yaml"},
		{"/home/me/footfall/prefabs/walker.yaml", "walker.yaml"},
		{"/home/me/footfall/prefabs/scripts/pace.tengo", "scripts/pace.tengo"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, Name(tc.in), tc.in)
	}
}

func TestWatcherReportsPrefabWrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "prefabs")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "walker.yaml"), []byte("name: walker\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, "walker.yaml", name)
	case <-time.After(5 * time.Second):
		t.Fatal("no watcher event")
	}

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
