package component

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/footfall/footstep"
	"github.com/milk9111/footfall/motion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type busyOutput struct{ playing bool }

func (b *busyOutput) IsPlaying() bool                    { return b.playing }
func (b *busyOutput) PlayOneShot(footstep.Clip, float64) { b.playing = true }

func TestFootstepSnapshot(t *testing.T) {
	var nilFootstep *Footstep
	assert.Equal(t, FootstepSnapshot{}, nilFootstep.Snapshot())

	ctrl := &CharacterController{Motion: mgl64.Vec3{0.3, 0, 0}}
	src, _, err := motion.ResolveSource(nil, ctrl)
	require.NoError(t, err)

	out := &busyOutput{}
	trig, err := footstep.New(footstep.Config{
		Rate:       0.5,
		Thresholds: motion.DefaultThresholds(),
		Clips:      []footstep.Clip{{Name: "step"}},
	}, out)
	require.NoError(t, err)

	fs := &Footstep{Source: src, Trigger: trig, Velocity: ctrl.Motion, Flags: motion.Flags{Walking: true}}
	ev, err := trig.Tick(0.1, fs.Flags)
	require.NoError(t, err)
	fs.LastEvent = ev
	fs.Fired = 1

	snap := fs.Snapshot()
	assert.Equal(t, motion.SourceController, snap.Source)
	assert.True(t, snap.Walking)
	assert.True(t, snap.Playing)
	assert.Equal(t, footstep.Cooling, snap.State)
	assert.Equal(t, 0.5, snap.Cooldown)
	require.NotNil(t, snap.LastEvent)

	// the snapshot is a copy
	snap.LastEvent.Pitch = 0
	assert.NotZero(t, fs.LastEvent.Pitch)

	lines := snap.Lines()
	assert.Len(t, lines, 6)
	assert.Contains(t, lines[0], "controller")
	assert.Contains(t, lines[3], "cooling")

	data, err := snap.YAML()
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, yaml.Unmarshal(data, &doc))
	assert.Equal(t, "controller", doc["source"])
	assert.Equal(t, "cooling", doc["state"])
	assert.Equal(t, "step", doc["last_clip"])
	assert.Equal(t, 1, doc["fired"])
}
