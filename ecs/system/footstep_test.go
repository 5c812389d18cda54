package system

import (
	"bytes"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/footfall/ecs"
	"github.com/milk9111/footfall/ecs/component"
	"github.com/milk9111/footfall/footstep"
	"github.com/milk9111/footfall/motion"
	"github.com/milk9111/footfall/sfx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type footstepRig struct {
	w     *ecs.World
	e     ecs.Entity
	ctrl  *component.CharacterController
	out   *sfx.Recorder
	sched *ecs.Scheduler
	logs  *bytes.Buffer
}

func newFootstepRig(t *testing.T, rate, clipLen float64) *footstepRig {
	t.Helper()
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)

	ctrl := &component.CharacterController{}
	require.NoError(t, ecs.Add(w, e, component.CharacterControllerComponent.Kind(), ctrl))

	src, conflict, err := motion.ResolveSource(nil, ctrl)
	require.NoError(t, err)
	require.False(t, conflict)

	out := sfx.NewRecorder(nil, clipLen)
	cfg := footstep.DefaultConfig()
	cfg.Rate = rate
	cfg.Clips = []footstep.Clip{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	trig, err := footstep.New(cfg, out, footstep.WithRand(rand.New(rand.NewPCG(7, 11))))
	require.NoError(t, err)

	require.NoError(t, ecs.Add(w, e, component.FootstepComponent.Kind(), &component.Footstep{
		Source:  src,
		Trigger: trig,
	}))

	logs := &bytes.Buffer{}
	return &footstepRig{
		w:     w,
		e:     e,
		ctrl:  ctrl,
		out:   out,
		sched: ecs.NewScheduler(NewFootstepSystem(zerolog.New(logs))),
		logs:  logs,
	}
}

// tick runs one frame and returns the event types pushed during it.
func (r *footstepRig) tick(dt float64) []string {
	r.sched.Update(r.w, dt)
	r.out.Advance(dt)
	var types []string
	for _, ev := range r.w.Events().Drain() {
		types = append(types, ev.Type)
	}
	return types
}

func firedTicks(r *footstepRig, n int, dt float64) []int {
	var ticks []int
	for i := 1; i <= n; i++ {
		for _, typ := range r.tick(dt) {
			if typ == ecs.EventFootstep {
				ticks = append(ticks, i)
			}
		}
	}
	return ticks
}

func TestFootstepSystemCadence(t *testing.T) {
	tests := []struct {
		name   string
		motion mgl64.Vec3
		want   []int
	}{
		{"walking_x", mgl64.Vec3{0.2, 0, 0}, []int{1, 6, 11}},
		{"walking_z", mgl64.Vec3{0, 0, -0.3}, []int{1, 6, 11}},
		{"sprinting_same_cadence", mgl64.Vec3{0.8, 0, 0.8}, []int{1, 6, 11}},
		{"idle", mgl64.Vec3{0.05, 0, 0.05}, nil},
		{"falling", mgl64.Vec3{0.5, -0.4, 0}, nil},
		{"rising_counts_as_falling", mgl64.Vec3{0.5, 0.4, 0}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newFootstepRig(t, 0.5, 0.1)
			r.ctrl.Motion = tc.motion
			assert.Equal(t, tc.want, firedTicks(r, 12, 0.125))
		})
	}
}

func TestFootstepSystemResumesAfterFall(t *testing.T) {
	r := newFootstepRig(t, 0.5, 0.1)

	r.ctrl.Motion = mgl64.Vec3{0.3, -1, 0}
	assert.Empty(t, firedTicks(r, 8, 0.125))

	// the cooldown kept running while airborne
	snap, ok := Snapshot(r.w, r.e)
	require.True(t, ok)
	assert.True(t, snap.Falling)
	assert.Equal(t, footstep.Armed, snap.State)
	assert.Less(t, snap.Cooldown, 0.0)

	r.ctrl.Motion = mgl64.Vec3{0.3, 0, 0}
	assert.Equal(t, []string{ecs.EventFootstep}, r.tick(0.125))
}

func TestFootstepSystemDropsWhilePlaying(t *testing.T) {
	r := newFootstepRig(t, 0.5, 0.1)
	r.ctrl.Motion = mgl64.Vec3{0.3, 0, 0}

	require.Equal(t, []string{ecs.EventFootstep}, r.tick(0.125))
	for i := 0; i < 4; i++ {
		require.Empty(t, r.tick(0.125))
	}

	r.out.Hold(0.2)
	assert.Equal(t, []string{ecs.EventConsistency}, r.tick(0.125))
	assert.Equal(t, []string{ecs.EventConsistency}, r.tick(0.125))
	// hold expired, the expired cooldown retries immediately
	assert.Equal(t, []string{ecs.EventFootstep}, r.tick(0.125))

	snap, _ := Snapshot(r.w, r.e)
	assert.Equal(t, 2, snap.Fired)
	assert.Equal(t, 2, snap.Dropped)
	assert.Equal(t, footstep.Cooling, snap.State)
	assert.InDelta(t, 0.5, snap.Cooldown, 1e-12)
	require.NotNil(t, snap.LastEvent)
	assert.Contains(t, r.logs.String(), "footstep dropped")
	assert.Contains(t, r.logs.String(), `"level":"error"`)
}

func TestFootstepSystemEventPayload(t *testing.T) {
	r := newFootstepRig(t, 0.5, 0.1)
	r.ctrl.Motion = mgl64.Vec3{0.3, 0, 0}

	r.sched.Update(r.w, 0.125)
	events := r.w.Events().Drain()
	require.Len(t, events, 1)
	assert.Equal(t, r.e, events[0].Entity)

	payload, ok := events[0].Data.(FootstepEvent)
	require.True(t, ok)
	assert.InDelta(t, 0.125, payload.Time, 1e-12)
	assert.GreaterOrEqual(t, payload.Event.Pitch, footstep.PitchMin)
	assert.LessOrEqual(t, payload.Event.Pitch, footstep.PitchMax)

	plays := r.out.Plays()
	require.Len(t, plays, 1)
	assert.Equal(t, payload.Event.Clip, plays[0].Clip)
	assert.Equal(t, payload.Event.Pitch, plays[0].Pitch)
}

func TestSnapshotReflectsLatestSample(t *testing.T) {
	r := newFootstepRig(t, 0.5, 0.1)
	r.ctrl.Motion = mgl64.Vec3{0.6, 0, 0.6}
	r.sched.Update(r.w, 0.125)

	snap, ok := Snapshot(r.w, r.e)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{0.6, 0, 0.6}, snap.Velocity)
	assert.True(t, snap.Walking)
	assert.True(t, snap.Sprinting)
	assert.False(t, snap.Falling)
	assert.Equal(t, motion.SourceController, snap.Source)
	assert.True(t, snap.Playing)

	_, ok = Snapshot(r.w, ecs.CreateEntity(r.w))
	assert.False(t, ok)
}

func TestFootstepSystemSkipsIncompleteComponents(t *testing.T) {
	w := ecs.NewWorld()
	e := ecs.CreateEntity(w)
	require.NoError(t, ecs.Add(w, e, component.FootstepComponent.Kind(), &component.Footstep{}))

	sys := NewFootstepSystem(zerolog.Nop())
	assert.NotPanics(t, func() { sys.Update(w, 0.1) })
	assert.NotPanics(t, func() { sys.Update(nil, 0.1) })
}
