package sfx

import (
	"testing"

	"github.com/milk9111/footfall/footstep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPitchRate(t *testing.T) {
	assert.Equal(t, 44100, pitchRate(44100, 1))
	assert.Equal(t, 48510, pitchRate(44100, 1.1))
	assert.Equal(t, 39690, pitchRate(44100, 0.9))
	assert.Equal(t, 44100, pitchRate(44100, 0))
}

func TestBankDuration(t *testing.T) {
	// one second of 16-bit stereo at 1000 Hz
	b := NewBank(1000, map[string][]byte{"step.wav": make([]byte, 4000)})

	assert.InDelta(t, 1.0, b.Duration("step.wav", 1), 1e-9)
	assert.InDelta(t, 0.5, b.Duration("step.wav", 2), 1e-9)
	assert.Zero(t, b.Duration("missing.wav", 1))

	_, err := b.PCM("missing.wav")
	require.ErrorIs(t, err, ErrUnknownClip)
}

func TestLoadBank(t *testing.T) {
	clips := []footstep.Clip{
		{Name: "a", File: "footstep_01.wav"},
		{Name: "b", File: "footstep_02.wav"},
		{Name: "a_again", File: "footstep_01.wav"},
	}
	b, err := LoadBank(clips)
	require.NoError(t, err)
	assert.Greater(t, b.Duration("footstep_01.wav", 1), 0.05)

	_, err = LoadBank([]footstep.Clip{{Name: "nope", File: "nope.wav"}})
	require.Error(t, err)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder(nil, 0.2)
	assert.False(t, r.IsPlaying())

	r.PlayOneShot(footstep.Clip{Name: "a"}, 1.05)
	assert.True(t, r.IsPlaying())

	r.Advance(0.1)
	assert.True(t, r.IsPlaying())
	r.Advance(0.1)
	assert.False(t, r.IsPlaying())

	r.Hold(0.5)
	assert.True(t, r.IsPlaying())
	r.Advance(-1)
	assert.True(t, r.IsPlaying())

	plays := r.Plays()
	require.Len(t, plays, 1)
	assert.Equal(t, 1.05, plays[0].Pitch)
	assert.Zero(t, plays[0].At)
}

func TestRecorderUsesBankDuration(t *testing.T) {
	b := NewBank(1000, map[string][]byte{"step.wav": make([]byte, 400)})
	r := NewRecorder(b, 5)

	r.PlayOneShot(footstep.Clip{File: "step.wav"}, 1)
	r.Advance(0.05)
	assert.True(t, r.IsPlaying())
	r.Advance(0.06)
	assert.False(t, r.IsPlaying())
}
