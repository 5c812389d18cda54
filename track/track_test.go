package track

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyframes(t *testing.T) {
	k, err := ParseKeyframes([]byte(`
segments:
  - duration: 1
    velocity: [0.2, 0, 0]
  - duration: 0.5
    velocity: [0.2, 0.3, 0]
`))
	require.NoError(t, err)
	assert.Equal(t, 1.5, k.Duration())

	cases := []struct {
		t    float64
		want mgl64.Vec3
	}{
		{0, mgl64.Vec3{0.2, 0, 0}},
		{0.99, mgl64.Vec3{0.2, 0, 0}},
		{1, mgl64.Vec3{0.2, 0.3, 0}},
		{10, mgl64.Vec3{0.2, 0.3, 0}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, k.At(c.t), "t=%v", c.t)
	}
}

func TestKeyframesValidation(t *testing.T) {
	_, err := NewKeyframes(nil)
	require.ErrorIs(t, err, ErrEmptyTrack)

	_, err = NewKeyframes([]Segment{{Duration: 0}})
	require.Error(t, err)

	_, err = ParseKeyframes([]byte("segments: [oops"))
	require.Error(t, err)
}

func TestConstant(t *testing.T) {
	c := Constant{1, 2, 3}
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, c.At(42))
	assert.Zero(t, c.Duration())
}

func TestScript(t *testing.T) {
	src := []byte(`
duration = 2.0
vx = 0.0
vy = 0.0
vz = 0.0
if t < 1.0 {
	vx = 0.25
} else {
	vy = -1.5
}
`)
	s, err := NewScript("walk_then_fall", src)
	require.NoError(t, err)
	assert.Equal(t, 2.0, s.Duration())

	assert.Equal(t, mgl64.Vec3{0.25, 0, 0}, s.At(0.5))
	assert.Equal(t, mgl64.Vec3{0, -1.5, 0}, s.At(1.5))
	assert.NoError(t, s.Err())
}

func TestScriptCompileError(t *testing.T) {
	_, err := NewScript("broken", []byte(`vx = (`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}
