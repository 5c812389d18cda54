package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLerp(t *testing.T) {
	assert.Equal(t, float32(0), Lerp(0, 10, 0))
	assert.Equal(t, float32(5), Lerp(0, 10, 0.5))
	assert.Equal(t, float32(10), Lerp(0, 10, 1))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-1, 0, 1))
	assert.Equal(t, 0.25, Clamp(0.25, 0, 1))
	assert.Equal(t, 1.0, Clamp(3, 0, 1))
}
