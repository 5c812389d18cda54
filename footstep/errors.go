package footstep

import "errors"

var (
	ErrEmptyClipSet = errors.New("footstep: clip set is empty")
	ErrNoOutput     = errors.New("footstep: audio output is nil")

	// ErrAlreadyPlaying means the gate opened while the output was still
	// playing the previous step. Cooldown accounting should make this
	// unreachable; it points at a clock or external mutation bug.
	ErrAlreadyPlaying = errors.New("footstep: output still playing when gate opened")
)
