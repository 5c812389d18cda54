package sfx

import (
	"github.com/milk9111/footfall/footstep"
)

// Play is one recorded one-shot.
type Play struct {
	At    float64
	Clip  footstep.Clip
	Pitch float64
}

// Recorder is a headless footstep.Output. It simulates clip length from the
// bank (or a fixed length) so IsPlaying behaves like a real source.
type Recorder struct {
	bank      *Bank
	clipLen   float64
	now       float64
	remaining float64
	plays     []Play
}

// NewRecorder simulates playback using bank durations. A nil bank makes
// every clip last clipLen seconds.
func NewRecorder(bank *Bank, clipLen float64) *Recorder {
	return &Recorder{bank: bank, clipLen: clipLen}
}

func (r *Recorder) IsPlaying() bool { return r.remaining > 0 }

func (r *Recorder) PlayOneShot(clip footstep.Clip, pitch float64) {
	length := r.clipLen
	if r.bank != nil {
		length = r.bank.Duration(clip.File, pitch)
	}
	r.remaining = length
	r.plays = append(r.plays, Play{At: r.now, Clip: clip, Pitch: pitch})
}

// Advance moves simulated playback forward by dt seconds.
func (r *Recorder) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	r.now += dt
	r.remaining -= dt
	if r.remaining < 0 {
		r.remaining = 0
	}
}

// Hold keeps the source busy for d seconds, as if something else played
// through it.
func (r *Recorder) Hold(d float64) {
	if d > r.remaining {
		r.remaining = d
	}
}

func (r *Recorder) Plays() []Play {
	return append([]Play(nil), r.plays...)
}
