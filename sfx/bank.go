// Package sfx plays footstep clips: an ebiten-backed Voice for the game and a
// Recorder for headless runs.
package sfx

import (
	"errors"
	"fmt"
	"math"

	"github.com/milk9111/footfall/assets"
	"github.com/milk9111/footfall/footstep"
)

var ErrUnknownClip = errors.New("sfx: clip not loaded")

// bytesPerFrame is 16-bit stereo.
const bytesPerFrame = 4

// Bank holds decoded PCM keyed by clip file.
type Bank struct {
	sampleRate int
	pcm        map[string][]byte
}

func NewBank(sampleRate int, pcm map[string][]byte) *Bank {
	b := &Bank{sampleRate: sampleRate, pcm: make(map[string][]byte, len(pcm))}
	for k, v := range pcm {
		b.pcm[k] = v
	}
	return b
}

// LoadBank decodes every clip from the embedded assets.
func LoadBank(clips []footstep.Clip) (*Bank, error) {
	b := NewBank(assets.SampleRate, nil)
	for i, clip := range clips {
		if _, ok := b.pcm[clip.File]; ok {
			continue
		}
		pcm, err := assets.DecodeAudio(clip.File, assets.SampleRate)
		if err != nil {
			return nil, fmt.Errorf("sfx: clip %d (%q): %w", i, clip.Name, err)
		}
		b.pcm[clip.File] = pcm
	}
	return b, nil
}

func (b *Bank) SampleRate() int { return b.sampleRate }

func (b *Bank) PCM(file string) ([]byte, error) {
	pcm, ok := b.pcm[file]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownClip, file)
	}
	return pcm, nil
}

// Duration returns how long file plays at pitch, in seconds.
func (b *Bank) Duration(file string, pitch float64) float64 {
	pcm, ok := b.pcm[file]
	if !ok || b.sampleRate <= 0 {
		return 0
	}
	if pitch <= 0 {
		pitch = 1
	}
	frames := float64(len(pcm) / bytesPerFrame)
	return frames / float64(b.sampleRate) / pitch
}

// pitchRate is the source rate that, resampled to rate, plays at pitch.
func pitchRate(rate int, pitch float64) int {
	if pitch <= 0 {
		return rate
	}
	return int(math.Round(float64(rate) * pitch))
}
