package sfx

import (
	"bytes"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/footfall/footstep"
	"github.com/rs/zerolog"
)

// Voice is a single footstep source backed by ebiten audio players. Each
// one-shot gets its own player; IsPlaying reports the most recent one.
type Voice struct {
	ctx     *audio.Context
	bank    *Bank
	log     zerolog.Logger
	current *audio.Player
	retired []*audio.Player
}

func NewVoice(ctx *audio.Context, bank *Bank, log zerolog.Logger) *Voice {
	return &Voice{ctx: ctx, bank: bank, log: log}
}

func (v *Voice) IsPlaying() bool {
	return v.current != nil && v.current.IsPlaying()
}

// PlayOneShot starts clip at pitch by resampling it. Failures are logged;
// a footstep that cannot play is simply silent.
func (v *Voice) PlayOneShot(clip footstep.Clip, pitch float64) {
	v.reap()

	pcm, err := v.bank.PCM(clip.File)
	if err != nil {
		v.log.Error().Err(err).Str("clip", clip.Name).Msg("footstep clip missing")
		return
	}

	rate := v.bank.SampleRate()
	src := audio.Resample(bytes.NewReader(pcm), int64(len(pcm)), pitchRate(rate, pitch), rate)
	player, err := v.ctx.NewPlayer(src)
	if err != nil {
		v.log.Error().Err(err).Str("clip", clip.Name).Msg("footstep player")
		return
	}

	volume := clip.Volume
	if volume <= 0 {
		volume = 1
	}
	player.SetVolume(volume)
	player.Play()

	if v.current != nil {
		v.retired = append(v.retired, v.current)
	}
	v.current = player
}

// reap closes players that finished.
func (v *Voice) reap() {
	kept := v.retired[:0]
	for _, p := range v.retired {
		if p.IsPlaying() {
			kept = append(kept, p)
			continue
		}
		if err := p.Close(); err != nil {
			v.log.Debug().Err(err).Msg("close footstep player")
		}
	}
	v.retired = kept
}

// Close stops and releases every player.
func (v *Voice) Close() error {
	v.reap()
	var first error
	for _, p := range append(v.retired, v.current) {
		if p == nil {
			continue
		}
		if err := p.Close(); err != nil && first == nil {
			first = err
		}
	}
	v.retired = nil
	v.current = nil
	return first
}
