package assets

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

// SampleRate is the rate every clip is decoded to and the audio context runs at.
const SampleRate = 44100

//go:embed *.wav
var assetsFS embed.FS

var (
	audioContext     *audio.Context
	audioContextOnce sync.Once
)

// AudioContext returns the process-wide audio context, creating it on first use.
func AudioContext() *audio.Context {
	audioContextOnce.Do(func() {
		if ctx := audio.CurrentContext(); ctx != nil {
			audioContext = ctx
			return
		}
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	return assetsFS.ReadFile(clean)
}

// LoadAudio loads an embedded audio asset by assets-relative path.
func LoadAudio(path string) ([]byte, error) {
	return LoadFile(path)
}

// DecodeAudio decodes an embedded clip into 16-bit little-endian stereo PCM
// at sampleRate, the format ebiten players consume.
func DecodeAudio(path string, sampleRate int) ([]byte, error) {
	b, err := LoadAudio(path)
	if err != nil {
		return nil, err
	}

	clean := strings.ToLower(cleanAssetPath(path))
	if !strings.HasSuffix(clean, ".wav") {
		// Already-decoded PCM in ebiten's native format.
		return b, nil
	}

	stream, err := wav.DecodeWithSampleRate(sampleRate, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode wav %q: %w", path, err)
	}
	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("read wav %q: %w", path, err)
	}
	return pcm, nil
}

// Glob lists embedded assets matching pattern, sorted.
func Glob(pattern string) ([]string, error) {
	names, err := fs.Glob(assetsFS, cleanAssetPath(pattern))
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
