package assets

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const SampleRate = 44100

var (
	contextOnce  sync.Once
	audioContext *audio.Context
)

// AudioContext returns the shared audio context, creating it on first use.
func AudioContext() *audio.Context {
	contextOnce.Do(func() {
		audioContext = audio.NewContext(SampleRate)
	})
	return audioContext
}

// Note is one step of a synthesized clip. A zero Freq is a rest.
type Note struct {
	Freq float64
	Dur  time.Duration
}

// Synth renders notes as 16-bit little endian stereo PCM, the format
// audio.Context.NewPlayerFromBytes expects. Each note fades in and out to
// avoid clicks.
func Synth(volume float64, notes ...Note) []byte {
	var buf bytes.Buffer
	for _, n := range notes {
		samples := int(n.Dur.Seconds() * SampleRate)
		fade := samples / 10
		for i := 0; i < samples; i++ {
			var v float64
			if n.Freq > 0 {
				env := 1.0
				if fade > 0 && i < fade {
					env = float64(i) / float64(fade)
				} else if fade > 0 && i > samples-fade {
					env = float64(samples-i) / float64(fade)
				}
				v = math.Sin(2*math.Pi*n.Freq*float64(i)/SampleRate) * volume * env
			}
			s := int16(v * math.MaxInt16)
			_ = binary.Write(&buf, binary.LittleEndian, s)
			_ = binary.Write(&buf, binary.LittleEndian, s)
		}
	}
	return buf.Bytes()
}

// LoadClip returns the PCM bytes of a wav file on disk. Callers fall back to
// synthesized clips when it fails.
func LoadClip(path string) ([]byte, error) {
	if !strings.EqualFold(filepath.Ext(path), ".wav") {
		return nil, fmt.Errorf("assets: %s: only wav clips are supported", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	stream, err := wav.DecodeWithSampleRate(SampleRate, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode wav %q: %w", path, err)
	}
	var out bytes.Buffer
	if _, err := out.ReadFrom(stream); err != nil {
		return nil, fmt.Errorf("assets: read wav %q: %w", path, err)
	}
	return out.Bytes(), nil
}
