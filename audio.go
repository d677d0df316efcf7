package main

import (
	"bytes"
	"log"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/milk9111/mococo/assets"
	"github.com/milk9111/mococo/ecs/system"
	"golang.org/x/time/rate"
)

const voiceCount = 8

const (
	sfxVolume   = 0.6
	musicVolume = 0.25
)

// mixer plays cues on a fixed ring of voices, reusing the oldest voice for
// every new cue. A nil mixer is silent.
type mixer struct {
	ctx    *audio.Context
	clips  map[system.Cue][][]byte
	voices [voiceCount]*audio.Player
	cursor int
	music  *audio.Player
	attach *rate.Limiter
	pick   *rand.Rand
}

func newMixer(mute bool, dir string) *mixer {
	if mute {
		return nil
	}
	m := &mixer{
		ctx:    assets.AudioContext(),
		clips:  defaultClips(),
		attach: rate.NewLimiter(rate.Every(80*time.Millisecond), 3),
		pick:   rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 7)),
	}
	m.loadOverrides(dir)

	track := loadOr(filepath.Join(dir, "music.wav"), musicTrack())
	loop := audio.NewInfiniteLoop(bytes.NewReader(track), int64(len(track)))
	player, err := m.ctx.NewPlayer(loop)
	if err != nil {
		log.Printf("audio: music: %v", err)
	} else {
		player.SetVolume(musicVolume)
		m.music = player
	}
	return m
}

// loadOverrides replaces synthesized cues with <dir>/<cue>.wav when present.
func (m *mixer) loadOverrides(dir string) {
	for _, c := range []system.Cue{system.CueLevelUp, system.CueNext, system.CueAttach, system.CueButton, system.CueOver} {
		clip, err := assets.LoadClip(filepath.Join(dir, c.String()+".wav"))
		if err != nil {
			continue
		}
		m.clips[c] = [][]byte{clip}
	}
}

func loadOr(path string, fallback []byte) []byte {
	clip, err := assets.LoadClip(path)
	if err != nil {
		return fallback
	}
	return clip
}

func (m *mixer) play(c system.Cue) {
	if m == nil {
		return
	}
	// contacts can fire many attach cues in one frame
	if c == system.CueAttach && !m.attach.Allow() {
		return
	}
	variants := m.clips[c]
	if len(variants) == 0 {
		return
	}
	clip := variants[m.pick.IntN(len(variants))]

	if old := m.voices[m.cursor]; old != nil {
		_ = old.Close()
	}
	p := m.ctx.NewPlayerFromBytes(clip)
	p.SetVolume(sfxVolume)
	p.Play()
	m.voices[m.cursor] = p
	m.cursor = (m.cursor + 1) % voiceCount
}

func (m *mixer) setMusic(on bool) {
	if m == nil || m.music == nil {
		return
	}
	if on {
		if err := m.music.Rewind(); err != nil {
			log.Printf("audio: rewind music: %v", err)
		}
		m.music.Play()
		return
	}
	m.music.Pause()
}

func (m *mixer) close() {
	if m == nil {
		return
	}
	for _, v := range m.voices {
		if v != nil {
			_ = v.Close()
		}
	}
	if m.music != nil {
		_ = m.music.Close()
	}
}

func defaultClips() map[system.Cue][][]byte {
	ms := func(n int) time.Duration { return time.Duration(n) * time.Millisecond }
	return map[system.Cue][][]byte{
		// three level up variants, picked at random
		system.CueLevelUp: {
			assets.Synth(0.5, assets.Note{Freq: 523.25, Dur: ms(70)}, assets.Note{Freq: 659.25, Dur: ms(110)}),
			assets.Synth(0.5, assets.Note{Freq: 587.33, Dur: ms(70)}, assets.Note{Freq: 783.99, Dur: ms(110)}),
			assets.Synth(0.5, assets.Note{Freq: 659.25, Dur: ms(70)}, assets.Note{Freq: 880.00, Dur: ms(110)}),
		},
		system.CueNext:   {assets.Synth(0.3, assets.Note{Freq: 392.00, Dur: ms(60)})},
		system.CueAttach: {assets.Synth(0.25, assets.Note{Freq: 196.00, Dur: ms(40)})},
		system.CueButton: {assets.Synth(0.4, assets.Note{Freq: 440.00, Dur: ms(50)}, assets.Note{Freq: 554.37, Dur: ms(50)})},
		system.CueOver: {assets.Synth(0.5,
			assets.Note{Freq: 392.00, Dur: ms(180)},
			assets.Note{Freq: 329.63, Dur: ms(180)},
			assets.Note{Freq: 261.63, Dur: ms(360)},
		)},
	}
}

func musicTrack() []byte {
	beat := 220 * time.Millisecond
	freqs := []float64{261.63, 329.63, 392.00, 329.63, 293.66, 349.23, 440.00, 349.23, 0, 261.63, 392.00, 0}
	notes := make([]assets.Note, 0, len(freqs))
	for _, f := range freqs {
		notes = append(notes, assets.Note{Freq: f, Dur: beat})
	}
	return assets.Synth(0.2, notes...)
}
