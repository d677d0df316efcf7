package main

import (
	"log"

	"github.com/milk9111/mococo/ecs"
	"github.com/milk9111/mococo/ecs/system"
)

const effectFrames = 24

type effect struct {
	x, y, scale float64
	ttl         int
}

// presenter turns session requests into HUD state, effects, sounds and
// screens.
type presenter struct {
	mixer   *mixer
	screens *screens
	debug   bool

	score    int
	high     int
	warnings int
	effects  []effect
}

func newPresenter(m *mixer, s *screens, debug bool) *presenter {
	return &presenter{mixer: m, screens: s, debug: debug}
}

func (p *presenter) LevelChanged(e ecs.Entity, level int) {
	if p.debug {
		log.Printf("piece %v: level %d", e, level)
	}
}

func (p *presenter) ScoreChanged(score int) {
	p.score = score
}

func (p *presenter) HighScoreChanged(score int) {
	p.high = score
}

func (p *presenter) Warning(e ecs.Entity, on bool) {
	if on {
		p.warnings++
	} else if p.warnings > 0 {
		p.warnings--
	}
}

func (p *presenter) Effect(x, y, scale float64) {
	p.effects = append(p.effects, effect{x: x, y: y, scale: scale, ttl: effectFrames})
}

func (p *presenter) Cue(c system.Cue) {
	p.mixer.play(c)
}

func (p *presenter) Music(on bool) {
	p.mixer.setMusic(on)
}

func (p *presenter) GameOver(s system.Summary) {
	log.Printf("game over: %s", s)
	p.warnings = 0
	p.screens.showEnd(s)
}

// update ages effects by one frame.
func (p *presenter) update() {
	kept := p.effects[:0]
	for _, e := range p.effects {
		e.ttl--
		if e.ttl > 0 {
			kept = append(kept, e)
		}
	}
	p.effects = kept
}
