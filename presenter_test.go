package main

import (
	"testing"

	"github.com/milk9111/mococo/ecs/system"
)

func TestPresenterEffectsExpire(t *testing.T) {
	p := newPresenter(nil, nil, false)
	p.Effect(1, 2, 0.6)
	p.Cue(system.CueAttach) // silent without a mixer

	for i := 0; i < effectFrames-1; i++ {
		p.update()
	}
	if len(p.effects) != 1 {
		t.Fatalf("effect expired early")
	}
	p.update()
	if len(p.effects) != 0 {
		t.Fatalf("effect should expire after %d frames", effectFrames)
	}
}

func TestPresenterWarningCount(t *testing.T) {
	p := newPresenter(nil, nil, false)
	p.Warning(1, true)
	p.Warning(2, true)
	p.Warning(1, false)
	if p.warnings != 1 {
		t.Fatalf("expected 1 warning, got %d", p.warnings)
	}
	p.Warning(2, false)
	p.Warning(2, false)
	if p.warnings != 0 {
		t.Fatalf("warning count went negative: %d", p.warnings)
	}
}
