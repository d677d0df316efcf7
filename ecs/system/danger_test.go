package system

import (
	"testing"

	"github.com/milk9111/mococo/ecs"
	"github.com/milk9111/mococo/ecs/component"
)

func TestDangerWarningThenGameOverOnce(t *testing.T) {
	f := newFixture(t)
	e := f.place(t, 2, 0, 8)
	other := f.place(t, 2, 1, 8)

	f.w.AddSystem(feed(func(uint64) []ecs.Contact {
		return []ecs.Contact{{Kind: ecs.TriggerStay, A: e}, {Kind: ecs.TriggerStay, A: other}}
	}))
	f.w.AddSystem(NewDangerSystem(f.tuning, f.rec))
	f.w.AddSystem(NewSessionSystem(f.rec, false))

	warn := f.tuning.Frames(f.tuning.Timing.DwellWarn)
	over := f.tuning.Frames(f.tuning.Timing.DwellOver)

	f.run(warn - 1)
	if len(f.rec.warnings) != 0 {
		t.Fatalf("warning before %d ticks", warn)
	}
	f.run(1)
	if len(f.rec.warnings) != 2 || !f.rec.warnings[0].on {
		t.Fatalf("expected warnings for both pieces, got %+v", f.rec.warnings)
	}

	f.run(over - warn - 1)
	if f.session(t).Over {
		t.Fatalf("game over before %d ticks", over)
	}
	f.run(1)
	if !f.session(t).Over {
		t.Fatalf("expected game over after %d ticks", over)
	}

	// more dwell after game over changes nothing
	queued := f.w.Events().Len()
	f.run(30)
	if f.w.Events().Len() != queued {
		t.Fatalf("danger system kept reporting after game over")
	}
	if len(f.rec.warnings) != 2 {
		t.Fatalf("warnings repeated: %+v", f.rec.warnings)
	}
}

type zoneState int

const (
	zoneInside zoneState = iota
	zoneLeaving
	zoneOutside
)

// zoneFeed reports e inside the danger zone while *state is zoneInside and a
// single exit on the tick it is zoneLeaving.
func zoneFeed(e ecs.Entity, state *zoneState) ecs.System {
	return feed(func(uint64) []ecs.Contact {
		switch *state {
		case zoneInside:
			return []ecs.Contact{{Kind: ecs.TriggerStay, A: e}}
		case zoneLeaving:
			*state = zoneOutside
			return []ecs.Contact{{Kind: ecs.TriggerExit, A: e}}
		}
		return nil
	})
}

func TestDangerExitResetsDwell(t *testing.T) {
	f := newFixture(t)
	e := f.place(t, 2, 0, 8)

	state := zoneInside
	f.w.AddSystem(zoneFeed(e, &state))
	f.w.AddSystem(NewDangerSystem(f.tuning, f.rec))
	f.w.AddSystem(NewSessionSystem(f.rec, false))

	f.run(f.tuning.Frames(2.5))
	if len(f.rec.warnings) != 1 {
		t.Fatalf("expected warning on, got %+v", f.rec.warnings)
	}

	state = zoneLeaving
	f.run(1)

	d, _ := ecs.Get(f.w, e, component.DwellComponent.Kind())
	if d.Seconds != 0 || d.Warning {
		t.Fatalf("dwell not reset: %+v", *d)
	}
	if last := f.rec.warnings[len(f.rec.warnings)-1]; last.on {
		t.Fatalf("warning should be off")
	}
	if f.session(t).Over {
		t.Fatalf("exit before the limit must not end the game")
	}
}

func TestDangerReentryRestartsCountdown(t *testing.T) {
	f := newFixture(t)
	e := f.place(t, 2, 0, 8)

	state := zoneInside
	f.w.AddSystem(zoneFeed(e, &state))
	f.w.AddSystem(NewDangerSystem(f.tuning, f.rec))
	f.w.AddSystem(NewSessionSystem(f.rec, false))

	over := f.tuning.Frames(f.tuning.Timing.DwellOver)

	f.run(f.tuning.Frames(2.5))
	state = zoneLeaving
	f.run(1)
	f.run(10)

	state = zoneInside
	f.run(over - 1)
	if f.session(t).Over {
		t.Fatalf("game over before %d ticks after re-entry", over)
	}
	d, _ := ecs.Get(f.w, e, component.DwellComponent.Kind())
	if !d.Warning {
		t.Fatalf("expected the warning again after re-entry")
	}
	f.run(1)
	if !f.session(t).Over {
		t.Fatalf("expected game over %d ticks after re-entry", over)
	}
}
