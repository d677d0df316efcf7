package system

import (
	"github.com/milk9111/mococo/ecs"
	"github.com/milk9111/mococo/ecs/component"
	"github.com/milk9111/mococo/prefabs"
)

// dwellEpsilon absorbs the rounding of summing tick durations.
const dwellEpsilon = 1e-9

// DangerSystem accumulates danger zone dwell time and reports game over once a
// piece stays too long.
type DangerSystem struct {
	tuning    prefabs.Tuning
	presenter Presenter
}

func NewDangerSystem(tuning prefabs.Tuning, presenter Presenter) *DangerSystem {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	return &DangerSystem{tuning: tuning, presenter: presenter}
}

func (s *DangerSystem) Update(w *ecs.World) {
	st, ok := sessionState(w)
	if !ok || st.Over {
		return
	}

	dt := s.tuning.TickSeconds()
	warn := s.tuning.Timing.DwellWarn - dwellEpsilon
	over := s.tuning.Timing.DwellOver - dwellEpsilon
	reported := false

	for _, c := range w.Contacts().Items() {
		switch c.Kind {
		case ecs.TriggerStay:
			p, ok := ecs.Get(w, c.A, component.PieceComponent.Kind())
			if !ok || !p.Active {
				continue
			}
			d, ok := ecs.Get(w, c.A, component.DwellComponent.Kind())
			if !ok {
				continue
			}
			d.Seconds += dt
			if d.Seconds >= warn && !d.Warning {
				d.Warning = true
				s.presenter.Warning(c.A, true)
			}
			if d.Seconds >= over && !reported {
				reported = true
				w.Events().Push(ecs.Event{Type: ecs.EventGameOver, Entity: c.A})
			}
		case ecs.TriggerExit:
			d, ok := ecs.Get(w, c.A, component.DwellComponent.Kind())
			if !ok {
				continue
			}
			d.Seconds = 0
			if d.Warning {
				d.Warning = false
				s.presenter.Warning(c.A, false)
			}
		}
	}
}
