package system

import (
	"log"

	"github.com/milk9111/mococo/ecs"
	"github.com/milk9111/mococo/ecs/component"
)

// SessionSystem is the only writer of score and max level. It drains the
// world event queue once per tick.
type SessionSystem struct {
	presenter Presenter
	debug     bool
}

func NewSessionSystem(presenter Presenter, debug bool) *SessionSystem {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	return &SessionSystem{presenter: presenter, debug: debug}
}

func (s *SessionSystem) Update(w *ecs.World) {
	st, ok := sessionState(w)
	if !ok {
		return
	}
	if st.Started && !st.Over {
		st.Ticks++
	}

	for _, evt := range w.Events().Drain() {
		switch evt.Type {
		case ecs.EventScore:
			s.ReportScore(st, evt.Value)
		case ecs.EventLevel:
			s.ReportLevel(st, evt.Value)
		case ecs.EventGameOver:
			s.ReportGameOver(st, evt.Entity)
		}
	}
}

// ReportScore adds points. Negative deltas are ignored so the score never
// decreases.
func (s *SessionSystem) ReportScore(st *component.Session, delta int) {
	if delta <= 0 {
		return
	}
	st.Score += delta
	s.presenter.ScoreChanged(st.Score)
}

// ReportLevel raises the level ceiling.
func (s *SessionSystem) ReportLevel(st *component.Session, level int) {
	if level > component.MaxLevel {
		level = component.MaxLevel
	}
	if level > st.MaxLevel {
		st.MaxLevel = level
		if s.debug {
			log.Printf("session: max level %d", level)
		}
	}
}

// ReportGameOver flags the session over. Only the first call has an effect;
// GameOverSystem runs the sequence.
func (s *SessionSystem) ReportGameOver(st *component.Session, cause ecs.Entity) {
	if st.Over {
		return
	}
	st.Over = true
	log.Printf("session: game over (piece %v, score %d)", cause, st.Score)
}

func sessionState(w *ecs.World) (*component.Session, bool) {
	e, ok := ecs.First(w, component.SessionComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.SessionComponent.Kind())
}

func pointerState(w *ecs.World) (*component.Pointer, bool) {
	e, ok := ecs.First(w, component.PointerComponent.Kind())
	if !ok {
		return nil, false
	}
	return ecs.Get(w, e, component.PointerComponent.Kind())
}
