package system

import (
	"log"
	"time"

	"github.com/milk9111/mococo/ecs"
	"github.com/milk9111/mococo/ecs/component"
	"github.com/milk9111/mococo/prefabs"
)

type overPhase int

const (
	overWaiting overPhase = iota
	overSweeping
	overPausing
	overDone
)

// GameOverSystem runs the end sequence once the session is over: freeze the
// pieces in play, hide them one at a time, wait, persist the high score and
// reveal the end screen. Pieces that were already merging finish first; a
// promoted survivor then joins the sweep before the score is saved.
type GameOverSystem struct {
	tuning    prefabs.Tuning
	presenter Presenter
	store     Store

	phase   overPhase
	queue   []ecs.Entity
	pending []ecs.Entity
	frames  int
}

func NewGameOverSystem(tuning prefabs.Tuning, presenter Presenter, store Store) *GameOverSystem {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	return &GameOverSystem{tuning: tuning, presenter: presenter, store: store}
}

// Done reports whether the end screen has been shown.
func (s *GameOverSystem) Done() bool {
	return s.phase == overDone
}

func (s *GameOverSystem) Update(w *ecs.World) {
	switch s.phase {
	case overWaiting:
		st, ok := sessionState(w)
		if !ok || !st.Over {
			return
		}
		s.freeze(w, st)
		s.phase = overSweeping
		s.frames = 0
		fallthrough
	case overSweeping:
		s.collect(w)
		if s.frames > 0 {
			s.frames--
			return
		}
		if len(s.queue) == 0 {
			if len(s.pending) > 0 {
				return
			}
			s.phase = overPausing
			s.frames = s.tuning.Frames(s.tuning.Timing.GameOverWait)
			return
		}
		e := s.queue[0]
		s.queue = s.queue[1:]
		s.hide(w, e)
		s.frames = s.tuning.Frames(s.tuning.Timing.GameOverStagger) - 1
	case overPausing:
		s.frames--
		if s.frames > 0 {
			return
		}
		s.finish(w)
		s.phase = overDone
	}
}

// freeze stops every piece still in play and queues it for the sweep. The
// controlled piece loses input. Merging pieces are watched until they settle.
func (s *GameOverSystem) freeze(w *ecs.World, st *component.Session) {
	st.Active = 0
	s.queue = s.queue[:0]
	s.pending = s.pending[:0]
	ecs.ForEach(w, component.PieceComponent.Kind(), func(e ecs.Entity, p *component.Piece) {
		if !p.Active {
			return
		}
		if p.Merging() {
			s.pending = append(s.pending, e)
			return
		}
		s.stop(w, e)
		s.queue = append(s.queue, e)
	})
}

// collect moves pieces that finished promoting into the sweep. Removed pieces
// are already hidden and are dropped.
func (s *GameOverSystem) collect(w *ecs.World) {
	kept := s.pending[:0]
	for _, e := range s.pending {
		p, ok := ecs.Get(w, e, component.PieceComponent.Kind())
		if !ok || !p.Active {
			continue
		}
		if p.Merging() {
			kept = append(kept, e)
			continue
		}
		s.stop(w, e)
		s.queue = append(s.queue, e)
	}
	s.pending = kept
}

func (s *GameOverSystem) stop(w *ecs.World, e ecs.Entity) {
	if b, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
		b.Simulated = false
		b.ZeroVelocity = false
	}
}

func (s *GameOverSystem) hide(w *ecs.World, e ecs.Entity) {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}
	if StartRemoval(w, e, t.X, t.Y, true, s.tuning.Timing.HideFrames) {
		s.presenter.Effect(t.X, t.Y, t.Scale)
	}
}

func (s *GameOverSystem) finish(w *ecs.World) {
	st, ok := sessionState(w)
	if !ok {
		return
	}

	best := st.Score
	if s.store != nil {
		if stored := s.store.GetInt(HighScoreKey, 0); stored > best {
			best = stored
		}
		if err := s.store.SetInt(HighScoreKey, best); err != nil {
			log.Printf("gameover: save high score: %v", err)
		}
	}
	st.HighScore = best

	s.presenter.HighScoreChanged(best)
	s.presenter.GameOver(Summary{
		Score:     st.Score,
		HighScore: best,
		MaxLevel:  st.MaxLevel,
		Played:    time.Duration(float64(st.Ticks) * s.tuning.TickSeconds() * float64(time.Second)),
	})
	s.presenter.Music(false)
	s.presenter.Cue(CueOver)
}
