package system

import (
	"log"

	"github.com/milk9111/mococo/ecs"
	"github.com/milk9111/mococo/ecs/component"
	"github.com/milk9111/mococo/ecs/entity"
	"github.com/milk9111/mococo/prefabs"
)

// Rand is the random source used to pick spawn levels.
type Rand interface {
	IntN(n int) int
}

type spawnPhase int

const (
	spawnIdle spawnPhase = iota
	spawnWaitClear
	spawnDelay
	spawnStopped
)

// SpawnSystem hands out the next playable piece. A request waits for the active
// piece to be dropped, then for the spawn delay, then spawns. It stops for good
// once the session is over.
type SpawnSystem struct {
	tuning    prefabs.Tuning
	pool      *entity.Pool
	rule      SpawnRule
	rng       Rand
	presenter Presenter

	phase  spawnPhase
	frames int
	begun  bool
}

func NewSpawnSystem(tuning prefabs.Tuning, pool *entity.Pool, rule SpawnRule, rng Rand, presenter Presenter) *SpawnSystem {
	if rule == nil {
		rule = BuiltinRule{}
	}
	if presenter == nil {
		presenter = NopPresenter{}
	}
	return &SpawnSystem{tuning: tuning, pool: pool, rule: rule, rng: rng, presenter: presenter}
}

// Begin arms the scheduler with the opening delay. Later calls are ignored.
func (s *SpawnSystem) Begin() {
	if s.begun || s.phase == spawnStopped {
		return
	}
	s.begun = true
	s.phase = spawnDelay
	s.frames = s.tuning.Frames(s.tuning.Timing.StartDelay)
}

// RequestNext waits for the active piece to clear before the next spawn. It
// is a no-op while a request is already pending.
func (s *SpawnSystem) RequestNext() {
	if s.phase == spawnIdle {
		s.phase = spawnWaitClear
	}
}

// Stopped reports whether the scheduler has observed game over.
func (s *SpawnSystem) Stopped() bool {
	return s.phase == spawnStopped
}

func (s *SpawnSystem) Update(w *ecs.World) {
	st, ok := sessionState(w)
	if !ok {
		return
	}
	if st.Over {
		s.phase = spawnStopped
		return
	}

	switch s.phase {
	case spawnWaitClear:
		if st.Active != 0 {
			return
		}
		s.phase = spawnDelay
		s.frames = s.tuning.Frames(s.tuning.Timing.SpawnDelay)
	case spawnDelay:
		s.frames--
		if s.frames > 0 {
			return
		}
		s.phase = spawnIdle
		s.spawn(w, st)
	}
}

func (s *SpawnSystem) spawn(w *ecs.World, st *component.Session) {
	e := s.pool.Acquire()
	level := s.NextLevel(st.MaxLevel)

	p, ok := ecs.Get(w, e, component.PieceComponent.Kind())
	if !ok {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}

	*p = component.Piece{Slot: p.Slot, Active: true, Level: level, VisualLevel: level, State: component.PieceIdle}
	*t = component.Transform{X: 0, Y: s.tuning.Well.SpawnHeight, Scale: s.tuning.Diameter(level)}
	if ptr, ok := pointerState(w); ok && ptr.Held {
		p.State = component.PieceDragging
	}

	st.Active = uint64(e)
	s.presenter.LevelChanged(e, level)
	s.presenter.Cue(CueNext)
}

// NextLevel samples a starting level for the given level ceiling.
func (s *SpawnSystem) NextLevel(maxLevel int) int {
	levels, err := s.rule.Levels(maxLevel)
	if err != nil {
		log.Printf("spawn: rule failed, using builtin: %v", err)
		levels, _ = BuiltinRule{}.Levels(maxLevel)
	}
	if s.rng == nil || len(levels) == 1 {
		return levels[0]
	}
	return levels[s.rng.IntN(len(levels))]
}
