package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/milk9111/mococo/ecs"
	"github.com/milk9111/mococo/ecs/component"
	"github.com/milk9111/mococo/ecs/entity"
	"github.com/milk9111/mococo/ecs/system"
	"github.com/milk9111/mococo/prefabs"
)

// Options wires a Session to its collaborators. Nil fields get working
// defaults: a silent presenter, no persistence, the builtin spawn rule, a
// time-seeded random source and the Chipmunk physics adapter.
type Options struct {
	Tuning    prefabs.Tuning
	Presenter system.Presenter
	Store     system.Store
	Scene     system.Scene
	Rand      system.Rand
	Rule      system.SpawnRule
	Physics   ecs.System
	Debug     bool
}

// Session is one play-through of the well. It owns the world and routes
// pointer input to the active piece.
type Session struct {
	world     *ecs.World
	tuning    prefabs.Tuning
	presenter system.Presenter
	store     system.Store
	scene     system.Scene

	pool     *entity.Pool
	spawn    *system.SpawnSystem
	gameOver *system.GameOverSystem
	reset    *system.ResetSystem

	state   ecs.Entity
	started bool
}

// newSessionEntity creates the singleton carrying the session and pointer
// state.
func newSessionEntity(w *ecs.World) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if err := ecs.Add(w, e, component.SessionComponent.Kind(), &component.Session{}); err != nil {
		return 0, fmt.Errorf("session entity: add session: %w", err)
	}
	if err := ecs.Add(w, e, component.PointerComponent.Kind(), &component.Pointer{}); err != nil {
		return 0, fmt.Errorf("session entity: add pointer: %w", err)
	}
	return e, nil
}

// PieceView is a read-only snapshot of a piece in play for drawing.
type PieceView struct {
	Entity  ecs.Entity
	Level   int
	Visual  int
	State   component.PieceState
	X, Y    float64
	Scale   float64
	Warning bool
}

func New(opts Options) *Session {
	tuning := opts.Tuning
	if len(tuning.Levels) == 0 {
		tuning = prefabs.DefaultTuning()
	}
	presenter := opts.Presenter
	if presenter == nil {
		presenter = system.NopPresenter{}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	physics := opts.Physics
	if physics == nil {
		physics = system.NewPhysicsSystem(tuning)
	}

	w := ecs.NewWorld()
	s := &Session{
		world:     w,
		tuning:    tuning,
		presenter: presenter,
		store:     opts.Store,
		scene:     opts.Scene,
	}

	state, err := newSessionEntity(w)
	if err != nil {
		panic("game: " + err.Error())
	}
	s.state = state

	s.pool = entity.NewPool(w, tuning.PoolSize)
	s.spawn = system.NewSpawnSystem(tuning, s.pool, opts.Rule, rng, presenter)
	s.gameOver = system.NewGameOverSystem(tuning, presenter, opts.Store)
	s.reset = system.NewResetSystem(opts.Scene, presenter, tuning.Frames(tuning.Timing.ResetDelay))

	w.AddSystem(system.NewDragSystem(tuning))
	w.AddSystem(physics)
	w.AddSystem(system.NewMergeSystem(tuning, presenter))
	w.AddSystem(system.NewDangerSystem(tuning, presenter))
	w.AddSystem(system.NewPieceSystem(tuning, presenter))
	w.AddSystem(system.NewSessionSystem(presenter, opts.Debug))
	w.AddSystem(s.spawn)
	w.AddSystem(s.gameOver)
	w.AddSystem(s.reset)

	return s
}

// Start leaves the title screen: load the best score, start the music and
// schedule the first piece. Repeated calls are ignored.
func (s *Session) Start() {
	if s.started {
		return
	}
	s.started = true

	st := s.session()
	st.Started = true
	if s.store != nil {
		st.HighScore = s.store.GetInt(system.HighScoreKey, 0)
	}
	s.presenter.HighScoreChanged(st.HighScore)
	s.presenter.ScoreChanged(st.Score)
	s.presenter.Cue(system.CueButton)
	s.presenter.Music(true)
	s.spawn.Begin()
}

// Update advances the game by one tick.
func (s *Session) Update() {
	s.world.Update()
}

// TouchDown grabs the active piece.
func (s *Session) TouchDown() {
	ptr := s.pointer()
	ptr.Held = true

	p, ok := s.activePiece()
	if !ok || p.State != component.PieceIdle {
		return
	}
	p.State = component.PieceDragging
}

// Drag records the pointer position in world units.
func (s *Session) Drag(x, y float64) {
	ptr := s.pointer()
	ptr.X = x
	ptr.Y = y
}

// TouchUp drops the active piece into the well and asks for the next one.
func (s *Session) TouchUp() {
	s.pointer().Held = false

	p, ok := s.activePiece()
	if !ok {
		return
	}
	e := ecs.Entity(s.session().Active)
	p.State = component.PieceFalling
	if b, ok := ecs.Get(s.world, e, component.BodyComponent.Kind()); ok {
		b.Simulated = true
	}
	s.session().Active = 0
	s.spawn.RequestNext()
}

// Reset restarts the scene after a short delay. Repeated calls are ignored.
func (s *Session) Reset() {
	s.reset.Arm()
}

// Quit leaves the game.
func (s *Session) Quit() {
	if s.scene != nil {
		s.scene.Quit()
	}
}

// activePiece returns the piece under input control. Nothing is under control
// before the start or after game over.
func (s *Session) activePiece() (*component.Piece, bool) {
	st := s.session()
	if !st.Started || st.Over || st.Active == 0 {
		return nil, false
	}
	p, ok := ecs.Get(s.world, ecs.Entity(st.Active), component.PieceComponent.Kind())
	if !ok || !p.Active {
		return nil, false
	}
	return p, true
}

func (s *Session) session() *component.Session {
	st, _ := ecs.Get(s.world, s.state, component.SessionComponent.Kind())
	return st
}

func (s *Session) pointer() *component.Pointer {
	ptr, _ := ecs.Get(s.world, s.state, component.PointerComponent.Kind())
	return ptr
}

func (s *Session) Started() bool      { return s.started }
func (s *Session) Over() bool         { return s.session().Over }
func (s *Session) Finished() bool     { return s.gameOver.Done() }
func (s *Session) Resetting() bool    { return s.reset.Armed() }
func (s *Session) Score() int         { return s.session().Score }
func (s *Session) HighScore() int     { return s.session().HighScore }
func (s *Session) MaxLevel() int      { return s.session().MaxLevel }
func (s *Session) Active() ecs.Entity { return ecs.Entity(s.session().Active) }
func (s *Session) Pool() *entity.Pool { return s.pool }
func (s *Session) World() *ecs.World  { return s.world }
func (s *Session) Tuning() prefabs.Tuning {
	return s.tuning
}

// Pieces lists every active piece in pool order.
func (s *Session) Pieces() []PieceView {
	out := make([]PieceView, 0, s.pool.Created())
	for _, e := range s.pool.Pieces() {
		p, ok := ecs.Get(s.world, e, component.PieceComponent.Kind())
		if !ok || !p.Active {
			continue
		}
		v := PieceView{Entity: e, Level: p.Level, Visual: p.VisualLevel, State: p.State}
		if t, ok := ecs.Get(s.world, e, component.TransformComponent.Kind()); ok {
			v.X, v.Y, v.Scale = t.X, t.Y, t.Scale
		}
		if d, ok := ecs.Get(s.world, e, component.DwellComponent.Kind()); ok {
			v.Warning = d.Warning
		}
		out = append(out, v)
	}
	return out
}
