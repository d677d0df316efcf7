package system

import (
	"errors"
	"testing"

	"github.com/milk9111/mococo/ecs"
	"github.com/milk9111/mococo/ecs/component"
	"github.com/milk9111/mococo/ecs/entity"
	"github.com/milk9111/mococo/prefabs"
)

type levelCall struct {
	e     ecs.Entity
	level int
}

type warnCall struct {
	e  ecs.Entity
	on bool
}

type effectCall struct {
	x, y, scale float64
}

// recorder is a Presenter that keeps every request.
type recorder struct {
	levels   []levelCall
	scores   []int
	highs    []int
	warnings []warnCall
	effects  []effectCall
	cues     []Cue
	music    []bool
	overs    []Summary
}

func (r *recorder) LevelChanged(e ecs.Entity, level int) {
	r.levels = append(r.levels, levelCall{e: e, level: level})
}
func (r *recorder) ScoreChanged(score int)     { r.scores = append(r.scores, score) }
func (r *recorder) HighScoreChanged(score int) { r.highs = append(r.highs, score) }
func (r *recorder) Warning(e ecs.Entity, on bool) {
	r.warnings = append(r.warnings, warnCall{e: e, on: on})
}
func (r *recorder) Effect(x, y, scale float64) {
	r.effects = append(r.effects, effectCall{x: x, y: y, scale: scale})
}
func (r *recorder) Cue(c Cue)          { r.cues = append(r.cues, c) }
func (r *recorder) Music(on bool)      { r.music = append(r.music, on) }
func (r *recorder) GameOver(s Summary) { r.overs = append(r.overs, s) }

func (r *recorder) count(c Cue) int {
	n := 0
	for _, got := range r.cues {
		if got == c {
			n++
		}
	}
	return n
}

var errStoreFull = errors.New("store full")

type memStore struct {
	values map[string]int
	fail   bool
	writes int
}

func newMemStore() *memStore {
	return &memStore{values: map[string]int{}}
}

func (m *memStore) GetInt(key string, def int) int {
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

func (m *memStore) SetInt(key string, value int) error {
	m.writes++
	if m.fail {
		return errStoreFull
	}
	m.values[key] = value
	return nil
}

type fakeScene struct {
	restarts int
	quits    int
}

func (s *fakeScene) Restart() { s.restarts++ }
func (s *fakeScene) Quit()    { s.quits++ }

// fixedRand always picks the same index, clamped to the range.
type fixedRand int

func (r fixedRand) IntN(n int) int {
	if int(r) >= n {
		return n - 1
	}
	return int(r)
}

type fixture struct {
	w      *ecs.World
	tuning prefabs.Tuning
	pool   *entity.Pool
	rec    *recorder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	w := ecs.NewWorld()

	se := ecs.CreateEntity(w)
	if err := ecs.Add(w, se, component.SessionComponent.Kind(), &component.Session{Started: true}); err != nil {
		t.Fatalf("add session: %v", err)
	}
	if err := ecs.Add(w, se, component.PointerComponent.Kind(), &component.Pointer{}); err != nil {
		t.Fatalf("add pointer: %v", err)
	}

	return &fixture{
		w:      w,
		tuning: prefabs.DefaultTuning(),
		pool:   entity.NewPool(w, 4),
		rec:    &recorder{},
	}
}

func (f *fixture) session(t *testing.T) *component.Session {
	t.Helper()
	st, ok := sessionState(f.w)
	if !ok {
		t.Fatalf("no session")
	}
	return st
}

// place activates a pooled piece as a falling piece at (x, y).
func (f *fixture) place(t *testing.T, level int, x, y float64) ecs.Entity {
	t.Helper()
	e := f.pool.Acquire()
	p, _ := ecs.Get(f.w, e, component.PieceComponent.Kind())
	*p = component.Piece{Slot: p.Slot, Active: true, Level: level, VisualLevel: level, State: component.PieceFalling}
	tr, _ := ecs.Get(f.w, e, component.TransformComponent.Kind())
	*tr = component.Transform{X: x, Y: y, Scale: f.tuning.Diameter(level)}
	b, _ := ecs.Get(f.w, e, component.BodyComponent.Kind())
	b.Simulated = true
	return e
}

func (f *fixture) piece(t *testing.T, e ecs.Entity) *component.Piece {
	t.Helper()
	p, ok := ecs.Get(f.w, e, component.PieceComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no piece", e)
	}
	return p
}

func (f *fixture) body(t *testing.T, e ecs.Entity) *component.Body {
	t.Helper()
	b, ok := ecs.Get(f.w, e, component.BodyComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no body", e)
	}
	return b
}

func (f *fixture) run(n int) {
	for i := 0; i < n; i++ {
		f.w.Update()
	}
}

// feed pushes contacts as if a physics step produced them.
func feed(fn func(tick uint64) []ecs.Contact) ecs.System {
	return ecs.SystemFunc(func(w *ecs.World) {
		for _, c := range fn(w.Tick()) {
			w.Contacts().Push(c)
		}
	})
}
