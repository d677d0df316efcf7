package system

import (
	"github.com/milk9111/mococo/ecs"
	"github.com/milk9111/mococo/ecs/component"
	"github.com/milk9111/mococo/prefabs"
)

// MergeSystem reacts to piece contacts. A stay contact between two idle
// pieces of equal level starts a merge; both pieces enter the Merging state
// in the same call, so later stay contacts for the pair are ignored. Contacts
// are ignored once the session is over.
type MergeSystem struct {
	tuning    prefabs.Tuning
	presenter Presenter
}

func NewMergeSystem(tuning prefabs.Tuning, presenter Presenter) *MergeSystem {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	return &MergeSystem{tuning: tuning, presenter: presenter}
}

func (s *MergeSystem) Update(w *ecs.World) {
	if st, ok := sessionState(w); ok && st.Over {
		return
	}
	for _, c := range w.Contacts().Items() {
		switch c.Kind {
		case ecs.ContactBegin:
			s.attach(w, c.A)
			s.attach(w, c.B)
		case ecs.ContactStay:
			s.Resolve(w, c.A, c.B)
		}
	}
}

// attach plays the attach cue at most once per cooldown per piece.
func (s *MergeSystem) attach(w *ecs.World, e ecs.Entity) {
	p, ok := ecs.Get(w, e, component.PieceComponent.Kind())
	if !ok || !p.Active || p.AttachFrames > 0 {
		return
	}
	p.AttachFrames = s.tuning.Frames(s.tuning.Timing.AttachCooldown)
	s.presenter.Cue(CueAttach)
}

// Resolve applies the merge rule to a touching pair. The outcome does not
// depend on argument order. It reports whether a merge started.
func (s *MergeSystem) Resolve(w *ecs.World, a, b ecs.Entity) bool {
	if a == b {
		return false
	}
	pa, okA := ecs.Get(w, a, component.PieceComponent.Kind())
	pb, okB := ecs.Get(w, b, component.PieceComponent.Kind())
	if !okA || !okB || !pa.Active || !pb.Active {
		return false
	}
	if !mergeable(pa) || !mergeable(pb) || pa.Level != pb.Level {
		return false
	}
	ta, okA := ecs.Get(w, a, component.TransformComponent.Kind())
	tb, okB := ecs.Get(w, b, component.TransformComponent.Kind())
	if !okA || !okB {
		return false
	}

	winner, loser := a, b
	wt := ta
	if !Wins(ta.X, ta.Y, tb.X, tb.Y) {
		winner, loser = b, a
		wt = tb
	}

	if pa.Level < component.MaxLevel {
		s.startRemoval(w, loser, wt.X, wt.Y, false)
		s.startPromotion(w, winner)
		return true
	}

	// No level above the cap: both vanish toward the origin and the pair
	// effect plays a little later.
	s.startRemoval(w, winner, 0, 0, false)
	s.startRemoval(w, loser, 0, 0, false)
	if wp, ok := ecs.Get(w, winner, component.PieceComponent.Kind()); ok {
		wp.EffectFrames = s.tuning.Frames(s.tuning.Timing.PairEffectDelay)
	}
	return true
}

// Wins reports whether a piece at (ax, ay) beats one at (bx, by): the lower
// piece wins, and on equal height the one further right.
func Wins(ax, ay, bx, by float64) bool {
	return ay < by || (ay == by && ax > bx)
}

// mergeable excludes pieces under input control and pieces already merging.
func mergeable(p *component.Piece) bool {
	return p.State == component.PieceFalling
}

func (s *MergeSystem) startPromotion(w *ecs.World, e ecs.Entity) {
	p, ok := ecs.Get(w, e, component.PieceComponent.Kind())
	if !ok {
		return
	}
	p.State = component.PieceMerging
	p.Role = component.MergePromote
	p.Step = component.PromoteSettle
	p.Frames = s.tuning.Frames(s.tuning.Timing.Settle)

	if b, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
		b.ZeroVelocity = true
	}
}

func (s *MergeSystem) startRemoval(w *ecs.World, e ecs.Entity, x, y float64, shrink bool) {
	StartRemoval(w, e, x, y, shrink, s.tuning.Timing.HideFrames)
}

// StartRemoval takes a piece out of the simulation and starts its teardown. It
// refuses pieces that are inactive or already merging.
func StartRemoval(w *ecs.World, e ecs.Entity, x, y float64, shrink bool, frames int) bool {
	p, ok := ecs.Get(w, e, component.PieceComponent.Kind())
	if !ok || !p.Active || p.Merging() {
		return false
	}
	p.State = component.PieceMerging
	p.Role = component.MergeRemove
	p.Frames = frames
	p.TargetX = x
	p.TargetY = y
	p.Shrink = shrink

	if b, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
		b.Simulated = false
		b.ZeroVelocity = false
	}
	return true
}
