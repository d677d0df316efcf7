package system

import (
	"github.com/milk9111/mococo/common"
	"github.com/milk9111/mococo/ecs"
	"github.com/milk9111/mococo/ecs/component"
	"github.com/milk9111/mococo/ecs/entity"
	"github.com/milk9111/mococo/prefabs"
)

// PieceSystem advances the per-piece timers: promotion steps, removal
// teardown, delayed effects and the attach cooldown.
type PieceSystem struct {
	tuning    prefabs.Tuning
	presenter Presenter
}

func NewPieceSystem(tuning prefabs.Tuning, presenter Presenter) *PieceSystem {
	if presenter == nil {
		presenter = NopPresenter{}
	}
	return &PieceSystem{tuning: tuning, presenter: presenter}
}

func (s *PieceSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.PieceComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Piece, t *component.Transform) {
		if !p.Active {
			return
		}

		if p.AttachFrames > 0 {
			p.AttachFrames--
		}
		if p.EffectFrames > 0 {
			p.EffectFrames--
			if p.EffectFrames == 0 {
				s.presenter.Effect(t.X, t.Y, t.Scale)
			}
		}

		switch p.Role {
		case component.MergePromote:
			s.promote(w, e, p, t)
		case component.MergeRemove:
			s.remove(w, e, p, t)
		}
	})
}

func (s *PieceSystem) promote(w *ecs.World, e ecs.Entity, p *component.Piece, t *component.Transform) {
	p.Frames--
	if p.Frames > 0 {
		return
	}

	switch p.Step {
	case component.PromoteSettle:
		p.VisualLevel = p.Level + 1
		t.Scale = s.tuning.Diameter(p.VisualLevel)
		s.presenter.LevelChanged(e, p.VisualLevel)
		s.presenter.Effect(t.X, t.Y, t.Scale)
		s.presenter.Cue(CueLevelUp)
		p.Step = component.PromoteCommit
		p.Frames = s.tuning.Frames(s.tuning.Timing.Promote)
	default:
		if p.Level < component.MaxLevel {
			p.Level++
		}
		p.VisualLevel = p.Level
		p.Role = component.MergeNone
		p.Step = component.PromoteSettle
		p.State = component.PieceFalling
		w.Events().Push(ecs.Event{Type: ecs.EventLevel, Entity: e, Value: p.Level})
	}
}

func (s *PieceSystem) remove(w *ecs.World, e ecs.Entity, p *component.Piece, t *component.Transform) {
	if p.Shrink {
		t.Scale = common.Lerp(t.Scale, 0, s.tuning.Timing.ShrinkLerp)
	} else {
		k := s.tuning.Timing.HideLerp
		t.X = common.Lerp(t.X, p.TargetX, k)
		t.Y = common.Lerp(t.Y, p.TargetY, k)
	}

	p.Frames--
	if p.Frames > 0 {
		return
	}

	w.Events().Push(ecs.Event{Type: ecs.EventScore, Entity: e, Value: 1 << p.Level})
	if d, ok := ecs.Get(w, e, component.DwellComponent.Kind()); ok && d.Warning {
		s.presenter.Warning(e, false)
	}
	entity.ResetPiece(w, e)
	// Hidden until the pool hands the piece out again.
	p.State = component.PieceHidden
}
