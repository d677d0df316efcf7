package system

import (
	"github.com/milk9111/mococo/common"
	"github.com/milk9111/mococo/ecs"
	"github.com/milk9111/mococo/ecs/component"
	"github.com/milk9111/mococo/prefabs"
)

// DragSystem moves the dragged piece toward the pointer, clamped inside the
// well and pinned to the spawn height.
type DragSystem struct {
	tuning prefabs.Tuning
}

func NewDragSystem(tuning prefabs.Tuning) *DragSystem {
	return &DragSystem{tuning: tuning}
}

func (s *DragSystem) Update(w *ecs.World) {
	st, ok := sessionState(w)
	if !ok || st.Over || st.Active == 0 {
		return
	}
	ptr, ok := pointerState(w)
	if !ok {
		return
	}

	e := ecs.Entity(st.Active)
	p, ok := ecs.Get(w, e, component.PieceComponent.Kind())
	if !ok || p.State != component.PieceDragging {
		return
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return
	}

	half := s.tuning.Well.Width / 2
	tx := common.Clamp(ptr.X, -half+t.Scale/2, half-t.Scale/2)
	k := s.tuning.Timing.DragSmoothing
	t.X = common.Lerp(t.X, tx, k)
	t.Y = common.Lerp(t.Y, s.tuning.Well.SpawnHeight, k)
}
