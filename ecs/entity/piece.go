package entity

import (
	"fmt"

	"github.com/milk9111/mococo/ecs"
	"github.com/milk9111/mococo/ecs/component"
)

// NewPiece builds an inactive piece for the given pool slot.
func NewPiece(w *ecs.World, slot int) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{}); err != nil {
		return 0, fmt.Errorf("piece: add transform: %w", err)
	}
	if err := ecs.Add(w, e, component.PieceComponent.Kind(), &component.Piece{Slot: slot}); err != nil {
		return 0, fmt.Errorf("piece: add piece: %w", err)
	}
	if err := ecs.Add(w, e, component.BodyComponent.Kind(), &component.Body{}); err != nil {
		return 0, fmt.Errorf("piece: add body: %w", err)
	}
	if err := ecs.Add(w, e, component.DwellComponent.Kind(), &component.Dwell{}); err != nil {
		return 0, fmt.Errorf("piece: add dwell: %w", err)
	}

	return e, nil
}

// ResetPiece deactivates a piece and restores its defaults: level 0, idle,
// zero transform, physics off, no dwell.
func ResetPiece(w *ecs.World, e ecs.Entity) {
	if p, ok := ecs.Get(w, e, component.PieceComponent.Kind()); ok {
		*p = component.Piece{Slot: p.Slot}
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		*t = component.Transform{}
	}
	if b, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
		*b = component.Body{}
	}
	if d, ok := ecs.Get(w, e, component.DwellComponent.Kind()); ok {
		*d = component.Dwell{}
	}
}
