package entity

import (
	"github.com/milk9111/mococo/ecs"
	"github.com/milk9111/mococo/ecs/component"
)

// Pool owns every piece for the lifetime of a session. Pieces are never
// destroyed; an inactive piece is free for reuse.
type Pool struct {
	w      *ecs.World
	pieces []ecs.Entity
	cursor int
}

// NewPool prewarms size pieces. Size is a hint: the pool grows on demand.
func NewPool(w *ecs.World, size int) *Pool {
	p := &Pool{w: w}
	for i := 0; i < size; i++ {
		p.grow()
	}
	return p
}

// Acquire returns the next inactive piece, scanning round-robin from one past
// the last returned slot. When every piece is active a new one is appended.
func (p *Pool) Acquire() ecs.Entity {
	for range p.pieces {
		p.cursor = (p.cursor + 1) % len(p.pieces)
		e := p.pieces[p.cursor]
		if piece, ok := ecs.Get(p.w, e, component.PieceComponent.Kind()); ok && !piece.Active {
			return e
		}
	}
	return p.grow()
}

func (p *Pool) grow() ecs.Entity {
	e, err := NewPiece(p.w, len(p.pieces))
	if err != nil {
		panic("pool: build piece: " + err.Error())
	}
	p.pieces = append(p.pieces, e)
	return e
}

// Pieces returns every pooled piece in creation order.
func (p *Pool) Pieces() []ecs.Entity {
	return p.pieces
}

// Created reports how many pieces have been constructed.
func (p *Pool) Created() int {
	return len(p.pieces)
}

// Cursor reports the current scan position.
func (p *Pool) Cursor() int {
	return p.cursor
}
