package ecs

// EventType identifies session-bound events.
type EventType int

const (
	// EventScore carries points earned by a removed piece.
	EventScore EventType = iota + 1
	// EventLevel carries the level a piece was promoted to.
	EventLevel
	// EventGameOver requests the game-over sequence.
	EventGameOver
)

// Event is a message from a piece to the session.
type Event struct {
	Type   EventType
	Entity Entity
	Value  int
}

// ContactKind identifies contact notifications from the physics step.
type ContactKind int

const (
	ContactBegin ContactKind = iota + 1
	ContactStay
	ContactEnd
	TriggerStay
	TriggerExit
)

// Contact is a collision or trigger notification. B is zero for triggers.
type Contact struct {
	Kind ContactKind
	A    Entity
	B    Entity
}

// Queue is a simple FIFO queue.
type Queue[T any] struct {
	items []T
}

// Push adds an item.
func (q *Queue[T]) Push(v T) {
	if q == nil {
		return
	}
	q.items = append(q.items, v)
}

// Drain returns all items and clears the queue.
func (q *Queue[T]) Drain() []T {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Items returns the queued items without consuming them.
func (q *Queue[T]) Items() []T {
	if q == nil {
		return nil
	}
	return q.items
}

// Len reports the queue length.
func (q *Queue[T]) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

func (q *Queue[T]) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
