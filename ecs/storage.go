package ecs

// entityStore hands out sequential ids. Entities are never destroyed: pooled
// objects are deactivated and reused instead.
type entityStore struct {
	order []Entity
}

func (s *entityStore) create() Entity {
	e := makeEntity(entityID(len(s.order) + 1))
	s.order = append(s.order, e)
	return e
}

func (s *entityStore) isAlive(e Entity) bool {
	if s == nil || !e.Valid() {
		return false
	}
	return int(e.id()) <= len(s.order)
}
