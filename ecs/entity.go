package ecs

import "strconv"

// Entity is an opaque handle. The zero value never refers to a live entity.
type Entity uint64

type entityID uint32

func makeEntity(id entityID) Entity {
	return Entity(id)
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}
