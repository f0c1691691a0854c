package ecs

import "strconv"

// Entity is a generational handle: the low 32 bits index a slot and the high
// 32 bits hold the slot's generation at creation time.
type Entity uint64

type entityID uint32
type generation uint32

const entityIDBits = 32

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<entityIDBits | uint64(id))
}

func (e Entity) id() entityID {
	return entityID(uint32(e))
}

func (e Entity) generation() generation {
	return generation(uint32(uint64(e) >> entityIDBits))
}

// Index is the slot index encoded in the handle.
func (e Entity) Index() int {
	return int(e.id())
}

func (e Entity) String() string {
	return strconv.FormatUint(uint64(e), 10)
}

func (e Entity) Valid() bool {
	return e > 0
}

// Registry hands out entity handles and recycles destroyed slots with a
// bumped generation so stale handles stop being alive.
type Registry struct {
	gen  []generation
	free []entityID
}

// Create allocates a new handle. Generations start at 1 so a zero Entity is
// never alive.
func (r *Registry) Create() Entity {
	if r == nil {
		return 0
	}
	if n := len(r.free); n > 0 {
		id := r.free[n-1]
		r.free = r.free[:n-1]
		return makeEntity(id, r.gen[id])
	}
	id := entityID(len(r.gen))
	r.gen = append(r.gen, 1)
	return makeEntity(id, 1)
}

// Destroy retires e. Destroying a stale or unknown handle is a no-op.
func (r *Registry) Destroy(e Entity) bool {
	if !r.IsAlive(e) {
		return false
	}
	id := e.id()
	r.gen[id]++
	r.free = append(r.free, id)
	return true
}

func (r *Registry) IsAlive(e Entity) bool {
	if r == nil || !e.Valid() {
		return false
	}
	id := e.id()
	if int(id) >= len(r.gen) {
		return false
	}
	return r.gen[id] == e.generation()
}

// Len is the number of live handles.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.gen) - len(r.free)
}
