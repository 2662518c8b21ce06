package stratum

// entityLocation is where an entity currently lives: which archetype and
// which row within it.
type entityLocation struct {
	archetype ArchetypeHash
	row       RowIndex
}

// entityIndex maps every live EntityId to its current (archetype, row), and
// tracks each slot's generation so a despawned id's handle is detectable as
// stale without scanning storage (spec.md §4.4).
//
// Slots are reused: despawning an entity frees its index for the next
// Spawn, bumping the generation so old EntityId values naturally fail the
// liveness check in resolve. Generation is a uint32, wrapping silently on
// overflow — a slot would need to be recycled four billion times within a
// single World's lifetime for a stale handle to alias a live one, which is
// the generation-width/wrap-policy choice spec.md §9 leaves open.
type entityIndex struct {
	generations []uint32
	locations   []entityLocation
	free        []uint32
}

func newEntityIndex() *entityIndex {
	return &entityIndex{
		generations: []uint32{0},
		locations:   []entityLocation{{}},
	}
}

// allocate reserves a new slot (or reuses a freed one) and returns its id.
func (ei *entityIndex) allocate() EntityId {
	if n := len(ei.free); n > 0 {
		idx := ei.free[n-1]
		ei.free = ei.free[:n-1]
		return EntityId{index: idx, generation: ei.generations[idx]}
	}
	idx := uint32(len(ei.generations))
	ei.generations = append(ei.generations, 0)
	ei.locations = append(ei.locations, entityLocation{})
	return EntityId{index: idx, generation: 0}
}

// isLive reports whether id's generation matches the slot's current one.
func (ei *entityIndex) isLive(id EntityId) bool {
	if id.index == 0 || int(id.index) >= len(ei.generations) {
		return false
	}
	return ei.generations[id.index] == id.generation
}

// resolve returns the live location for id, or false if id is stale.
func (ei *entityIndex) resolve(id EntityId) (entityLocation, bool) {
	if !ei.isLive(id) {
		return entityLocation{}, false
	}
	return ei.locations[id.index], true
}

// set records where a live id currently lives.
func (ei *entityIndex) set(id EntityId, loc entityLocation) {
	ei.locations[id.index] = loc
}

// despawn bumps id's generation and returns its slot to the free list.
func (ei *entityIndex) despawn(id EntityId) {
	ei.generations[id.index]++
	ei.locations[id.index] = entityLocation{}
	ei.free = append(ei.free, id.index)
}
