package stratum

// rowRef is one (archetype, row) pair a Cursor visits.
type rowRef struct {
	arch *ArchetypeStorage
	row  RowIndex
	id   EntityId
}

// Cursor walks every live row across a fixed set of matched archetypes,
// archetype-by-archetype in ArchetypeHash order and row-by-row in ascending
// order within each, skipping holes left by earlier removals (spec.md §4.5:
// deterministic order within a tick). Unlike the teacher's table-backed
// Cursor (cursor.go), which assumes dense, swap-compacted storage and walks
// a plain remaining-count, stratum's PageTable preserves holes, so the
// matched rows are materialized up front from each archetype's own
// hole-aware Iter rather than driven by a live remaining/entityIndex
// counter.
type Cursor struct {
	refs []rowRef
	pos  int
}

// newCursor finds every archetype in w carrying all of required and
// satisfying filter (if non-nil), then flattens their live rows into refs.
// The matched-archetype list is cached under planKey, keyed additionally by
// w.archetypeGeneration() so a new archetype invalidates it automatically;
// the row flattening itself always runs fresh, since entities move in and
// out of an archetype every tick even when the archetype set is stable.
func newCursor(w *World, planKey int, required []typeRef, filter Filter) *Cursor {
	matched, ok := w.planCache.get(planKey, w.archetypeGeneration())
	if !ok {
		for _, a := range w.Archetypes() {
			good := true
			for _, t := range required {
				if !a.ContainsType(t.t) {
					good = false
					break
				}
			}
			if good && filter != nil && !filter.matches(w, a) {
				good = false
			}
			if good {
				matched = append(matched, a)
			}
		}
		w.planCache.put(planKey, w.archetypeGeneration(), matched)
	}

	c := &Cursor{pos: -1}
	for _, a := range matched {
		a.Iter(func(row RowIndex, id EntityId) bool {
			c.refs = append(c.refs, rowRef{arch: a, row: row, id: id})
			return true
		})
	}
	return c
}

// Next advances to the next matched row, returning false once exhausted.
func (c *Cursor) Next() bool {
	c.pos++
	return c.pos < len(c.refs)
}

// Reset rewinds the cursor to iterate the same matched rows again.
func (c *Cursor) Reset() { c.pos = -1 }

// Entity returns the entity owning the current row.
func (c *Cursor) Entity() EntityId { return c.refs[c.pos].id }

func (c *Cursor) archetype() *ArchetypeStorage { return c.refs[c.pos].arch }
func (c *Cursor) rowIdx() RowIndex             { return c.refs[c.pos].row }

// Len returns the total number of rows this cursor will visit.
func (c *Cursor) Len() int { return len(c.refs) }
