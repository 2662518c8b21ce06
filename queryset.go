package stratum

// QuerySet groups several inner queries behind one system parameter when
// they would otherwise conflict under the ordinary single-query rule, e.g.
// Query1[Position] (const) alongside Query1[Position] (mut) for a
// "moving vs stationary" split (spec.md §4.5). Each inner query is
// validated against its own fresh accessSet in isolation — so a term
// repeated across inner queries never panics the way a repeat within one
// query does — and only the union is reported as the QuerySet's own access,
// for stage conflict analysis against other systems. Each inner query is
// reached through its Q0/Q1/... accessor, mirroring the q0/q0_mut accessor
// naming of the original caolo-entities QuerySet. Every inner query is
// bound for the whole system invocation; the accessors do not stop a
// system from holding two inner queries at once.

// QuerySet2 wraps two inner queries.
type QuerySet2[A queryLike[A], B queryLike[B]] struct {
	blueprintA A
	blueprintB B
	boundA     A
	boundB     B
}

// NewQuerySet2 builds a QuerySet2 blueprint from two inner query blueprints.
func NewQuerySet2[A queryLike[A], B queryLike[B]](a A, b B) *QuerySet2[A, B] {
	return &QuerySet2[A, B]{blueprintA: a, blueprintB: b}
}

func (qs *QuerySet2[A, B]) accessConst(as *accessSet) {
	inner := newAccessSet()
	qs.blueprintA.accessConst(inner)
	qs.blueprintA.accessMut(inner)
	as.mergeFrom(inner)

	inner = newAccessSet()
	qs.blueprintB.accessConst(inner)
	qs.blueprintB.accessMut(inner)
	as.mergeFrom(inner)
}

// accessMut is a no-op: accessConst above already folds both inner queries'
// full const+mut footprint into the outer set.
func (qs *QuerySet2[A, B]) accessMut(*accessSet) {}

func (qs *QuerySet2[A, B]) bindNew(w *World, cmds *CommandBuffer) *QuerySet2[A, B] {
	return &QuerySet2[A, B]{
		blueprintA: qs.blueprintA,
		blueprintB: qs.blueprintB,
		boundA:     qs.blueprintA.bindNew(w, cmds),
		boundB:     qs.blueprintB.bindNew(w, cmds),
	}
}

// Q0 returns the first inner query, bound live for this system invocation.
func (qs *QuerySet2[A, B]) Q0() A { return qs.boundA }

// Q1 returns the second inner query, bound live for this system invocation.
func (qs *QuerySet2[A, B]) Q1() B { return qs.boundB }

// QuerySet3 wraps three inner queries.
type QuerySet3[A queryLike[A], B queryLike[B], C queryLike[C]] struct {
	blueprintA A
	blueprintB B
	blueprintC C
	boundA     A
	boundB     B
	boundC     C
}

func NewQuerySet3[A queryLike[A], B queryLike[B], C queryLike[C]](a A, b B, c C) *QuerySet3[A, B, C] {
	return &QuerySet3[A, B, C]{blueprintA: a, blueprintB: b, blueprintC: c}
}

func (qs *QuerySet3[A, B, C]) accessConst(as *accessSet) {
	for _, fold := range []func(*accessSet){
		func(inner *accessSet) { qs.blueprintA.accessConst(inner); qs.blueprintA.accessMut(inner) },
		func(inner *accessSet) { qs.blueprintB.accessConst(inner); qs.blueprintB.accessMut(inner) },
		func(inner *accessSet) { qs.blueprintC.accessConst(inner); qs.blueprintC.accessMut(inner) },
	} {
		inner := newAccessSet()
		fold(inner)
		as.mergeFrom(inner)
	}
}

func (qs *QuerySet3[A, B, C]) accessMut(*accessSet) {}

func (qs *QuerySet3[A, B, C]) bindNew(w *World, cmds *CommandBuffer) *QuerySet3[A, B, C] {
	return &QuerySet3[A, B, C]{
		blueprintA: qs.blueprintA, blueprintB: qs.blueprintB, blueprintC: qs.blueprintC,
		boundA: qs.blueprintA.bindNew(w, cmds),
		boundB: qs.blueprintB.bindNew(w, cmds),
		boundC: qs.blueprintC.bindNew(w, cmds),
	}
}

func (qs *QuerySet3[A, B, C]) Q0() A { return qs.boundA }
func (qs *QuerySet3[A, B, C]) Q1() B { return qs.boundB }
func (qs *QuerySet3[A, B, C]) Q2() C { return qs.boundC }

// QuerySet4 wraps four inner queries, the arity budget stratum shares with
// Query, Bundle and System.
type QuerySet4[A queryLike[A], B queryLike[B], C queryLike[C], D queryLike[D]] struct {
	blueprintA A
	blueprintB B
	blueprintC C
	blueprintD D
	boundA     A
	boundB     B
	boundC     C
	boundD     D
}

func NewQuerySet4[A queryLike[A], B queryLike[B], C queryLike[C], D queryLike[D]](a A, b B, c C, d D) *QuerySet4[A, B, C, D] {
	return &QuerySet4[A, B, C, D]{blueprintA: a, blueprintB: b, blueprintC: c, blueprintD: d}
}

func (qs *QuerySet4[A, B, C, D]) accessConst(as *accessSet) {
	for _, fold := range []func(*accessSet){
		func(inner *accessSet) { qs.blueprintA.accessConst(inner); qs.blueprintA.accessMut(inner) },
		func(inner *accessSet) { qs.blueprintB.accessConst(inner); qs.blueprintB.accessMut(inner) },
		func(inner *accessSet) { qs.blueprintC.accessConst(inner); qs.blueprintC.accessMut(inner) },
		func(inner *accessSet) { qs.blueprintD.accessConst(inner); qs.blueprintD.accessMut(inner) },
	} {
		inner := newAccessSet()
		fold(inner)
		as.mergeFrom(inner)
	}
}

func (qs *QuerySet4[A, B, C, D]) accessMut(*accessSet) {}

func (qs *QuerySet4[A, B, C, D]) bindNew(w *World, cmds *CommandBuffer) *QuerySet4[A, B, C, D] {
	return &QuerySet4[A, B, C, D]{
		blueprintA: qs.blueprintA, blueprintB: qs.blueprintB, blueprintC: qs.blueprintC, blueprintD: qs.blueprintD,
		boundA: qs.blueprintA.bindNew(w, cmds),
		boundB: qs.blueprintB.bindNew(w, cmds),
		boundC: qs.blueprintC.bindNew(w, cmds),
		boundD: qs.blueprintD.bindNew(w, cmds),
	}
}

func (qs *QuerySet4[A, B, C, D]) Q0() A { return qs.boundA }
func (qs *QuerySet4[A, B, C, D]) Q1() B { return qs.boundB }
func (qs *QuerySet4[A, B, C, D]) Q2() C { return qs.boundC }
func (qs *QuerySet4[A, B, C, D]) Q3() D { return qs.boundD }
