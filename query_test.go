package stratum

import "testing"

func TestQuery1VisitsEveryMatchingEntity(t *testing.T) {
	w := NewWorld()
	want := map[EntityId]Position{}
	for i := 0; i < 5; i++ {
		id := w.Spawn()
		p := Position{X: float64(i)}
		_ = InsertComponent(w, id, p)
		want[id] = p
	}
	// An entity with no Position should never be visited.
	other := w.Spawn()
	_ = InsertComponent(w, other, Velocity{})

	q := NewQuery1[Position](Read[Position](), nil)
	sys := System1("read-positions", q, func(bound *Query1[Position]) {
		got := map[EntityId]Position{}
		for bound.Next() {
			got[bound.Entity()] = bound.Get0().Value()
		}
		if len(got) != len(want) {
			t.Fatalf("visited %d entities, want %d", len(got), len(want))
		}
		for id, p := range want {
			if got[id] != p {
				t.Fatalf("entity %v: got %+v, want %+v", id, got[id], p)
			}
		}
	})
	if err := w.RunStage(NewStage().Add(sys)); err != nil {
		t.Fatalf("RunStage: %v", err)
	}
}

func TestQuery2WritesThroughMutSlot(t *testing.T) {
	w := NewWorld()
	id := w.Spawn()
	_ = InsertComponent(w, id, Position{X: 0, Y: 0})
	_ = InsertComponent(w, id, Velocity{X: 1, Y: 2})

	q := NewQuery2[Position, Velocity](Write[Position](), Read[Velocity](), nil)
	sys := System1("integrate", q, func(bound *Query2[Position, Velocity]) {
		for bound.Next() {
			v := bound.Get1().Value()
			p := bound.Get0Mut()
			cur := p.Value()
			p.Set(Position{X: cur.X + v.X, Y: cur.Y + v.Y})
		}
	})
	if err := w.RunStage(NewStage().Add(sys)); err != nil {
		t.Fatalf("RunStage: %v", err)
	}

	got, _ := GetComponent[Position](w, id)
	if *got != (Position{X: 1, Y: 2}) {
		t.Fatalf("Position after integrate = %+v, want {1 2}", *got)
	}
}

func TestQueryWithFilterExcludesComponent(t *testing.T) {
	w := NewWorld()
	alive := w.Spawn()
	_ = InsertComponent(w, alive, Position{})

	dead := w.Spawn()
	_ = InsertComponent(w, dead, Position{})
	_ = InsertComponent(w, dead, Health{Current: 0})

	q := NewQuery1[Position](Read[Position](), Without(T[Health]()))
	sys := System1("alive-only", q, func(bound *Query1[Position]) {
		count := 0
		for bound.Next() {
			if bound.Entity() != alive {
				t.Fatalf("query with Without(Health) should not visit %v", bound.Entity())
			}
			count++
		}
		if count != 1 {
			t.Fatalf("matched %d entities, want 1", count)
		}
	})
	if err := w.RunStage(NewStage().Add(sys)); err != nil {
		t.Fatalf("RunStage: %v", err)
	}
}

func TestQueryWithFilterRequiresComponent(t *testing.T) {
	w := NewWorld()
	tagged := w.Spawn()
	_ = InsertComponent(w, tagged, Position{})
	_ = InsertComponent(w, tagged, Health{Current: 1})

	untagged := w.Spawn()
	_ = InsertComponent(w, untagged, Position{})

	q := NewQuery1[Position](Read[Position](), With(T[Health]()))
	sys := System1("tagged-only", q, func(bound *Query1[Position]) {
		count := 0
		for bound.Next() {
			if bound.Entity() != tagged {
				t.Fatalf("query with With(Health) should not visit %v", bound.Entity())
			}
			count++
		}
		if count != 1 {
			t.Fatalf("matched %d entities, want 1", count)
		}
	})
	if err := w.RunStage(NewStage().Add(sys)); err != nil {
		t.Fatalf("RunStage: %v", err)
	}
}

func TestQueryIterationOrderIsDeterministicAcrossBinds(t *testing.T) {
	w := NewWorld()
	for i := 0; i < 20; i++ {
		id := w.Spawn()
		_ = InsertComponent(w, id, Position{X: float64(i)})
	}

	q := NewQuery1[Position](Read[Position](), nil)

	var order1, order2 []EntityId
	first := q.bindNew(w, nil)
	for first.Next() {
		order1 = append(order1, first.Entity())
	}
	second := q.bindNew(w, nil)
	for second.Next() {
		order2 = append(order2, second.Entity())
	}

	if len(order1) != len(order2) {
		t.Fatalf("bind order lengths differ: %d vs %d", len(order1), len(order2))
	}
	for i := range order1 {
		if order1[i] != order2[i] {
			t.Fatalf("bind order differs at %d: %v vs %v", i, order1[i], order2[i])
		}
	}
}

func TestQuerySelfOverlapPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic when a query requests &mut T via overlapping terms")
		}
	}()

	as := newAccessSet()
	as.markComponentMut(typeOf[Position]())
	as.markComponentMut(typeOf[Position]())
}

func TestQuerySetUnionsIsolatedInnerAccess(t *testing.T) {
	w := NewWorld()
	moving := w.Spawn()
	_ = InsertComponent(w, moving, Position{})

	qs := NewQuerySet2[*Query1[Position], *Query1[Position]](
		NewQuery1[Position](Write[Position](), nil),
		NewQuery1[Position](Write[Position](), nil),
	)

	// Building this system must not panic even though both inner queries
	// request &mut Position: QuerySet validates each in isolation before
	// unioning, unlike a single query requesting the same type twice.
	sys := System1("conflicting-inner-queries-are-fine-inside-a-set", qs,
		func(bound *QuerySet2[*Query1[Position], *Query1[Position]]) {
			count := 0
			q0 := bound.Q0()
			for q0.Next() {
				count++
			}
			if count != 1 {
				t.Fatalf("Q0 visited %d entities, want 1", count)
			}
		})

	if err := w.RunStage(NewStage().Add(sys)); err != nil {
		t.Fatalf("RunStage: %v", err)
	}
}
