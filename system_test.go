package stratum

import "testing"

func TestSystem2RejectsMutAndConstOfSameComponent(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected System2 to panic when one param writes Health and the other reads it")
		}
	}()
	System2("s",
		NewQuery1[Health](Write[Health](), nil),
		NewQuery1[Health](Read[Health](), nil),
		func(*Query1[Health], *Query1[Health]) {},
	)
}

func TestSystem2RejectsConstThenMutOfSameComponent(t *testing.T) {
	// Same conflict, opposite declaration order: the read-only param comes
	// first, so the check must not depend on the write being seen first.
	defer func() {
		if recover() == nil {
			t.Fatalf("expected System2 to panic when one param reads Health and the other writes it")
		}
	}()
	System2("s",
		NewQuery1[Health](Read[Health](), nil),
		NewQuery1[Health](Write[Health](), nil),
		func(*Query1[Health], *Query1[Health]) {},
	)
}

func TestSystem3RejectsMutAndConstOfSameComponentAcrossAnyPair(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected System3 to panic when a third param's read conflicts with an earlier param's write")
		}
	}()
	System3("s",
		NewQuery1[Position](Read[Position](), nil),
		NewQuery1[Velocity](Write[Velocity](), nil),
		NewQuery1[Velocity](Read[Velocity](), nil),
		func(*Query1[Position], *Query1[Velocity], *Query1[Velocity]) {},
	)
}

func TestSystem4RejectsMutAndConstOfSameComponent(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected System4 to panic when one param writes Health and another reads it")
		}
	}()
	System4("s",
		NewQuery1[Position](Read[Position](), nil),
		NewQuery1[Velocity](Read[Velocity](), nil),
		NewQuery1[Health](Write[Health](), nil),
		NewQuery1[Health](Read[Health](), nil),
		func(*Query1[Position], *Query1[Velocity], *Query1[Health], *Query1[Health]) {},
	)
}

func TestSystem2RejectsResMutAndResOfSameType(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected System2 to panic when one param holds ResMut[int] and the other Res[int]")
		}
	}()
	System2("s", ResMut[int]{}, Res[int]{}, func(ResMut[int], Res[int]) {})
}

func TestSystem2AllowsTwoConstReadersOfSameComponent(t *testing.T) {
	// Two read-only queries over the same component never conflict.
	System2("s",
		NewQuery1[Health](Read[Health](), nil),
		NewQuery1[Health](Read[Health](), nil),
		func(*Query1[Health], *Query1[Health]) {},
	)
}
