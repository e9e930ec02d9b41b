package rankfn

import "testing"

func TestIsTight(t *testing.T) {
	cases := []struct {
		values []int
		want   bool
	}{
		{[]int{1}, true},
		{[]int{3, 1}, true},
		{[]int{3, 0}, false}, // missing odd value 1
		{[]int{2, 0}, false}, // max even
		{[]int{1, 1, 3}, true},
	}
	for _, c := range cases {
		states := make([]int, len(c.values))
		for i := range states {
			states[i] = i
		}
		r := New(states, c.values)
		if got := r.IsTight(); got != c.want {
			t.Errorf("IsTight(%v) = %v, want %v", c.values, got, c.want)
		}
	}
}

func TestInverseRankAndOddStates(t *testing.T) {
	r := New([]int{0, 1, 2, 3}, []int{2, 1, 1, 3})
	if got := r.InverseRank(1); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("InverseRank(1) = %v", got)
	}
	odd := r.OddStates()
	if len(odd) != 3 {
		t.Fatalf("OddStates = %v, want 3 states", odd)
	}
}

func TestIsAllLeq(t *testing.T) {
	small := New([]int{0, 1}, []int{0, 1})
	big := New([]int{0, 1}, []int{2, 3})
	if !small.IsAllLeq(big) {
		t.Fatalf("expected small <= big pointwise")
	}
	if big.IsAllLeq(small) {
		t.Fatalf("expected big not <= small pointwise")
	}
}

func TestEnumeratorProducesCartesianProduct(t *testing.T) {
	constraints := []Constraint{
		{State: 0, Values: []int{0, 1}},
		{State: 1, Values: []int{0, 2}},
	}
	e := FromConstraint(constraints)
	count := 0
	for {
		_, ok := e.Next()
		if !ok {
			break
		}
		count++
	}
	if count != 4 {
		t.Fatalf("expected 4 combinations, got %d", count)
	}
}

func TestTightFromConstraintOnlyTight(t *testing.T) {
	constraints := []Constraint{
		{State: 0, Values: []int{0, 1, 2, 3}},
		{State: 1, Values: []int{0, 1, 2, 3}},
	}
	e := TightFromConstraint(constraints, nil, nil, nil, 100, false)
	for {
		r, ok := e.Next()
		if !ok {
			break
		}
		if !r.IsTight() {
			t.Fatalf("non-tight rank enumerated: %v", r.values)
		}
	}
}
