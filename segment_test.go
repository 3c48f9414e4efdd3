package rqtree

import (
	"math/rand/v2"
	"testing"
)

func maxOp(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minOp(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func TestSegmentQueryAgainstNaive(t *testing.T) {
	t.Parallel()

	values := []int{5, 2, 8, 1, 9, 3, 7, 4, 6, 0}
	s := NewSegmentFrom(values, maxOp, nil)

	naive := func(a, b int) int {
		m := values[a]
		for i := a + 1; i < b; i++ {
			m = maxOp(m, values[i])
		}
		return m
	}

	for a := 0; a < len(values); a++ {
		for b := a + 1; b <= len(values); b++ {
			got, err := s.Query(a, b)
			if err != nil {
				t.Fatalf("Query(%d,%d) returned error %v", a, b, err)
			}
			if want := naive(a, b); got != want {
				t.Fatalf("Query(%d,%d) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestSegmentQueryInvalidRange(t *testing.T) {
	t.Parallel()

	s := NewSegment(4, 0, maxOp, nil)
	cases := [][2]int{{0, 0}, {2, 1}, {-1, 2}, {0, 5}}
	for _, c := range cases {
		if _, err := s.Query(c[0], c[1]); err != ErrInvalidRange {
			t.Fatalf("Query(%d,%d) error = %v, want ErrInvalidRange", c[0], c[1], err)
		}
	}
}

func TestSegmentUpdateMaintainsInvariant(t *testing.T) {
	t.Parallel()

	n := 17
	s := NewSegment(n, 0, maxOp, nil)
	prng := rand.New(rand.NewPCG(3, 4))
	values := make([]int, n)

	for step := 0; step < 300; step++ {
		pos := prng.IntN(n)
		val := prng.IntN(1000)
		values[pos] = val
		s.Update(pos, val)

		if !s.Valid(func(a, b int) bool { return a == b }) {
			t.Fatalf("invariant violated after Update(%d,%d)", pos, val)
		}

		a := prng.IntN(n)
		b := a + 1 + prng.IntN(n-a)
		got, err := s.Query(a, b)
		if err != nil {
			t.Fatalf("Query(%d,%d) error: %v", a, b, err)
		}
		want := values[a]
		for i := a + 1; i < b; i++ {
			want = maxOp(want, values[i])
		}
		if got != want {
			t.Fatalf("Query(%d,%d) = %d, want %d", a, b, got, want)
		}
	}
}

func TestSegmentPrefixSearch(t *testing.T) {
	t.Parallel()

	values := []int{1, 2, 3, 4, 5, 6}
	s := NewSegmentFrom(values, addOp, nil)

	pred := func(sum int) bool { return sum >= 10 }
	k, ok := s.PrefixSearch(pred, 0, len(values))
	if !ok {
		t.Fatal("expected PrefixSearch to find a boundary")
	}
	sum := 0
	for i := 0; i < k; i++ {
		sum += values[i]
	}
	if sum < 10 {
		t.Fatalf("PrefixSearch returned k=%d with prefix sum %d < 10", k, sum)
	}
	if k > 0 {
		prevSum := sum - values[k-1]
		if prevSum >= 10 {
			t.Fatalf("PrefixSearch returned k=%d, but k-1 already satisfies pred (sum=%d)", k, prevSum)
		}
	}
}

func TestSegmentPrefixSearchEmptyRange(t *testing.T) {
	t.Parallel()

	s := NewSegment(4, 0, addOp, nil)
	if _, ok := s.PrefixSearch(func(int) bool { return true }, 2, 2); ok {
		t.Fatal("PrefixSearch over empty range should return (0, false)")
	}
}

func TestSegmentSuffixSearch(t *testing.T) {
	t.Parallel()

	values := []int{1, 2, 3, 4, 5, 6}
	s := NewSegmentFrom(values, addOp, nil)

	pred := func(sum int) bool { return sum >= 10 }
	k, ok := s.SuffixSearch(pred, 0, len(values))
	if !ok {
		t.Fatal("expected SuffixSearch to find a boundary")
	}
	sum := 0
	for i := k; i < len(values); i++ {
		sum += values[i]
	}
	if sum < 10 {
		t.Fatalf("SuffixSearch returned k=%d with suffix sum %d < 10", k, sum)
	}
}

func TestSegmentCloneIndependence(t *testing.T) {
	t.Parallel()

	s := NewSegmentFrom([]int{1, 2, 3, 4}, maxOp, nil)
	clone := s.Clone()
	s.Update(0, 999)

	if s.Equal(clone, func(a, b int) bool { return a == b }) {
		t.Fatal("clone observed mutation of original")
	}
	got, _ := clone.Query(0, 4)
	if got != 4 {
		t.Fatalf("clone.Query(0,4) = %d, want 4", got)
	}
}

func TestSegmentNewPanicsOnNonPositiveLength(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Fatal("NewSegment(0, ...) did not panic")
		}
	}()
	NewSegment(0, 0, maxOp, nil)
}

func FuzzSegment(f *testing.F) {
	f.Add(uint64(1), 20, 200)
	f.Add(uint64(5), 50, 50)

	f.Fuzz(func(t *testing.T, seed uint64, n, ops int) {
		if n < 1 || n > 1000 || ops < 0 || ops > 1000 {
			t.Skip("bounds")
		}

		prng := rand.New(rand.NewPCG(seed, 11))
		values := make([]int, n)
		for i := range values {
			values[i] = prng.IntN(500)
		}

		s := NewSegmentFrom(values, minOp, nil)

		for i := 0; i < ops; i++ {
			if prng.IntN(2) == 0 {
				pos := prng.IntN(n)
				val := prng.IntN(500)
				values[pos] = val
				s.Update(pos, val)
				continue
			}
			a := prng.IntN(n)
			b := a + 1 + prng.IntN(n-a)
			got, err := s.Query(a, b)
			if err != nil {
				t.Fatalf("Query(%d,%d) error: %v", a, b, err)
			}
			want := values[a]
			for j := a + 1; j < b; j++ {
				want = minOp(want, values[j])
			}
			if got != want {
				t.Fatalf("Query(%d,%d) = %d, want %d", a, b, got, want)
			}
		}
		if !s.Valid(func(a, b int) bool { return a == b }) {
			t.Fatal("invariant violated")
		}
	})
}
