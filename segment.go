package rqtree

import "github.com/gaissmai/rqtree/internal/memory"

// Segment is a fixed-length data structure supporting O(log n) range
// query and point update for any associative operator. Its flat array
// has length 2n-1, laid out by the implicit recursion of §4.2.
type Segment[T any] struct {
	core coreTree[T]
}

// NewSegment builds a Segment tree of length n, every leaf holding
// zeroVal. Precondition: n > 0. alloc may be nil for the default
// allocator.
func NewSegment[T any](n int, zeroVal T, op Op[T], alloc memory.Allocator[T]) *Segment[T] {
	if n <= 0 {
		panic("rqtree: Segment length must be positive")
	}
	if alloc == nil {
		alloc = memory.NewSlice[T]()
	}
	s := &Segment[T]{core: coreTree[T]{n: n, op: op, alloc: alloc}}
	s.core.data = alloc.Alloc(dataLength(n))
	memory.BuildWithRollback(alloc, s.core.data, func() {
		s.core.build(0, n, 0, func(int) T { return zeroVal })
	})
	return s
}

// NewSegmentFrom builds a Segment tree with the same logical content as
// values. Precondition: len(values) > 0.
func NewSegmentFrom[T any](values []T, op Op[T], alloc memory.Allocator[T]) *Segment[T] {
	n := len(values)
	if n <= 0 {
		panic("rqtree: Segment length must be positive")
	}
	if alloc == nil {
		alloc = memory.NewSlice[T]()
	}
	s := &Segment[T]{core: coreTree[T]{n: n, op: op, alloc: alloc}}
	s.core.data = alloc.Alloc(dataLength(n))
	memory.BuildWithRollback(alloc, s.core.data, func() {
		s.core.build(0, n, 0, func(i int) T { return values[i] })
	})
	return s
}

// Size returns the number of logical elements in the tree.
func (s *Segment[T]) Size() int { return s.core.n }

// GetAllocator returns the allocator backing this tree's storage.
func (s *Segment[T]) GetAllocator() memory.Allocator[T] { return s.core.alloc }

// Query returns op-reduction over [a,b). Precondition: 0 <= a < b <= n;
// otherwise returns ErrInvalidRange.
func (s *Segment[T]) Query(a, b int) (T, error) {
	var zero T
	if a >= b || a < 0 || b > s.core.n {
		return zero, ErrInvalidRange
	}
	return s.core.queryAt(a, b, 0, 0, s.core.n), nil
}

// Update replaces the logical value at pos with val, then recomputes
// every ancestor as op(left,right) on the way back up. Panics if pos is
// out of range.
func (s *Segment[T]) Update(pos int, val T) {
	if pos < 0 || pos >= s.core.n {
		panic("rqtree: Segment.Update index out of range")
	}
	s.updateAt(pos, 0, 0, s.core.n, val)
}

func (s *Segment[T]) updateAt(pos, curr, l, r int, val T) {
	if l == pos && l+1 == r {
		s.core.data[curr] = val
		return
	}
	m := l + (r-l)/2
	leftRoot := curr + 1
	rightRoot := curr + 2*(m-l)
	if pos < m {
		s.updateAt(pos, leftRoot, l, m, val)
	} else {
		s.updateAt(pos, rightRoot, m, r, val)
	}
	s.core.data[curr] = s.core.op(s.core.data[leftRoot], s.core.data[rightRoot])
}

// PrefixSearch returns the smallest k in (a,b] such that
// pred(Query(a,k)) holds, or (0, false). pred must be upward-monotone on
// prefixes. Precondition: 0 <= a <= b <= n.
func (s *Segment[T]) PrefixSearch(pred func(T) bool, a, b int) (int, bool) {
	return s.core.prefixSearch(pred, a, b)
}

// SuffixSearch returns the smallest k in [a,b) such that
// pred(Query(k,b)) holds, or (0, false). pred must be upward-monotone on
// suffixes. Precondition: 0 <= a <= b <= n.
func (s *Segment[T]) SuffixSearch(pred func(T) bool, a, b int) (int, bool) {
	return s.core.suffixSearch(pred, a, b)
}

// Equal reports whether s and other have the same logical length and
// agree, position for position, on every slot of their flat arrays
// (leaves plus internal folds) — size 0 is not representable since
// Segment requires n > 0.
func (s *Segment[T]) Equal(other *Segment[T], eq func(a, b T) bool) bool {
	if s.core.n != other.core.n {
		return false
	}
	for i := range s.core.data {
		if !eq(s.core.data[i], other.core.data[i]) {
			return false
		}
	}
	return true
}

// Clone deep-copies the tree into freshly allocated storage obtained from
// the same allocator.
func (s *Segment[T]) Clone() *Segment[T] {
	clone := &Segment[T]{core: coreTree[T]{n: s.core.n, op: s.core.op, alloc: s.core.alloc}}
	clone.core.data = memory.CopyBuild(s.core.alloc, s.core.data)
	return clone
}

// Release returns this tree's backing storage to its allocator. The tree
// must not be used afterward.
func (s *Segment[T]) Release() {
	memory.Destroy(s.core.alloc, s.core.data)
	s.core.data = nil
}

// valid reports whether invariant I1 holds over the whole tree; exported
// via the exported Valid wrapper so tests outside the package can assert
// it without reaching into unexported fields.
func (s *Segment[T]) valid(eq func(a, b T) bool) bool {
	return s.core.validate(eq)
}

// Valid checks invariant I1 (every internal node equals op of its
// children) over the whole tree. Intended for tests.
func (s *Segment[T]) Valid(eq func(a, b T) bool) bool {
	return s.valid(eq)
}
