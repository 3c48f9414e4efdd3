package rqtree

import "github.com/gaissmai/rqtree/internal/memory"

// RangeSegment is a Segment tree that additionally supports O(log n)
// range-assignment updates via lazy propagation (§4.7). Two parallel
// arrays, lazyValue and lazyFlag, carry pending assignments: when
// lazyFlag[i] is true, node i already reflects a pending range-assignment
// of lazyValue[i] over its whole covered interval, but its descendants
// have not yet been updated.
type RangeSegment[T any] struct {
	core      coreTree[T]
	rop       Repeat[T]
	lazyValue []T
	lazyFlag  []bool
	lazyAlloc memory.Allocator[T]
	flagAlloc memory.Allocator[bool]
}

// NewRangeSegment builds a RangeSegment tree of length n, every leaf
// holding zeroVal. Precondition: n > 0.
func NewRangeSegment[T any](n int, zeroVal T, op Op[T], rop Repeat[T], alloc memory.Allocator[T]) *RangeSegment[T] {
	if n <= 0 {
		panic("rqtree: RangeSegment length must be positive")
	}
	if alloc == nil {
		alloc = memory.NewSlice[T]()
	}
	t := newRangeSegmentShell[T](n, op, rop, alloc)
	memory.BuildWithRollback(alloc, t.core.data, func() {
		t.core.build(0, n, 0, func(int) T { return zeroVal })
	})
	return t
}

// NewRangeSegmentFrom builds a RangeSegment tree with the same logical
// content as values. Precondition: len(values) > 0.
func NewRangeSegmentFrom[T any](values []T, op Op[T], rop Repeat[T], alloc memory.Allocator[T]) *RangeSegment[T] {
	n := len(values)
	if n <= 0 {
		panic("rqtree: RangeSegment length must be positive")
	}
	if alloc == nil {
		alloc = memory.NewSlice[T]()
	}
	t := newRangeSegmentShell[T](n, op, rop, alloc)
	memory.BuildWithRollback(alloc, t.core.data, func() {
		t.core.build(0, n, 0, func(i int) T { return values[i] })
	})
	return t
}

func newRangeSegmentShell[T any](n int, op Op[T], rop Repeat[T], alloc memory.Allocator[T]) *RangeSegment[T] {
	t := &RangeSegment[T]{
		rop:       rop,
		lazyAlloc: alloc,
		flagAlloc: memory.NewSlice[bool](),
	}
	t.core = coreTree[T]{n: n, op: op, alloc: alloc, push: t.push}
	t.core.data = alloc.Alloc(dataLength(n))
	t.lazyValue = alloc.Alloc(dataLength(n))
	t.lazyFlag = t.flagAlloc.Alloc(dataLength(n))
	return t
}

// push propagates node's pending assignment, if any, to both children,
// scaling via rop to each child's covered length, then clears node's
// flag. Precondition: r-l >= 2. Mirrors range_segment_tree::push.
func (t *RangeSegment[T]) push(node, l, r int) {
	if !t.lazyFlag[node] {
		return
	}
	m := l + (r-l)/2
	leftIdx := node + 1
	rightIdx := node + 2*(m-l)
	v := t.lazyValue[node]

	t.core.data[leftIdx] = t.rop(m-l, v)
	t.core.data[rightIdx] = t.rop(r-m, v)
	t.writeLazy(leftIdx, v)
	t.writeLazy(rightIdx, v)

	t.lazyFlag[node] = false
}

func (t *RangeSegment[T]) writeLazy(node int, v T) {
	t.lazyValue[node] = v
	t.lazyFlag[node] = true
}

// pushAll recursively pushes until no lazy flag remains in the subtree
// rooted at node covering [l,r). Mirrors push_all.
func (t *RangeSegment[T]) pushAll(node, l, r int) {
	if l+1 == r {
		t.lazyFlag[node] = false
		return
	}
	m := l + (r-l)/2
	leftIdx := node + 1
	rightIdx := node + 2*(m-l)
	t.push(node, l, r)
	t.pushAll(leftIdx, l, m)
	t.pushAll(rightIdx, m, r)
}

// Size returns the number of logical elements in the tree.
func (t *RangeSegment[T]) Size() int { return t.core.n }

// GetAllocator returns the allocator backing this tree's data storage.
func (t *RangeSegment[T]) GetAllocator() memory.Allocator[T] { return t.core.alloc }

// Query returns op-reduction over [a,b), pushing pending assignments at
// every node it descends through. Precondition: 0 <= a < b <= n;
// otherwise returns ErrInvalidRange.
func (t *RangeSegment[T]) Query(a, b int) (T, error) {
	var zero T
	if a >= b || a < 0 || b > t.core.n {
		return zero, ErrInvalidRange
	}
	return t.core.queryAt(a, b, 0, 0, t.core.n), nil
}

// Update assigns val to every logical position in [a,b). a==b is a no-op.
// Panics if the range is out of bounds.
func (t *RangeSegment[T]) Update(a, b int, val T) {
	if a < 0 || b < a || b > t.core.n {
		panic("rqtree: RangeSegment.Update out of range")
	}
	if a == b {
		return
	}
	t.updateAt(a, b, val, 0, 0, t.core.n)
}

// UpdatePoint specializes Update to [pos, pos+1).
func (t *RangeSegment[T]) UpdatePoint(pos int, val T) {
	if pos < 0 || pos >= t.core.n {
		panic("rqtree: RangeSegment.UpdatePoint index out of range")
	}
	t.updateAt(pos, pos+1, val, 0, 0, t.core.n)
}

func (t *RangeSegment[T]) updateAt(first, last int, val T, curr, l, r int) {
	if l == first && r == last {
		t.core.data[curr] = t.rop(r-l, val)
		t.writeLazy(curr, val)
		return
	}
	t.push(curr, l, r)
	m := l + (r-l)/2
	leftRoot := curr + 1
	rightRoot := curr + 2*(m-l)
	if last <= m {
		t.updateAt(first, last, val, leftRoot, l, m)
	} else if m <= first {
		t.updateAt(first, last, val, rightRoot, m, r)
	} else {
		t.updateAt(first, m, val, leftRoot, l, m)
		t.updateAt(m, last, val, rightRoot, m, r)
	}
	t.core.data[curr] = t.core.op(t.core.data[leftRoot], t.core.data[rightRoot])
}

// PrefixSearch returns the smallest k in (a,b] such that
// pred(Query(a,k)) holds, or (0, false). Pushes at every node it
// descends through.
func (t *RangeSegment[T]) PrefixSearch(pred func(T) bool, a, b int) (int, bool) {
	return t.core.prefixSearch(pred, a, b)
}

// SuffixSearch returns the smallest k in [a,b) such that
// pred(Query(k,b)) holds, or (0, false). Pushes at every node it
// descends through.
func (t *RangeSegment[T]) SuffixSearch(pred func(T) bool, a, b int) (int, bool) {
	return t.core.suffixSearch(pred, a, b)
}

// PushAll propagates every pending lazy assignment all the way to the
// leaves, leaving no lazy flag set. Exposed for tests that need to
// inspect the raw data array.
func (t *RangeSegment[T]) PushAll() {
	t.pushAll(0, 0, t.core.n)
}

// Equal reports whether t and other have the same logical length and,
// after push-all on both receivers, agree position for position on
// their data arrays. Per §9/§4.7, equality has the side effect of fully
// propagating both trees' lazy state even though it does not change any
// observable query result.
func (t *RangeSegment[T]) Equal(other *RangeSegment[T], eq func(a, b T) bool) bool {
	if t.core.n != other.core.n {
		return false
	}
	t.PushAll()
	other.PushAll()
	for i := range t.core.data {
		if !eq(t.core.data[i], other.core.data[i]) {
			return false
		}
	}
	return true
}

// Clone deep-copies the tree, including any live lazy values, into
// freshly allocated storage obtained from the same allocators.
func (t *RangeSegment[T]) Clone() *RangeSegment[T] {
	clone := newRangeSegmentShell[T](t.core.n, t.core.op, t.rop, t.core.alloc)
	copy(clone.core.data, t.core.data)
	copy(clone.lazyFlag, t.lazyFlag)
	for i, flagged := range t.lazyFlag {
		if flagged {
			clone.lazyValue[i] = t.lazyValue[i]
		}
	}
	return clone
}

// Release returns this tree's backing storage to its allocators. The
// tree must not be used afterward.
func (t *RangeSegment[T]) Release() {
	memory.Destroy(t.core.alloc, t.core.data)
	memory.Destroy(t.lazyAlloc, t.lazyValue)
	memory.Destroy(t.flagAlloc, t.lazyFlag)
	t.core.data = nil
}

// Valid checks invariant I1 over the whole tree after a push-all.
// Intended for tests.
func (t *RangeSegment[T]) Valid(eq func(a, b T) bool) bool {
	t.PushAll()
	return t.core.validate(eq)
}
