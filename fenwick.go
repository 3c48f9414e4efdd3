package rqtree

import "github.com/gaissmai/rqtree/internal/memory"

// Fenwick is a fixed-length data structure that supports O(log n) range
// accumulation and point update for any invertible associative operator.
//
// Internally it stores n+1 slots, 1-indexed; slot i (i>0) holds the
// operator-accumulation of the contiguous logical range
// (i-lowbit(i), i], where lowbit(i) = i & -i. Slot 0 is unused.
type Fenwick[T any] struct {
	data  []T // length n+1, data[0] unused
	n     int
	op    Op[T]
	inv   Inverse[T]
	ident T
	alloc memory.Allocator[T]
}

func lowbit(i int) int { return i & (-i) }

// NewFenwick builds a Fenwick tree of length n, every slot holding the
// given identity value. alloc may be nil, in which case the default
// make-backed allocator is used.
func NewFenwick[T any](n int, op Op[T], inv Inverse[T], identity T, alloc memory.Allocator[T]) *Fenwick[T] {
	if n < 0 {
		panic("rqtree: Fenwick length must be non-negative")
	}
	if alloc == nil {
		alloc = memory.NewSlice[T]()
	}
	f := &Fenwick[T]{n: n, op: op, inv: inv, ident: identity, alloc: alloc}
	f.data = memory.FillBuild(alloc, n+1, identity)
	f.build()
	return f
}

// NewFenwickFilled builds a Fenwick tree of length n, every logical slot
// holding value.
func NewFenwickFilled[T any](n int, value T, op Op[T], inv Inverse[T], identity T, alloc memory.Allocator[T]) *Fenwick[T] {
	if n < 0 {
		panic("rqtree: Fenwick length must be non-negative")
	}
	if alloc == nil {
		alloc = memory.NewSlice[T]()
	}
	f := &Fenwick[T]{n: n, op: op, inv: inv, ident: identity, alloc: alloc}
	f.data = memory.FillBuild(alloc, n+1, identity)
	for i := 1; i <= n; i++ {
		f.data[i] = value
	}
	f.build()
	return f
}

// NewFenwickFrom builds a Fenwick tree with the same logical content as
// values, in linear time via the doubling pass of §4.5.
func NewFenwickFrom[T any](values []T, op Op[T], inv Inverse[T], identity T, alloc memory.Allocator[T]) *Fenwick[T] {
	if alloc == nil {
		alloc = memory.NewSlice[T]()
	}
	n := len(values)
	f := &Fenwick[T]{n: n, op: op, inv: inv, ident: identity, alloc: alloc}
	f.data = memory.FillBuild(alloc, n+1, identity)
	copy(f.data[1:], values)
	f.build()
	return f
}

// build performs the linear-time doubling pass over power-of-two strides
// described in §4.5, avoiding the O(n log n) update-based build.
func (f *Fenwick[T]) build() {
	memory.BuildWithRollback(f.alloc, f.data, func() {
		f.initialize(f.data, len(f.data))
	})
}

// initialize mirrors binary_indexed_tree::initialize: for each stride
// s=1,2,4,..., data[s] is replaced by the fold of itself with the
// cumulative fold of the range preceding it, recursively.
func (f *Fenwick[T]) initialize(data []T, limit int) T {
	prev := f.ident
	for i := 1; i < limit; i *= 2 {
		data[i] = f.op(prev, data[i])
		nextLimit := i
		if limit-i < nextLimit {
			nextLimit = limit - i
		}
		if nextLimit == 1 {
			prev = data[i]
		} else {
			prev = f.op(data[i], f.initialize(data[i:], nextLimit))
		}
	}
	return prev
}

// Size returns the logical length of the tree.
func (f *Fenwick[T]) Size() int { return f.n }

// GetIdentity returns the operator's identity element.
func (f *Fenwick[T]) GetIdentity() T { return f.ident }

// GetAllocator returns the allocator backing this tree's storage.
func (f *Fenwick[T]) GetAllocator() memory.Allocator[T] { return f.alloc }

// Range returns the operator-accumulation of the logical half-open range
// [a, b). Precondition: 0 <= a <= b <= n. a==b returns the identity.
// Panics if the range is out of bounds.
//
// Two cursors ca=a, cb=b repeatedly strip their low bit, folding the
// stripped slot into the corresponding accumulator, until they meet at
// their LCA — meeting there avoids computing two full prefix folds.
func (f *Fenwick[T]) Range(a, b int) T {
	if a < 0 || b < a || b > f.n {
		panic("rqtree: Fenwick.Range out of bounds")
	}
	if a == b {
		return f.ident
	}
	ca, cb := a, b
	sa, sb := f.ident, f.ident
	for ca != cb {
		if ca < cb {
			sb = f.op(f.data[cb], sb)
			cb -= lowbit(cb)
		} else {
			sa = f.op(f.data[ca], sa)
			ca -= lowbit(ca)
		}
	}
	if a == 0 {
		return sb
	}
	return f.inv(sa, Left, sb)
}

// Update replaces the logical value at pos with val, then restores the
// slot invariant along pos's ancestor chain. The ancestor of slot i is
// i + lowbit(i). Precondition: 0 <= pos < n.
func (f *Fenwick[T]) Update(pos int, val T) {
	if pos < 0 || pos >= f.n {
		panic("rqtree: Fenwick.Update index out of range")
	}
	pos++ // 1-indexed internally
	lastOne := 0
	oldVal := f.data[pos]
	acc := val
	for remain := pos - 1; (1<<uint(lastOne))&pos == 0; lastOne++ {
		acc = f.op(f.data[remain], acc)
		remain -= lowbit(remain)
	}
	f.data[pos] = acc

	for {
		parent := pos + lowbit(pos)
		if parent >= len(f.data) {
			break
		}
		lastOne++
		acc := f.ident
		for remain := pos - lowbit(pos); (1<<uint(lastOne))&parent == 0; lastOne++ {
			acc = f.op(f.data[remain], acc)
			remain -= lowbit(remain)
		}
		right := f.inv(f.op(acc, oldVal), Left, f.data[parent])
		oldVal = f.data[parent]
		f.data[parent] = f.op(f.op(acc, f.data[pos]), right)
		pos = parent
	}
}

// Equal reports whether tree and other have the same logical length and
// agree on Range(0,k) for every k in [0,size]. This is the
// implementation-agnostic definition called for in §9: the source
// compares raw slot arrays, which is only correct because both trees
// were built identically.
func (f *Fenwick[T]) Equal(other *Fenwick[T], eq func(a, b T) bool) bool {
	if f.n != other.n {
		return false
	}
	for k := 0; k <= f.n; k++ {
		if !eq(f.Range(0, k), other.Range(0, k)) {
			return false
		}
	}
	return true
}

// Clone deep-copies the tree's storage into freshly allocated backing
// arrays obtained from the same allocator.
func (f *Fenwick[T]) Clone() *Fenwick[T] {
	clone := &Fenwick[T]{n: f.n, op: f.op, inv: f.inv, ident: f.ident, alloc: f.alloc}
	clone.data = memory.CopyBuild(f.alloc, f.data)
	return clone
}

// Release returns this tree's backing storage to its allocator. The tree
// must not be used afterward.
func (f *Fenwick[T]) Release() {
	memory.Destroy(f.alloc, f.data)
	f.data = nil
}
