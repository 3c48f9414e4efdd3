package rqtree

import "github.com/gaissmai/rqtree/internal/memory"

// subtree names a maximal subtree, fully contained in some query range,
// by the index of its root in a coreTree's flat data array plus the
// half-open interval [l, r) it covers.
type subtree struct {
	node int
	l, r int
}

// coreTree holds the implicit array-embedded tree layout and recursion
// shared by Segment and RangeSegment (§4.2): the subtree covering [l,r)
// is rooted at a slot; its left child covers [l,m) at root+1; its right
// child covers [m,r) at root+2*(m-l); m = l+(r-l)/2. A leaf covers
// [l,l+1) and stores the logical value.
//
// push, when non-nil, is called before a node's children are inspected
// during query/decompose/search descent (build never calls it) — the Go stand-in for the
// C++ source's friend-templated helpers reaching into RangeSegment's
// private lazy state (§9). Segment leaves push nil.
type coreTree[T any] struct {
	data  []T
	n     int
	op    Op[T]
	push  func(node, l, r int)
	alloc memory.Allocator[T]
}

func dataLength(n int) int { return 2*n - 1 }

// build recurses exactly as segment_tree_initializer::build does: leaves
// first via leaf(index), then each internal node from op(left, right).
// On a panic from leaf or op, every node constructed so far within the
// current subtree is destroyed by the caller's BuildWithRollback before
// the panic continues to propagate — build itself does no recovery, it
// simply must not leave partially-built state reachable once it returns
// normally.
func (c *coreTree[T]) build(l, r, root int, leaf func(i int) T) {
	if r-l == 1 {
		c.data[root] = leaf(l)
		return
	}
	m := l + (r-l)/2
	leftRoot := root + 1
	rightRoot := root + 2*(m-l)
	c.build(l, m, leftRoot, leaf)
	c.build(m, r, rightRoot, leaf)
	c.data[root] = c.op(c.data[leftRoot], c.data[rightRoot])
}

// at returns the value stored at node.
func (c *coreTree[T]) at(node int) T { return c.data[node] }

func (c *coreTree[T]) maybePush(node, l, r int) {
	if c.push != nil {
		c.push(node, l, r)
	}
}

// queryAt computes op-reduction over [first,last) within the subtree
// rooted at curr covering [l,r), where [l,r) is known to contain
// [first,last). Mirrors query_helper.
func (c *coreTree[T]) queryAt(first, last, curr, l, r int) T {
	if first == l && last == r {
		return c.data[curr]
	}
	c.maybePush(curr, l, r)
	m := l + (r-l)/2
	leftRoot := curr + 1
	rightRoot := curr + 2*(m-l)
	if last <= m {
		return c.queryAt(first, last, leftRoot, l, m)
	}
	if first >= m {
		return c.queryAt(first, last, rightRoot, m, r)
	}
	return c.op(c.queryAt(first, m, leftRoot, l, m), c.queryAt(m, last, rightRoot, m, r))
}

// countSubtrees counts the maximal subtrees intersecting [first,last)
// within the subtree rooted at curr covering [l,r). Mirrors
// count_subtrees. Does not push: counting never needs up-to-date values,
// only the shape of the decomposition, which push does not change.
func countSubtrees(l, r, curr, first, last int) int {
	if l == first && r == last {
		return 1
	}
	m := l + (r-l)/2
	leftRoot := curr + 1
	rightRoot := curr + 2*(m-l)
	if last <= m {
		return countSubtrees(l, m, leftRoot, first, last)
	}
	if m <= first {
		return countSubtrees(m, r, rightRoot, first, last)
	}
	return countSubtrees(l, m, leftRoot, first, m) + countSubtrees(m, r, rightRoot, m, last)
}

// decomposeInto fills out, in left-to-right order, with the subtree
// descriptors covering [first,last). len(out) must equal
// countSubtrees(l,r,curr,first,last). Mirrors collect_subtrees_helper,
// including the push-before-descend-when-not-a-whole-match rule required
// so descriptor pointers reference nodes whose own values already
// reflect all pending lazy updates on the path (§4.2).
func (c *coreTree[T]) decomposeInto(out []subtree, pos *int, l, r, curr, first, last int) {
	if l == first && r == last {
		out[*pos] = subtree{node: curr, l: l, r: r}
		*pos++
		return
	}
	c.maybePush(curr, l, r)
	m := l + (r-l)/2
	leftRoot := curr + 1
	rightRoot := curr + 2*(m-l)
	if last <= m {
		c.decomposeInto(out, pos, l, m, leftRoot, first, last)
		return
	}
	if m <= first {
		c.decomposeInto(out, pos, m, r, rightRoot, first, last)
		return
	}
	c.decomposeInto(out, pos, l, m, leftRoot, first, m)
	c.decomposeInto(out, pos, m, r, rightRoot, m, last)
}

// decompose returns the ordered list of maximal disjoint subtrees whose
// union is [first,last), a two-pass count-then-fill per §4.2.
func (c *coreTree[T]) decompose(first, last int) []subtree {
	count := countSubtrees(0, c.n, 0, first, last)
	out := make([]subtree, count)
	pos := 0
	c.decomposeInto(out, &pos, 0, c.n, 0, first, last)
	return out
}

// validate checks invariant I1 (every internal node equals op of its
// children) over the whole tree, for tests.
func (c *coreTree[T]) validate(eq func(a, b T) bool) bool {
	return c.validateAt(0, c.n, 0, eq)
}

func (c *coreTree[T]) validateAt(l, r, curr int, eq func(a, b T) bool) bool {
	if r-l == 1 {
		return true
	}
	m := l + (r-l)/2
	leftRoot := curr + 1
	rightRoot := curr + 2*(m-l)
	ok := c.validateAt(l, m, leftRoot, eq) && c.validateAt(m, r, rightRoot, eq)
	want := c.op(c.data[leftRoot], c.data[rightRoot])
	return ok && eq(want, c.data[curr])
}
