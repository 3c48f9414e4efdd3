package rqtree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Dense table-driven checks of push/pushAll bookkeeping: after each
// assignment, the probed range must sum to the assigned value times its
// length, and invariant I1 must hold once lazy state is fully propagated.
func TestRangeSegmentLazyPropagationTable(t *testing.T) {
	cases := []struct {
		name       string
		n          int
		assignA    int
		assignB    int
		assignVal  int
		probeA     int
		probeB     int
		wantSum    int
	}{
		{"whole range", 8, 0, 8, 2, 0, 8, 16},
		{"left half", 8, 0, 4, 3, 0, 4, 12},
		{"right half", 8, 4, 8, 3, 4, 8, 12},
		{"single leaf", 8, 5, 6, 9, 5, 6, 9},
		{"odd split straddling middle", 7, 2, 5, 4, 2, 5, 12},
		{"unaligned wide range", 13, 1, 11, 2, 1, 11, 20},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rs := NewRangeSegment(tc.n, 0, addOp, repeatSum, nil)
			rs.Update(tc.assignA, tc.assignB, tc.assignVal)

			got, err := rs.Query(tc.probeA, tc.probeB)
			require.NoError(t, err)
			require.Equal(t, tc.wantSum, got)

			require.True(t, rs.Valid(func(a, b int) bool { return a == b }),
				"invariant I1 must hold once all lazy state is pushed")
		})
	}
}

// Successive overlapping assignments must leave the tree in a state where
// every leaf reflects only the most recent assignment that covers it.
func TestRangeSegmentLazyOverwriteOrder(t *testing.T) {
	rs := NewRangeSegment(10, 0, addOp, repeatSum, nil)

	rs.Update(0, 10, 1)
	rs.Update(3, 7, 5)
	rs.Update(5, 9, 2)

	want := []int{1, 1, 1, 5, 5, 2, 2, 2, 2, 1}
	rs.PushAll()

	for i, w := range want {
		got, err := rs.Query(i, i+1)
		require.NoErrorf(t, err, "Query(%d,%d)", i, i+1)
		require.Equalf(t, w, got, "leaf %d after overlapping assignments", i)
	}
}

// Equal must agree with leaf-by-leaf comparison regardless of how the
// lazy flags happen to be distributed at comparison time.
func TestRangeSegmentLazyEqualIgnoresInternalRepresentation(t *testing.T) {
	built := NewRangeSegment(9, 0, addOp, repeatSum, nil)
	built.Update(0, 9, 4)

	fromValues := NewRangeSegmentFrom([]int{4, 4, 4, 4, 4, 4, 4, 4, 4}, addOp, repeatSum, nil)

	require.True(t, built.Equal(fromValues, func(a, b int) bool { return a == b }))
	require.True(t, fromValues.Equal(built, func(a, b int) bool { return a == b }))
}
