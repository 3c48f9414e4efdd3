// Copyright (c) 2025 Karl Gaissmaier
// SPDX-License-Identifier: MIT

// Package rqtree provides allocator-aware, generic range-query trees:
//
//   - Fenwick:      O(log n) prefix accumulate / point update for any
//     invertible associative operator.
//   - Segment:      O(log n) range query / point update for any
//     associative operator.
//   - RangeSegment: Segment plus O(log n) range-assignment via lazy
//     propagation.
//
// All three expose a uniform query/update surface over a fixed-length
// logical sequence and share subtree-decomposition and prefix/suffix
// search helpers (core.go, search.go).
//
// Every tree is single-threaded per instance: there are no internal
// locks, and concurrent mutation of the same tree from multiple
// goroutines is the caller's responsibility to serialize. The
// internal/memory.Pool allocator is safe to share across goroutines
// that each own a disjoint tree, but that says nothing about the safety
// of any one tree's own state.
package rqtree
