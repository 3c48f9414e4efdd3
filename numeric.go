package rqtree

import (
	"golang.org/x/exp/constraints"

	"github.com/gaissmai/rqtree/internal/memory"
)

// NewSumFenwick builds a Fenwick tree of length n over any integer or
// floating-point type, pre-wired with addition as Op and subtraction as
// Inverse. This is the concrete entry point most callers reach for first
// instead of hand-writing an inverse operator for the fully-general
// Fenwick constructor.
func NewSumFenwick[T constraints.Integer | constraints.Float](n int) *Fenwick[T] {
	add := func(a, b T) T { return a + b }
	sub := func(known T, _ Side, combined T) T { return combined - known }
	var zero T
	return NewFenwick[T](n, add, sub, zero, memory.NewSlice[T]())
}

// NewSumFenwickFrom builds a sum Fenwick tree seeded with values, in
// linear time.
func NewSumFenwickFrom[T constraints.Integer | constraints.Float](values []T) *Fenwick[T] {
	add := func(a, b T) T { return a + b }
	sub := func(known T, side Side, combined T) T { return combined - known }
	var zero T
	return NewFenwickFrom[T](values, add, sub, zero, memory.NewSlice[T]())
}

// NewXorFenwick builds a Fenwick tree of length n over any integer type,
// pre-wired with XOR as both Op and its own Inverse (XOR is
// self-inverse).
func NewXorFenwick[T constraints.Integer](n int) *Fenwick[T] {
	xor := func(a, b T) T { return a ^ b }
	inv := func(known T, _ Side, combined T) T { return combined ^ known }
	var zero T
	return NewFenwick[T](n, xor, inv, zero, memory.NewSlice[T]())
}
