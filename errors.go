package rqtree

import "errors"

// ErrInvalidRange is returned when a query or range-update is given an
// empty or out-of-bounds [a,b).
var ErrInvalidRange = errors.New("rqtree: invalid range")

// ErrAllocationFailure names the failure of an allocator to produce the
// requested storage. No function in this module returns it:
// memory.Allocator.Alloc has no error result, and the tree constructors
// return no error.
var ErrAllocationFailure = errors.New("rqtree: allocator refused storage")
