package memory

// FillBuild allocates n elements from alloc and fills every slot with v.
// If a copy of v cannot be safely used as a value (T is a plain value
// type, so this cannot itself panic in Go) the helper still exists to
// keep the allocate/construct/destroy-on-failure shape uniform with
// CopyBuild and the tree builders that call into user code next.
func FillBuild[T any](alloc Allocator[T], n int, v T) []T {
	s := alloc.Alloc(n)
	for i := range s {
		s[i] = v
	}
	return s
}

// CopyBuild allocates len(src) elements from alloc and copies src into
// them.
func CopyBuild[T any](alloc Allocator[T], src []T) []T {
	s := alloc.Alloc(len(src))
	copy(s, src)
	return s
}

// Destroy returns s to alloc. This is the Go realization of §4.1's
// "destroy(first,last)": with a GC'd element type there is nothing to
// finalize per-slot, so Destroy's only real job is to give pooled storage
// back so it can be reused — but every build path in this package calls
// it on the failure path, so a future pooled Allocator that does need
// per-slot cleanup has exactly one choke point to add it to.
func Destroy[T any](alloc Allocator[T], s []T) {
	alloc.Free(s)
}

// BuildWithRollback runs build, which is expected to fully populate dst
// in place (dst is already allocated by the caller). If build panics —
// the Go analogue of a constructor/operator throwing mid-build — the
// partially populated dst is returned to alloc before the panic is
// re-raised, so the caller's tree never retains storage for a build that
// did not complete. This is the direct translation of
// segment_tree_initializer::build's per-frame try/catch-destroy-rethrow.
func BuildWithRollback[T any](alloc Allocator[T], dst []T, build func()) {
	ok := false
	defer func() {
		if !ok {
			if r := recover(); r != nil {
				Destroy(alloc, dst)
				panic(r)
			}
		}
	}()
	build()
	ok = true
}
