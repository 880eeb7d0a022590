// Package owner implements the three ownership handles and their
// constructors.
//
// Handles:
//   - Unique[T]: exclusive owner. No control block. Move-only.
//   - Shared[T]: shared owner. Holds the object pointer and a control block
//     reference; every live Shared counts as one strong reference.
//   - Weak[T]: non-owning observer of a Shared-managed object. Counts as one
//     weak reference; Lock upgrades it to a Shared if the object is alive.
//
// Constructors:
//   - NewUnique / NewShared wrap an existing pointer (the control block is a
//     separate allocation).
//   - MakeUnique / MakeShared build the value in place. MakeShared places the
//     value and its control block in a single allocation.
//
// Go has no destructors and no move semantics, so the C++-style lifecycle is
// spelled out:
//
//	copy-construct   s2 := s1.Clone()
//	copy-assign      s2.Assign(s1)
//	move-construct   s2 := s1.Move()
//	move-assign      s2.MoveFrom(s1)
//	destroy          s1.Reset()   or   defer s1.Close()
//
// Assigning one handle value to another (*s2 = *s1) is copying without
// counting and is a bug; every handle embeds a noCopy marker so `go vet`
// reports it. The zero value of each handle is the empty/null state.
//
// Thread Safety: Count bookkeeping is lock-free and safe across goroutines
// holding distinct handles to the same object. A single handle is an
// ordinary Go value and must not be mutated concurrently. The managed object
// itself gets no synchronization from these handles.
//
// Cycles: Shared owners that reference each other never reach a zero strong
// count and their deleters never run. Break cycles by making one direction a
// Weak observer; the leak checker (package leakcheck) lists such objects.
package owner
