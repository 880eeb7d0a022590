// Package ptr provides reference-counted ownership handles for Go values.
//
// Go reclaims memory with its garbage collector, but files, sockets, pooled
// buffers and other resources still need a deterministic release point. The
// handles in this package track who owns such a resource and run its deleter
// exactly once, when the last owner lets go.
//
// # Quick Start
//
//	package main
//
//	import "github.com/kolkov/refptr/ptr"
//
//	func main() {
//		ptr.Init()
//		defer ptr.Fini()
//
//		f, _ := os.Open("data.bin")
//		a := ptr.NewShared(f) // strong=1
//		b := a.Clone()        // strong=2
//		w := b.Weak()         // observes, strong unchanged
//
//		a.Reset()             // strong=1, file still open
//		b.Reset()             // strong=0, f.Close() runs
//
//		if s := w.Lock(); !s.Valid() {
//			fmt.Println("gone")
//		}
//	}
//
// # API Overview
//
// The package provides:
//   - Exclusive ownership: [Unique], [NewUnique], [MakeUnique]
//   - Shared ownership: [Shared], [NewShared], [MakeShared], [SharedFromUnique]
//   - Weak observation: [Weak], [NewWeak]
//   - Deleters: [DefaultDeleter], [NopDeleter], [WithDeleter]
//   - Diagnostics: [Init], [Fini], [Report], [Stats]
//   - Version information: [GetInfo], [Version]
//
// # Handle Lifecycle
//
// Handles are used through pointers and must not be copied by value (go vet
// reports copies). Each value-semantics operation has a method:
//
//	Clone     copy-construct: one more owner
//	Assign    copy-assign: drop the old object, share the new one
//	Move      move-construct: transfer, source becomes empty
//	MoveFrom  move-assign
//	Reset     release (also Close, so defer h.Close() works)
//
// The zero value of every handle is the empty state.
//
// # Thread Safety
//
// Counts are atomic: clones of one Shared may be created and released from
// any number of goroutines, and Weak.Lock never returns an owner of an
// object whose last owner has already released it. A single handle is an
// ordinary Go value and must not be mutated concurrently.
//
// # Cycles
//
// Shared owners that reference each other in a cycle never reach a zero
// count, so their deleters never run. Break cycles with a Weak link. With
// REFPTR_LEAKCHECK=1, Fini lists every object still owned at exit along
// with the stack that created it.
package ptr
