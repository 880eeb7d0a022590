// Package ctrlblock implements the shared bookkeeping object behind every
// reference-counted handle.
//
// A Block carries two atomic counters and two one-shot hooks:
//
//	strong  number of Shared owners attached to the block
//	weak    number of Weak observers attached, plus one while strong > 0
//	dispose destroys the managed object when strong reaches zero
//	free    destroys the block itself when weak reaches zero
//
// The implicit weak reference held by the strong group is what makes the
// destroy-self rule race-free: the goroutine that drops the last strong
// reference disposes the object and then releases the implicit weak
// reference, so exactly one goroutine ever observes weak reaching zero.
//
// Lifecycle:
//
//	New/Init            strong=1 weak=1
//	IncStrong/DecStrong strong±1 (dispose at 0, then DecWeak)
//	IncWeak/DecWeak     weak±1   (free at 0)
//	TryIncStrong        strong+1 only if strong > 0 (single CAS)
//
// Counter updates use sync/atomic, which is sequentially consistent in the
// Go memory model. A decrement to zero is therefore visible to every
// goroutine before the dispose hook runs.
//
// The Block never locks and never blocks. The only unbounded work is the
// caller-supplied dispose hook, which runs on the goroutine that released the
// last strong reference.
package ctrlblock
