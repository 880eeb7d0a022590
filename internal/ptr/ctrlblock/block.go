package ctrlblock

import (
	"fmt"
	"sync/atomic"
)

// DisposeFunc destroys the managed object. It runs exactly once, on the
// goroutine whose DecStrong brought the strong count to zero.
type DisposeFunc func() error

// FreeFunc destroys the control block. It runs exactly once, after the object
// was disposed and the last weak observer detached.
type FreeFunc func()

// Block is the control block shared by all Shared owners and Weak observers of
// one managed object.
//
// A Block must not be copied after first use. It may be allocated on its own
// (New) or embedded next to the managed value in a single allocation (Init).
//
// Thread Safety: All count operations are lock-free and safe for concurrent
// use. The hooks are read and cleared only by the goroutine that wins the
// transition to zero.
type Block struct {
	strong atomic.Int64
	weak   atomic.Int64
	freed  atomic.Bool

	dispose DisposeFunc
	free    FreeFunc
}

// New allocates a standalone control block with one strong owner.
//
// Either hook may be nil.
//
// Example:
//
//	b := ctrlblock.New(func() error { return f.Close() }, nil)
//	b.IncStrong()   // second owner
//	b.DecStrong()   // strong=1
//	b.DecStrong()   // strong=0, f.Close() runs
func New(dispose DisposeFunc, free FreeFunc) *Block {
	b := &Block{}
	b.Init(dispose, free)
	return b
}

// Init prepares an embedded block with one strong owner.
//
// Init must be called before the block is published to other goroutines;
// it performs plain stores to the hook fields.
func (b *Block) Init(dispose DisposeFunc, free FreeFunc) {
	b.dispose = dispose
	b.free = free
	b.freed.Store(false)
	b.weak.Store(1)
	b.strong.Store(1)
}

// IncStrong attaches one more Shared owner.
//
// The caller must already hold a strong reference. Incrementing a count that
// already reached zero would resurrect a disposed object and panics.
func (b *Block) IncStrong() {
	if n := b.strong.Add(1); n <= 1 {
		panic(fmt.Sprintf("ctrlblock: IncStrong on disposed block (strong=%d)", n))
	}
}

// TryIncStrong attaches a Shared owner only if the object is still alive.
//
// This is the primitive behind Weak.Lock. The check and the increment are a
// single compare-and-swap, so a concurrent final DecStrong either happens
// before (we observe zero and fail) or after (we hold a reference and the
// count cannot reach zero). There is no window in between.
//
// Returns:
//   - true: a strong reference is now held; the caller must DecStrong it
//   - false: the object was already disposed
func (b *Block) TryIncStrong() bool {
	for n := b.strong.Load(); n > 0; n = b.strong.Load() {
		if b.strong.CompareAndSwap(n, n+1) {
			return true
		}
	}
	return false
}

// DecStrong detaches one Shared owner.
//
// When the count reaches zero, the dispose hook runs exactly once and then the
// implicit weak reference held by the owner group is dropped, which frees the
// block if no Weak observers remain. The implicit reference is dropped even if
// the dispose hook panics.
//
// Returns:
//   - disposed: true if this call destroyed the object
//   - err: the dispose hook's error (only when disposed)
func (b *Block) DecStrong() (disposed bool, err error) {
	n := b.strong.Add(-1)
	if n > 0 {
		return false, nil
	}
	if n < 0 {
		panic(fmt.Sprintf("ctrlblock: double release detected (strong=%d)", n))
	}

	dispose := b.dispose
	b.dispose = nil
	defer b.DecWeak()

	if dispose != nil {
		err = dispose()
	}
	return true, err
}

// IncWeak attaches one Weak observer.
//
// The caller must hold either a strong or a weak reference, so the count is
// already at least one.
func (b *Block) IncWeak() {
	if n := b.weak.Add(1); n <= 1 {
		panic(fmt.Sprintf("ctrlblock: IncWeak on freed block (weak=%d)", n))
	}
}

// DecWeak detaches one Weak observer (or the owner group's implicit
// reference). Reaching zero frees the block.
func (b *Block) DecWeak() {
	n := b.weak.Add(-1)
	if n > 0 {
		return
	}
	if n < 0 {
		panic(fmt.Sprintf("ctrlblock: double weak release detected (weak=%d)", n))
	}

	b.freed.Store(true)
	free := b.free
	b.free = nil
	if free != nil {
		free()
	}
}

// StrongCount returns the number of Shared owners.
//
// The value is a point-in-time snapshot. Under concurrency it may be stale by
// the time the caller looks at it; do not use it for synchronization.
func (b *Block) StrongCount() int64 {
	return b.strong.Load()
}

// WeakCount returns the number of Weak observers, excluding the implicit
// reference held by the owner group.
//
// The two counters are loaded separately, so under concurrency the result is
// only an estimate.
func (b *Block) WeakCount() int64 {
	w := b.weak.Load()
	if b.strong.Load() > 0 {
		w--
	}
	return max(w, 0)
}

// Disposed reports whether the managed object has been destroyed.
func (b *Block) Disposed() bool {
	return b.strong.Load() == 0
}

// Freed reports whether the block itself has been destroyed.
func (b *Block) Freed() bool {
	return b.freed.Load()
}

// String returns a debugging representation: "strong=N weak=M".
func (b *Block) String() string {
	if b == nil {
		return "<nil>"
	}
	return fmt.Sprintf("strong=%d weak=%d", b.StrongCount(), b.WeakCount())
}
