package owner

import (
	"fmt"

	"github.com/kolkov/refptr/internal/ptr/ctrlblock"
)

// Weak observes an object managed by Shared owners without keeping it alive.
//
// A Weak may outlive every owner. Once the object has been destroyed it
// reports Expired and Lock returns the null Shared; the control block stays
// allocated until the last Weak is reset.
//
// The zero value is an empty observer (always expired). Every method except
// Assign, AssignShared, MoveFrom and Swap accepts a nil *Weak.
type Weak[T any] struct {
	_   noCopy
	ptr *T
	cb  *ctrlblock.Block
}

// NewWeak returns an observer of s's object. A null s yields an empty
// observer. The strong count is not touched.
func NewWeak[T any](s *Shared[T]) *Weak[T] {
	if !s.Valid() {
		return &Weak[T]{}
	}
	s.cb.IncWeak()
	return &Weak[T]{ptr: s.ptr, cb: s.cb}
}

// Expired reports whether the object is gone (or w observes nothing).
//
// A false result may be stale by the time the caller acts on it; use Lock to
// get a reference that is guaranteed to stay valid.
func (w *Weak[T]) Expired() bool {
	return w == nil || w.cb == nil || w.cb.Disposed()
}

// Lock returns a Shared owner of the object if it is still alive, otherwise
// the null Shared (never a nil pointer).
//
// Lock is race-free against a concurrent release of the last owner: the
// liveness check and the strong increment are one compare-and-swap, so the
// result is either a valid owner of a live object or the null owner.
func (w *Weak[T]) Lock() *Shared[T] {
	if w == nil || w.cb == nil || !w.cb.TryIncStrong() {
		return &Shared[T]{}
	}
	return &Shared[T]{ptr: w.ptr, cb: w.cb}
}

// UseCount returns the number of Shared owners of the observed object
// (0 once expired). Snapshot only.
func (w *Weak[T]) UseCount() int64 {
	if w == nil || w.cb == nil {
		return 0
	}
	return w.cb.StrongCount()
}

// WeakCount returns the number of Weak observers of the object, including w.
// Snapshot only.
func (w *Weak[T]) WeakCount() int64 {
	if w == nil || w.cb == nil {
		return 0
	}
	return w.cb.WeakCount()
}

// Clone returns another observer of the same object.
func (w *Weak[T]) Clone() *Weak[T] {
	if w == nil || w.cb == nil {
		return &Weak[T]{}
	}
	w.cb.IncWeak()
	return &Weak[T]{ptr: w.ptr, cb: w.cb}
}

// Assign makes w observe src's object. Self-assignment and assignment within
// the same control block leave the counts alone.
func (w *Weak[T]) Assign(src *Weak[T]) {
	if w == src {
		return
	}
	var p *T
	var cb *ctrlblock.Block
	if src != nil {
		p, cb = src.ptr, src.cb
	}
	w.attach(p, cb)
}

// AssignShared makes w observe s's object.
func (w *Weak[T]) AssignShared(s *Shared[T]) {
	var p *T
	var cb *ctrlblock.Block
	if s != nil {
		p, cb = s.ptr, s.cb
	}
	w.attach(p, cb)
}

// attach retains cb before releasing the old block.
func (w *Weak[T]) attach(p *T, cb *ctrlblock.Block) {
	if w.cb == cb {
		w.ptr = p
		return
	}
	if cb != nil {
		cb.IncWeak()
	}
	old := w.cb
	w.ptr, w.cb = p, cb
	if old != nil {
		old.DecWeak()
	}
}

// Move transfers the observation to a new handle; w becomes empty.
func (w *Weak[T]) Move() *Weak[T] {
	if w == nil {
		return &Weak[T]{}
	}
	m := &Weak[T]{ptr: w.ptr, cb: w.cb}
	w.ptr, w.cb = nil, nil
	return m
}

// MoveFrom releases w's observation and takes over src's. Self-move is a no-op.
func (w *Weak[T]) MoveFrom(src *Weak[T]) {
	if w == src {
		return
	}
	var p *T
	var cb *ctrlblock.Block
	if src != nil {
		p, cb = src.ptr, src.cb
		src.ptr, src.cb = nil, nil
	}
	old := w.cb
	w.ptr, w.cb = p, cb
	if old != nil {
		old.DecWeak()
	}
}

// Reset stops observing. The control block is destroyed if w was its last
// reference.
func (w *Weak[T]) Reset() {
	if w == nil || w.cb == nil {
		return
	}
	cb := w.cb
	w.ptr, w.cb = nil, nil
	cb.DecWeak()
}

// Close is Reset; it always returns nil.
func (w *Weak[T]) Close() error {
	w.Reset()
	return nil
}

// Swap exchanges the observations of w and other.
func (w *Weak[T]) Swap(other *Weak[T]) {
	w.ptr, other.ptr = other.ptr, w.ptr
	w.cb, other.cb = other.cb, w.cb
}

// String formats the handle for debugging.
func (w *Weak[T]) String() string {
	if w == nil || w.cb == nil {
		return "Weak(nil)"
	}
	return fmt.Sprintf("Weak(%p %s)", w.ptr, w.cb)
}
