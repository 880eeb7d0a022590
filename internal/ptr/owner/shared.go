package owner

import (
	"fmt"

	"github.com/kolkov/refptr/internal/ptr/ctrlblock"
)

// Shared is a shared owner of one object.
//
// Every live Shared attached to a control block contributes one strong
// reference. The object's deleter runs when the last one is reset; Weak
// observers may keep the control block around after that.
//
// The zero value is the null owner: no object and no control block.
//
// Read and release methods (Get, Valid, UseCount, Clone, Move, Reset, Close,
// Weak, String) accept a nil *Shared. Methods that install state (Assign,
// MoveFrom, ResetTo, Swap) need a non-nil receiver.
//
// Example:
//
//	a := owner.NewShared(&conn)   // strong=1
//	b := a.Clone()                // strong=2
//	w := a.Weak()                 // weak=1
//	a.Reset()                     // strong=1
//	b.Reset()                     // strong=0, conn.Close() runs
//	w.Lock().Valid()              // false
type Shared[T any] struct {
	_   noCopy
	ptr *T
	cb  *ctrlblock.Block
}

// NewShared takes shared ownership of p with a freshly allocated control
// block (strong=1, no observers). A nil p yields the null owner.
func NewShared[T any](p *T, opts ...Option[T]) *Shared[T] {
	if p == nil {
		return &Shared[T]{}
	}
	o := buildOptions(opts)
	return &Shared[T]{ptr: p, cb: newControl(p, o.deleter)}
}

// SharedFromUnique moves the object and deleter out of u into a new Shared.
// u becomes empty. An empty u yields the null owner.
func SharedFromUnique[T any](u *Unique[T]) *Shared[T] {
	if u.Empty() {
		return &Shared[T]{}
	}
	del := u.del()
	p := u.Detach()
	return &Shared[T]{ptr: p, cb: newControl(p, del)}
}

// Get returns the managed pointer, or nil for the null owner.
//
// The pointer is valid to dereference as long as s stays attached.
func (s *Shared[T]) Get() *T {
	if s == nil {
		return nil
	}
	return s.ptr
}

// Valid reports whether s owns an object.
func (s *Shared[T]) Valid() bool {
	return s != nil && s.cb != nil
}

// UseCount returns the number of Shared owners of the object, or 0 for the
// null owner.
//
// The value is a snapshot; other goroutines may change it immediately. Do
// not use it to decide whether it is safe to touch the object.
func (s *Shared[T]) UseCount() int64 {
	if s == nil || s.cb == nil {
		return 0
	}
	return s.cb.StrongCount()
}

// Clone returns a new owner of the same object (copy-construct).
func (s *Shared[T]) Clone() *Shared[T] {
	if s == nil || s.cb == nil {
		return &Shared[T]{}
	}
	s.cb.IncStrong()
	return &Shared[T]{ptr: s.ptr, cb: s.cb}
}

// Assign makes s an owner of src's object (copy-assign).
//
// Self-assignment and assignment between owners of the same control block
// do not touch the counts. Otherwise the new object is retained before the
// old one is released, so releasing the old object can never destroy src's
// object even when the old object owns src.
//
// Returns the old object's deleter error if this released it.
func (s *Shared[T]) Assign(src *Shared[T]) error {
	if s == src {
		return nil
	}

	var p *T
	var cb *ctrlblock.Block
	if src != nil {
		p, cb = src.ptr, src.cb
	}
	if s.cb == cb {
		s.ptr = p
		return nil
	}

	if cb != nil {
		cb.IncStrong()
	}
	old := s.cb
	s.ptr, s.cb = p, cb
	if old == nil {
		return nil
	}
	_, err := old.DecStrong()
	return err
}

// Move transfers ownership to a new handle without touching the counts
// (move-construct). s becomes the null owner.
func (s *Shared[T]) Move() *Shared[T] {
	if s == nil {
		return &Shared[T]{}
	}
	m := &Shared[T]{ptr: s.ptr, cb: s.cb}
	s.ptr, s.cb = nil, nil
	return m
}

// MoveFrom takes over src's reference, then releases s's previous one
// (move-assign). src becomes the null owner. Self-move is a no-op.
//
// src's reference is installed before the old one is released, so a
// panicking deleter cannot lose it.
func (s *Shared[T]) MoveFrom(src *Shared[T]) error {
	if s == src {
		return nil
	}
	var p *T
	var cb *ctrlblock.Block
	if src != nil {
		p, cb = src.ptr, src.cb
		src.ptr, src.cb = nil, nil
	}
	old := s.cb
	s.ptr, s.cb = p, cb
	if old == nil {
		return nil
	}
	_, err := old.DecStrong()
	return err
}

// Reset detaches s from its object, destroying the object if s was the last
// owner. s becomes the null owner. Reset on the null owner is a no-op.
//
// Returns the deleter's error when this call destroyed the object.
func (s *Shared[T]) Reset() error {
	if s == nil || s.cb == nil {
		return nil
	}
	cb := s.cb
	s.ptr, s.cb = nil, nil
	_, err := cb.DecStrong()
	return err
}

// Close is Reset; it lets a Shared be used with defer and io.Closer.
func (s *Shared[T]) Close() error {
	return s.Reset()
}

// ResetTo replaces s's object with a newly owned p (nil → null owner).
// p must not already be managed by another control block.
func (s *Shared[T]) ResetTo(p *T, opts ...Option[T]) error {
	n := NewShared(p, opts...)
	return s.MoveFrom(n)
}

// Swap exchanges the objects of s and other without touching the counts.
func (s *Shared[T]) Swap(other *Shared[T]) {
	s.ptr, other.ptr = other.ptr, s.ptr
	s.cb, other.cb = other.cb, s.cb
}

// SameOwner reports whether s and other share a control block. Two null
// owners are not considered the same owner.
func (s *Shared[T]) SameOwner(other *Shared[T]) bool {
	return s.Valid() && other.Valid() && s.cb == other.cb
}

// Weak returns a new observer of s's object.
func (s *Shared[T]) Weak() *Weak[T] {
	return NewWeak(s)
}

// String formats the handle for debugging, e.g. "Shared(0xc000012345 strong=2 weak=1)".
func (s *Shared[T]) String() string {
	if !s.Valid() {
		return "Shared(nil)"
	}
	return fmt.Sprintf("Shared(%p %s)", s.ptr, s.cb)
}
