package owner

// Unique is the exclusive owner of one object.
//
// At most one Unique references a given object. Ownership moves with Move or
// MoveFrom, which leave the source empty; there is no way to copy a Unique
// (the noCopy marker makes `go vet` reject value copies).
//
// The deleter runs exactly once per owned object: on Reset/Close, when
// ResetTo or MoveFrom overwrites the owner, and never for an object that was
// moved out or detached.
//
// The zero value is an empty owner using DefaultDeleter.
//
// Read and release methods (Get, Empty, Reset, Close, Detach, Move) accept a
// nil *Unique. Methods that install state (ResetTo, MoveFrom, Swap) need a
// non-nil receiver; calling them on nil panics like any nil dereference.
//
// Example:
//
//	f, err := os.Open(path)
//	if err != nil {
//		return err
//	}
//	u := owner.NewUnique(f)
//	defer u.Close() // closes f on every return path
type Unique[T any] struct {
	_       noCopy
	ptr     *T
	deleter Deleter[T]
}

// NewUnique takes ownership of p. A nil p yields an empty owner.
func NewUnique[T any](p *T, opts ...Option[T]) *Unique[T] {
	o := buildOptions(opts)
	return &Unique[T]{ptr: p, deleter: o.deleter}
}

func (u *Unique[T]) del() Deleter[T] {
	if u.deleter == nil {
		return DefaultDeleter[T]
	}
	return u.deleter
}

// Get returns the owned pointer, or nil when empty.
//
// Dereferencing the result of an empty owner is a nil dereference; checking
// Empty first is the caller's job.
func (u *Unique[T]) Get() *T {
	if u == nil {
		return nil
	}
	return u.ptr
}

// Empty reports whether u owns nothing.
func (u *Unique[T]) Empty() bool {
	return u == nil || u.ptr == nil
}

// Deleter returns the deleter that will destroy the owned object.
func (u *Unique[T]) Deleter() Deleter[T] {
	return u.del()
}

// Reset destroys the owned object and leaves u empty.
//
// The handle is cleared before the deleter runs, so a panicking deleter can
// never be invoked twice for the same object. Reset on an empty owner is a
// no-op.
//
// Returns the deleter's error.
func (u *Unique[T]) Reset() error {
	if u == nil || u.ptr == nil {
		return nil
	}
	p := u.ptr
	u.ptr = nil
	return u.del()(p)
}

// Close is Reset; it lets a Unique be used with defer and io.Closer.
func (u *Unique[T]) Close() error {
	return u.Reset()
}

// ResetTo takes ownership of p and destroys the previously owned object.
// Passing the pointer u already owns is a no-op.
func (u *Unique[T]) ResetTo(p *T) error {
	if u.ptr == p {
		return nil
	}
	old := u.ptr
	u.ptr = p
	if old == nil {
		return nil
	}
	return u.del()(old)
}

// Detach gives up ownership without running the deleter and returns the
// pointer. u becomes empty.
func (u *Unique[T]) Detach() *T {
	if u == nil {
		return nil
	}
	p := u.ptr
	u.ptr = nil
	return p
}

// Move transfers the object and deleter to a new owner. u becomes empty.
func (u *Unique[T]) Move() *Unique[T] {
	if u == nil {
		return &Unique[T]{}
	}
	m := &Unique[T]{ptr: u.ptr, deleter: u.deleter}
	u.ptr = nil
	return m
}

// MoveFrom takes src's object and deleter, then destroys u's previous
// object. src becomes empty. Self-move is a no-op and a nil src just resets u.
//
// The new object is installed before the old deleter runs, so a panicking
// deleter cannot lose it.
func (u *Unique[T]) MoveFrom(src *Unique[T]) error {
	if u == src {
		return nil
	}
	var p *T
	var d Deleter[T]
	if src != nil {
		p, d = src.ptr, src.deleter
		src.ptr = nil
	}
	old, oldDel := u.ptr, u.del()
	u.ptr, u.deleter = p, d
	if old == nil {
		return nil
	}
	return oldDel(old)
}

// Swap exchanges the objects and deleters of u and other.
func (u *Unique[T]) Swap(other *Unique[T]) {
	u.ptr, other.ptr = other.ptr, u.ptr
	u.deleter, other.deleter = other.deleter, u.deleter
}
