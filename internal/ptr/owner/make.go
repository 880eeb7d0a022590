package owner

import (
	"fmt"

	"github.com/kolkov/refptr/internal/ptr/ctrlblock"
)

// ConstructError reports a failed in-place construction.
type ConstructError struct {
	Type string // Go type being constructed, e.g. "*main.Conn"
	Err  error  // error returned by the init function
}

// Error implements the error interface.
func (e *ConstructError) Error() string {
	return fmt.Sprintf("refptr: constructing %s: %v", e.Type, e.Err)
}

// Unwrap returns the init function's error.
func (e *ConstructError) Unwrap() error {
	return e.Err
}

// inplace is the combined allocation: the control block and the managed
// value live in one heap object.
//
// A Weak observer keeps the whole inplace struct reachable, value included,
// until it is reset. The value's deleter has run by then; only its memory is
// retained.
type inplace[T any] struct {
	cb    ctrlblock.Block
	value T
}

// MakeShared constructs a T in place and returns its first Shared owner.
//
// The T and its control block share a single allocation. init receives a
// pointer to the zero value and fills it in, playing the role of a
// constructor; a nil init leaves the zero value.
//
// If init returns an error, MakeShared returns nil and a *ConstructError
// wrapping it. If init panics, the panic propagates. In both cases the
// control block was never initialized or published: no counts are visible,
// no leak record exists, and the allocation is left to the collector.
//
// The object is destroyed with DefaultDeleter.
//
// Example:
//
//	s, err := owner.MakeShared(func(c *Conn) error {
//		return c.Dial(addr)
//	})
func MakeShared[T any](init func(*T) error) (*Shared[T], error) {
	c := &inplace[T]{}
	if init != nil {
		if err := init(&c.value); err != nil {
			return nil, &ConstructError{Type: typeName[T](), Err: err}
		}
	}

	id := track[T]()
	c.cb.Init(disposer(&c.value, DefaultDeleter[T], id), freeHook)
	return &Shared[T]{ptr: &c.value, cb: &c.cb}, nil
}

// MakeSharedValue copies v into a combined allocation and returns its first
// Shared owner. Fields are copied exactly as assigning v to a new variable
// would copy them.
func MakeSharedValue[T any](v T) *Shared[T] {
	s, _ := MakeShared(func(p *T) error {
		*p = v
		return nil
	})
	return s
}

// MakeUnique constructs a T with init and returns its exclusive owner.
// Error and panic behavior match MakeShared.
func MakeUnique[T any](init func(*T) error, opts ...Option[T]) (*Unique[T], error) {
	p := new(T)
	if init != nil {
		if err := init(p); err != nil {
			return nil, &ConstructError{Type: typeName[T](), Err: err}
		}
	}
	return NewUnique(p, opts...), nil
}

// MakeUniqueValue copies v into a new allocation and returns its exclusive
// owner.
func MakeUniqueValue[T any](v T) *Unique[T] {
	p := new(T)
	*p = v
	return NewUnique(p)
}
