package owner

import (
	"fmt"
	"io"
	"unsafe"

	"github.com/kolkov/refptr/internal/ptr/ctrlblock"
	"github.com/kolkov/refptr/internal/ptr/leakcheck"
)

// Deleter destroys a managed object. It is stored by value in the handle (or
// control block) and invoked exactly once, after the last owner let go.
type Deleter[T any] func(p *T) error

// DefaultDeleter closes p if *T implements io.Closer and otherwise does
// nothing; the garbage collector reclaims the memory.
func DefaultDeleter[T any](p *T) error {
	if c, ok := any(p).(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// NopDeleter never does anything. Use it for objects owned elsewhere.
func NopDeleter[T any](*T) error {
	return nil
}

// Option configures a handle constructor.
type Option[T any] func(*options[T])

type options[T any] struct {
	deleter Deleter[T]
}

// WithDeleter replaces the default deleter. A nil d keeps the default.
func WithDeleter[T any](d Deleter[T]) Option[T] {
	return func(o *options[T]) {
		if d != nil {
			o.deleter = d
		}
	}
}

func buildOptions[T any](opts []Option[T]) options[T] {
	o := options[T]{deleter: DefaultDeleter[T]}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// noCopy is recognized by `go vet -copylocks`.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

func typeName[T any]() string {
	return fmt.Sprintf("%T", (*T)(nil))
}

// track counts a new control block and, when the leak checker is on,
// registers it with its creation stack.
func track[T any]() uint64 {
	leakcheck.NoteCreated()
	if !leakcheck.Enabled() {
		return 0
	}
	var zero T
	return leakcheck.Track(typeName[T](), int64(unsafe.Sizeof(zero)), 2)
}

// disposer binds the object, its deleter and its leak record into the
// control block's dispose hook.
func disposer[T any](p *T, del Deleter[T], id uint64) ctrlblock.DisposeFunc {
	return func() error {
		leakcheck.Untrack(id)
		leakcheck.NoteDisposed()
		return del(p)
	}
}

func freeHook() {
	leakcheck.NoteFreed()
}

// newControl allocates a standalone control block for p.
func newControl[T any](p *T, del Deleter[T]) *ctrlblock.Block {
	id := track[T]()
	return ctrlblock.New(disposer(p, del, id), freeHook)
}
