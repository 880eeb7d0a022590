package ptr

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/atomic"

	"github.com/kolkov/refptr/internal/ptr/leakcheck"
	"github.com/kolkov/refptr/internal/ptr/owner"
)

// Unique is an exclusive owner of a *T.
type Unique[T any] = owner.Unique[T]

// Shared is a shared owner of a *T.
type Shared[T any] = owner.Shared[T]

// Weak is a non-owning observer of a *T managed by Shared owners.
type Weak[T any] = owner.Weak[T]

// Deleter destroys a managed object.
type Deleter[T any] = owner.Deleter[T]

// Option configures a handle constructor.
type Option[T any] = owner.Option[T]

// ConstructError reports a failed in-place construction.
type ConstructError = owner.ConstructError

// NewUnique takes exclusive ownership of p.
//
// Example:
//
//	u := ptr.NewUnique(f)
//	defer u.Close()
func NewUnique[T any](p *T, opts ...Option[T]) *Unique[T] {
	return owner.NewUnique(p, opts...)
}

// NewShared takes shared ownership of p with a fresh control block. A nil p
// yields the null owner.
func NewShared[T any](p *T, opts ...Option[T]) *Shared[T] {
	return owner.NewShared(p, opts...)
}

// SharedFromUnique moves u's object and deleter into a new Shared owner.
func SharedFromUnique[T any](u *Unique[T]) *Shared[T] {
	return owner.SharedFromUnique(u)
}

// NewWeak returns an observer of s's object.
func NewWeak[T any](s *Shared[T]) *Weak[T] {
	return owner.NewWeak(s)
}

// MakeShared constructs a T in place, in the same allocation as its control
// block, and returns its first owner. If init fails the error is wrapped in a
// *ConstructError and nothing is left behind.
func MakeShared[T any](init func(*T) error) (*Shared[T], error) {
	return owner.MakeShared(init)
}

// MakeSharedValue copies v into a combined allocation.
func MakeSharedValue[T any](v T) *Shared[T] {
	return owner.MakeSharedValue(v)
}

// MakeUnique constructs a T with init and returns its exclusive owner.
func MakeUnique[T any](init func(*T) error, opts ...Option[T]) (*Unique[T], error) {
	return owner.MakeUnique(init, opts...)
}

// MakeUniqueValue copies v into a new allocation and returns its exclusive owner.
func MakeUniqueValue[T any](v T) *Unique[T] {
	return owner.MakeUniqueValue(v)
}

// WithDeleter replaces the default deleter.
func WithDeleter[T any](d Deleter[T]) Option[T] {
	return owner.WithDeleter(d)
}

// DefaultDeleter closes p if *T implements io.Closer.
func DefaultDeleter[T any](p *T) error {
	return owner.DefaultDeleter(p)
}

// NopDeleter does nothing.
func NopDeleter[T any](p *T) error {
	return owner.NopDeleter(p)
}

// reportFormat is the format Fini uses, set by Init.
var reportFormat = atomic.NewString(string(leakcheck.FormatText))

// Init configures diagnostics from the REFPTR_LEAKCHECK environment variable.
//
// Values:
//
//	unset, 0, false  leak checking off (default)
//	1, true, text    track every object, text report at Fini
//	yaml             track every object, YAML report at Fini
//
// An invalid value is reported on stderr and leaves leak checking off.
// Only handles created after Init are tracked.
//
// Typical use:
//
//	func main() {
//		ptr.Init()
//		defer ptr.Fini()
//		// ... rest of program
//	}
func Init() {
	cfg, err := leakcheck.ConfigFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "refptr: %v; leak checking disabled\n", err)
	}
	reportFormat.Store(string(cfg.Format))
	cfg.Apply()
}

// Fini prints the leak report to stderr if leak checking is enabled, then
// disables it.
func Fini() {
	if !leakcheck.Enabled() {
		return
	}
	leakcheck.Disable()

	fmt.Fprintf(os.Stderr, "\n")
	if _, err := leakcheck.Report(os.Stderr, leakcheck.Format(reportFormat.Load())); err != nil {
		fmt.Fprintf(os.Stderr, "refptr: %v\n", err)
	}
}

// Report writes the leak report for objects still owned to w and returns how
// many there are. Format is "text" or "yaml".
func Report(w io.Writer, format string) (int, error) {
	f, err := leakcheck.ParseFormat(format)
	if err != nil {
		return 0, err
	}
	return leakcheck.Report(w, f)
}

// Stats returns process-wide control block counters.
func Stats() leakcheck.Stats {
	return leakcheck.Snapshot()
}
