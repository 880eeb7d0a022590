package owner

import (
	"errors"
	"sync/atomic"
)

// resource is a managed object that records how often it was closed.
type resource struct {
	id     int
	closed atomic.Int32
	err    error
}

func (r *resource) Close() error {
	r.closed.Add(1)
	return r.err
}

// countingDeleter returns a deleter and a pointer to its call counter.
func countingDeleter[T any]() (Deleter[T], *atomic.Int32) {
	var n atomic.Int32
	return func(*T) error {
		n.Add(1)
		return nil
	}, &n
}

var errClose = errors.New("close failed")
