package leakcheck

import (
	"sync"
	"time"

	"github.com/google/btree"
	"go.uber.org/atomic"

	"github.com/kolkov/refptr/internal/ptr/stackdepot"
)

// Record describes one tracked object.
type Record struct {
	ID      uint64          // allocation order, starting at 1
	Type    string          // Go type of the managed pointer, e.g. "*os.File"
	Size    int64           // approximate size of the pointee in bytes
	Stack   stackdepot.Hash // creation call site
	Created time.Time
}

// btreeDegree is the fan-out of the live registry.
const btreeDegree = 8

var (
	enabled atomic.Bool
	nextID  atomic.Uint64

	// mu guards live. Only taken when the registry is enabled.
	mu   sync.Mutex
	live = newTree()
)

func newTree() *btree.BTreeG[Record] {
	return btree.NewG[Record](btreeDegree, func(a, b Record) bool {
		return a.ID < b.ID
	})
}

// Enable turns on per-object tracking for blocks created from now on.
func Enable() { enabled.Store(true) }

// Disable stops tracking new blocks. Already tracked records stay until
// their objects are disposed or Reset is called.
func Disable() { enabled.Store(false) }

// Enabled reports whether new blocks are tracked.
func Enabled() bool { return enabled.Load() }

// Track registers a new object and returns its record ID, or 0 when the
// registry is disabled.
//
// Parameters:
//   - typeName: Go type of the managed pointer
//   - size: approximate pointee size in bytes
//   - skip: caller frames to omit from the creation stack
//
// Thread Safety: Safe for concurrent calls.
func Track(typeName string, size int64, skip int) uint64 {
	if !enabled.Load() {
		return 0
	}

	rec := Record{
		ID:      nextID.Inc(),
		Type:    typeName,
		Size:    size,
		Stack:   stackdepot.Capture(skip + 1),
		Created: time.Now(),
	}

	mu.Lock()
	live.ReplaceOrInsert(rec)
	mu.Unlock()
	return rec.ID
}

// Untrack removes a record. Zero IDs (untracked objects) are ignored.
func Untrack(id uint64) {
	if id == 0 {
		return
	}
	mu.Lock()
	live.Delete(Record{ID: id})
	mu.Unlock()
}

// Live returns the tracked objects that have not been disposed, oldest first.
func Live() []Record {
	mu.Lock()
	defer mu.Unlock()

	out := make([]Record, 0, live.Len())
	live.Ascend(func(r Record) bool {
		out = append(out, r)
		return true
	})
	return out
}

// Reset drops every record and restarts IDs at 1. Tests only.
func Reset() {
	mu.Lock()
	live = newTree()
	mu.Unlock()
	nextID.Store(0)
}
