package leakcheck

import "go.uber.org/atomic"

// Stats is a snapshot of block lifecycle counters.
//
// Counters are loaded one at a time, so under concurrency the snapshot is not
// atomic as a whole: Live may briefly disagree with Created-Disposed.
type Stats struct {
	Created  int64 `yaml:"created"`  // blocks ever created
	Disposed int64 `yaml:"disposed"` // objects destroyed (strong reached 0)
	Freed    int64 `yaml:"freed"`    // blocks destroyed (weak reached 0)
	Live     int64 `yaml:"live"`     // objects not yet destroyed
}

var (
	created  atomic.Int64
	disposed atomic.Int64
	freed    atomic.Int64
)

// NoteCreated counts a new control block.
func NoteCreated() { created.Inc() }

// NoteDisposed counts a destroyed object.
func NoteDisposed() { disposed.Inc() }

// NoteFreed counts a destroyed control block.
func NoteFreed() { freed.Inc() }

// Snapshot returns the current counters.
func Snapshot() Stats {
	s := Stats{
		Created:  created.Load(),
		Disposed: disposed.Load(),
		Freed:    freed.Load(),
	}
	s.Live = s.Created - s.Disposed
	return s
}

// ResetStats zeroes the counters. Tests only.
func ResetStats() {
	created.Store(0)
	disposed.Store(0)
	freed.Store(0)
}
