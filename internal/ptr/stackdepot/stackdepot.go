// Package stackdepot records the call sites that created reference-counted
// objects so that leak reports can say where a leaked object came from.
//
// Identical stacks are stored once and referenced by a 64-bit FNV-1a hash.
// A leak-checked program typically creates many objects from a handful of
// call sites, so the depot stays small even when millions of handles are made.
//
// Design:
//   - Fixed-size traces (MaxFrames program counters per stack)
//   - Hash-based deduplication (FNV-1a over the PCs)
//   - Global sync.Map storage, never evicted
//
// Usage:
//
//	h := stackdepot.Capture(1)        // skip the caller's own frame
//	...
//	if st := stackdepot.Lookup(h); st != nil {
//	    fmt.Print(st.Format())
//	}
package stackdepot

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"runtime"
	"strings"
	"sync"
)

// MaxFrames is the maximum number of frames kept per stack.
const MaxFrames = 16

// Hash identifies a stored stack. Zero means "no stack".
type Hash uint64

// Stack is a captured creation stack.
type Stack struct {
	PC [MaxFrames]uintptr
	n  int
}

// Frame is one symbolized stack frame.
type Frame struct {
	Function string `yaml:"function"`
	File     string `yaml:"file"`
	Line     int    `yaml:"line"`
}

// internalPrefixes are frames hidden from reports: the runtime and the
// handle implementation itself. Users care about the call site that asked for
// the handle, not about the constructors in between.
var internalPrefixes = []string{
	"runtime.",
	"github.com/kolkov/refptr/internal/",
	"github.com/kolkov/refptr/ptr.",
}

var depot sync.Map // Hash → *Stack

// Capture records the current goroutine's stack and returns its hash.
//
// Parameters:
//   - skip: number of caller frames to omit (0 = the caller of Capture)
//
// Returns 0 if no frames were available.
//
// Thread Safety: Safe for concurrent calls.
func Capture(skip int) Hash {
	var pcs [MaxFrames]uintptr
	// +2 skips runtime.Callers and Capture.
	n := runtime.Callers(skip+2, pcs[:])
	if n == 0 {
		return 0
	}

	h := hashPCs(pcs[:n])
	if _, ok := depot.Load(h); ok {
		return h
	}
	depot.LoadOrStore(h, &Stack{PC: pcs, n: n})
	return h
}

// Lookup returns the stack for h, or nil if h is zero or unknown.
func Lookup(h Hash) *Stack {
	if h == 0 {
		return nil
	}
	v, ok := depot.Load(h)
	if !ok {
		return nil
	}
	return v.(*Stack)
}

func hashPCs(pcs []uintptr) Hash {
	f := fnv.New64a()
	var buf [8]byte
	for _, pc := range pcs {
		binary.LittleEndian.PutUint64(buf[:], uint64(pc))
		_, _ = f.Write(buf[:]) // hash.Hash never returns an error
	}
	return Hash(f.Sum64())
}

// Frames symbolizes the stack, dropping runtime and refptr-internal frames.
func (st *Stack) Frames() []Frame {
	if st == nil || st.n == 0 {
		return nil
	}

	var out []Frame
	frames := runtime.CallersFrames(st.PC[:st.n])
	for {
		fr, more := frames.Next()
		if fr.PC != 0 && !isInternal(fr.Function) {
			out = append(out, Frame{Function: fr.Function, File: fr.File, Line: fr.Line})
		}
		if !more {
			break
		}
	}
	return out
}

func isInternal(fn string) bool {
	for _, p := range internalPrefixes {
		if strings.HasPrefix(fn, p) {
			return true
		}
	}
	return false
}

// Format renders the stack in the layout Go uses for panics:
//
//	  main.openFiles()
//	      /path/to/main.go:42
func (st *Stack) Format() string {
	frames := st.Frames()
	if len(frames) == 0 {
		return "  <unknown>\n"
	}

	var b strings.Builder
	for _, fr := range frames {
		fmt.Fprintf(&b, "  %s()\n      %s:%d\n", fr.Function, fr.File, fr.Line)
	}
	return b.String()
}

// Reset clears the depot. Tests only; not safe for concurrent use.
func Reset() {
	depot = sync.Map{}
}

// Len returns the number of unique stacks stored.
func Len() int {
	n := 0
	depot.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
