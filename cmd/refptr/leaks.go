// leaks.go implements the 'refptr leaks' command.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kolkov/refptr/internal/ptr/leakcheck"
	"github.com/kolkov/refptr/ptr"
)

// node is a doubly linked list element. next owns the following node; prev
// either observes (weak) or owns (strong) the previous one.
type node struct {
	name       string
	next       *ptr.Shared[node]
	prev       *ptr.Weak[node]
	prevStrong *ptr.Shared[node]
}

// Close releases the node's links.
func (n *node) Close() error {
	n.prev.Reset()
	if err := n.prevStrong.Reset(); err != nil {
		return err
	}
	return n.next.Reset()
}

// leaksCommand implements the 'refptr leaks' command.
//
// It builds two linked pairs: one whose back-link is Weak (released
// correctly) and one whose back-link is Shared (a cycle that is never
// released), then prints the leak report. Leak checking is always on for
// this command.
//
// Example:
//
//	refptr leaks
//	refptr leaks -format yaml
func leaksCommand(args []string) {
	config, err := loadRunConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	leakcheck.Enable()
	leaked, err := runLeaks(os.Stdout, config.format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if leaked > 0 {
		os.Exit(2)
	}
}

// runLeaks creates the two pairs, drops every handle the caller holds and
// reports what is still owned. It returns the number of leaked objects.
func runLeaks(w io.Writer, f leakcheck.Format) (int, error) {
	if err := linkPair("weak", false); err != nil {
		return 0, err
	}
	if err := linkPair("cycle", true); err != nil {
		return 0, err
	}

	leakcheck.Disable()
	return leakcheck.Report(w, f)
}

// linkPair creates a <-> b and releases both local handles.
func linkPair(name string, strongBack bool) error {
	a := ptr.MakeSharedValue(node{name: name + "-a"})
	b := ptr.MakeSharedValue(node{name: name + "-b"})

	a.Get().next = b.Clone()
	if strongBack {
		b.Get().prevStrong = a.Clone()
	} else {
		b.Get().prev = a.Weak()
	}

	if err := b.Reset(); err != nil {
		return err
	}
	return a.Reset()
}
