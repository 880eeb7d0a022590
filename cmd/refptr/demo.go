// demo.go implements the 'refptr demo' command.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/kolkov/refptr/internal/ptr/leakcheck"
	"github.com/kolkov/refptr/ptr"
)

// demoCommand implements the 'refptr demo' command.
//
// Flow:
//  1. Parse flags (environment first, flags override)
//  2. Run each scenario, printing its observations to stdout
//  3. Print the leak report to stderr if leak checking is on
//
// Example:
//
//	refptr demo
//	refptr demo -leakcheck -format yaml
func demoCommand(args []string) {
	config, err := loadRunConfig(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if config.leakcheck {
		leakcheck.Enable()
	}

	if err := runDemo(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if config.leakcheck {
		if err := printReport(os.Stderr, config.format); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
}

// loadRunConfig combines REFPTR_LEAKCHECK with command flags.
func loadRunConfig(args []string) (*runConfig, error) {
	env, err := leakcheck.ConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return parseRunArgs(args, env)
}

// printReport writes the leak report and turns tracking off.
func printReport(w io.Writer, f leakcheck.Format) error {
	leakcheck.Disable()
	fmt.Fprintln(w)
	_, err := leakcheck.Report(w, f)
	return err
}

// scenario is one named demonstration.
type scenario struct {
	name string
	run  func(w io.Writer) error
}

var scenarios = []scenario{
	{"Unique", demoUnique},
	{"Shared", demoShared},
	{"Weak", demoWeak},
	{"MakeUnique", demoMakeUnique},
	{"MakeShared", demoMakeShared},
}

// runDemo runs every scenario in order. Each scenario releases all of its
// handles before returning.
func runDemo(w io.Writer) error {
	for _, sc := range scenarios {
		fmt.Fprintf(w, "Testing %s...\n", sc.name)
		if err := sc.run(w); err != nil {
			return fmt.Errorf("%s: %w", sc.name, err)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func demoUnique(w io.Writer) error {
	n := 42
	p1 := ptr.NewUnique(&n)
	fmt.Fprintf(w, "*p1 = %d\n", *p1.Get())

	p2 := p1.Move()
	defer p2.Close()
	fmt.Fprintf(w, "*p2 = %d, p1 empty: %t\n", *p2.Get(), p1.Empty())

	announce := func(*int) error {
		fmt.Fprintln(w, "Custom deleter called")
		return nil
	}
	v := 10
	p3 := ptr.NewUnique(&v, ptr.WithDeleter(announce))
	fmt.Fprintf(w, "*p3 = %d\n", *p3.Get())
	return p3.Close()
}

func demoShared(w io.Writer) error {
	v := 42
	p1 := ptr.NewShared(&v)
	defer p1.Close()
	fmt.Fprintf(w, "*p1 = %d, use_count: %d\n", *p1.Get(), p1.UseCount())

	p2 := p1.Clone()
	defer p2.Close()
	fmt.Fprintf(w, "*p2 = %d, use_count: %d\n", *p2.Get(), p2.UseCount())

	p3 := &ptr.Shared[int]{}
	defer p3.Close()
	if err := p3.Assign(p1); err != nil {
		return err
	}
	fmt.Fprintf(w, "*p3 = %d, use_count: %d\n", *p3.Get(), p3.UseCount())
	return nil
}

func demoWeak(w io.Writer) error {
	v := 42
	sp := ptr.NewShared(&v)
	wp := ptr.NewWeak(sp)
	defer wp.Reset()

	fmt.Fprintf(w, "Weak expired: %t\n", wp.Expired())

	sp2 := wp.Lock()
	if sp2.Valid() {
		fmt.Fprintf(w, "*sp2 = %d\n", *sp2.Get())
	}

	if err := sp.Reset(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Weak expired: %t (sp2 still owns it)\n", wp.Expired())

	if err := sp2.Reset(); err != nil {
		return err
	}
	fmt.Fprintf(w, "Weak expired: %t, lock valid: %t\n", wp.Expired(), wp.Lock().Valid())
	return nil
}

func demoMakeUnique(w io.Writer) error {
	p := ptr.MakeUniqueValue(42)
	defer p.Close()
	fmt.Fprintf(w, "*p = %d\n", *p.Get())
	return nil
}

func demoMakeShared(w io.Writer) error {
	p, err := ptr.MakeShared(func(v *int) error {
		*v = 42
		return nil
	})
	if err != nil {
		return err
	}
	defer p.Close()
	fmt.Fprintf(w, "*p = %d, use_count: %d\n", *p.Get(), p.UseCount())
	return nil
}
