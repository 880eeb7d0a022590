// Package main implements the refptr CLI tool.
//
// The refptr tool demonstrates the ownership handles of the ptr package and
// their diagnostics. It:
//
//  1. Runs the unique, shared, weak, make_unique and make_shared scenarios
//  2. Optionally tracks every handle with the leak checker
//  3. Prints a leak report for objects still owned at exit
//
// Usage:
//
//	refptr demo                     # Run the scenarios
//	refptr demo -leakcheck          # ... and print the leak report
//	refptr leaks -format yaml       # Leak a cycle on purpose, report it as YAML
//	refptr version                  # Show version information
package main

import (
	"fmt"
	"os"

	"github.com/kolkov/refptr/ptr"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "demo":
		demoCommand(os.Args[2:])
	case "leaks":
		leaksCommand(os.Args[2:])
	case "version", "--version", "-v":
		info := ptr.GetInfo()
		fmt.Printf("refptr version %s\n", info.Version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Print(`refptr - reference-counted ownership handles for Go

USAGE:
    refptr <command> [arguments]

COMMANDS:
    demo       Run the ownership scenarios
    leaks      Create a reference cycle and print the leak report
    version    Show version information
    help       Show this help message

FLAGS (demo, leaks):
    -leakcheck         Track every handle and report leftovers at exit
    -format text|yaml  Leak report format (default text)

EXAMPLES:
    # Run the scenarios
    refptr demo

    # Run the scenarios with leak checking
    refptr demo -leakcheck

    # Machine-readable leak report
    refptr leaks -format=yaml

ENVIRONMENT:
    REFPTR_LEAKCHECK   1, true or text enables leak checking; yaml selects
                       the YAML report. Flags override it.

`)
}
