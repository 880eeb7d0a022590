// args.go parses flags shared by the demo and leaks commands.
package main

import (
	"fmt"
	"strings"

	"github.com/kolkov/refptr/internal/ptr/leakcheck"
)

// runConfig holds the options of a demo or leaks run.
type runConfig struct {
	leakcheck bool
	format    leakcheck.Format
}

// parseRunArgs parses command flags on top of the environment configuration.
//
// Supported flags:
//
//	-leakcheck
//	-format text|yaml
//	-format=text|yaml
//
// An explicit -format implies -leakcheck.
func parseRunArgs(args []string, env leakcheck.Config) (*runConfig, error) {
	config := &runConfig{
		leakcheck: env.Enabled,
		format:    env.Format,
	}
	if config.format == "" {
		config.format = leakcheck.FormatText
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "-leakcheck" || arg == "--leakcheck":
			config.leakcheck = true

		case arg == "-format" || arg == "--format":
			if i+1 >= len(args) {
				return nil, fmt.Errorf("-format flag requires an argument")
			}
			i++
			if err := config.setFormat(args[i]); err != nil {
				return nil, err
			}

		case strings.HasPrefix(arg, "-format=") || strings.HasPrefix(arg, "--format="):
			if err := config.setFormat(arg[strings.Index(arg, "=")+1:]); err != nil {
				return nil, err
			}

		default:
			return nil, fmt.Errorf("unknown argument: %s", arg)
		}
	}

	return config, nil
}

func (c *runConfig) setFormat(v string) error {
	f, err := leakcheck.ParseFormat(v)
	if err != nil {
		return err
	}
	c.format = f
	c.leakcheck = true
	return nil
}
