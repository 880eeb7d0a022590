package leakcheck

import (
	"fmt"
	"os"
	"strings"
)

// EnvVar is the environment variable read by ConfigFromEnv.
const EnvVar = "REFPTR_LEAKCHECK"

// Format selects the report encoding.
type Format string

const (
	// FormatText is the human-readable report.
	FormatText Format = "text"
	// FormatYAML is the machine-readable report.
	FormatYAML Format = "yaml"
)

// ParseFormat converts a command-line or environment value to a Format.
// The empty string means FormatText.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown report format %q (want text or yaml)", s)
	}
}

// Config is the leak checker configuration.
type Config struct {
	Enabled bool
	Format  Format
}

// ConfigFromEnv reads REFPTR_LEAKCHECK.
func ConfigFromEnv() (Config, error) {
	return parseConfig(os.Getenv(EnvVar))
}

func parseConfig(v string) (Config, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "off", "no":
		return Config{Format: FormatText}, nil
	case "1", "true", "on", "yes", "text":
		return Config{Enabled: true, Format: FormatText}, nil
	case "yaml", "yml":
		return Config{Enabled: true, Format: FormatYAML}, nil
	default:
		return Config{Format: FormatText}, fmt.Errorf("invalid %s value %q", EnvVar, v)
	}
}

// Apply enables or disables the registry according to c.
func (c Config) Apply() {
	if c.Enabled {
		Enable()
	} else {
		Disable()
	}
}
