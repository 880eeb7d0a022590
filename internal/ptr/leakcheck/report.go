package leakcheck

import (
	"fmt"
	"io"

	"github.com/docker/go-units"
	"gopkg.in/yaml.v3"

	"github.com/kolkov/refptr/internal/ptr/stackdepot"
)

// Leak is one entry of a report.
type Leak struct {
	ID    uint64             `yaml:"id"`
	Type  string             `yaml:"type"`
	Bytes int64              `yaml:"bytes"`
	Stack []stackdepot.Frame `yaml:"stack,omitempty"`

	site stackdepot.Hash
}

// Document is the full report, as encoded in YAML.
type Document struct {
	Stats Stats  `yaml:"stats"`
	Leaks []Leak `yaml:"leaks"`
}

// Collect builds a report document from the current registry and counters.
func Collect() Document {
	doc := Document{Stats: Snapshot(), Leaks: []Leak{}}
	for _, r := range Live() {
		doc.Leaks = append(doc.Leaks, Leak{
			ID:    r.ID,
			Type:  r.Type,
			Bytes: r.Size,
			Stack: stackdepot.Lookup(r.Stack).Frames(),
			site:  r.Stack,
		})
	}
	return doc
}

// Report writes the leak report to w and returns the number of leaked objects.
//
// Text output:
//
//	==================
//	refptr Leak Report
//	==================
//	WARNING: 1 object(s) still owned (48B)
//
//	[1] *main.node (48B)
//	  main.main()
//	      /src/main.go:12
//	==================
func Report(w io.Writer, f Format) (int, error) {
	doc := Collect()

	switch f {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return 0, fmt.Errorf("failed to encode leak report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return 0, fmt.Errorf("failed to encode leak report: %w", err)
		}
	case FormatText, "":
		if err := writeText(w, doc); err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("unknown report format %q", f)
	}
	return len(doc.Leaks), nil
}

func writeText(w io.Writer, doc Document) error {
	var total int64
	for _, l := range doc.Leaks {
		total += l.Bytes
	}

	ew := &errWriter{w: w}
	ew.printf("==================\n")
	ew.printf("refptr Leak Report\n")
	ew.printf("==================\n")
	ew.printf("blocks: %d created, %d disposed, %d freed, %d live\n",
		doc.Stats.Created, doc.Stats.Disposed, doc.Stats.Freed, doc.Stats.Live)

	if len(doc.Leaks) == 0 {
		ew.printf("✓ No leaked objects.\n")
	} else {
		ew.printf("WARNING: %d object(s) still owned (%s)\n", len(doc.Leaks), units.BytesSize(float64(total)))
		for _, l := range doc.Leaks {
			ew.printf("\n[%d] %s (%s)\n", l.ID, l.Type, units.BytesSize(float64(l.Bytes)))
			ew.printf("%s", stackdepot.Lookup(l.site).Format())
		}
	}
	ew.printf("==================\n")
	return ew.err
}

// errWriter keeps the first write error so the report body stays readable.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, args ...any) {
	if ew.err != nil {
		return
	}
	if _, err := fmt.Fprintf(ew.w, format, args...); err != nil {
		ew.err = fmt.Errorf("failed to write leak report: %w", err)
	}
}
