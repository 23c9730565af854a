// Package output provides output formatting for betlink-cli.
package output

import (
	"fmt"
	"io"
)

// Format selects how command results are rendered.
type Format string

const (
	// FormatTable renders aligned columns for reading in a terminal.
	FormatTable Format = "table"

	// FormatJSON renders indented JSON for scripting.
	FormatJSON Format = "json"
)

// ParseFormat validates a format name, typically a flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Formatter formats data for output.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates a formatter for the given format.
func NewFormatter(format Format, wide bool) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	default:
		return &TableFormatter{Wide: wide}
	}
}
