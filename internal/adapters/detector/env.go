// Package detector selects the report format from the environment.
package detector

import (
	"os"

	"go.trai.ch/cppdeps/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/term"
)

// Format is the rendering format of a resolution report.
type Format int

const (
	// FormatAuto picks a format from the environment.
	FormatAuto Format = iota
	// FormatTable renders a styled table for humans.
	FormatTable
	// FormatJSON renders machine-readable JSON.
	FormatJSON
)

// String returns the flag spelling of the format.
func (f Format) String() string {
	switch f {
	case FormatTable:
		return "table"
	case FormatJSON:
		return "json"
	default:
		return "auto"
	}
}

// ParseFormat reads a --format value. The empty string means auto.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "auto":
		return FormatAuto, nil
	case "table":
		return FormatTable, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatAuto, zerr.With(zerr.Wrap(domain.ErrInvalidFormat, "failed to parse output format"), "format", s)
	}
}

// DetectEnvironment returns the format for the current stdout.
// Terminals get a table; pipes, files and CI runs get JSON.
func DetectEnvironment() Format {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return FormatJSON
	}
	return FormatTable
}

// ResolveFormat applies the requested format to the detected one; auto keeps detection.
func ResolveFormat(detected, requested Format) Format {
	if requested == FormatAuto {
		return detected
	}
	return requested
}
