package logger

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// messager is an error that reports its own message without its cause.
// zerr.Error implements it.
type messager interface {
	Message() string
}

// metadater is an error that carries structured key/value context.
type metadater interface {
	Metadata() map[string]any
}

// ErrorEntry is one link in a rendered error chain.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks err from the outermost message to the root cause.
// Joined errors follow the branch that carries detail and skip bare sentinels.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry

	current := err
	for current != nil {
		if joined, ok := current.(interface{ Unwrap() []error }); ok {
			if next := detailBranch(joined.Unwrap()); next != nil {
				current = next
				continue
			}
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		entry := ErrorEntry{Message: m.Message()}
		if md, ok := current.(metadater); ok {
			entry.Metadata = md.Metadata()
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}

	return entries
}

// detailBranch picks the last joined error that wraps something.
// It returns nil when every member is a leaf.
func detailBranch(errs []error) error {
	for i := len(errs) - 1; i >= 0; i-- {
		e := errs[i]
		if e == nil {
			continue
		}
		if _, ok := e.(interface{ Unwrap() []error }); ok {
			return e
		}
		if errors.Unwrap(e) != nil {
			return e
		}
		if md, ok := e.(metadater); ok && len(md.Metadata()) > 0 {
			return e
		}
	}
	return nil
}

// formatErrorEntries renders entries as an "Error:" line followed by a "Caused by:" list.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		var head, indent string
		if i == 0 {
			head, indent = "Error: ", "       "
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, indent = "    → ", "      "
		}

		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}

		keys := make([]string, 0, len(entry.Metadata))
		for k := range entry.Metadata {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, k, entry.Metadata[k]))
		}
	}

	return strings.Join(lines, "\n")
}
