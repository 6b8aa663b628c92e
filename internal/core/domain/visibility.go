package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// Visibility is the propagation scope under which a target is attached to a consumer.
type Visibility uint8

const (
	// VisibilityPrivate links the target for the consumer only.
	VisibilityPrivate Visibility = iota
	// VisibilityPublic links the target for the consumer and its dependents.
	VisibilityPublic
	// VisibilityInterface links the target for dependents only.
	VisibilityInterface
)

// ParseVisibility parses "private", "public" or "interface", ignoring case.
// The empty string selects VisibilityPrivate.
func ParseVisibility(s string) (Visibility, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "private":
		return VisibilityPrivate, nil
	case "public":
		return VisibilityPublic, nil
	case "interface":
		return VisibilityInterface, nil
	default:
		return VisibilityPrivate, zerr.With(zerr.Wrap(ErrInvalidVisibility, "failed to parse visibility"), "visibility", s)
	}
}

// String returns the lowercase visibility name.
func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityInterface:
		return "interface"
	default:
		return "private"
	}
}

// Keyword returns the CMake keyword for the visibility (PRIVATE, PUBLIC, INTERFACE).
func (v Visibility) Keyword() string {
	return strings.ToUpper(v.String())
}
