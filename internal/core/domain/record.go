package domain

import (
	"encoding/json"
	"slices"
)

// Status is the terminal state of one dependency resolution.
type Status uint8

const (
	// StatusResolved means both a probe name and a target were confirmed.
	StatusResolved Status = iota
	// StatusProbeNotFound means no candidate probe name was discoverable.
	StatusProbeNotFound
	// StatusTargetAmbiguous means the package was found but no target could be confirmed.
	StatusTargetAmbiguous
)

// String returns the kebab-case status name used in reports.
func (s Status) String() string {
	switch s {
	case StatusResolved:
		return "resolved"
	case StatusProbeNotFound:
		return "probe-not-found"
	case StatusTargetAmbiguous:
		return "target-ambiguous"
	default:
		return "unknown"
	}
}

// Outcome is the result variant of a resolution.
// The set of implementations is closed: Resolved, ProbeNotFound and TargetAmbiguous.
type Outcome interface {
	Status() Status
	isOutcome()
}

// Resolved carries the confirmed probe and target names.
type Resolved struct {
	ProbeName  string
	TargetName string
}

// Status implements Outcome.
func (Resolved) Status() Status { return StatusResolved }
func (Resolved) isOutcome()     {}

// ProbeNotFound carries no names: nothing was discovered.
type ProbeNotFound struct{}

// Status implements Outcome.
func (ProbeNotFound) Status() Status { return StatusProbeNotFound }
func (ProbeNotFound) isOutcome()     {}

// TargetAmbiguous carries the discovered probe name and the unconfirmed fallback target.
type TargetAmbiguous struct {
	ProbeName      string
	FallbackTarget string
}

// Status implements Outcome.
func (TargetAmbiguous) Status() Status { return StatusTargetAmbiguous }
func (TargetAmbiguous) isOutcome()     {}

// Strategy names the path that produced a record's probe name.
type Strategy uint8

const (
	// StrategyNone is used when no probe name was confirmed.
	StrategyNone Strategy = iota
	// StrategyCustomMapping means a caller-registered mapping was confirmed.
	StrategyCustomMapping
	// StrategyBuiltInMapping means a built-in mapping was confirmed.
	StrategyBuiltInMapping
	// StrategyHeuristic means the probe name came from generated candidates.
	StrategyHeuristic
)

// String returns the kebab-case strategy name used in reports.
func (s Strategy) String() string {
	switch s {
	case StrategyCustomMapping:
		return "custom-mapping"
	case StrategyBuiltInMapping:
		return "built-in-mapping"
	case StrategyHeuristic:
		return "heuristic"
	default:
		return "none"
	}
}

// StrategyForOrigin returns the mapping strategy matching a table origin.
func StrategyForOrigin(o Origin) Strategy {
	if o == OriginCustom {
		return StrategyCustomMapping
	}
	return StrategyBuiltInMapping
}

// ResolutionRecord is the outcome of resolving a single dependency, plus every name tried on the way.
type ResolutionRecord struct {
	Dependency           InternedString
	Features             []string
	Outcome              Outcome
	Strategy             Strategy
	AttemptedProbeNames  []string
	AttemptedTargetNames []string
}

// Status returns the status of the record's outcome.
// A record without an outcome reports StatusProbeNotFound.
func (r ResolutionRecord) Status() Status {
	if r.Outcome == nil {
		return StatusProbeNotFound
	}
	return r.Outcome.Status()
}

// ProbeName returns the confirmed probe name, if any.
func (r ResolutionRecord) ProbeName() (string, bool) {
	switch o := r.Outcome.(type) {
	case Resolved:
		return o.ProbeName, true
	case TargetAmbiguous:
		return o.ProbeName, true
	default:
		return "", false
	}
}

// TargetName returns the target to link, if any.
// For TargetAmbiguous records this is the low-confidence fallback.
func (r ResolutionRecord) TargetName() (string, bool) {
	switch o := r.Outcome.(type) {
	case Resolved:
		return o.TargetName, true
	case TargetAmbiguous:
		return o.FallbackTarget, true
	default:
		return "", false
	}
}

// Available reports whether the record has a target that can be linked.
func (r ResolutionRecord) Available() bool {
	_, ok := r.TargetName()
	return ok
}

// LowConfidence reports whether the target is an unconfirmed fallback.
func (r ResolutionRecord) LowConfidence() bool {
	return r.Status() == StatusTargetAmbiguous
}

// Equal reports whether two records describe the same resolution.
func (r ResolutionRecord) Equal(other ResolutionRecord) bool {
	return r.Dependency == other.Dependency &&
		r.Outcome == other.Outcome &&
		r.Strategy == other.Strategy &&
		slices.Equal(r.Features, other.Features) &&
		slices.Equal(r.AttemptedProbeNames, other.AttemptedProbeNames) &&
		slices.Equal(r.AttemptedTargetNames, other.AttemptedTargetNames)
}

type recordJSON struct {
	Dependency           InternedString `json:"dependency"`
	Status               string         `json:"status"`
	ProbeName            string         `json:"probe_name,omitempty"`
	TargetName           string         `json:"target_name,omitempty"`
	LowConfidence        bool           `json:"low_confidence,omitempty"`
	Strategy             string         `json:"strategy"`
	Features             []string       `json:"features,omitempty"`
	AttemptedProbeNames  []string       `json:"attempted_probe_names"`
	AttemptedTargetNames []string       `json:"attempted_target_names"`
}

// MarshalJSON flattens the outcome variant into status and name fields.
func (r ResolutionRecord) MarshalJSON() ([]byte, error) {
	probe, _ := r.ProbeName()
	target, _ := r.TargetName()

	out := recordJSON{
		Dependency:           r.Dependency,
		Status:               r.Status().String(),
		ProbeName:            probe,
		TargetName:           target,
		LowConfidence:        r.LowConfidence(),
		Strategy:             r.Strategy.String(),
		Features:             r.Features,
		AttemptedProbeNames:  nonNil(r.AttemptedProbeNames),
		AttemptedTargetNames: nonNil(r.AttemptedTargetNames),
	}
	return json.Marshal(out)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
