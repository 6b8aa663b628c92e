package domain

import (
	"encoding/json"

	"go.trai.ch/zerr"
)

// Registry is the insertion-ordered outcome of one resolution pass, keyed by dependency name.
// It is built once and only read afterwards.
type Registry struct {
	records []ResolutionRecord
	index   map[InternedString]int
}

// NewRegistry builds a Registry that keeps records in the given order.
// Two records for the same dependency are rejected with ErrDuplicateRecord.
func NewRegistry(records []ResolutionRecord) (*Registry, error) {
	r := &Registry{
		records: make([]ResolutionRecord, 0, len(records)),
		index:   make(map[InternedString]int, len(records)),
	}
	for _, rec := range records {
		if _, exists := r.index[rec.Dependency]; exists {
			return nil, zerr.With(zerr.Wrap(ErrDuplicateRecord, rec.Dependency.String()), "dependency", rec.Dependency.String())
		}
		r.index[rec.Dependency] = len(r.records)
		r.records = append(r.records, rec)
	}
	return r, nil
}

// Len returns the number of records.
func (r *Registry) Len() int {
	return len(r.records)
}

// Get returns the record for a dependency name.
func (r *Registry) Get(name string) (ResolutionRecord, bool) {
	i, ok := r.index[NewInternedString(name)]
	if !ok {
		return ResolutionRecord{}, false
	}
	return r.records[i], true
}

// All returns a copy of every record in manifest order.
func (r *Registry) All() []ResolutionRecord {
	out := make([]ResolutionRecord, len(r.records))
	copy(out, r.records)
	return out
}

// ResolvedTargets returns the target of every Resolved or TargetAmbiguous record, in order.
func (r *Registry) ResolvedTargets() []string {
	targets := make([]string, 0, len(r.records))
	for _, rec := range r.records {
		if target, ok := rec.TargetName(); ok {
			targets = append(targets, target)
		}
	}
	return targets
}

// AvailableNames returns the dependency names that have a linkable target, in order.
func (r *Registry) AvailableNames() []string {
	names := make([]string, 0, len(r.records))
	for _, rec := range r.records {
		if rec.Available() {
			names = append(names, rec.Dependency.String())
		}
	}
	return names
}

// UnresolvedNames returns the dependency names whose package was not found, in order.
func (r *Registry) UnresolvedNames() []string {
	var names []string
	for _, rec := range r.records {
		if !rec.Available() {
			names = append(names, rec.Dependency.String())
		}
	}
	return names
}

// Equal reports whether both registries hold equal records in the same order.
func (r *Registry) Equal(other *Registry) bool {
	if r.Len() != other.Len() {
		return false
	}
	for i := range r.records {
		if !r.records[i].Equal(other.records[i]) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes the records as an ordered array.
func (r *Registry) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.records)
}
