// Package mapping holds the known dependency-name to probe/target correspondences.
package mapping

import (
	"fmt"
	"slices"

	"go.trai.ch/cppdeps/internal/core/domain"
	"go.trai.ch/cppdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// Registry answers mapping lookups from a per-run custom table layered over the built-in table.
// Custom entries shadow built-in ones. A Registry is not safe for concurrent registration.
type Registry struct {
	custom map[domain.InternedString]domain.MappingEntry
	logger ports.Logger
}

// NewRegistry creates a Registry with an empty custom table.
func NewRegistry(logger ports.Logger) *Registry {
	return &Registry{
		custom: make(map[domain.InternedString]domain.MappingEntry),
		logger: logger,
	}
}

// RegisterCustom adds or replaces the custom mapping for a dependency name.
// The last registration wins; replacing an existing entry is logged.
func (r *Registry) RegisterCustom(name, probeName, targetName string) error {
	if name == "" || probeName == "" || targetName == "" {
		err := zerr.With(zerr.Wrap(domain.ErrInvalidMapping, "failed to register custom mapping"), "dependency", name)
		err = zerr.With(err, "probe", probeName)
		return zerr.With(err, "target", targetName)
	}

	key := domain.NewInternedString(name)
	if prev, ok := r.custom[key]; ok && r.logger != nil {
		r.logger.Info(fmt.Sprintf("replacing custom mapping for %s: %s/%s -> %s/%s",
			name, prev.ProbeName, prev.TargetName, probeName, targetName))
	}

	r.custom[key] = domain.MappingEntry{
		DependencyName: key,
		ProbeName:      probeName,
		TargetName:     targetName,
		Origin:         domain.OriginCustom,
	}
	return nil
}

// RegisterEntries registers every entry as a custom mapping, stopping at the first invalid one.
func (r *Registry) RegisterEntries(entries []domain.MappingEntry) error {
	for _, e := range entries {
		if err := r.RegisterCustom(e.DependencyName.String(), e.ProbeName, e.TargetName); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the mapping for a dependency name, consulting the custom table first.
func (r *Registry) Lookup(name string) (domain.MappingEntry, bool) {
	key := domain.NewInternedString(name)
	if e, ok := r.custom[key]; ok {
		return e, true
	}
	if b, ok := builtins[name]; ok {
		return domain.MappingEntry{
			DependencyName: key,
			ProbeName:      b.probe,
			TargetName:     b.target,
			Origin:         domain.OriginBuiltIn,
		}, true
	}
	return domain.MappingEntry{}, false
}

// Names returns every dependency name with an effective mapping, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(builtins)+len(r.custom))
	for name := range builtins {
		names = append(names, name)
	}
	for key := range r.custom {
		if _, ok := builtins[key.String()]; !ok {
			names = append(names, key.String())
		}
	}
	slices.Sort(names)
	return names
}

// Entries returns the effective mapping table sorted by dependency name.
func (r *Registry) Entries() []domain.MappingEntry {
	names := r.Names()
	entries := make([]domain.MappingEntry, 0, len(names))
	for _, name := range names {
		e, _ := r.Lookup(name)
		entries = append(entries, e)
	}
	return entries
}

// BuiltInNames returns the names of the built-in table, sorted.
func BuiltInNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
