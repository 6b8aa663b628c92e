// Package manifest reads dependency manifests into normalized dependency specs.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/cppdeps/internal/core/domain"
	"go.trai.ch/cppdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// versionDate matches vcpkg "version-date" values such as 2024-01-31.
var versionDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Normalizer turns raw manifest bytes into an ordered, de-duplicated list of specs.
type Normalizer struct {
	logger ports.Logger
}

// New creates a new Normalizer.
func New(logger ports.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// LoadFile reads and normalizes the manifest at path.
func (n *Normalizer) LoadFile(path string) ([]domain.DependencySpec, error) {
	raw, err := os.ReadFile(path) //nolint:gosec // Path is provided by the user
	if err != nil {
		return nil, errors.Join(domain.ErrManifestRead, zerr.With(err, "path", path))
	}

	specs, err := n.Normalize(raw)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return specs, nil
}

// Normalize parses a manifest: a JSON array of names or {name, features} objects, or a vcpkg
// manifest object whose required dependencies array has that shape.
// Manifest order is preserved; a repeated name is merged into its first occurrence with a warning.
// Any structural problem is reported as ErrManifestParse.
func (n *Normalizer) Normalize(raw []byte) ([]domain.DependencySpec, error) {
	issues, err := validate(raw)
	if err != nil {
		return nil, parseError(err)
	}
	if len(issues) > 0 {
		return nil, parseError(issuesError(issues))
	}

	entries, err := decode(raw)
	if err != nil {
		return nil, parseError(err)
	}

	specs := make([]domain.DependencySpec, 0, len(entries))
	index := make(map[domain.InternedString]int, len(entries))

	for i, e := range entries {
		if e.Version != "" {
			if err := checkVersion(e.Version); err != nil {
				return nil, parseError(zerr.With(zerr.With(err, "dependency", e.Name), "index", i))
			}
		}

		name := domain.NewInternedString(e.Name)
		if pos, dup := index[name]; dup {
			n.logger.Warn(fmt.Sprintf("%s: %s, merging features", e.Name, domain.ErrDuplicateDependency))
			specs[pos] = merge(specs[pos], e)
			continue
		}

		index[name] = len(specs)
		specs = append(specs, domain.DependencySpec{
			Name:     name,
			Features: normalizeFeatures(e.Features),
			Version:  e.Version,
		})
	}

	return specs, nil
}

func parseError(cause error) error {
	return errors.Join(domain.ErrManifestParse, cause)
}

func issuesError(issues []Issue) error {
	errs := make([]error, 0, len(issues))
	for _, issue := range issues {
		errs = append(errs, zerr.With(zerr.New(issue.String()), "keyword", issue.Keyword))
	}
	return errors.Join(errs...)
}

// merge unions the features of a repeated entry and keeps the higher version constraint.
func merge(spec domain.DependencySpec, e entry) domain.DependencySpec {
	spec.Features = normalizeFeatures(append(slices.Clone(spec.Features), e.Features...))
	spec.Version = higherVersion(spec.Version, e.Version)
	return spec
}

func normalizeFeatures(features []string) []string {
	if len(features) == 0 {
		return nil
	}
	out := slices.Clone(features)
	slices.Sort(out)
	return slices.Compact(out)
}

// checkVersion accepts semantic versions (with an optional "#port-version") and version dates.
func checkVersion(v string) error {
	base, _, _ := strings.Cut(v, "#")
	if versionDate.MatchString(base) {
		return nil
	}
	if _, err := semver.NewVersion(base); err != nil {
		return zerr.With(zerr.Wrap(err, "invalid version>= constraint"), "version", v)
	}
	return nil
}

func higherVersion(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	va, errA := semver.NewVersion(strings.SplitN(a, "#", 2)[0])
	vb, errB := semver.NewVersion(strings.SplitN(b, "#", 2)[0])
	if errA != nil || errB != nil {
		return a
	}
	if vb.GreaterThan(va) {
		return b
	}
	return a
}

// entry is one decoded manifest item.
type entry struct {
	Name     string
	Features []string
	Version  string
}

type entryJSON struct {
	Name     string            `json:"name"`
	Features []json.RawMessage `json:"features"`
	Version  string            `json:"version>="`
}

func (e *entry) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		e.Name = name
		return nil
	}

	var obj entryJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.Name = obj.Name
	e.Version = obj.Version
	for _, f := range obj.Features {
		feature, err := decodeFeature(f)
		if err != nil {
			return err
		}
		e.Features = append(e.Features, feature)
	}
	return nil
}

func decodeFeature(data json.RawMessage) (string, error) {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		return name, nil
	}
	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return "", err
	}
	return obj.Name, nil
}

// decode reads either a bare array of entries or a vcpkg manifest object.
func decode(raw []byte) ([]entry, error) {
	trimmed := bytes.TrimSpace(raw)

	if len(trimmed) > 0 && trimmed[0] == '{' {
		var m struct {
			Dependencies []entry `json:"dependencies"`
		}
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, zerr.Wrap(err, "malformed vcpkg manifest")
		}
		return m.Dependencies, nil
	}

	var entries []entry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, zerr.Wrap(err, "malformed dependency list")
	}
	return entries, nil
}
