// Package snapshot implements a Prober backed by a recorded environment snapshot.
//
// A snapshot lists the packages the host build can discover and the targets it defines:
//
//	packages: [fmt, ZLIB]
//	targets: [fmt::fmt, ZLIB::ZLIB]
//
// JSON documents with the same keys are accepted as well.
package snapshot

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"

	"go.trai.ch/cppdeps/internal/core/domain"
	"go.trai.ch/cppdeps/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.Prober = (*Prober)(nil)

// File is the on-disk snapshot document.
type File struct {
	Packages []string `yaml:"packages"`
	Targets  []string `yaml:"targets"`
}

// Prober answers probes from an in-memory snapshot. Lookups are exact and case-sensitive.
type Prober struct {
	packages map[string]struct{}
	targets  map[string]struct{}
}

// New creates a Prober from the given package and target names.
func New(packages, targets []string) *Prober {
	p := &Prober{
		packages: make(map[string]struct{}, len(packages)),
		targets:  make(map[string]struct{}, len(targets)),
	}
	for _, name := range packages {
		p.packages[name] = struct{}{}
	}
	for _, name := range targets {
		p.targets[name] = struct{}{}
	}
	return p
}

// Load reads a snapshot file.
func Load(path string) (*Prober, error) {
	// #nosec G304 -- path is provided by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Join(domain.ErrSnapshotReadFailed, zerr.With(err, "path", path))
	}

	p, err := Parse(data)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return p, nil
}

// Parse decodes a snapshot document. Unknown keys and empty names are rejected.
func Parse(data []byte) (*Prober, error) {
	var file File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.Join(domain.ErrSnapshotParseFailed, err)
	}

	for _, names := range [][]string{file.Packages, file.Targets} {
		for i, name := range names {
			if name == "" {
				return nil, errors.Join(domain.ErrSnapshotParseFailed,
					zerr.With(zerr.New("empty name in snapshot"), "index", i))
			}
		}
	}

	return New(file.Packages, file.Targets), nil
}

// PackageDiscoverable reports whether the snapshot lists probeName as a package.
func (p *Prober) PackageDiscoverable(ctx context.Context, probeName string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, ok := p.packages[probeName]
	return ok, nil
}

// TargetExists reports whether the snapshot lists targetName as a target.
func (p *Prober) TargetExists(ctx context.Context, targetName string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, ok := p.targets[targetName]
	return ok, nil
}
