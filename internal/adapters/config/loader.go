// Package config provides the project configuration loader for cppdeps.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/cppdeps/internal/core/domain"
	"go.trai.ch/cppdeps/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the configuration file version this loader understands.
const SupportedVersion = "1"

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds cppdeps.yaml in cwd or the nearest parent directory and reads it.
// Without a config file the returned config is empty and rooted at cwd.
func (l *Loader) Load(cwd string) (*domain.ProjectConfig, error) {
	path, found := findConfiguration(cwd)
	if !found {
		return &domain.ProjectConfig{Root: filepath.Clean(cwd)}, nil
	}
	return l.LoadFile(path)
}

// LoadFile reads the configuration file at path.
func (l *Loader) LoadFile(path string) (*domain.ProjectConfig, error) {
	var file Projectfile
	if err := readAndUnmarshalYAML(path, &file); err != nil {
		return nil, err
	}

	if file.Version != "" && file.Version != SupportedVersion && l.Logger != nil {
		l.Logger.Warn(fmt.Sprintf("%s: unknown config version %q, reading it as version %s",
			path, file.Version, SupportedVersion))
	}

	if _, err := domain.ParseVisibility(file.Visibility); err != nil {
		return nil, errors.Join(domain.ErrConfigParseFailed, zerr.With(err, "path", path))
	}

	root := filepath.Dir(path)
	cfg := &domain.ProjectConfig{
		Root:       root,
		Path:       path,
		Manifest:   resolvePath(root, file.Manifest),
		Consumer:   file.Consumer,
		Visibility: file.Visibility,
		Prefixes:   resolvePaths(root, file.Prefixes),
		Snapshot:   resolvePath(root, file.Snapshot),
	}

	mappings, err := buildMappings(file.Mappings)
	if err != nil {
		return nil, errors.Join(domain.ErrConfigParseFailed, zerr.With(err, "path", path))
	}
	cfg.Mappings = mappings

	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := filepath.Clean(cwd)
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			return "", false
		}
		currentDir = parentDir
	}
}

// buildMappings converts the mapping table into entries sorted by dependency name.
func buildMappings(dtos map[string]MappingDTO) ([]domain.MappingEntry, error) {
	if len(dtos) == 0 {
		return nil, nil
	}

	names := make([]string, 0, len(dtos))
	for name := range dtos {
		names = append(names, name)
	}
	slices.Sort(names)

	entries := make([]domain.MappingEntry, 0, len(names))
	for _, name := range names {
		dto := dtos[name]
		if name == "" || dto.Probe == "" || dto.Target == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidMapping, "failed to read custom mapping"), "dependency", name)
		}
		entries = append(entries, domain.MappingEntry{
			DependencyName: domain.NewInternedString(name),
			ProbeName:      dto.Probe,
			TargetName:     dto.Target,
			Origin:         domain.OriginCustom,
		})
	}
	return entries, nil
}

func resolvePath(root, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Clean(filepath.Join(root, p))
}

func resolvePaths(root string, paths []string) []string {
	if len(paths) == 0 {
		return nil
	}
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, resolvePath(root, p))
	}
	return out
}

// readAndUnmarshalYAML reads a YAML file and strictly unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is discovered or provided by the user
	data, err := os.ReadFile(configPath)
	if err != nil {
		return errors.Join(domain.ErrConfigReadFailed, zerr.With(err, "path", configPath))
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return errors.Join(domain.ErrConfigParseFailed, zerr.With(err, "path", configPath))
	}

	return nil
}
