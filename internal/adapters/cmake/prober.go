// Package cmake implements the build environment adapters for CMake:
// a Prober over CMake package config directories and a link statement emitter.
package cmake

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/cppdeps/internal/core/domain"
	"go.trai.ch/cppdeps/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var _ ports.Prober = (*Prober)(nil)

// importedTarget matches add_library calls that declare IMPORTED or ALIAS targets.
var importedTarget = regexp.MustCompile(`(?is)add_library\s*\(\s*([A-Za-z0-9_.:+\-]+)\s+[^)]*?\b(IMPORTED|ALIAS)\b`)

// searchParents are the prefix subdirectories that may hold per-package directories.
var searchParents = []string{
	".",
	"lib/cmake",
	"lib64/cmake",
	"share/cmake",
	"lib",
	"lib64",
	"share",
}

// Prober answers probes by searching CMake package config files under a list of prefixes.
// A target exists once a discovered package's config directory exports it.
type Prober struct {
	prefixes []string

	mu       sync.Mutex
	packages map[string]bool
	targets  map[string]struct{}
}

// NewProber creates a Prober searching the given prefixes in order.
func NewProber(prefixes []string) *Prober {
	return &Prober{
		prefixes: prefixes,
		packages: make(map[string]bool),
		targets:  make(map[string]struct{}),
	}
}

// PrefixesFromEnv appends the entries of CMAKE_PREFIX_PATH to the given prefixes,
// dropping empty entries and duplicates.
func PrefixesFromEnv(prefixes []string) []string {
	all := slices.Clone(prefixes)
	all = append(all, filepath.SplitList(os.Getenv(domain.PrefixPathEnv))...)

	result := make([]string, 0, len(all))
	for _, p := range all {
		if p == "" || slices.Contains(result, p) {
			continue
		}
		result = append(result, p)
	}
	return result
}

// PackageDiscoverable reports whether <probeName>Config.cmake or <probename>-config.cmake
// exists in one of the searched directories. Discovery indexes the package's exported targets.
func (p *Prober) PackageDiscoverable(ctx context.Context, probeName string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	p.mu.Lock()
	found, cached := p.packages[probeName]
	p.mu.Unlock()
	if cached {
		return found, nil
	}

	dir, err := p.findConfigDir(probeName)
	if err != nil {
		return false, zerr.With(err, "package", probeName)
	}

	if dir != "" {
		targets, err := indexTargets(ctx, dir)
		if err != nil {
			return false, zerr.With(err, "package", probeName)
		}
		p.mu.Lock()
		for _, t := range targets {
			p.targets[t] = struct{}{}
		}
		p.mu.Unlock()
	}

	p.mu.Lock()
	p.packages[probeName] = dir != ""
	p.mu.Unlock()

	return dir != "", nil
}

// TargetExists reports whether a discovered package exported targetName.
func (p *Prober) TargetExists(ctx context.Context, targetName string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.targets[targetName]
	return ok, nil
}

// findConfigDir returns the first directory holding a config file for name, or "".
func (p *Prober) findConfigDir(name string) (string, error) {
	configFiles := []string{name + "Config.cmake", strings.ToLower(name) + "-config.cmake"}

	for _, prefix := range p.prefixes {
		for _, dir := range candidateDirs(prefix, name) {
			for _, file := range configFiles {
				ok, err := isFile(filepath.Join(dir, file))
				if err != nil {
					return "", err
				}
				if ok {
					return dir, nil
				}
			}
		}
	}

	return "", nil
}

// candidateDirs lists, in search order, the existing directories of prefix that may hold
// the config file of name. Package directories match name case-insensitively as a prefix,
// so "fmt" also finds "fmt-10.2.1".
func candidateDirs(prefix, name string) []string {
	var dirs []string
	add := func(dir string) {
		if isDir(dir) && !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	add(prefix)
	add(filepath.Join(prefix, "cmake"))

	lower := strings.ToLower(name)
	for _, sub := range searchParents {
		parent := filepath.Join(prefix, sub)
		entries, err := os.ReadDir(parent)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if !entry.IsDir() || !strings.HasPrefix(strings.ToLower(entry.Name()), lower) {
				continue
			}
			dir := filepath.Join(parent, entry.Name())
			add(dir)
			add(filepath.Join(dir, "cmake"))
			add(filepath.Join(dir, "CMake"))
		}
	}

	return dirs
}

// indexTargets reads every .cmake file of dir concurrently and returns the exported
// target names in lexical file order.
func indexTargets(ctx context.Context, dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.cmake"))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to glob cmake files"), "dir", dir)
	}
	slices.Sort(files)

	perFile := make([][]string, len(files))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, file := range files {
		g.Go(func() error {
			if err := groupCtx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file)
			if err != nil {
				return zerr.With(zerr.Wrap(err, "failed to read cmake file"), "path", file)
			}
			perFile[i] = parseTargets(data)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var targets []string
	for _, names := range perFile {
		targets = append(targets, names...)
	}
	return targets, nil
}

// parseTargets extracts IMPORTED and ALIAS target names from a CMake script.
func parseTargets(data []byte) []string {
	var names []string
	for _, m := range importedTarget.FindAllSubmatch(data, -1) {
		names = append(names, string(m[1]))
	}
	return names
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return info.Mode().IsRegular(), nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, zerr.With(zerr.Wrap(err, "failed to stat cmake config"), "path", path)
}
