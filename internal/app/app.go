// Package app implements the application layer for cppdeps.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.trai.ch/cppdeps/internal/adapters/cmake"     //nolint:depguard // Wired in app layer
	"go.trai.ch/cppdeps/internal/adapters/detector"  //nolint:depguard // Wired in app layer
	"go.trai.ch/cppdeps/internal/adapters/manifest"  //nolint:depguard // Wired in app layer
	"go.trai.ch/cppdeps/internal/adapters/report"    //nolint:depguard // Wired in app layer
	"go.trai.ch/cppdeps/internal/adapters/snapshot"  //nolint:depguard // Wired in app layer
	"go.trai.ch/cppdeps/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/cppdeps/internal/core/domain"
	"go.trai.ch/cppdeps/internal/core/ports"
	"go.trai.ch/cppdeps/internal/engine/linker"
	"go.trai.ch/cppdeps/internal/engine/mapping"
	"go.trai.ch/cppdeps/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	tracer       ports.Tracer
	stdout       io.Writer
	prober       ports.Prober
}

// New creates a new App instance writing reports to os.Stdout.
func New(loader ports.ConfigLoader, log ports.Logger, tracer ports.Tracer) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		tracer:       tracer,
		stdout:       os.Stdout,
	}
}

// WithOutput redirects reports and link statements to w.
func (a *App) WithOutput(w io.Writer) *App {
	a.stdout = w
	return a
}

// WithProber replaces the prober otherwise built from the configuration.
// This is primarily used for testing.
func (a *App) WithProber(p ports.Prober) *App {
	a.prober = p
	return a
}

// GlobalOptions configures logging and tracing for the whole run.
type GlobalOptions struct {
	LogFormat string
	Trace     bool
}

// jsonSwitcher is implemented by loggers that can switch to JSON output.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// Configure applies the global options. The returned function flushes tracing.
func (a *App) Configure(opts GlobalOptions) (func(context.Context) error, error) {
	switch opts.LogFormat {
	case "", "pretty":
	case "json":
		if s, ok := a.logger.(jsonSwitcher); ok {
			s.SetJSON(true)
		}
	default:
		return nil, zerr.With(zerr.New("unknown log format, expected 'pretty' or 'json'"), "log_format", opts.LogFormat)
	}

	if !opts.Trace {
		return func(context.Context) error { return nil }, nil
	}
	return telemetry.EnableTracing(a.logger), nil
}

// ProjectOptions select the project and the build environment.
// Empty fields fall back to the project configuration file.
type ProjectOptions struct {
	// Dir is the working directory; the config file is searched from here upwards.
	Dir        string
	ConfigPath string
	Manifest   string
	Prefixes   []string
	Snapshot   string
}

// ResolveOptions configuration for the Resolve method.
type ResolveOptions struct {
	ProjectOptions
	Format string
}

// LinkOptions configuration for the Link method.
type LinkOptions struct {
	ProjectOptions
	Consumer   string
	Visibility string
	// Names restricts linking to these dependencies. Empty links every available one.
	Names []string
}

// MappingsOptions configuration for the Mappings method.
type MappingsOptions struct {
	Dir        string
	ConfigPath string
	Format     string
}

// Resolve runs one resolution pass and renders the registry.
func (a *App) Resolve(ctx context.Context, opts ResolveOptions) error {
	requested, err := detector.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	reg, _, err := a.resolve(ctx, opts.ProjectOptions)
	if err != nil {
		return err
	}

	format := detector.ResolveFormat(detector.DetectEnvironment(), requested)
	return report.NewRenderer(a.stdout).Registry(reg, resolver.Fingerprint(reg), format)
}

// Link runs one resolution pass and writes a CMake link statement per attached target.
func (a *App) Link(ctx context.Context, opts LinkOptions) (linker.Report, error) {
	reg, cfg, err := a.resolve(ctx, opts.ProjectOptions)
	if err != nil {
		return linker.Report{}, err
	}

	consumer := firstNonEmpty(opts.Consumer, cfg.Consumer)
	visibility, err := domain.ParseVisibility(firstNonEmpty(opts.Visibility, cfg.Visibility))
	if err != nil {
		return linker.Report{}, err
	}

	l := linker.New(reg, cmake.NewEmitter(a.stdout), a.logger)
	if len(opts.Names) == 0 {
		return l.LinkAll(ctx, consumer, visibility)
	}
	return l.LinkSubset(ctx, consumer, visibility, opts.Names)
}

// Mappings renders the effective mapping table: built-in entries shadowed by the project's custom ones.
func (a *App) Mappings(_ context.Context, opts MappingsOptions) error {
	requested, err := detector.ParseFormat(opts.Format)
	if err != nil {
		return err
	}

	cfg, err := a.loadConfig(opts.Dir, opts.ConfigPath)
	if err != nil {
		return err
	}

	mappings := mapping.NewRegistry(a.logger)
	if err := mappings.RegisterEntries(cfg.Mappings); err != nil {
		return err
	}

	format := detector.ResolveFormat(detector.DetectEnvironment(), requested)
	return report.NewRenderer(a.stdout).Mappings(mappings.Entries(), format)
}

// resolve normalizes the manifest and resolves every dependency against the environment.
func (a *App) resolve(ctx context.Context, opts ProjectOptions) (*domain.Registry, *domain.ProjectConfig, error) {
	cfg, err := a.loadConfig(opts.Dir, opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}

	manifestPath := firstNonEmpty(
		absPath(opts.Dir, opts.Manifest),
		cfg.Manifest,
		filepath.Join(cfg.Root, domain.DefaultManifestName),
	)
	specs, err := manifest.New(a.logger).LoadFile(manifestPath)
	if err != nil {
		return nil, nil, err
	}

	mappings := mapping.NewRegistry(a.logger)
	if err := mappings.RegisterEntries(cfg.Mappings); err != nil {
		return nil, nil, err
	}

	prober, err := a.proberFor(opts, cfg)
	if err != nil {
		return nil, nil, err
	}

	reg, err := resolver.New(mappings, prober, a.logger, a.tracer).ResolveAll(ctx, specs)
	if err != nil {
		return nil, nil, zerr.With(err, "manifest", manifestPath)
	}
	return reg, cfg, nil
}

func (a *App) loadConfig(dir, configPath string) (*domain.ProjectConfig, error) {
	if configPath != "" {
		cfg, err := a.configLoader.LoadFile(absPath(dir, configPath))
		if err != nil {
			return nil, zerr.Wrap(err, "failed to load configuration")
		}
		return cfg, nil
	}

	if dir == "" {
		dir = "."
	}
	cfg, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}

// proberFor picks the environment: an injected prober, a snapshot file, or the CMake prefixes.
func (a *App) proberFor(opts ProjectOptions, cfg *domain.ProjectConfig) (ports.Prober, error) {
	if a.prober != nil {
		return a.prober, nil
	}

	if path := firstNonEmpty(absPath(opts.Dir, opts.Snapshot), cfg.Snapshot); path != "" {
		p, err := snapshot.Load(path)
		if err != nil {
			return nil, err
		}
		return p, nil
	}

	var prefixes []string
	for _, p := range opts.Prefixes {
		if p != "" {
			prefixes = append(prefixes, absPath(opts.Dir, p))
		}
	}
	if len(prefixes) == 0 {
		prefixes = cfg.Prefixes
	}

	prefixes = cmake.PrefixesFromEnv(prefixes)
	if len(prefixes) == 0 {
		a.logger.Warn(fmt.Sprintf("no CMake prefixes configured; set %s or pass --prefix", domain.PrefixPathEnv))
	}
	return cmake.NewProber(prefixes), nil
}

func absPath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) || dir == "" {
		return p
	}
	return filepath.Join(dir, p)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
