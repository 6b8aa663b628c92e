// Package resolver decides, for every manifest dependency, which probe name and link target to use.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.trai.ch/cppdeps/internal/core/domain"
	"go.trai.ch/cppdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// MappingLookup is the read side of the mapping registry.
type MappingLookup interface {
	Lookup(name string) (domain.MappingEntry, bool)
	Names() []string
}

// Engine resolves dependency specs against the build environment.
// Probes run sequentially in a fixed order; the first successful candidate wins.
type Engine struct {
	mappings MappingLookup
	prober   ports.Prober
	logger   ports.Logger
	tracer   ports.Tracer
}

// New creates a new Engine.
func New(mappings MappingLookup, prober ports.Prober, logger ports.Logger, tracer ports.Tracer) *Engine {
	return &Engine{
		mappings: mappings,
		prober:   prober,
		logger:   logger,
		tracer:   tracer,
	}
}

// ResolveAll resolves every spec in order and returns the resulting registry.
// Unresolved dependencies are recorded, not returned as errors. An error is returned only when the
// environment cannot be probed at all, the context is canceled, or the specs repeat a name.
func (e *Engine) ResolveAll(ctx context.Context, specs []domain.DependencySpec) (*domain.Registry, error) {
	ctx, span := e.tracer.Start(ctx, "resolve dependencies", ports.WithAttribute("dependencies", len(specs)))
	defer span.End()

	records := make([]domain.ResolutionRecord, 0, len(specs))
	for _, spec := range specs {
		if err := ctx.Err(); err != nil {
			span.RecordError(err)
			return nil, err
		}

		rec, err := e.Resolve(ctx, spec)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		records = append(records, rec)
	}

	reg, err := domain.NewRegistry(records)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	span.SetAttribute("resolved", len(reg.ResolvedTargets()))
	return reg, nil
}

// Resolve resolves a single spec.
func (e *Engine) Resolve(ctx context.Context, spec domain.DependencySpec) (domain.ResolutionRecord, error) {
	name := spec.Name.String()
	ctx, span := e.tracer.Start(ctx, "resolve "+name, ports.WithAttribute("dependency", name))
	defer span.End()

	p := &pass{engine: e, name: name}
	rec, err := p.run(ctx)
	if err != nil {
		span.RecordError(err)
		return domain.ResolutionRecord{}, err
	}

	rec.Dependency = spec.Name
	rec.Features = spec.Features

	span.SetAttribute("status", rec.Status().String())
	span.SetAttribute("strategy", rec.Strategy.String())
	span.SetAttribute("probe_attempts", len(rec.AttemptedProbeNames))
	span.SetAttribute("target_attempts", len(rec.AttemptedTargetNames))

	e.report(rec)
	return rec, nil
}

// report logs one line per record: info when resolved, a warning otherwise.
func (e *Engine) report(rec domain.ResolutionRecord) {
	name := rec.Dependency.String()

	switch o := rec.Outcome.(type) {
	case domain.Resolved:
		e.logger.Info(fmt.Sprintf("resolved %s: %s -> %s (%s)", name, o.ProbeName, o.TargetName, rec.Strategy))
	case domain.TargetAmbiguous:
		e.logger.Warn(fmt.Sprintf("%s: %s: %s (tried %s)",
			name, domain.ErrTargetAmbiguous, o.FallbackTarget, strings.Join(rec.AttemptedTargetNames, ", ")))
	default:
		msg := fmt.Sprintf("%s: %s, link it manually (tried %s)",
			name, domain.ErrProbeNotFound, strings.Join(rec.AttemptedProbeNames, ", "))
		if s := Suggest(name, e.mappings.Names(), maxSuggestions); len(s) > 0 {
			msg += "; did you mean " + strings.Join(s, ", ") + "?"
		}
		e.logger.Warn(msg)
	}
}

// pass tracks the names tried while resolving one dependency.
type pass struct {
	engine *Engine
	name   string

	probes  []string
	targets []string
}

func (p *pass) run(ctx context.Context) (domain.ResolutionRecord, error) {
	if entry, ok := p.engine.mappings.Lookup(p.name); ok {
		found, err := p.probe(ctx, entry.ProbeName)
		if err != nil {
			return domain.ResolutionRecord{}, err
		}
		if found {
			return p.confirmTarget(ctx, entry.ProbeName, domain.StrategyForOrigin(entry.Origin), entry.TargetName)
		}
	}

	for _, candidate := range ProbeCandidates(p.name) {
		if slices.Contains(p.probes, candidate) {
			continue
		}
		found, err := p.probe(ctx, candidate)
		if err != nil {
			return domain.ResolutionRecord{}, err
		}
		if found {
			return p.confirmTarget(ctx, candidate, domain.StrategyHeuristic, "")
		}
	}

	return p.record(domain.ProbeNotFound{}, domain.StrategyNone), nil
}

// confirmTarget checks the mapped target (if any) and then the heuristic target candidates.
// When none exists the first name tried becomes the low-confidence fallback: the mapped target
// on the mapping path, name::name otherwise.
func (p *pass) confirmTarget(
	ctx context.Context,
	probeName string,
	strategy domain.Strategy,
	mappedTarget string,
) (domain.ResolutionRecord, error) {
	candidates := TargetCandidates(p.name)
	if mappedTarget != "" {
		candidates = append([]string{mappedTarget}, candidates...)
	}

	for _, candidate := range candidates {
		if slices.Contains(p.targets, candidate) {
			continue
		}
		exists, err := p.target(ctx, candidate)
		if err != nil {
			return domain.ResolutionRecord{}, err
		}
		if exists {
			return p.record(domain.Resolved{ProbeName: probeName, TargetName: candidate}, strategy), nil
		}
	}

	outcome := domain.TargetAmbiguous{ProbeName: probeName, FallbackTarget: candidates[0]}
	return p.record(outcome, strategy), nil
}

func (p *pass) probe(ctx context.Context, probeName string) (bool, error) {
	p.probes = append(p.probes, probeName)
	found, err := p.engine.prober.PackageDiscoverable(ctx, probeName)
	if err != nil {
		return false, p.probeFailed(err, "probe", probeName)
	}
	return found, nil
}

func (p *pass) target(ctx context.Context, targetName string) (bool, error) {
	p.targets = append(p.targets, targetName)
	exists, err := p.engine.prober.TargetExists(ctx, targetName)
	if err != nil {
		return false, p.probeFailed(err, "target", targetName)
	}
	return exists, nil
}

func (p *pass) probeFailed(err error, kind, candidate string) error {
	wrapped := zerr.With(zerr.Wrap(err, "environment query failed"), "dependency", p.name)
	wrapped = zerr.With(wrapped, kind, candidate)
	return errors.Join(domain.ErrProbeFailed, wrapped)
}

func (p *pass) record(outcome domain.Outcome, strategy domain.Strategy) domain.ResolutionRecord {
	return domain.ResolutionRecord{
		Outcome:              outcome,
		Strategy:             strategy,
		AttemptedProbeNames:  p.probes,
		AttemptedTargetNames: p.targets,
	}
}
