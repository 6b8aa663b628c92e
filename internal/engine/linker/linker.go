// Package linker attaches resolved dependency targets to a consumer target.
package linker

import (
	"context"
	"errors"
	"fmt"

	"go.trai.ch/cppdeps/internal/core/domain"
	"go.trai.ch/cppdeps/internal/core/ports"
	"go.trai.ch/zerr"
)

// Attachment describes one target attached to a consumer.
type Attachment struct {
	Dependency    string
	Target        string
	Consumer      string
	Visibility    domain.Visibility
	LowConfidence bool
}

// Report is the result of a link operation.
type Report struct {
	Attached []Attachment
	// Skipped holds one ErrLinkRequestedButUnresolved per requested name that could not be linked.
	Skipped []error
}

// Linker reads a resolution registry and attaches its targets through a TargetAttacher.
type Linker struct {
	registry *domain.Registry
	attacher ports.TargetAttacher
	logger   ports.Logger
}

// New creates a new Linker.
func New(registry *domain.Registry, attacher ports.TargetAttacher, logger ports.Logger) *Linker {
	return &Linker{
		registry: registry,
		attacher: attacher,
		logger:   logger,
	}
}

// IsAvailable reports whether a dependency has a linkable target (resolved or low-confidence fallback).
func (l *Linker) IsAvailable(name string) bool {
	rec, ok := l.registry.Get(name)
	return ok && rec.Available()
}

// ListAvailable returns the names of dependencies that can be linked, in manifest order.
func (l *Linker) ListAvailable() []string {
	return l.registry.AvailableNames()
}

// LinkAll attaches every available target to the consumer in manifest order.
func (l *Linker) LinkAll(ctx context.Context, consumer string, visibility domain.Visibility) (Report, error) {
	if consumer == "" {
		return Report{}, domain.ErrMissingConsumer
	}

	var report Report
	for _, rec := range l.registry.All() {
		if !rec.Available() {
			continue
		}
		if err := l.attach(ctx, &report, rec, consumer, visibility); err != nil {
			return report, err
		}
	}

	if len(report.Attached) == 0 {
		l.logger.Info(fmt.Sprintf("no resolved dependencies to link into %s", consumer))
	}
	return report, nil
}

// LinkSubset attaches the targets of the named dependencies.
// Names that are unknown or unresolved are skipped with a warning; the others are still linked.
// A name requested more than once is linked once.
func (l *Linker) LinkSubset(
	ctx context.Context,
	consumer string,
	visibility domain.Visibility,
	names []string,
) (Report, error) {
	if consumer == "" {
		return Report{}, domain.ErrMissingConsumer
	}

	var report Report
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		rec, ok := l.registry.Get(name)
		if !ok || !rec.Available() {
			skipped := zerr.With(zerr.Wrap(domain.ErrLinkRequestedButUnresolved, name), "dependency", name)
			report.Skipped = append(report.Skipped, skipped)
			l.logger.Warn(fmt.Sprintf("%s: %s, skipping", name, domain.ErrLinkRequestedButUnresolved))
			continue
		}

		if err := l.attach(ctx, &report, rec, consumer, visibility); err != nil {
			return report, err
		}
	}
	return report, nil
}

func (l *Linker) attach(
	ctx context.Context,
	report *Report,
	rec domain.ResolutionRecord,
	consumer string,
	visibility domain.Visibility,
) error {
	target, _ := rec.TargetName()
	name := rec.Dependency.String()

	if err := l.attacher.Attach(ctx, consumer, visibility, target); err != nil {
		wrapped := zerr.With(zerr.Wrap(err, "attach "+target), "consumer", consumer)
		return errors.Join(domain.ErrLinkAttachFailed, wrapped)
	}

	report.Attached = append(report.Attached, Attachment{
		Dependency:    name,
		Target:        target,
		Consumer:      consumer,
		Visibility:    visibility,
		LowConfidence: rec.LowConfidence(),
	})
	l.logger.Info(fmt.Sprintf("linked %s to %s (%s)", target, consumer, visibility.Keyword()))
	return nil
}
