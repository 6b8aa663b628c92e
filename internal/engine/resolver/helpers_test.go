package resolver_test

import (
	"context"
	"testing"

	"go.trai.ch/cppdeps/internal/adapters/telemetry"
	"go.trai.ch/cppdeps/internal/core/domain"
	"go.trai.ch/cppdeps/internal/core/ports/mocks"
	"go.trai.ch/cppdeps/internal/engine/mapping"
	"go.trai.ch/cppdeps/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

// fakeEnv is an in-memory build environment.
type fakeEnv struct {
	packages map[string]bool
	targets  map[string]bool

	probeCalls  []string
	targetCalls []string
}

func newFakeEnv(packages, targets []string) *fakeEnv {
	env := &fakeEnv{
		packages: make(map[string]bool),
		targets:  make(map[string]bool),
	}
	for _, p := range packages {
		env.packages[p] = true
	}
	for _, t := range targets {
		env.targets[t] = true
	}
	return env
}

func (f *fakeEnv) PackageDiscoverable(_ context.Context, name string) (bool, error) {
	f.probeCalls = append(f.probeCalls, name)
	return f.packages[name], nil
}

func (f *fakeEnv) TargetExists(_ context.Context, name string) (bool, error) {
	f.targetCalls = append(f.targetCalls, name)
	return f.targets[name], nil
}

// recordingLogger wraps a gomock logger and keeps every warning.
type recordingLogger struct {
	*mocks.MockLogger
	warnings []string
}

func newRecordingLogger(t *testing.T) *recordingLogger {
	t.Helper()
	ctrl := gomock.NewController(t)
	l := &recordingLogger{MockLogger: mocks.NewMockLogger(ctrl)}
	l.EXPECT().Info(gomock.Any()).AnyTimes()
	l.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		l.warnings = append(l.warnings, msg)
	}).AnyTimes()
	return l
}

func specs(names ...string) []domain.DependencySpec {
	out := make([]domain.DependencySpec, len(names))
	for i, n := range names {
		out[i] = domain.DependencySpec{Name: domain.NewInternedString(n)}
	}
	return out
}

func newEngine(t *testing.T, env *fakeEnv) (*resolver.Engine, *mapping.Registry, *recordingLogger) {
	t.Helper()
	log := newRecordingLogger(t)
	mappings := mapping.NewRegistry(log)
	return resolver.New(mappings, env, log, telemetry.NewNoOpTracer()), mappings, log
}
