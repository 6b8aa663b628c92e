package resolver_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.trai.ch/cppdeps/internal/adapters/telemetry"
	"go.trai.ch/cppdeps/internal/core/domain"
	"go.trai.ch/cppdeps/internal/core/ports/mocks"
	"go.trai.ch/cppdeps/internal/engine/mapping"
	"go.trai.ch/cppdeps/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

func TestEngine_BuiltInPrecedence(t *testing.T) {
	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)
	log := newRecordingLogger(t)
	engine := resolver.New(mapping.NewRegistry(log), prober, log, telemetry.NewNoOpTracer())

	ctx := context.Background()
	gomock.InOrder(
		prober.EXPECT().PackageDiscoverable(gomock.Any(), "fmt").Return(true, nil),
		prober.EXPECT().TargetExists(gomock.Any(), "fmt::fmt").Return(true, nil),
	)

	reg, err := engine.ResolveAll(ctx, specs("fmt"))
	require.NoError(t, err)

	rec, ok := reg.Get("fmt")
	require.True(t, ok)
	assert.Equal(t, domain.Resolved{ProbeName: "fmt", TargetName: "fmt::fmt"}, rec.Outcome)
	assert.Equal(t, domain.StrategyBuiltInMapping, rec.Strategy)
	assert.Equal(t, []string{"fmt"}, rec.AttemptedProbeNames)
	assert.Equal(t, []string{"fmt::fmt"}, rec.AttemptedTargetNames)
	assert.Empty(t, log.warnings)
}

func TestEngine_CustomOverride(t *testing.T) {
	env := newFakeEnv(
		[]string{"fmt", "myfmt"},
		[]string{"fmt::fmt", "my::fmt"},
	)
	engine, mappings, _ := newEngine(t, env)
	require.NoError(t, mappings.RegisterCustom("fmt", "myfmt", "my::fmt"))

	reg, err := engine.ResolveAll(context.Background(), specs("fmt"))
	require.NoError(t, err)

	rec, ok := reg.Get("fmt")
	require.True(t, ok)
	assert.Equal(t, domain.Resolved{ProbeName: "myfmt", TargetName: "my::fmt"}, rec.Outcome)
	assert.Equal(t, domain.StrategyCustomMapping, rec.Strategy)
	assert.Equal(t, []string{"myfmt"}, env.probeCalls)
}

func TestEngine_GracefulMiss(t *testing.T) {
	env := newFakeEnv(
		[]string{"fmt", "spdlog", "Catch2"},
		[]string{"fmt::fmt", "spdlog::spdlog", "Catch2::Catch2WithMain"},
	)
	engine, _, log := newEngine(t, env)

	reg, err := engine.ResolveAll(context.Background(), specs("fmt", "spdlog", "catch2", "totally-fake-pkg"))
	require.NoError(t, err)

	require.Equal(t, 4, reg.Len())
	resolved := 0
	notFound := 0
	for _, rec := range reg.All() {
		switch rec.Status() {
		case domain.StatusResolved:
			resolved++
		case domain.StatusProbeNotFound:
			notFound++
		}
	}
	assert.Equal(t, 3, resolved)
	assert.Equal(t, 1, notFound)

	assert.Equal(t, []string{"fmt::fmt", "spdlog::spdlog", "Catch2::Catch2WithMain"}, reg.ResolvedTargets())
	assert.Equal(t, []string{"totally-fake-pkg"}, reg.UnresolvedNames())

	miss, ok := reg.Get("totally-fake-pkg")
	require.True(t, ok)
	assert.Equal(t, resolver.ProbeCandidates("totally-fake-pkg"), miss.AttemptedProbeNames)
	assert.Empty(t, miss.AttemptedTargetNames, "no target is attempted without a probe name")

	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "totally-fake-pkg")
	assert.Contains(t, log.warnings[0], domain.ErrProbeNotFound.Error())
}

func TestEngine_HeuristicPath(t *testing.T) {
	env := newFakeEnv([]string{"MYLIB"}, []string{"mylib"})
	engine, _, log := newEngine(t, env)

	reg, err := engine.ResolveAll(context.Background(), specs("mylib"))
	require.NoError(t, err)

	rec, _ := reg.Get("mylib")
	assert.Equal(t, domain.Resolved{ProbeName: "MYLIB", TargetName: "mylib"}, rec.Outcome)
	assert.Equal(t, domain.StrategyHeuristic, rec.Strategy)
	assert.Equal(t, []string{"mylib", "mylibConfig", "mylibTargets", "MYLIB"}, rec.AttemptedProbeNames)
	assert.Equal(t, []string{"mylib::mylib", "Mylib::Mylib", "MYLIB::MYLIB", "mylib"}, rec.AttemptedTargetNames)
	assert.Empty(t, log.warnings)
}

func TestEngine_TargetAmbiguous(t *testing.T) {
	env := newFakeEnv([]string{"odd"}, nil)
	engine, _, log := newEngine(t, env)

	reg, err := engine.ResolveAll(context.Background(), specs("odd"))
	require.NoError(t, err)

	rec, _ := reg.Get("odd")
	assert.Equal(t, domain.TargetAmbiguous{ProbeName: "odd", FallbackTarget: "odd::odd"}, rec.Outcome)
	assert.True(t, rec.LowConfidence())
	assert.Equal(t, resolver.TargetCandidates("odd"), rec.AttemptedTargetNames)
	assert.Equal(t, []string{"odd::odd"}, reg.ResolvedTargets())

	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "odd::odd")
}

func TestEngine_StaleMappingFallsThrough(t *testing.T) {
	env := newFakeEnv([]string{"FMT"}, []string{"FMT::FMT"})
	engine, _, log := newEngine(t, env)

	reg, err := engine.ResolveAll(context.Background(), specs("fmt"))
	require.NoError(t, err)

	rec, _ := reg.Get("fmt")
	assert.Equal(t, domain.Resolved{ProbeName: "FMT", TargetName: "FMT::FMT"}, rec.Outcome)
	assert.Equal(t, domain.StrategyHeuristic, rec.Strategy)
	assert.Equal(t, []string{"fmt", "fmtConfig", "fmtTargets", "FMT"}, rec.AttemptedProbeNames)
	assert.Equal(t, []string{"fmt", "fmtConfig", "fmtTargets", "FMT"}, env.probeCalls, "the mapped probe name is not probed twice")
	assert.Empty(t, log.warnings)
}

func TestEngine_MappedTargetMissing(t *testing.T) {
	t.Run("heuristic target confirmed", func(t *testing.T) {
		env := newFakeEnv([]string{"Foo"}, []string{"foo::foo"})
		engine, mappings, _ := newEngine(t, env)
		require.NoError(t, mappings.RegisterCustom("foo", "Foo", "Foo::core"))

		reg, err := engine.ResolveAll(context.Background(), specs("foo"))
		require.NoError(t, err)

		rec, _ := reg.Get("foo")
		assert.Equal(t, domain.Resolved{ProbeName: "Foo", TargetName: "foo::foo"}, rec.Outcome)
		assert.Equal(t, domain.StrategyCustomMapping, rec.Strategy)
		assert.Equal(t, []string{"Foo::core", "foo::foo"}, rec.AttemptedTargetNames)
	})

	t.Run("mapped target is the fallback", func(t *testing.T) {
		env := newFakeEnv([]string{"Foo"}, nil)
		engine, mappings, log := newEngine(t, env)
		require.NoError(t, mappings.RegisterCustom("foo", "Foo", "Foo::core"))

		reg, err := engine.ResolveAll(context.Background(), specs("foo"))
		require.NoError(t, err)

		rec, _ := reg.Get("foo")
		assert.Equal(t, domain.TargetAmbiguous{ProbeName: "Foo", FallbackTarget: "Foo::core"}, rec.Outcome)
		assert.Len(t, log.warnings, 1)
	})
}

func TestEngine_ProbeFailureAbortsPass(t *testing.T) {
	ctrl := gomock.NewController(t)
	prober := mocks.NewMockProber(ctrl)
	log := newRecordingLogger(t)
	engine := resolver.New(mapping.NewRegistry(log), prober, log, telemetry.NewNoOpTracer())

	prober.EXPECT().PackageDiscoverable(gomock.Any(), "fmt").Return(false, errors.New("permission denied"))

	reg, err := engine.ResolveAll(context.Background(), specs("fmt", "spdlog"))
	require.Error(t, err)
	assert.Nil(t, reg)
	require.ErrorIs(t, err, domain.ErrProbeFailed)
	assert.ErrorContains(t, err, "permission denied")
}

func TestEngine_CanceledContext(t *testing.T) {
	engine, _, _ := newEngine(t, newFakeEnv(nil, nil))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.ResolveAll(ctx, specs("fmt"))
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngine_DuplicateSpecs(t *testing.T) {
	engine, _, _ := newEngine(t, newFakeEnv([]string{"fmt"}, []string{"fmt::fmt"}))

	_, err := engine.ResolveAll(context.Background(), specs("fmt", "fmt"))
	require.ErrorIs(t, err, domain.ErrDuplicateRecord)
}

func TestEngine_Idempotence(t *testing.T) {
	env := newFakeEnv(
		[]string{"fmt", "spdlog", "odd"},
		[]string{"fmt::fmt", "spdlog::spdlog"},
	)
	engine, _, _ := newEngine(t, env)
	deps := specs("fmt", "spdlog", "odd", "missing")

	first, err := engine.ResolveAll(context.Background(), deps)
	require.NoError(t, err)
	second, err := engine.ResolveAll(context.Background(), deps)
	require.NoError(t, err)

	assert.True(t, first.Equal(second))
	assert.Equal(t, resolver.Fingerprint(first), resolver.Fingerprint(second))

	changed := newFakeEnv([]string{"fmt", "spdlog", "odd"}, []string{"fmt::fmt", "spdlog::spdlog", "odd::odd"})
	other, _, _ := newEngine(t, changed)
	third, err := other.ResolveAll(context.Background(), deps)
	require.NoError(t, err)

	assert.False(t, first.Equal(third))
	assert.NotEqual(t, resolver.Fingerprint(first), resolver.Fingerprint(third))
}

func TestEngine_FeaturesCarried(t *testing.T) {
	engine, _, _ := newEngine(t, newFakeEnv([]string{"fmt"}, []string{"fmt::fmt"}))

	reg, err := engine.ResolveAll(context.Background(), []domain.DependencySpec{
		{Name: domain.NewInternedString("fmt"), Features: []string{"x"}},
	})
	require.NoError(t, err)

	rec, _ := reg.Get("fmt")
	assert.Equal(t, []string{"x"}, rec.Features)
}

func TestEngine_DidYouMean(t *testing.T) {
	engine, _, log := newEngine(t, newFakeEnv(nil, nil))

	_, err := engine.ResolveAll(context.Background(), specs("fmtt"))
	require.NoError(t, err)

	require.Len(t, log.warnings, 1)
	assert.Contains(t, log.warnings[0], "did you mean fmt?")
}

func TestEngine_Spans(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	defer func() { _ = tp.Shutdown(context.Background()) }()

	log := newRecordingLogger(t)
	env := newFakeEnv([]string{"fmt"}, []string{"fmt::fmt"})
	engine := resolver.New(mapping.NewRegistry(log), env, log, telemetry.NewOTelTracerFromProvider(tp, "test"))

	_, err := engine.ResolveAll(context.Background(), specs("fmt", "nope"))
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 3)
	assert.Equal(t, "resolve fmt", spans[0].Name())
	assert.Equal(t, "resolve nope", spans[1].Name())
	assert.Equal(t, "resolve dependencies", spans[2].Name())

	status := map[string]string{}
	for _, kv := range spans[1].Attributes() {
		status[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "probe-not-found", status["status"])
	assert.Equal(t, "nope", status["dependency"])
}
