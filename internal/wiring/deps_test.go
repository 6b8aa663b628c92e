package wiring_test

import (
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/require"
	"go.trai.ch/cppdeps/internal/app"
	_ "go.trai.ch/cppdeps/internal/wiring"
)

// TestGraftDependencies builds the component graph the way main does.
// graft.AssertDepsValid infers dependency IDs from the package of the type passed to Dep[T],
// which does not fit nodes that share the ports package, so the graph is executed instead.
func TestGraftDependencies(t *testing.T) {
	components, _, err := graft.ExecuteFor[*app.Components](t.Context())
	require.NoError(t, err)
	require.NotNil(t, components.App)
	require.NotNil(t, components.Logger)
}
