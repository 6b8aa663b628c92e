package ports

import "context"

// Prober answers existence questions about the build environment.
// Both methods are pure reads; an error means the environment could not be queried at all.
//
//go:generate go run go.uber.org/mock/mockgen -source=prober.go -destination=mocks/mock_prober.go -package=mocks
type Prober interface {
	// PackageDiscoverable reports whether a package can be found under the given probe name.
	PackageDiscoverable(ctx context.Context, probeName string) (bool, error)

	// TargetExists reports whether a linkable target with the given name is defined.
	TargetExists(ctx context.Context, targetName string) (bool, error)
}
