package ports

import "go.trai.ch/cppdeps/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load finds the project configuration starting at cwd and walking up.
	// A missing file is not an error: the returned config is empty and rooted at cwd.
	Load(cwd string) (*domain.ProjectConfig, error)

	// LoadFile reads the configuration file at path.
	LoadFile(path string) (*domain.ProjectConfig, error)
}
