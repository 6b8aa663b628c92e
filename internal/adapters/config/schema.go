package config

// Projectfile represents the structure of the cppdeps.yaml configuration file.
type Projectfile struct {
	Version    string                `yaml:"version"`
	Manifest   string                `yaml:"manifest"`
	Consumer   string                `yaml:"consumer"`
	Visibility string                `yaml:"visibility"`
	Prefixes   []string              `yaml:"prefixes"`
	Snapshot   string                `yaml:"snapshot"`
	Mappings   map[string]MappingDTO `yaml:"mappings"`
}

// MappingDTO represents a custom mapping entry in the configuration.
type MappingDTO struct {
	Probe  string `yaml:"probe"`
	Target string `yaml:"target"`
}
