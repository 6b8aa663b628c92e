package domain

// ProjectConfig is the resolved content of a project's cppdeps.yaml.
// Relative paths are already joined with Root.
type ProjectConfig struct {
	// Root is the directory containing the config file, or the working directory when none exists.
	Root string

	// Path is the config file that was read; empty when no file was found.
	Path string

	Manifest   string
	Consumer   string
	Visibility string
	Prefixes   []string
	Snapshot   string

	// Mappings are custom mapping entries in file order (sorted by dependency name).
	Mappings []MappingEntry
}
