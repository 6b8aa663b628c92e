package domain

// DependencySpec is one normalized manifest entry.
// Identity is Name; specs sharing a name are merged before resolution.
type DependencySpec struct {
	// Name is the package name as written in the manifest (e.g., "fmt", "nlohmann-json").
	Name InternedString

	// Features is the sorted, de-duplicated set of requested features.
	Features []string

	// Version is the optional minimum-version constraint (vcpkg "version>=").
	// It is carried for diagnostics and never probed.
	Version string
}
