package domain

const (
	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "cppdeps.yaml"

	// DefaultManifestName is the manifest read when neither flags nor config name one.
	DefaultManifestName = "vcpkg.json"

	// EnvPrefix is the prefix of environment variables that override settings.
	EnvPrefix = "CPPDEPS"

	// PrefixPathEnv is the environment variable listing CMake package prefixes.
	PrefixPathEnv = "CMAKE_PREFIX_PATH"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)
