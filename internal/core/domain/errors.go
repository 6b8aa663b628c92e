package domain

import "go.trai.ch/zerr"

var (
	// ErrManifestParse is returned when the manifest is not a list of names or {name, features} objects.
	// It is the only error that aborts a resolution pass on its own.
	ErrManifestParse = zerr.New("failed to parse dependency manifest")

	// ErrManifestRead is returned when the manifest file cannot be read.
	ErrManifestRead = zerr.New("failed to read dependency manifest")

	// ErrDuplicateDependency is reported (as a warning) when a manifest lists the same name twice.
	ErrDuplicateDependency = zerr.New("duplicate dependency in manifest")

	// ErrInvalidMapping is returned when a custom mapping has an empty name, probe or target.
	ErrInvalidMapping = zerr.New("invalid dependency mapping")

	// ErrProbeNotFound is reported when no candidate probe name is discoverable.
	ErrProbeNotFound = zerr.New("package not found in build environment")

	// ErrTargetAmbiguous is reported when a package was found but none of its candidate targets exist.
	ErrTargetAmbiguous = zerr.New("no candidate target confirmed, using low-confidence fallback")

	// ErrProbeFailed is returned when the environment cannot answer a probe at all.
	ErrProbeFailed = zerr.New("environment probe failed")

	// ErrDuplicateRecord is returned when a registry is built with two records for one dependency.
	ErrDuplicateRecord = zerr.New("duplicate resolution record")

	// ErrLinkRequestedButUnresolved is reported when a link is requested for a name that is not available.
	ErrLinkRequestedButUnresolved = zerr.New("link requested for unresolved dependency")

	// ErrLinkAttachFailed is returned when a resolved target cannot be attached to its consumer.
	ErrLinkAttachFailed = zerr.New("failed to attach target to consumer")

	// ErrInvalidVisibility is returned for a visibility other than private, public or interface.
	ErrInvalidVisibility = zerr.New("invalid visibility, expected 'private', 'public' or 'interface'")

	// ErrInvalidFormat is returned for an output format other than auto, table or json.
	ErrInvalidFormat = zerr.New("invalid output format, expected 'auto', 'table' or 'json'")

	// ErrMissingConsumer is returned when a link operation has no consumer target.
	ErrMissingConsumer = zerr.New("no consumer target specified")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrSnapshotReadFailed is returned when an environment snapshot cannot be read.
	ErrSnapshotReadFailed = zerr.New("failed to read environment snapshot")

	// ErrSnapshotParseFailed is returned when an environment snapshot cannot be parsed.
	ErrSnapshotParseFailed = zerr.New("failed to parse environment snapshot")
)
