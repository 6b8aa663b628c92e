package domain

// Origin tells which mapping table an entry came from.
type Origin uint8

const (
	// OriginBuiltIn marks entries from the fixed table shipped with the tool.
	OriginBuiltIn Origin = iota
	// OriginCustom marks entries registered by the caller for one run.
	OriginCustom
)

// String returns the lowercase origin name.
func (o Origin) String() string {
	switch o {
	case OriginCustom:
		return "custom"
	case OriginBuiltIn:
		return "built-in"
	default:
		return "unknown"
	}
}

// MappingEntry maps a dependency name to the name it is discoverable under and the target it exports.
type MappingEntry struct {
	DependencyName InternedString
	ProbeName      string
	TargetName     string
	Origin         Origin
}
