package template

// Recognised root keys.
const (
	KeyPath    = "path"
	KeyExt     = "ext"
	KeyContent = "content"
	KeyLocals  = "locals"
	KeyData    = "data"
	KeyOrig    = "orig"
	KeyOptions = "options"
	KeyValue   = "value"
)

// DefaultRootKeys lists the fields recognised on a template declaration when no
// custom set is configured.
var DefaultRootKeys = []string{
	KeyPath,
	KeyExt,
	KeyContent,
	KeyLocals,
	KeyData,
	KeyOrig,
	KeyOptions,
	KeyValue,
}

// RootKeys is a lookup set of root keys.
type RootKeys map[string]struct{}

// NewRootKeys builds a RootKeys set. A nil slice yields the default set while
// an empty, non-nil slice yields an empty set, in which case only the
// structural keys (path, content, locals, options) keep their meaning.
func NewRootKeys(keys []string) RootKeys {
	if keys == nil {
		keys = DefaultRootKeys
	}
	set := make(RootKeys, len(keys))
	for _, key := range keys {
		if key == "" {
			continue
		}
		set[key] = struct{}{}
	}
	return set
}

// Has reports whether key is a root key. The structural keys are always
// reported as root keys since they steer normalization rather than describe
// template data.
func (r RootKeys) Has(key string) bool {
	if IsStructural(key) {
		return true
	}
	_, ok := r[key]
	return ok
}

// IsStructural reports whether key is one of path, content, locals or options.
func IsStructural(key string) bool {
	switch key {
	case KeyPath, KeyContent, KeyLocals, KeyOptions:
		return true
	default:
		return false
	}
}

// IsStandard reports whether key belongs to DefaultRootKeys.
func IsStandard(key string) bool {
	switch key {
	case KeyPath, KeyExt, KeyContent, KeyLocals, KeyData, KeyOrig, KeyOptions, KeyValue:
		return true
	default:
		return false
	}
}
