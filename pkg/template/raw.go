package template

import "sort"

// AsMap reports whether v is one of the map shapes accepted as a template
// declaration or locals/options source, returning it as map[string]any.
func AsMap(v any) (map[string]any, bool) {
	switch typed := v.(type) {
	case map[string]any:
		return typed, true
	case Raw:
		return map[string]any(typed), true
	case map[string]string:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = value
		}
		return out, true
	default:
		return nil, false
	}
}

// Has reports whether key is present on the declaration.
func (r Raw) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// String returns the string stored under key.
func (r Raw) String(key string) (string, bool) {
	value, ok := r[key].(string)
	return value, ok
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// DeepCopy copies nested maps and slices so the result shares no mutable
// containers with v.
func DeepCopy(v any) any {
	switch typed := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = DeepCopy(value)
		}
		return out
	case Raw:
		out := make(Raw, len(typed))
		for key, value := range typed {
			out[key] = DeepCopy(value)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, value := range typed {
			out[idx] = DeepCopy(value)
		}
		return out
	case []string:
		return append([]string(nil), typed...)
	default:
		return v
	}
}

// Merge copies every entry of each source into dst, later sources winning,
// and returns dst. A nil dst is allocated on demand.
func Merge(dst map[string]any, sources ...map[string]any) map[string]any {
	for _, src := range sources {
		if len(src) == 0 {
			continue
		}
		if dst == nil {
			dst = make(map[string]any, len(src))
		}
		for key, value := range src {
			dst[key] = value
		}
	}
	return dst
}
