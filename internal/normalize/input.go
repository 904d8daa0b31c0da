package normalize

import (
	"github.com/jonschlinkert/load-templates-sub000/pkg/template"
)

// Input is the closed set of shapes the dispatcher routes on. Classify is the
// only constructor; every switch over Input handles all variants.
type Input interface {
	isInput()
}

// String is a path, glob pattern or arbitrary key.
type String string

// Slice is a sequence of inputs normalized with identical trailing args.
type Slice []any

// Map is either one template declaration or a key→value collection.
type Map map[string]any

// Func produces an input lazily. It receives the aggregated call options.
type Func func(options map[string]any) (any, error)

// FileValue is a pre-built file object passed through with minimal work.
type FileValue struct {
	File *template.File
}

func (String) isInput()    {}
func (Slice) isInput()     {}
func (Map) isInput()       {}
func (Func) isInput()      {}
func (FileValue) isInput() {}

// Classify maps a Go value onto an Input. Unsupported values yield an
// InvalidInputError naming the dynamic type.
func Classify(v any) (Input, error) {
	switch typed := v.(type) {
	case Input:
		return typed, nil
	case string:
		return String(typed), nil
	case []any:
		return Slice(typed), nil
	case []string:
		out := make(Slice, len(typed))
		for idx, value := range typed {
			out[idx] = value
		}
		return out, nil
	case []map[string]any:
		out := make(Slice, len(typed))
		for idx, value := range typed {
			out[idx] = value
		}
		return out, nil
	case []template.Raw:
		out := make(Slice, len(typed))
		for idx, value := range typed {
			out[idx] = value
		}
		return out, nil
	case func() any:
		return Func(func(map[string]any) (any, error) { return typed(), nil }), nil
	case func(map[string]any) any:
		return Func(func(options map[string]any) (any, error) { return typed(options), nil }), nil
	case func(map[string]any) (any, error):
		return Func(typed), nil
	case *template.File:
		if typed == nil {
			return nil, &template.InvalidInputError{Type: template.TypeName(v)}
		}
		return FileValue{File: typed}, nil
	case template.File:
		return FileValue{File: &typed}, nil
	case *template.Template:
		if typed == nil {
			return nil, &template.InvalidInputError{Type: template.TypeName(v)}
		}
		return Map(typed.Raw()), nil
	case template.Template:
		return Map(typed.Raw()), nil
	}
	if m, ok := template.AsMap(v); ok {
		return Map(m), nil
	}
	return nil, &template.InvalidInputError{Type: template.TypeName(v)}
}
