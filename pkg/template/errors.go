package template

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every typed error below matches one of these through
// errors.Is.
var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrAmbiguousContent = errors.New("ambiguous content")
	ErrInvalidTemplate  = errors.New("invalid template")
	ErrMissingPath      = fmt.Errorf("%w: expects templates to have a path property", ErrInvalidTemplate)
	ErrMissingContent   = fmt.Errorf("%w: expects templates to have a content property", ErrInvalidTemplate)
	ErrType             = errors.New("unsupported type")
)

// InvalidInputError is returned when the first argument of a load call is not
// a string, slice, map, function or file.
type InvalidInputError struct {
	Type string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("load-templates: invalid input: unsupported argument of type %s", e.Type)
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// AmbiguousContentError is returned when a glob pattern is paired with a
// literal string: a pattern matching many files cannot share one content.
type AmbiguousContentError struct {
	Pattern string
}

func (e *AmbiguousContentError) Error() string {
	return fmt.Sprintf("load-templates: glob pattern %q cannot be combined with a content string", e.Pattern)
}

func (e *AmbiguousContentError) Unwrap() error { return ErrAmbiguousContent }

// InvalidTemplateError reports a template that lacks a derivable path or
// content. Missing is either ErrMissingContent or ErrMissingPath.
type InvalidTemplateError struct {
	Key     string
	Missing error
}

func (e *InvalidTemplateError) Error() string {
	if e.Key == "" {
		return "load-templates: " + e.Missing.Error()
	}
	return fmt.Sprintf("load-templates: %q: %s", e.Key, e.Missing.Error())
}

func (e *InvalidTemplateError) Unwrap() error {
	if e.Missing == nil {
		return ErrInvalidTemplate
	}
	return e.Missing
}

// MissingPathError builds the error for a template without a path.
func MissingPathError(key string) error {
	return &InvalidTemplateError{Key: key, Missing: ErrMissingPath}
}

// MissingContentError builds the error for a template without content.
func MissingContentError(key string) error {
	return &InvalidTemplateError{Key: key, Missing: ErrMissingContent}
}

// TypeError reports a value of an unsupported runtime type in a position that
// requires a template, key or value.
type TypeError struct {
	Key  string
	Type string
	Want string
}

func (e *TypeError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("load-templates: expected %s, got %s", e.Want, e.Type)
	}
	return fmt.Sprintf("load-templates: %q: expected %s, got %s", e.Key, e.Want, e.Type)
}

func (e *TypeError) Unwrap() error { return ErrType }

// TypeName renders the dynamic type of v for error messages.
func TypeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
