// Package encode writes loaded templates in the output formats supported by
// the command line tool.
package encode

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Format names an output encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
	CBOR Format = "cbor"
)

// Formats lists the supported formats.
var Formats = []Format{JSON, YAML, TOML, CBOR}

// encMode encodes with Core Deterministic Encoding so identical caches produce
// identical bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("encode: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("encode: CBOR decoder initialization failed: " + err.Error())
	}
}

// ParseFormat resolves a case-insensitive format name. "yml" is accepted as
// YAML.
func ParseFormat(name string) (Format, error) {
	normalized := Format(strings.ToLower(strings.TrimSpace(name)))
	if normalized == "yml" {
		normalized = YAML
	}
	if !slices.Contains(Formats, normalized) {
		return "", fmt.Errorf("encode: unknown format %q", name)
	}
	return normalized, nil
}

// Encode writes v to w in format.
func Encode(w io.Writer, format Format, v any) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode: json: %w", err)
		}
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode: yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode: yaml: %w", err)
		}
	case TOML:
		if err := toml.NewEncoder(w).Encode(v); err != nil {
			return fmt.Errorf("encode: toml: %w", err)
		}
	case CBOR:
		data, err := encMode.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode: cbor: %w", err)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("encode: cbor: %w", err)
		}
	default:
		return fmt.Errorf("encode: unknown format %q", format)
	}
	return nil
}

// DecodeCBOR decodes CBOR produced by Encode into v. Untyped maps decode as
// map[string]any.
func DecodeCBOR(data []byte, v any) error {
	if err := decMode.Unmarshal(data, v); err != nil {
		return fmt.Errorf("encode: cbor: %w", err)
	}
	return nil
}
