// Package frontmatter splits documents into a front-matter block and a body.
// YAML blocks are fenced with "---" and TOML blocks with "+++"; documents
// without a fence on the first line are returned untouched.
package frontmatter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/jonschlinkert/load-templates-sub000/pkg/source"
)

const (
	yamlFence = "---"
	tomlFence = "+++"
)

// ErrUnclosed is returned when an opening fence has no matching close.
var ErrUnclosed = errors.New("frontmatter: block not properly closed")

// Parse implements source.ParseFunc.
func Parse(raw string) (source.Parsed, error) {
	lines := strings.Split(raw, "\n")
	fence := strings.TrimRight(lines[0], "\r")
	fence = strings.TrimPrefix(fence, "\ufeff")
	if fence != yamlFence && fence != tomlFence {
		return source.Parsed{Content: raw}, nil
	}

	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], "\r") == fence {
			end = i
			break
		}
	}
	if end == -1 {
		return source.Parsed{}, fmt.Errorf("%w (%s)", ErrUnclosed, fence)
	}

	block := make([]string, 0, end-1)
	for _, line := range lines[1:end] {
		block = append(block, strings.TrimRight(line, "\r"))
	}
	matter := strings.Join(block, "\n")
	var body string
	if end+1 < len(lines) {
		body = strings.Join(lines[end+1:], "\n")
	}

	data, err := decode(fence, matter)
	if err != nil {
		return source.Parsed{}, err
	}
	return source.Parsed{Content: body, Data: data, Matter: matter}, nil
}

func decode(fence, matter string) (map[string]any, error) {
	if strings.TrimSpace(matter) == "" {
		return nil, nil
	}
	data := make(map[string]any)
	switch fence {
	case tomlFence:
		if _, err := toml.Decode(matter, &data); err != nil {
			return nil, fmt.Errorf("frontmatter: invalid TOML: %w", err)
		}
	default:
		var node any
		if err := yaml.Unmarshal([]byte(matter), &node); err != nil {
			return nil, fmt.Errorf("frontmatter: invalid YAML: %w", err)
		}
		mapping, ok := node.(map[string]any)
		if !ok {
			return nil, errors.New("frontmatter: YAML block must be a mapping")
		}
		data = mapping
	}
	if len(data) == 0 {
		return nil, nil
	}
	return data, nil
}
