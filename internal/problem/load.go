package problem

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a problem file.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, true
	case ".yaml", ".yml":
		return FormatYAML, true
	default:
		return 0, false
	}
}

// IsProblemFile reports whether path has a problem file extension.
func IsProblemFile(path string) bool {
	_, ok := FormatOf(path)
	return ok
}

// Load reads a problem file.
func Load(path string) ([]*Problem, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, fmt.Errorf("unsupported problem file %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading problem file: %w", err)
	}
	problems, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}
	return problems, nil
}

// Decode parses problems from data.
//
// The top level is either a list of problems or an object keyed by problem
// id, the shape of a realtime database export. Keyed problems are ordered by
// key and take the key as ID when they have none.
func Decode(data []byte, format Format) ([]*Problem, error) {
	switch format {
	case FormatJSON:
		return decodeJSON(data)
	case FormatYAML:
		return decodeYAML(data)
	default:
		return nil, fmt.Errorf("unknown format %d", format)
	}
}

func decodeJSON(data []byte) ([]*Problem, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var problems []*Problem
		if err := json.Unmarshal(trimmed, &problems); err != nil {
			return nil, err
		}
		return compact(problems), nil
	}

	var keyed map[string]*Problem
	if err := json.Unmarshal(trimmed, &keyed); err != nil {
		return nil, err
	}
	return fromKeyed(keyed), nil
}

func decodeYAML(data []byte) ([]*Problem, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		var problems []*Problem
		if err := root.Decode(&problems); err != nil {
			return nil, err
		}
		return compact(problems), nil
	case yaml.MappingNode:
		var keyed map[string]*Problem
		if err := root.Decode(&keyed); err != nil {
			return nil, err
		}
		return fromKeyed(keyed), nil
	default:
		return nil, fmt.Errorf("line %d: expected a list or a mapping of problems", root.Line)
	}
}

func fromKeyed(keyed map[string]*Problem) []*Problem {
	keys := make([]string, 0, len(keyed))
	for k := range keyed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	problems := make([]*Problem, 0, len(keys))
	for _, k := range keys {
		p := keyed[k]
		if p == nil {
			continue
		}
		if p.ID == "" {
			p.ID = k
		}
		problems = append(problems, p)
	}
	return problems
}

// compact drops null entries.
func compact(problems []*Problem) []*Problem {
	out := problems[:0]
	for _, p := range problems {
		if p != nil {
			out = append(out, p)
		}
	}
	return out
}
