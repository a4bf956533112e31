package answer

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Solutions is the list of accepted answers of a problem.
//
// Problem data stores either a single string or a list. Both decode into
// Solutions, as does null. Numbers inside a list decode to their decimal
// text so truth-table columns can be written as [0, 1, 1, 0]. Any other
// shape decodes to an empty list, which no candidate matches.
type Solutions []string

// Single wraps a bare accepted string.
func Single(s string) Solutions {
	return Solutions{s}
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Solutions) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch v := v.(type) {
	case string:
		*s = Solutions{v}
	case []any:
		out := make(Solutions, 0, len(v))
		for _, elem := range v {
			switch e := elem.(type) {
			case string:
				out = append(out, e)
			case json.Number:
				out = append(out, e.String())
			}
		}
		*s = out
	default:
		*s = nil
	}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Solutions) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!str" {
			*s = Solutions{node.Value}
			return nil
		}
	case yaml.SequenceNode:
		out := make(Solutions, 0, len(node.Content))
		for _, elem := range node.Content {
			if elem.Kind != yaml.ScalarNode {
				continue
			}
			switch elem.Tag {
			case "!!str", "!!int", "!!float":
				out = append(out, elem.Value)
			}
		}
		*s = out
		return nil
	}
	*s = nil
	return nil
}
