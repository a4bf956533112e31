package types

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Severity is the level of a lint issue.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityOff
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	case SeverityInfo:
		return "INFO"
	case SeverityOff:
		return "OFF"
	default:
		return "UNKNOWN"
	}
}

// ParseSeverity accepts the names used in configuration files.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	case "off":
		return SeverityOff, nil
	default:
		return SeverityError, fmt.Errorf("unknown severity %q", s)
	}
}

func (s Severity) MarshalYAML() (any, error) {
	return strings.ToLower(s.String()), nil
}

func (s *Severity) UnmarshalYAML(node *yaml.Node) error {
	v, err := ParseSeverity(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", node.Line, err)
	}
	*s = v
	return nil
}

func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// ConfigRule is the per-rule section of the configuration file.
type ConfigRule struct {
	Severity Severity `yaml:"severity"`
}

// Issue represents a lint issue found in a problem bank.
//
// Value is the offending field text and Start/End are byte offsets into it.
// Both are empty for issues about a problem as a whole.
type Issue struct {
	Rule       string
	Category   string
	Filename   string
	Problem    string
	Index      int
	Field      string
	Value      string
	Start      int
	End        int
	Message    string
	Suggestion string
	Note       string
	Severity   Severity
}

// Location renders "file: problem field".
func (i Issue) Location() string {
	loc := i.Filename
	if i.Problem != "" {
		loc += ": " + i.Problem
	}
	if i.Field != "" {
		loc += " " + i.Field
	}
	return loc
}
