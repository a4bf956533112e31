// Package problem holds exercise data: problems, banks of problems and the
// per-type interaction policy.
package problem

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fbf-logic/tutor/internal/answer"
)

// Type identifies the kind of exercise.
type Type string

const (
	TypeTranslate  Type = "translateToLogic"
	TypeWellFormed Type = "wellFormedCheck"
	TypeArgument   Type = "argumentConstruction"
	TypeTruthTable Type = "truthTable"
)

// Types lists every known problem type in display order.
func Types() []Type {
	return []Type{TypeTranslate, TypeWellFormed, TypeArgument, TypeTruthTable}
}

// Valid reports whether t is a known problem type.
func (t Type) Valid() bool {
	for _, known := range Types() {
		if t == known {
			return true
		}
	}
	return false
}

// Title returns a short human label.
func (t Type) Title() string {
	switch t {
	case TypeTranslate:
		return "Translation to logic"
	case TypeWellFormed:
		return "Well-formed formulas"
	case TypeArgument:
		return "Argument construction"
	case TypeTruthTable:
		return "Truth tables"
	default:
		return string(t)
	}
}

// Variable is a propositional variable with an optional gloss, e.g.
// P: "it rains". Data may list a bare name or an object.
type Variable struct {
	Name string `json:"variable" yaml:"variable"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

func (v *Variable) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*v = Variable{Name: name}
		return nil
	}
	type plain Variable
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*v = Variable(p)
	return nil
}

func (v Variable) MarshalJSON() ([]byte, error) {
	if v.Text == "" {
		return json.Marshal(v.Name)
	}
	type plain Variable
	return json.Marshal(plain(v))
}

func (v *Variable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*v = Variable{Name: node.Value}
		return nil
	}
	type plain Variable
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*v = Variable(p)
	return nil
}

// Problem is one exercise. Which auxiliary fields are set depends on Type.
type Problem struct {
	ID       string           `json:"id,omitempty" yaml:"id,omitempty"`
	Type     Type             `json:"type" yaml:"type"`
	Text     string           `json:"text" yaml:"text"`
	Solution answer.Solutions `json:"solution" yaml:"solution"`

	// translateToLogic, truthTable
	Variables []Variable `json:"variables,omitempty" yaml:"variables,omitempty"`
	// argumentConstruction
	Premises   []string `json:"premises,omitempty" yaml:"premises,omitempty"`
	Conclusion string   `json:"conclusion,omitempty" yaml:"conclusion,omitempty"`
	// wellFormedCheck, truthTable
	Formula      string `json:"formula,omitempty" yaml:"formula,omitempty"`
	IsWellFormed *bool  `json:"isWellFormed,omitempty" yaml:"isWellFormed,omitempty"`

	// Nolint lists lint rules this problem opts out of, or "all".
	Nolint string `json:"nolint,omitempty" yaml:"nolint,omitempty"`
}

// VariableNames returns the variable names in declared order.
func (p *Problem) VariableNames() []string {
	names := make([]string, len(p.Variables))
	for i, v := range p.Variables {
		names[i] = v.Name
	}
	return names
}

// Glossary returns the variables that carry a gloss.
func (p *Problem) Glossary() []Variable {
	var out []Variable
	for _, v := range p.Variables {
		if v.Text != "" {
			out = append(out, v)
		}
	}
	return out
}

// Rows returns the number of truth-table rows for the declared variables.
func (p *Problem) Rows() int {
	return 1 << len(p.Variables)
}

var (
	ErrNotTruthTable = errors.New("problem is not a truth table")
	ErrBadCell       = errors.New("truth table cell must be 0 or 1")
	ErrColumnLength  = errors.New("truth table column length does not match the variables")
)

// TableSolution decodes the 0/1 result column of a truth-table problem.
func (p *Problem) TableSolution() ([]int, error) {
	if p.Type != TypeTruthTable {
		return nil, ErrNotTruthTable
	}
	if len(p.Solution) != p.Rows() {
		return nil, ErrColumnLength
	}
	cells := make([]int, len(p.Solution))
	for i, s := range p.Solution {
		switch strings.TrimSpace(s) {
		case "0":
			cells[i] = 0
		case "1":
			cells[i] = 1
		default:
			return nil, ErrBadCell
		}
	}
	return cells, nil
}

// Label is the ID when present, otherwise the 1-based position in its bank.
func (p *Problem) Label(index int) string {
	if p.ID != "" {
		return p.ID
	}
	return "#" + strconv.Itoa(index+1)
}

// Policy controls how an interaction session reacts to a submission.
type Policy struct {
	// ClearOnIncorrect clears the assembled expression after a wrong answer.
	// When false the learner keeps editing the same expression.
	ClearOnIncorrect bool
	// AdvanceDelay is how long success feedback stays visible before the
	// next problem loads.
	AdvanceDelay time.Duration
}

const DefaultAdvanceDelay = 2 * time.Second

// DefaultPolicy returns the policy used when no override is configured.
func DefaultPolicy(t Type) Policy {
	switch t {
	case TypeTranslate:
		return Policy{ClearOnIncorrect: true, AdvanceDelay: DefaultAdvanceDelay}
	default:
		return Policy{ClearOnIncorrect: false, AdvanceDelay: DefaultAdvanceDelay}
	}
}

// Policies maps problem types to their policy.
type Policies map[Type]Policy

// For returns the policy of t, falling back to DefaultPolicy.
func (ps Policies) For(t Type) Policy {
	if p, ok := ps[t]; ok {
		return p
	}
	return DefaultPolicy(t)
}
