package nolint

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fbf-logic/tutor/internal/problem"
)

func TestParseIgnoreRuleNames(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected map[string]struct{}
	}{
		{"rule1,rule2,rule3", map[string]struct{}{"rule1": {}, "rule2": {}, "rule3": {}}},
		{" rule1 , ,rule2 ", map[string]struct{}{"rule1": {}, "rule2": {}}},
		{"rule1, all", map[string]struct{}{}},
		{"", map[string]struct{}{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, parseIgnoreRuleNames(tt.input))
		})
	}
}

func TestIsNolint(t *testing.T) {
	t.Parallel()
	problems := []*problem.Problem{
		{ID: "plain"},
		{ID: "some", Nolint: "duplicate-solution, unknown-symbol"},
		{ID: "every", Nolint: "all"},
		nil,
		{ID: "blank", Nolint: "  "},
	}
	m := Parse(problems)

	tests := []struct {
		name     string
		index    int
		rule     string
		expected bool
	}{
		{"no field", 0, "unknown-type", false},
		{"named rule", 1, "unknown-symbol", true},
		{"other rule", 1, "missing-solution", false},
		{"all rules", 2, "truth-table-mismatch", true},
		{"nil problem", 3, "unknown-type", false},
		{"blank field", 4, "unknown-type", false},
		{"out of range", 9, "unknown-type", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, m.IsNolint(tt.index, tt.rule))
		})
	}

	assert.Equal(t, []string{"duplicate-solution", "unknown-symbol"}, m.Names())
}
