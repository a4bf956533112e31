package formatter

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	tt "github.com/fbf-logic/tutor/internal/types"
)

func init() {
	color.NoColor = true
}

func TestFormatUnknownSymbol(t *testing.T) {
	t.Parallel()
	issues := []tt.Issue{
		{
			Rule:     "unknown-symbol",
			Filename: "bank.json",
			Problem:  "p1",
			Field:    "solution[1]",
			Value:    `P \oplus Q`,
			Start:    2,
			End:      8,
			Message:  `unknown symbol "\oplus"`,
			Severity: tt.SeverityWarning,
		},
	}

	expected := `warning: unknown-symbol
 --> bank.json: p1 solution[1]
  |
  | P \oplus Q
  |   ~~~~~~
  = unknown symbol "\oplus"

`
	assert.Equal(t, expected, GenerateFormattedIssue(issues))
}

func TestFormatUnderlineCountsCells(t *testing.T) {
	t.Parallel()
	// the arrow is three bytes but one cell wide
	value := `P → Q \oplus R`
	issues := []tt.Issue{
		{
			Rule:     "unknown-symbol",
			Filename: "bank.json",
			Problem:  "p2",
			Field:    "solution[0]",
			Value:    value,
			Start:    8,
			End:      14,
			Message:  "unknown symbol",
			Severity: tt.SeverityWarning,
		},
	}

	expected := `warning: unknown-symbol
 --> bank.json: p2 solution[0]
  |
  | P → Q \oplus R
  |       ~~~~~~
  = unknown symbol

`
	assert.Equal(t, `\oplus`, value[8:14])
	assert.Equal(t, expected, GenerateFormattedIssue(issues))
}

func TestFormatWithoutValue(t *testing.T) {
	t.Parallel()
	issues := []tt.Issue{
		{
			Rule:     "missing-solution",
			Filename: "bank.json",
			Problem:  "#3",
			Field:    "solution",
			Message:  "problem has no accepted solution",
			Severity: tt.SeverityError,
		},
	}

	expected := `error: missing-solution
 --> bank.json: #3 solution
  | problem has no accepted solution

`
	assert.Equal(t, expected, GenerateFormattedIssue(issues))
}

func TestFormatTruthTableMismatch(t *testing.T) {
	t.Parallel()
	issues := []tt.Issue{
		{
			Rule:       "truth-table-mismatch",
			Filename:   "bank.json",
			Problem:    "table",
			Field:      "solution[1]",
			Message:    "row 1 (P=0 Q=1): formula gives 1, solution has 0",
			Suggestion: "[1 1 0 1]",
			Severity:   tt.SeverityError,
		},
	}

	expected := `error: truth-table-mismatch
 --> bank.json: table solution[1]
  | row 1 (P=0 Q=1): formula gives 1, solution has 0

Expected column:
  |
  | [1 1 0 1]
  |

`
	assert.Equal(t, expected, GenerateFormattedIssue(issues))
}

func TestFormatInvalidArgument(t *testing.T) {
	t.Parallel()
	value := `Q, P \to Q \therefore P`
	issues := []tt.Issue{
		{
			Rule:     "invalid-argument",
			Filename: "bank.json",
			Problem:  "arg",
			Field:    "solution[0]",
			Value:    value,
			Start:    0,
			End:      len(value),
			Message:  "conclusion does not follow from the premises",
			Note:     "counterexample: P=0 Q=1",
			Severity: tt.SeverityWarning,
		},
	}

	expected := `warning: invalid-argument
 --> bank.json: arg solution[0]
  |
  | Q, P \to Q \therefore P
  | ~~~~~~~~~~~~~~~~~~~~~~~
  = conclusion does not follow from the premises

Note: counterexample: P=0 Q=1

`
	assert.Equal(t, expected, GenerateFormattedIssue(issues))
}

func TestGetIssueFormatter(t *testing.T) {
	t.Parallel()
	tests := []struct {
		rule string
		want issueFormatter
	}{
		{TruthTableMismatch, &TruthTableFormatter{}},
		{InvalidArgument, &ArgumentFormatter{}},
		{"unknown-symbol", &GeneralIssueFormatter{}},
	}
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			t.Parallel()
			assert.IsType(t, tt.want, getIssueFormatter(tt.rule))
		})
	}
}
