package logic

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEquivalence(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		a, b     string
		expected VerificationResult
	}{
		{"identical", "P ∧ Q", "P ∧ Q", Equivalent},
		{"commuted conjunction", "P ∧ Q", "Q ∧ P", Equivalent},
		{"de morgan", "¬(P ∨ Q)", "¬P ∧ ¬Q", Equivalent},
		{"material implication", "P → Q", "¬P ∨ Q", Equivalent},
		{"contrapositive", "P → Q", "¬Q → ¬P", Equivalent},
		{"biconditional", "P ↔ Q", "(P → Q) ∧ (Q → P)", Equivalent},
		{"double negation", "¬¬P", "P", Equivalent},
		{"converse", "P → Q", "Q → P", NotEquivalent},
		{"extra variable", "P", "P ∧ Q", NotEquivalent},
		{"tautologies", "P ∨ ¬P", "Q → Q", Equivalent},
	}

	v := NewVerifier(DefaultConfig())
	solver := NewVerifier(Config{MaxTableVariables: 0})

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, b := MustParse(tt.a), MustParse(tt.b)

			report := v.CheckEquivalence(a, b)
			assert.Equal(t, tt.expected, report.Result, report.Detail)

			viaSAT := solver.CheckEquivalence(a, b)
			assert.Equal(t, tt.expected, viaSAT.Result, "solver disagrees: %s", viaSAT.Detail)

			if tt.expected == NotEquivalent {
				require.NotNil(t, report.Counterexample)
				assert.NotEqual(t, Eval(a, report.Counterexample), Eval(b, report.Counterexample))
				require.NotNil(t, viaSAT.Counterexample)
				assert.NotEqual(t, Eval(a, viaSAT.Counterexample), Eval(b, viaSAT.Counterexample))
			}
		})
	}
}

func TestCheckEquivalenceReasons(t *testing.T) {
	t.Parallel()
	a, b := MustParse("P ∧ Q"), MustParse("Q ∧ P")

	assert.Equal(t, ReasonSameTable, NewVerifier(DefaultConfig()).CheckEquivalence(a, b).Reason)
	assert.Equal(t, ReasonUnsatisfiableMiter, NewVerifier(Config{}).CheckEquivalence(a, b).Reason)
}

func TestCheckEquivalenceManyVariables(t *testing.T) {
	t.Parallel()
	// twelve variables is past the table limit
	names := strings.Split("ABCDEFGHIJKL", "")
	left := strings.Join(names, " ∧ ")
	reversed := make([]string, len(names))
	for i, n := range names {
		reversed[len(names)-1-i] = n
	}
	right := strings.Join(reversed, " ∧ ")

	v := NewVerifier(DefaultConfig())
	report := v.CheckEquivalence(MustParse(left), MustParse(right))
	assert.Equal(t, Equivalent, report.Result)
	assert.Equal(t, ReasonUnsatisfiableMiter, report.Reason)

	report = v.CheckEquivalence(MustParse(left), MustParse(right+" ∧ ¬A"))
	assert.Equal(t, NotEquivalent, report.Result)
}

func TestCheckArguments(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		a, b     string
		expected VerificationResult
		reason   ReasonCode
	}{
		{"same", "P, P → Q ∴ Q", "P, P → Q ∴ Q", Equivalent, ReasonSameTable},
		{"reordered premises", "P, P → Q ∴ Q", "P → Q, P ∴ Q", Equivalent, ReasonSameTable},
		{"equivalent premise", "P, P → Q ∴ Q", "¬P ∨ Q, P ∴ Q", Equivalent, ReasonSameTable},
		{"different conclusion", "P, P → Q ∴ Q", "P, P → Q ∴ P", NotEquivalent, ReasonConclusionMismatch},
		{"premise count", "P ∴ P", "P, Q ∴ P", NotEquivalent, ReasonPremiseCount},
		{"duplicate premise", "P, P ∴ P", "P, Q ∴ P", NotEquivalent, ReasonPremiseMismatch},
	}

	v := NewVerifier(DefaultConfig())
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			a, err := ParseArgument(tt.a)
			require.NoError(t, err)
			b, err := ParseArgument(tt.b)
			require.NoError(t, err)

			report := v.CheckArguments(a, b)
			assert.Equal(t, tt.expected, report.Result)
			assert.Equal(t, tt.reason, report.Reason)
		})
	}
}

func TestPerfectMatching(t *testing.T) {
	t.Parallel()
	// greedy would give 0 the only partner of 1
	assert.True(t, perfectMatching([][]int{{0, 1}, {0}}, 2))
	assert.False(t, perfectMatching([][]int{{0}, {0}}, 2))
	assert.True(t, perfectMatching(nil, 0))
}

func TestVerificationStrings(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Equivalent", Equivalent.String())
	assert.Equal(t, "?", VerificationResult(0).String())
	assert.Equal(t, "premises do not match", ReasonPremiseMismatch.String())
	assert.Equal(t, "P=1 Q=0", fmt.Sprint(Env{"Q": false, "P": true}))
}
