package logic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSatisfiable(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected bool
	}{
		{"P", true},
		{"P ∧ ¬P", false},
		{"(P → Q) ∧ P ∧ ¬Q", false},
		{"(P ↔ Q) ∧ ¬Q", true},
		{"¬(P ∨ ¬P)", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			f := MustParse(tt.input)
			sat, env, err := Satisfiable(f)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, sat)
			if sat {
				assert.True(t, Eval(f, env), "model must satisfy %s", tt.input)
			}
		})
	}
}

func TestValid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input    string
		expected bool
	}{
		{"P, P → Q ∴ Q", true},
		{"P → Q, ¬Q ∴ ¬P", true},
		{"P ∨ Q, ¬P ∴ Q", true},
		{"∴ P ∨ ¬P", true},
		{"Q, P → Q ∴ P", false},
		{"P → Q, ¬P ∴ ¬Q", false},
		{"∴ P", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			arg, err := ParseArgument(tt.input)
			require.NoError(t, err)

			valid, counter, err := Valid(arg)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, valid)
			if !valid {
				for _, p := range arg.Premises {
					assert.True(t, Eval(p, counter))
				}
				assert.False(t, Eval(arg.Conclusion, counter))
			}
		})
	}
}
