package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fbf-logic/tutor/internal/answer"
	"github.com/fbf-logic/tutor/internal/problem"
	"github.com/fbf-logic/tutor/internal/symbols"
)

func translateProblem() *problem.Problem {
	return &problem.Problem{
		ID:       "t1",
		Type:     problem.TypeTranslate,
		Solution: answer.Single(`\neg P`),
	}
}

func argumentProblem() *problem.Problem {
	return &problem.Problem{
		ID:       "a1",
		Type:     problem.TypeArgument,
		Solution: answer.Solutions{`P, P \to Q \therefore Q`},
	}
}

func press(t *testing.T, s *Session, ids ...string) {
	t.Helper()
	for _, id := range ids {
		require.NoError(t, s.Press(id))
	}
}

func TestSubmitCorrect(t *testing.T) {
	t.Parallel()
	s := New()
	s.Load(translateProblem())

	press(t, s, symbols.IDNot, "P")
	assert.Equal(t, `\neg P`, s.Raw())
	assert.Equal(t, "¬P", s.Display())

	out, err := s.Submit()
	require.NoError(t, err)
	assert.True(t, out.Correct)
	assert.Equal(t, SubmittedCorrect, out.State)
	assert.True(t, out.Cleared)
	assert.Equal(t, 2*time.Second, out.Advance)
	assert.Equal(t, `\negP`, out.Canonical)
	assert.Empty(t, s.Expression())
	assert.Equal(t, Score{Correct: 1}, s.Score())
}

func TestSubmitIncorrectPolicy(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		problem   *problem.Problem
		policies  problem.Policies
		wantClear bool
	}{
		{"translate clears by default", translateProblem(), nil, true},
		{"argument keeps by default", argumentProblem(), nil, false},
		{"override keeps translate", translateProblem(), problem.Policies{problem.TypeTranslate: {ClearOnIncorrect: false}}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := New(WithPolicies(tt.policies))
			s.Load(tt.problem)
			press(t, s, "Q")

			out, err := s.Submit()
			require.NoError(t, err)
			assert.False(t, out.Correct)
			assert.Equal(t, SubmittedIncorrect, s.State())
			assert.Equal(t, tt.wantClear, out.Cleared)
			assert.Zero(t, out.Advance)
			if tt.wantClear {
				assert.Empty(t, s.Expression())
			} else {
				assert.Len(t, s.Expression(), 1)
			}

			press(t, s, "P")
			assert.Equal(t, Editing, s.State())
		})
	}
}

func TestArgumentResubmit(t *testing.T) {
	t.Parallel()
	s := New()
	s.Load(argumentProblem())

	press(t, s, "P", symbols.IDPremiseSeparator, "P", symbols.IDImplies, "Q", symbols.IDConclusionMarker)
	out, err := s.Submit()
	require.NoError(t, err)
	require.False(t, out.Correct)

	press(t, s, "Q")
	out, err = s.Submit()
	require.NoError(t, err)
	assert.True(t, out.Correct)
	assert.Equal(t, Score{Correct: 1, Incorrect: 1}, s.Score())
}

func TestLoadResetsExpression(t *testing.T) {
	t.Parallel()
	s := New()
	s.Load(translateProblem())
	press(t, s, "P", "Q")

	s.Load(argumentProblem())
	assert.Equal(t, Editing, s.State())
	assert.Empty(t, s.Expression())
}

func TestBackspaceAndReset(t *testing.T) {
	t.Parallel()
	s := New()
	s.Load(translateProblem())

	s.Backspace()
	assert.Empty(t, s.Expression())

	press(t, s, symbols.IDLeftParen, "P", symbols.IDAnd)
	s.Backspace()
	assert.Equal(t, `( P`, s.Raw())

	s.Reset()
	assert.Empty(t, s.Expression())
	assert.Equal(t, Editing, s.State())
}

func TestSessionErrors(t *testing.T) {
	t.Parallel()
	s := New()

	assert.ErrorIs(t, s.Press("P"), ErrNoProblem)
	_, err := s.Submit()
	assert.ErrorIs(t, err, ErrNoProblem)

	s.Load(translateProblem())
	assert.ErrorIs(t, s.Press("X"), ErrUnknownToken)
	assert.ErrorIs(t, s.ToggleCell(0), ErrWrongType)
	_, err = s.AnswerWellFormed(true)
	assert.ErrorIs(t, err, ErrWrongType)
	_, err = s.SubmitTable()
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestAnswerWellFormed(t *testing.T) {
	t.Parallel()
	yes, no := true, false
	tests := []struct {
		name    string
		problem *problem.Problem
		answer  bool
		want    bool
	}{
		{"flag true", &problem.Problem{Type: problem.TypeWellFormed, Formula: "P", IsWellFormed: &yes}, true, true},
		{"flag false", &problem.Problem{Type: problem.TypeWellFormed, Formula: "P", IsWellFormed: &no}, true, false},
		{"parsed well formed", &problem.Problem{Type: problem.TypeWellFormed, Formula: `(P \land Q) \to R`}, true, true},
		{"parsed malformed", &problem.Problem{Type: problem.TypeWellFormed, Formula: `P \land \lor Q`}, false, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := New()
			s.Load(tt.problem)
			out, err := s.AnswerWellFormed(tt.answer)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out.Correct)
		})
	}
}

func TestTruthTable(t *testing.T) {
	t.Parallel()
	s := New()
	s.Load(&problem.Problem{
		ID:        "tt",
		Type:      problem.TypeTruthTable,
		Formula:   `P \to Q`,
		Variables: []problem.Variable{{Name: "P"}, {Name: "Q"}},
		Solution:  answer.Solutions{"1", "1", "0", "1"},
	})
	assert.Equal(t, []int{Unset, Unset, Unset, Unset}, s.Cells())

	// unset -> 1 -> 0 -> 1
	require.NoError(t, s.ToggleCell(2))
	assert.Equal(t, 1, s.Cells()[2])
	require.NoError(t, s.ToggleCell(2))
	assert.Equal(t, 0, s.Cells()[2])

	out, err := s.SubmitTable()
	require.NoError(t, err)
	assert.False(t, out.Correct, "unset cells never match")
	assert.False(t, out.Cleared)

	for _, row := range []int{0, 1, 3} {
		require.NoError(t, s.ToggleCell(row))
	}
	out, err = s.SubmitTable()
	require.NoError(t, err)
	assert.True(t, out.Correct)
	assert.Equal(t, []int{Unset, Unset, Unset, Unset}, s.Cells())

	assert.ErrorIs(t, s.ToggleCell(4), ErrRowOutOfRange)
	assert.ErrorIs(t, s.ToggleCell(-1), ErrRowOutOfRange)
}

func TestTruthTableBadSolution(t *testing.T) {
	t.Parallel()
	s := New()
	s.Load(&problem.Problem{
		Type:      problem.TypeTruthTable,
		Variables: []problem.Variable{{Name: "P"}},
		Solution:  answer.Solutions{"1"},
	})
	require.NoError(t, s.ToggleCell(0))

	out, err := s.SubmitTable()
	require.NoError(t, err)
	assert.False(t, out.Correct)
	assert.Equal(t, problem.ErrColumnLength.Error(), out.Reason)
}

func TestSemanticMatcherSession(t *testing.T) {
	t.Parallel()
	s := New(WithMatcher(answer.NewMatcher(answer.WithMode(answer.ModeSemantic))))
	s.Load(&problem.Problem{Type: problem.TypeTranslate, Solution: answer.Single(`P \land Q`)})

	press(t, s, "Q", symbols.IDAnd, "P")
	out, err := s.Submit()
	require.NoError(t, err)
	assert.True(t, out.Correct)
}

func TestSubmissionLogged(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zap.InfoLevel)
	s := New(WithLogger(zap.New(core)))
	s.Load(translateProblem())
	press(t, s, "P")

	_, err := s.Submit()
	require.NoError(t, err)

	entries := logs.FilterMessage("submission").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "t1", entries[0].ContextMap()["problem"])
	assert.Equal(t, false, entries[0].ContextMap()["correct"])
}

func TestScoreReset(t *testing.T) {
	t.Parallel()
	s := New()
	s.Load(translateProblem())
	_, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, 1, s.Score().Total())

	s.ResetScore()
	assert.Zero(t, s.Score().Total())
}

func TestAccessorsBeforeLoad(t *testing.T) {
	t.Parallel()
	s := New()
	assert.Nil(t, s.Problem())
	assert.Equal(t, Editing, s.State())
	assert.Equal(t, problem.Policy{}, s.Policy())

	p := translateProblem()
	s.Load(p)
	assert.Same(t, p, s.Problem())
}

func TestStateString(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "submitted-incorrect", SubmittedIncorrect.String())
}

func TestEnter(t *testing.T) {
	t.Parallel()
	s := New()
	s.Load(argumentProblem())

	require.NoError(t, s.Enter("P, P → Q"))
	require.NoError(t, s.Enter(`\therefore Q`))
	assert.Equal(t, `P , P \to Q \therefore Q`, s.Raw())

	out, err := s.Submit()
	require.NoError(t, err)
	assert.True(t, out.Correct)
}

func TestEnterUnknownSymbol(t *testing.T) {
	t.Parallel()
	s := New()
	s.Load(translateProblem())
	press(t, s, "P")

	err := s.Enter(`\oplus Q`)
	require.ErrorIs(t, err, ErrUnknownToken)
	assert.Contains(t, err.Error(), "offset 0")
	assert.Equal(t, "P", s.Raw())

	s.Load(&problem.Problem{Type: problem.TypeTruthTable})
	assert.ErrorIs(t, s.Enter("P"), ErrWrongType)
}
