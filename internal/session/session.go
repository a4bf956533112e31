// Package session models one learner working through problems.
//
// A Session owns the assembled expression of the current attempt and moves
// between three states:
//
//	Editing ──Submit──▶ SubmittedCorrect    (expression cleared)
//	        ──Submit──▶ SubmittedIncorrect  (cleared or kept, per policy)
//	any     ──Load────▶ Editing             (expression cleared)
//
// Pressing a token or editing after a submission returns to Editing.
// A Session is not safe for concurrent use.
package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fbf-logic/tutor/internal/answer"
	"github.com/fbf-logic/tutor/internal/canon"
	"github.com/fbf-logic/tutor/internal/logic"
	"github.com/fbf-logic/tutor/internal/problem"
	"github.com/fbf-logic/tutor/internal/symbols"
)

// State is the interaction state of a session.
type State int

const (
	Editing State = iota
	SubmittedCorrect
	SubmittedIncorrect
)

func (s State) String() string {
	switch s {
	case Editing:
		return "editing"
	case SubmittedCorrect:
		return "submitted-correct"
	case SubmittedIncorrect:
		return "submitted-incorrect"
	default:
		return "?"
	}
}

var (
	ErrNoProblem     = errors.New("no problem loaded")
	ErrUnknownToken  = errors.New("unknown token")
	ErrWrongType     = errors.New("action does not apply to this problem type")
	ErrRowOutOfRange = errors.New("truth table row out of range")
)

// Unset marks a truth-table cell the learner has not filled in.
const Unset = -1

// Outcome describes what a submission did.
type Outcome struct {
	Correct bool
	State   State
	// Cleared is true when the submission emptied the expression or table.
	Cleared bool
	// Advance is how long to show feedback before moving on. Zero after a
	// wrong answer.
	Advance time.Duration
	// Canonical is the canonical candidate for expression problems.
	Canonical string
	Reason    string
}

// Score tallies submissions.
type Score struct {
	Correct   int
	Incorrect int
}

// Total is the number of graded submissions.
func (s Score) Total() int {
	return s.Correct + s.Incorrect
}

// Option configures a Session.
type Option func(*Session)

// WithMatcher sets the matcher used to grade typed answers.
func WithMatcher(m *answer.Matcher) Option {
	return func(s *Session) {
		if m != nil {
			s.matcher = m
		}
	}
}

// WithPolicies sets the per-type submission policies.
func WithPolicies(p problem.Policies) Option {
	return func(s *Session) {
		s.policies = p
	}
}

// WithAlphabet sets the token alphabet for Press.
func WithAlphabet(a *symbols.Alphabet) Option {
	return func(s *Session) {
		if a != nil {
			s.alphabet = a
		}
	}
}

// WithLogger sets the logger for graded submissions.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Session is one learner's interaction state.
type Session struct {
	alphabet *symbols.Alphabet
	canon    *canon.Canonicalizer
	matcher  *answer.Matcher
	policies problem.Policies
	logger   *zap.Logger

	problem *problem.Problem
	state   State
	expr    []symbols.Token
	cells   []int
	score   Score
}

// New creates a session with no problem loaded.
func New(opts ...Option) *Session {
	s := &Session{
		alphabet: symbols.Default(),
		matcher:  answer.NewMatcher(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.canon = canon.New(s.alphabet)
	return s
}

// Load starts a fresh attempt at p.
func (s *Session) Load(p *problem.Problem) {
	s.problem = p
	s.state = Editing
	s.expr = nil
	s.cells = nil
	if p != nil && p.Type == problem.TypeTruthTable {
		s.cells = emptyCells(p.Rows())
	}
}

// Problem returns the loaded problem, or nil.
func (s *Session) Problem() *problem.Problem {
	return s.problem
}

// State returns the current interaction state.
func (s *Session) State() State {
	return s.state
}

// Policy returns the submission policy of the loaded problem's type.
func (s *Session) Policy() problem.Policy {
	if s.problem == nil {
		return problem.Policy{}
	}
	return s.policies.For(s.problem.Type)
}

// Press appends the token with the given id to the expression.
func (s *Session) Press(id string) error {
	if err := s.expecting(problem.TypeTranslate, problem.TypeArgument); err != nil {
		return err
	}
	tok, ok := s.alphabet.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownToken, id)
	}
	s.expr = append(s.expr, tok)
	s.state = Editing
	return nil
}

// Enter appends the tokens of typed text in any accepted notation. Nothing
// is appended when the text holds a symbol outside the alphabet.
func (s *Session) Enter(raw string) error {
	if err := s.expecting(problem.TypeTranslate, problem.TypeArgument); err != nil {
		return err
	}
	items := s.canon.Scan(raw)
	toks := make([]symbols.Token, 0, len(items))
	for _, item := range items {
		tok, ok := s.alphabet.LookupCanonical(item.Form)
		if !ok {
			return fmt.Errorf("%w %q at offset %d", ErrUnknownToken, raw[item.Offset:item.End], item.Offset)
		}
		toks = append(toks, tok)
	}
	s.expr = append(s.expr, toks...)
	s.state = Editing
	return nil
}

// Backspace removes the last token. It is a no-op on an empty expression.
func (s *Session) Backspace() {
	if len(s.expr) > 0 {
		s.expr = s.expr[:len(s.expr)-1]
	}
	s.state = Editing
}

// Reset clears the expression and the truth table.
func (s *Session) Reset() {
	s.expr = nil
	if s.cells != nil {
		s.cells = emptyCells(len(s.cells))
	}
	s.state = Editing
}

// Expression returns a copy of the assembled tokens.
func (s *Session) Expression() []symbols.Token {
	return append([]symbols.Token(nil), s.expr...)
}

// Raw joins the canonical forms of the assembled tokens with spaces.
func (s *Session) Raw() string {
	forms := make([]string, len(s.expr))
	for i, tok := range s.expr {
		forms[i] = tok.Canonical
	}
	return strings.Join(forms, " ")
}

// Display renders the expression with glyphs.
func (s *Session) Display() string {
	return s.canon.Display(s.Raw())
}

// Submit checks the assembled expression against the accepted solutions.
func (s *Session) Submit() (Outcome, error) {
	if err := s.expecting(problem.TypeTranslate, problem.TypeArgument); err != nil {
		return Outcome{}, err
	}
	v := s.matcher.Check(s.Raw(), s.problem.Solution)

	out := s.finish(v.Correct, v.Reason)
	out.Canonical = v.Candidate
	if out.Cleared {
		s.expr = nil
	}
	return out, nil
}

// AnswerWellFormed records the learner's yes/no judgement of the problem's
// formula. Problems without an explicit flag are judged by the parser.
func (s *Session) AnswerWellFormed(wellFormed bool) (Outcome, error) {
	if err := s.expecting(problem.TypeWellFormed); err != nil {
		return Outcome{}, err
	}
	truth := logic.WellFormed(s.problem.Formula)
	if s.problem.IsWellFormed != nil {
		truth = *s.problem.IsWellFormed
	}
	reason := "formula is not well formed"
	if truth {
		reason = "formula is well formed"
	}
	return s.finish(truth == wellFormed, reason), nil
}

// ToggleCell cycles a result cell: unset → 1 → 0 → 1.
func (s *Session) ToggleCell(row int) error {
	if err := s.expecting(problem.TypeTruthTable); err != nil {
		return err
	}
	if row < 0 || row >= len(s.cells) {
		return fmt.Errorf("%w: %d", ErrRowOutOfRange, row)
	}
	if s.cells[row] == 1 {
		s.cells[row] = 0
	} else {
		s.cells[row] = 1
	}
	s.state = Editing
	return nil
}

// Cells returns a copy of the truth-table result column.
func (s *Session) Cells() []int {
	return append([]int(nil), s.cells...)
}

// SubmitTable compares the filled column with the solution column. A
// problem whose solution is not a valid column is never satisfied.
func (s *Session) SubmitTable() (Outcome, error) {
	if err := s.expecting(problem.TypeTruthTable); err != nil {
		return Outcome{}, err
	}
	want, err := s.problem.TableSolution()
	correct := err == nil && equalCells(s.cells, want)

	reason := "column matches"
	switch {
	case err != nil:
		reason = err.Error()
	case !correct:
		reason = "column differs"
	}

	out := s.finish(correct, reason)
	if out.Cleared {
		s.cells = emptyCells(len(s.cells))
	}
	return out, nil
}

// Score returns the running tally.
func (s *Session) Score() Score {
	return s.score
}

// ResetScore zeroes the tally.
func (s *Session) ResetScore() {
	s.score = Score{}
}

func (s *Session) finish(correct bool, reason string) Outcome {
	policy := s.Policy()
	out := Outcome{Correct: correct, Reason: reason}
	if correct {
		s.state = SubmittedCorrect
		s.score.Correct++
		out.Cleared = true
		out.Advance = policy.AdvanceDelay
	} else {
		s.state = SubmittedIncorrect
		s.score.Incorrect++
		out.Cleared = policy.ClearOnIncorrect
	}
	out.State = s.state

	s.logger.Info("submission",
		zap.String("problem", s.problem.ID),
		zap.String("type", string(s.problem.Type)),
		zap.Bool("correct", correct),
		zap.String("reason", reason),
	)
	return out
}

func (s *Session) expecting(types ...problem.Type) error {
	if s.problem == nil {
		return ErrNoProblem
	}
	for _, t := range types {
		if s.problem.Type == t {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrWrongType, s.problem.Type)
}

func emptyCells(n int) []int {
	cells := make([]int, n)
	for i := range cells {
		cells[i] = Unset
	}
	return cells
}

func equalCells(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
