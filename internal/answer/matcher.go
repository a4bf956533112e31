// Package answer decides whether a learner's answer matches any of the
// accepted solutions of a problem.
package answer

import (
	"strings"

	"go.uber.org/zap"

	"github.com/fbf-logic/tutor/internal/canon"
	"github.com/fbf-logic/tutor/internal/logic"
	"github.com/fbf-logic/tutor/internal/symbols"
)

// Mode selects how a candidate is compared with accepted solutions.
type Mode int

const (
	// ModeTextual compares canonical strings only.
	ModeTextual Mode = iota
	// ModeSemantic also accepts logically equivalent formulas and arguments.
	ModeSemantic
)

func (m Mode) String() string {
	switch m {
	case ModeTextual:
		return "textual"
	case ModeSemantic:
		return "semantic"
	default:
		return "?"
	}
}

// ParseMode maps a configuration value to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "textual":
		return ModeTextual, true
	case "semantic":
		return ModeSemantic, true
	default:
		return ModeTextual, false
	}
}

// Verdict is the outcome of a check.
type Verdict struct {
	Correct   bool
	Candidate string
	Accepted  []string
	// Matched is the index of the accepted solution that matched, or -1.
	Matched int
	Mode    Mode
	Reason  string
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithMode sets the matching mode. The default is ModeTextual.
func WithMode(mode Mode) Option {
	return func(m *Matcher) {
		m.mode = mode
	}
}

// WithLogger sets the logger used for check traces.
func WithLogger(logger *zap.Logger) Option {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithVerifierConfig sets the equivalence settings of semantic mode.
func WithVerifierConfig(config logic.Config) Option {
	return func(m *Matcher) {
		m.verifier = logic.NewVerifier(config)
	}
}

// WithCanonicalizer replaces the canonicalizer built on the default alphabet.
func WithCanonicalizer(c *canon.Canonicalizer) Option {
	return func(m *Matcher) {
		if c != nil {
			m.canon = c
		}
	}
}

// Matcher compares candidates with accepted solutions.
type Matcher struct {
	mode     Mode
	canon    *canon.Canonicalizer
	verifier *logic.Verifier
	logger   *zap.Logger
}

// NewMatcher creates a matcher. Without options it compares canonical text.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		mode:     ModeTextual,
		canon:    canon.New(symbols.Default()),
		verifier: logic.NewVerifier(logic.DefaultConfig()),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Mode returns the matching mode.
func (m *Matcher) Mode() Mode {
	return m.mode
}

// IsCorrect reports whether candidate matches any accepted solution.
func (m *Matcher) IsCorrect(candidate string, accepted Solutions) bool {
	return m.Check(candidate, accepted).Correct
}

// Check compares candidate with every accepted solution and explains the
// result. An empty accepted list never matches, and neither does an accepted
// entry that canonicalizes to the empty string.
func (m *Matcher) Check(candidate string, accepted Solutions) Verdict {
	v := Verdict{
		Candidate: m.canon.Canonicalize(candidate),
		Accepted:  make([]string, len(accepted)),
		Matched:   -1,
		Mode:      m.mode,
	}
	for i, a := range accepted {
		v.Accepted[i] = m.canon.Canonicalize(a)
	}

	defer func() {
		m.logger.Debug("solution check",
			zap.String("raw", candidate),
			zap.String("canonical", v.Candidate),
			zap.Strings("accepted", v.Accepted),
			zap.Bool("correct", v.Correct),
			zap.String("reason", v.Reason),
		)
	}()

	if len(accepted) == 0 {
		v.Reason = "no accepted solution"
		return v
	}

	for i, a := range v.Accepted {
		if a != "" && v.Candidate == a {
			v.Correct, v.Matched, v.Reason = true, i, "canonical match"
			return v
		}
	}

	if m.mode != ModeSemantic || v.Candidate == "" {
		v.Reason = "no canonical match"
		return v
	}

	for i, a := range v.Accepted {
		if m.equivalent(v.Candidate, a) {
			v.Correct, v.Matched, v.Reason = true, i, "logically equivalent"
			return v
		}
	}
	v.Reason = "no equivalent solution"
	return v
}

// equivalent compares two canonical strings as formulas, or as arguments
// when both carry a conclusion marker. Unparsable input is never equivalent.
func (m *Matcher) equivalent(candidate, accepted string) bool {
	candArg := strings.Contains(candidate, symbols.Therefore)
	accArg := strings.Contains(accepted, symbols.Therefore)
	if candArg != accArg {
		return false
	}

	if candArg {
		a, err := logic.ParseArgument(candidate)
		if err != nil {
			return false
		}
		b, err := logic.ParseArgument(accepted)
		if err != nil {
			return false
		}
		return m.verifier.CheckArguments(a, b).Result == logic.Equivalent
	}

	a, err := logic.Parse(candidate)
	if err != nil {
		return false
	}
	b, err := logic.Parse(accepted)
	if err != nil {
		return false
	}
	return m.verifier.CheckEquivalence(a, b).Result == logic.Equivalent
}

var std = NewMatcher()

// IsCorrect reports whether candidate canonically equals any accepted
// solution.
func IsCorrect(candidate string, accepted Solutions) bool {
	return std.IsCorrect(candidate, accepted)
}
