// Package tutor is the in-process entry point of the logic tutor: answer
// canonicalization, multi-answer matching and the symbol palette.
//
// The CLI and the HTTP server are built on the same internal packages; this
// package exposes the pieces an embedding application needs.
package tutor

import (
	"github.com/fbf-logic/tutor/internal/answer"
	"github.com/fbf-logic/tutor/internal/canon"
	"github.com/fbf-logic/tutor/internal/symbols"
)

type (
	Solutions = answer.Solutions
	Token     = symbols.Token
	Group     = symbols.Group
)

// Canonicalize returns the canonical form of a learner's answer, e.g.
// "¬ P" and "\neg P" both become `\negP`.
func Canonicalize(raw string) string {
	return canon.Canonicalize(raw)
}

// Latex returns raw in the spaced form handed to a math typesetter.
func Latex(raw string) string {
	return canon.Latex(raw)
}

// Display renders raw with the palette glyphs.
func Display(raw string) string {
	return canon.Display(raw)
}

// IsCorrect reports whether candidate canonically equals any accepted
// solution. An empty list never matches.
func IsCorrect(candidate string, accepted Solutions) bool {
	return answer.IsCorrect(candidate, accepted)
}

var semantic = answer.NewMatcher(answer.WithMode(answer.ModeSemantic))

// IsEquivalent is IsCorrect that also accepts formulas and arguments that
// are logically equivalent to an accepted solution.
func IsEquivalent(candidate string, accepted Solutions) bool {
	return semantic.IsCorrect(candidate, accepted)
}

// TokensByGroup returns the selectable symbols keyed by group.
func TokensByGroup() map[Group][]Token {
	return symbols.TokensByGroup()
}
