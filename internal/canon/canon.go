// Package canon reduces textual formulas and arguments to one canonical string.
//
// Two answers are the same answer exactly when their canonical strings are equal.
// The canonical form is the escaped word form used by the typesetting layer
// (`\neg`, `\land`, `\lor`, `\to`, `\leftrightarrow`, `\therefore`) with every
// whitespace rune removed:
//
//	"¬ P"                    -> `\negP`
//	`\\neg P`                -> `\negP`
//	"P, P → Q ∴ Q"           -> `P,P\toQ\thereforeQ`
//	`P \rightarrow Q`        -> `P\toQ`
//
// Canonicalization never fails. Symbols outside the alphabet are kept as they
// are, so malformed input still yields a comparable (and non-matching) value.
package canon

import (
	"strings"

	"github.com/fbf-logic/tutor/internal/symbols"
	"github.com/fbf-logic/tutor/internal/trie"
)

// Canonicalizer maps raw text onto the canonical form of one alphabet.
type Canonicalizer struct {
	escapes  *trie.Trie[escape]
	glyphs   map[rune]target
	literals map[rune]target
	display  map[string]string
}

// New builds a canonicalizer for the given alphabet.
func New(alphabet *symbols.Alphabet) *Canonicalizer {
	escapes, glyphs, literals := buildTables(alphabet)

	display := make(map[string]string)
	for _, tok := range alphabet.All() {
		display[tok.Canonical] = tok.Glyph()
	}

	return &Canonicalizer{
		escapes:  escapes,
		glyphs:   glyphs,
		literals: literals,
		display:  display,
	}
}

// Canonicalize returns the canonical form of raw.
func (c *Canonicalizer) Canonicalize(raw string) string {
	var b strings.Builder
	for _, item := range c.Scan(raw) {
		b.WriteString(item.Form)
	}
	return b.String()
}

// Equal reports whether a and b have the same canonical form.
func (c *Canonicalizer) Equal(a, b string) bool {
	return c.Canonicalize(a) == c.Canonicalize(b)
}

var std = New(symbols.Default())

// Canonicalize returns the canonical form of raw under the default alphabet.
func Canonicalize(raw string) string {
	return std.Canonicalize(raw)
}

// Scan splits raw into canonical items under the default alphabet.
func Scan(raw string) []Item {
	return std.Scan(raw)
}

// Equal compares two strings by canonical form under the default alphabet.
func Equal(a, b string) bool {
	return std.Equal(a, b)
}

// Latex renders raw as typesetting source under the default alphabet.
func Latex(raw string) string {
	return std.Latex(raw)
}

// Display renders raw with button glyphs under the default alphabet.
func Display(raw string) string {
	return std.Display(raw)
}
