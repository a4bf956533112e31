package canon

import (
	"strings"

	"github.com/fbf-logic/tutor/internal/symbols"
)

// Latex joins the canonical items of raw with single spaces, which is the
// string the answer area hands to the math typesetter ("\neg P", not "\negP").
func (c *Canonicalizer) Latex(raw string) string {
	items := c.Scan(raw)
	forms := make([]string, len(items))
	for i, item := range items {
		forms[i] = item.Form
	}
	return strings.Join(forms, " ")
}

// Display renders raw with the glyphs shown on the buttons, e.g. "P, P → Q ∴ Q".
func (c *Canonicalizer) Display(raw string) string {
	var b strings.Builder
	for _, item := range c.Scan(raw) {
		glyph, ok := c.display[item.Form]
		if !ok {
			glyph = item.Form
		}
		switch {
		case isInfix(item.Form):
			b.WriteString(" " + glyph + " ")
		case item.Form == symbols.Comma:
			b.WriteString(glyph + " ")
		default:
			b.WriteString(glyph)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func isInfix(form string) bool {
	switch form {
	case symbols.Land, symbols.Lor, symbols.To, symbols.Leftrightarrow, symbols.Therefore:
		return true
	}
	return false
}
