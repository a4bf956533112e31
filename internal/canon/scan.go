package canon

import (
	"unicode"
	"unicode/utf8"

	"github.com/fbf-logic/tutor/internal/symbols"
	"github.com/fbf-logic/tutor/internal/trie"
)

// Kind classifies a scanned item.
type Kind int

const (
	KindUnknown Kind = iota
	KindConnective
	KindVariable
	KindStructural
)

func (k Kind) String() string {
	switch k {
	case KindConnective:
		return "Connective"
	case KindVariable:
		return "Variable"
	case KindStructural:
		return "Structural"
	default:
		return "Unknown"
	}
}

// Item is one canonical unit of a scanned input.
// Offset and End are byte positions in the raw input (End is exclusive).
type Item struct {
	Kind   Kind
	Form   string
	Offset int
	End    int
}

// escapeSynonyms maps alternative escape names to the canonical form they denote.
var escapeSynonyms = map[string]string{
	"lnot":       symbols.Neg,
	"wedge":      symbols.Land,
	"vee":        symbols.Lor,
	"rightarrow": symbols.To,
	"implies":    symbols.To,
	"iff":        symbols.Leftrightarrow,
	"vdash":      symbols.Therefore,
}

// glyphSynonyms maps glyphs that no button displays to a canonical form.
var glyphSynonyms = map[rune]string{
	'⊢': symbols.Therefore,
}

type escape struct {
	name string
	form string
	kind Kind
}

type target struct {
	form string
	kind Kind
}

// char is a non-whitespace rune of the input with its byte position.
type char struct {
	r    rune
	off  int
	size int
}

func (c char) end() int {
	return c.off + c.size
}

func kindOf(g symbols.Group) Kind {
	switch g {
	case symbols.GroupConnectives:
		return KindConnective
	case symbols.GroupVariables:
		return KindVariable
	case symbols.GroupStructural:
		return KindStructural
	default:
		return KindUnknown
	}
}

func buildTables(alphabet *symbols.Alphabet) (*trie.Trie[escape], map[rune]target, map[rune]target) {
	kinds := make(map[string]Kind)
	escapes := trie.New[escape]()
	glyphs := make(map[rune]target)
	literals := make(map[rune]target)

	for _, tok := range alphabet.All() {
		kind := kindOf(tok.Group)
		kinds[tok.Canonical] = kind

		if len(tok.Canonical) > 1 && tok.Canonical[0] == '\\' {
			escapes.Insert(tok.Canonical[1:], escape{name: tok.Canonical[1:], form: tok.Canonical, kind: kind})
			if utf8.RuneCountInString(tok.Display) == 1 {
				r, _ := utf8.DecodeRuneInString(tok.Display)
				glyphs[r] = target{form: tok.Canonical, kind: kind}
			}
			continue
		}
		if utf8.RuneCountInString(tok.Canonical) == 1 {
			r, _ := utf8.DecodeRuneInString(tok.Canonical)
			literals[r] = target{form: tok.Canonical, kind: kind}
		}
	}

	for name, form := range escapeSynonyms {
		if kind, ok := kinds[form]; ok {
			escapes.Insert(name, escape{name: name, form: form, kind: kind})
		}
	}
	for r, form := range glyphSynonyms {
		if kind, ok := kinds[form]; ok {
			glyphs[r] = target{form: form, kind: kind}
		}
	}

	return escapes, glyphs, literals
}

// stripWhitespace drops every whitespace rune and remembers where the others were.
func stripWhitespace(raw string) []char {
	out := make([]char, 0, len(raw))
	for off := 0; off < len(raw); {
		r, size := utf8.DecodeRuneInString(raw[off:])
		if !unicode.IsSpace(r) {
			out = append(out, char{r: r, off: off, size: size})
		}
		off += size
	}
	return out
}

// Scan splits raw into canonical items.
func (c *Canonicalizer) Scan(raw string) []Item {
	src := stripWhitespace(raw)
	items := make([]Item, 0, len(src))

	for i := 0; i < len(src); {
		ch := src[i]

		if ch.r == '\\' {
			j := i
			for j < len(src) && src[j].r == '\\' {
				j++
			}
			if esc, n, ok := c.matchEscape(src[j:]); ok {
				items = append(items, Item{Kind: esc.kind, Form: esc.form, Offset: ch.off, End: src[j+n-1].end()})
				i = j + n
				continue
			}
			if j < len(src) {
				if _, ok := c.glyphs[src[j].r]; ok {
					// the glyph expands to an escape on its own
					i = j
					continue
				}
			}
			items = append(items, Item{Kind: KindUnknown, Form: `\`, Offset: ch.off, End: src[j-1].end()})
			i = j
			continue
		}

		// invalid UTF-8 bytes are kept as they are
		item := Item{Kind: KindUnknown, Form: raw[ch.off:ch.end()], Offset: ch.off, End: ch.end()}
		if t, ok := c.glyphs[ch.r]; ok {
			item.Kind, item.Form = t.kind, t.form
		} else if t, ok := c.literals[ch.r]; ok {
			item.Kind = t.kind
		} else if isAtom(ch.r) {
			item.Kind = KindVariable
		}
		items = append(items, item)
		i++
	}

	return items
}

// matchEscape finds the longest escape name at the start of rest.
func (c *Canonicalizer) matchEscape(rest []char) (escape, int, bool) {
	return c.escapes.LongestPrefix(func(i int) (rune, bool) {
		if i >= len(rest) {
			return 0, false
		}
		return rest[i].r, true
	})
}

// isAtom reports whether r names a propositional variable.
// The buttons only offer P to S, but exercise data may use any capital letter.
func isAtom(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
