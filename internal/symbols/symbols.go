// Package symbols defines the fixed alphabet a learner assembles answers from.
//
// Every button of the exercise UI maps to exactly one Token. A token carries the
// canonical form used for comparison and typesetting, and an optional display
// glyph used on the button itself. The alphabet is closed: it is built once at
// package initialization and never mutated.
package symbols

// Group names a family of tokens shown together.
type Group string

const (
	GroupConnectives Group = "connectives"
	GroupVariables   Group = "variables"
	GroupStructural  Group = "structural"
)

// Token is one selectable symbolic unit.
type Token struct {
	ID        string `json:"id" yaml:"id"`
	Canonical string `json:"canonical" yaml:"canonical"`
	Display   string `json:"display,omitempty" yaml:"display,omitempty"`
	Group     Group  `json:"group" yaml:"group"`
}

// Glyph returns the human-facing form of the token.
func (t Token) Glyph() string {
	if t.Display != "" {
		return t.Display
	}
	return t.Canonical
}

// Well-known token identifiers.
const (
	IDNot              = "not"
	IDAnd              = "and"
	IDOr               = "or"
	IDImplies          = "implies"
	IDIff              = "iff"
	IDLeftParen        = "("
	IDRightParen       = ")"
	IDPremiseSeparator = "premise-separator"
	IDConclusionMarker = "conclusion-marker"
)

// Canonical forms of the connectives and structural markers.
const (
	Neg            = `\neg`
	Land           = `\land`
	Lor            = `\lor`
	To             = `\to`
	Leftrightarrow = `\leftrightarrow`
	Therefore      = `\therefore`
	Comma          = ","
	LeftParen      = "("
	RightParen     = ")"
)

// Alphabet is an immutable, ordered collection of token groups.
type Alphabet struct {
	order  []Group
	groups map[Group][]Token
	byID   map[string]Token
	byForm map[string]Token
}

func newAlphabet(groups ...[]Token) *Alphabet {
	a := &Alphabet{
		groups: make(map[Group][]Token),
		byID:   make(map[string]Token),
		byForm: make(map[string]Token),
	}
	for _, tokens := range groups {
		if len(tokens) == 0 {
			continue
		}
		g := tokens[0].Group
		a.order = append(a.order, g)
		a.groups[g] = tokens
		for _, tok := range tokens {
			a.byID[tok.ID] = tok
			a.byForm[tok.Canonical] = tok
		}
	}
	return a
}

// Groups returns the group names in display order.
func (a *Alphabet) Groups() []Group {
	return append([]Group(nil), a.order...)
}

// Tokens returns the tokens of a group in display order.
// An unknown group yields an empty slice.
func (a *Alphabet) Tokens(g Group) []Token {
	return append([]Token{}, a.groups[g]...)
}

// ByGroup returns every group with its ordered tokens.
func (a *Alphabet) ByGroup() map[Group][]Token {
	out := make(map[Group][]Token, len(a.groups))
	for g := range a.groups {
		out[g] = a.Tokens(g)
	}
	return out
}

// Lookup finds a token by its identifier.
func (a *Alphabet) Lookup(id string) (Token, bool) {
	tok, ok := a.byID[id]
	return tok, ok
}

// LookupCanonical finds a token by its canonical form.
func (a *Alphabet) LookupCanonical(form string) (Token, bool) {
	tok, ok := a.byForm[form]
	return tok, ok
}

// CanonicalFormOf returns the canonical form of the token with the given id,
// or the empty string when no such token exists.
func (a *Alphabet) CanonicalFormOf(id string) string {
	return a.byID[id].Canonical
}

// All returns every token, group by group.
func (a *Alphabet) All() []Token {
	var out []Token
	for _, g := range a.order {
		out = append(out, a.groups[g]...)
	}
	return out
}

var defaultAlphabet = newAlphabet(
	[]Token{
		{ID: IDNot, Canonical: Neg, Display: "¬", Group: GroupConnectives},
		{ID: IDAnd, Canonical: Land, Display: "∧", Group: GroupConnectives},
		{ID: IDOr, Canonical: Lor, Display: "∨", Group: GroupConnectives},
		{ID: IDImplies, Canonical: To, Display: "→", Group: GroupConnectives},
		{ID: IDIff, Canonical: Leftrightarrow, Display: "↔", Group: GroupConnectives},
	},
	[]Token{
		{ID: "P", Canonical: "P", Group: GroupVariables},
		{ID: "Q", Canonical: "Q", Group: GroupVariables},
		{ID: "R", Canonical: "R", Group: GroupVariables},
		{ID: "S", Canonical: "S", Group: GroupVariables},
	},
	[]Token{
		{ID: IDPremiseSeparator, Canonical: Comma, Display: ",", Group: GroupStructural},
		{ID: IDConclusionMarker, Canonical: Therefore, Display: "∴", Group: GroupStructural},
		{ID: IDLeftParen, Canonical: LeftParen, Group: GroupStructural},
		{ID: IDRightParen, Canonical: RightParen, Group: GroupStructural},
	},
)

// Default returns the process-wide alphabet.
func Default() *Alphabet {
	return defaultAlphabet
}

// TokensByGroup returns the default alphabet keyed by group.
func TokensByGroup() map[Group][]Token {
	return defaultAlphabet.ByGroup()
}

// Tokens returns the tokens of a group of the default alphabet.
func Tokens(g Group) []Token {
	return defaultAlphabet.Tokens(g)
}

// Lookup finds a token of the default alphabet by id.
func Lookup(id string) (Token, bool) {
	return defaultAlphabet.Lookup(id)
}

// CanonicalFormOf returns the canonical form of a default-alphabet token.
func CanonicalFormOf(id string) string {
	return defaultAlphabet.CanonicalFormOf(id)
}
