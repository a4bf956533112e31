package logic

import (
	"fmt"

	"github.com/fbf-logic/tutor/internal/canon"
	"github.com/fbf-logic/tutor/internal/symbols"
)

// ParseError reports where a formula stopped being well formed.
// Offset is a byte position in the raw input.
type ParseError struct {
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("offset %d: %s", e.Offset, e.Msg)
}

// Parse parses a single formula. Whitespace, glyphs and escape synonyms are
// accepted in any mix, exactly as canon.Canonicalize accepts them.
//
// Precedence from tightest to loosest: ¬, ∧, ∨, →, ↔.
// ∧ and ∨ associate to the left, → and ↔ to the right.
func Parse(raw string) (Formula, error) {
	return parseItems(canon.Scan(raw), len(raw))
}

// MustParse is like Parse but panics on malformed input.
func MustParse(raw string) Formula {
	f, err := Parse(raw)
	if err != nil {
		panic(fmt.Sprintf("logic: Parse(%q): %v", raw, err))
	}
	return f
}

// WellFormed reports whether raw is a single well-formed formula.
func WellFormed(raw string) bool {
	_, err := Parse(raw)
	return err == nil
}

// ParseArgument parses "premise, premise, ... ∴ conclusion".
// An argument without premises is allowed; a missing conclusion is not.
func ParseArgument(raw string) (*Argument, error) {
	items := canon.Scan(raw)

	marker := -1
	for i, item := range items {
		if item.Form != symbols.Therefore {
			continue
		}
		if marker >= 0 {
			return nil, &ParseError{Offset: item.Offset, Msg: "more than one conclusion marker"}
		}
		marker = i
	}
	if marker < 0 {
		return nil, &ParseError{Offset: len(raw), Msg: "missing conclusion marker"}
	}

	arg := &Argument{}
	if marker > 0 {
		start, depth := 0, 0
		for i := 0; i <= marker; i++ {
			if i < marker {
				switch items[i].Form {
				case symbols.LeftParen:
					depth++
				case symbols.RightParen:
					depth--
				}
				if items[i].Form != symbols.Comma || depth != 0 {
					continue
				}
			}
			segment := items[start:i]
			if len(segment) == 0 {
				return nil, &ParseError{Offset: items[i].Offset, Msg: "empty premise"}
			}
			premise, err := parseItems(segment, items[i].Offset)
			if err != nil {
				return nil, err
			}
			arg.Premises = append(arg.Premises, premise)
			start = i + 1
		}
	}

	rest := items[marker+1:]
	if len(rest) == 0 {
		return nil, &ParseError{Offset: len(raw), Msg: "missing conclusion"}
	}
	conclusion, err := parseItems(rest, len(raw))
	if err != nil {
		return nil, err
	}
	arg.Conclusion = conclusion

	return arg, nil
}

type parser struct {
	items []canon.Item
	pos   int
	eof   int
}

func parseItems(items []canon.Item, eof int) (Formula, error) {
	p := &parser{items: items, eof: eof}
	if len(items) == 0 {
		return nil, &ParseError{Offset: eof, Msg: "empty formula"}
	}
	f, err := p.parseIff()
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.items) {
		return nil, p.unexpected()
	}
	return f, nil
}

func (p *parser) peek() (canon.Item, bool) {
	if p.pos >= len(p.items) {
		return canon.Item{}, false
	}
	return p.items[p.pos], true
}

func (p *parser) accept(form string) bool {
	if item, ok := p.peek(); ok && item.Form == form {
		p.pos++
		return true
	}
	return false
}

func (p *parser) unexpected() error {
	item, ok := p.peek()
	if !ok {
		return &ParseError{Offset: p.eof, Msg: "unexpected end of formula"}
	}
	return &ParseError{Offset: item.Offset, Msg: fmt.Sprintf("unexpected %q", item.Form)}
}

func (p *parser) parseIff() (Formula, error) {
	left, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	if !p.accept(symbols.Leftrightarrow) {
		return left, nil
	}
	right, err := p.parseIff()
	if err != nil {
		return nil, err
	}
	return Iff(left, right), nil
}

func (p *parser) parseImplies() (Formula, error) {
	left, err := p.parseOr()
	if err != nil {
		return nil, err
	}
	if !p.accept(symbols.To) {
		return left, nil
	}
	right, err := p.parseImplies()
	if err != nil {
		return nil, err
	}
	return Implies(left, right), nil
}

func (p *parser) parseOr() (Formula, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.accept(symbols.Lor) {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or(left, right)
	}
	return left, nil
}

func (p *parser) parseAnd() (Formula, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.accept(symbols.Land) {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = And(left, right)
	}
	return left, nil
}

func (p *parser) parseUnary() (Formula, error) {
	if p.accept(symbols.Neg) {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return Not(operand), nil
	}
	return p.parseAtom()
}

func (p *parser) parseAtom() (Formula, error) {
	item, ok := p.peek()
	if !ok {
		return nil, p.unexpected()
	}

	switch {
	case item.Kind == canon.KindVariable:
		p.pos++
		return Var(item.Form), nil
	case item.Form == symbols.LeftParen:
		p.pos++
		f, err := p.parseIff()
		if err != nil {
			return nil, err
		}
		if !p.accept(symbols.RightParen) {
			if _, more := p.peek(); !more {
				return nil, &ParseError{Offset: p.eof, Msg: "unclosed parenthesis"}
			}
			return nil, p.unexpected()
		}
		return f, nil
	default:
		return nil, p.unexpected()
	}
}
