package logic

import (
	"strings"

	"github.com/fbf-logic/tutor/internal/symbols"
)

// Formula represents a propositional formula.
type Formula interface {
	isFormula()
	String() string
}

// VarExpr represents a propositional variable.
type VarExpr struct {
	Name string
}

func (VarExpr) isFormula() {}
func (e VarExpr) String() string {
	return e.Name
}

// NotExpr represents a negation.
type NotExpr struct {
	Operand Formula
}

func (NotExpr) isFormula() {}
func (e NotExpr) String() string {
	if _, ok := e.Operand.(BinaryExpr); ok {
		return symbols.Neg + "(" + e.Operand.String() + ")"
	}
	return symbols.Neg + e.Operand.String()
}

// BinaryOp represents binary connectives.
type BinaryOp int

const (
	_ BinaryOp = iota
	OpAnd
	OpOr
	OpImplies
	OpIff
)

func (op BinaryOp) String() string {
	switch op {
	case OpAnd:
		return symbols.Land
	case OpOr:
		return symbols.Lor
	case OpImplies:
		return symbols.To
	case OpIff:
		return symbols.Leftrightarrow
	default:
		return "?"
	}
}

// precedence orders connectives from loosest (1) to tightest binding.
func (op BinaryOp) precedence() int {
	switch op {
	case OpIff:
		return 1
	case OpImplies:
		return 2
	case OpOr:
		return 3
	case OpAnd:
		return 4
	default:
		return 0
	}
}

func (op BinaryOp) rightAssoc() bool {
	return op == OpImplies || op == OpIff
}

// BinaryExpr represents a binary formula.
type BinaryExpr struct {
	Op    BinaryOp
	Left  Formula
	Right Formula
}

func (BinaryExpr) isFormula() {}

// String renders the formula in canonical form with the fewest parentheses
// that parse back to the same tree.
func (e BinaryExpr) String() string {
	return operand(e.Left, e.Op, false) + e.Op.String() + operand(e.Right, e.Op, true)
}

func operand(child Formula, parent BinaryOp, right bool) string {
	b, ok := child.(BinaryExpr)
	if !ok {
		return child.String()
	}
	s := b.String()
	cp, pp := b.Op.precedence(), parent.precedence()
	if cp > pp {
		return s
	}
	if b.Op == parent && parent.rightAssoc() == right {
		return s
	}
	return "(" + s + ")"
}

// Argument is a list of premises and a conclusion.
type Argument struct {
	Premises   []Formula
	Conclusion Formula
}

func (a *Argument) String() string {
	premises := make([]string, len(a.Premises))
	for i, p := range a.Premises {
		premises[i] = p.String()
	}
	return strings.Join(premises, symbols.Comma) + symbols.Therefore + a.Conclusion.String()
}

// Helper constructors

func Var(name string) Formula {
	return VarExpr{Name: name}
}

func Not(f Formula) Formula {
	return NotExpr{Operand: f}
}

func And(l, r Formula) Formula {
	return BinaryExpr{Op: OpAnd, Left: l, Right: r}
}

func Or(l, r Formula) Formula {
	return BinaryExpr{Op: OpOr, Left: l, Right: r}
}

func Implies(l, r Formula) Formula {
	return BinaryExpr{Op: OpImplies, Left: l, Right: r}
}

func Iff(l, r Formula) Formula {
	return BinaryExpr{Op: OpIff, Left: l, Right: r}
}
