package logic

import (
	"errors"

	"github.com/go-air/gini"
	"github.com/go-air/gini/logic"
	"github.com/go-air/gini/z"
)

const (
	satisfiable   = 1
	unsatisfiable = -1
)

// ErrIncomplete is returned when the solver gives up without an answer.
var ErrIncomplete = errors.New("cancelled before a solution could be found")

// circuit maps formulas onto a gini circuit, one input per variable.
type circuit struct {
	c    *logic.C
	vars map[string]z.Lit
}

func newCircuit(names []string) *circuit {
	cc := &circuit{
		c:    logic.NewCCap(len(names)),
		vars: make(map[string]z.Lit, len(names)),
	}
	for _, name := range names {
		cc.vars[name] = cc.c.Lit()
	}
	return cc
}

func (cc *circuit) lit(f Formula) z.Lit {
	switch e := f.(type) {
	case VarExpr:
		m, ok := cc.vars[e.Name]
		if !ok {
			m = cc.c.Lit()
			cc.vars[e.Name] = m
		}
		return m
	case NotExpr:
		return cc.lit(e.Operand).Not()
	case BinaryExpr:
		a, b := cc.lit(e.Left), cc.lit(e.Right)
		switch e.Op {
		case OpAnd:
			return cc.c.And(a, b)
		case OpOr:
			return cc.c.Or(a, b)
		case OpImplies:
			return cc.c.Or(a.Not(), b)
		case OpIff:
			return cc.c.And(cc.c.Or(a.Not(), b), cc.c.Or(b.Not(), a))
		}
	}
	// unknown node: an unconstrained input keeps the circuit total
	return cc.c.Lit()
}

// solve reports whether root can be true. On success the model is returned
// over the circuit's variables.
func (cc *circuit) solve(root z.Lit) (bool, Env, error) {
	g := gini.New()
	cc.c.ToCnf(g)
	g.Add(root)
	g.Add(z.LitNull)

	switch g.Solve() {
	case satisfiable:
		env := make(Env, len(cc.vars))
		for name, m := range cc.vars {
			env[name] = g.Value(m)
		}
		return true, env, nil
	case unsatisfiable:
		return false, nil, nil
	default:
		return false, nil, ErrIncomplete
	}
}

// Satisfiable reports whether some assignment makes f true, and returns one.
func Satisfiable(f Formula) (bool, Env, error) {
	cc := newCircuit(Variables(f))
	return cc.solve(cc.lit(f))
}

// equivalentSAT builds the miter a ⊕ b and asks the solver for a witness.
// No witness means the formulas agree everywhere.
func equivalentSAT(a, b Formula) (bool, Env, error) {
	cc := newCircuit(Variables(a, b))
	la, lb := cc.lit(a), cc.lit(b)
	miter := cc.c.Or(cc.c.And(la, lb.Not()), cc.c.And(la.Not(), lb))

	differ, env, err := cc.solve(miter)
	if err != nil {
		return false, nil, err
	}
	return !differ, env, nil
}

// Valid reports whether the conclusion of arg holds under every assignment
// that satisfies all premises. A counterexample is returned when it does not.
func Valid(arg *Argument) (bool, Env, error) {
	all := append(append([]Formula(nil), arg.Premises...), arg.Conclusion)
	cc := newCircuit(Variables(all...))

	root := cc.lit(arg.Conclusion).Not()
	for _, p := range arg.Premises {
		root = cc.c.And(root, cc.lit(p))
	}

	refuted, env, err := cc.solve(root)
	if err != nil {
		return false, nil, err
	}
	return !refuted, env, nil
}
