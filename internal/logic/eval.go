package logic

import (
	"fmt"
	"sort"
	"strings"
)

// Env assigns truth values to variables. Unassigned variables are false.
type Env map[string]bool

// String returns the assignment in variable order, e.g. "P=1 Q=0".
func (e Env) String() string {
	names := make([]string, 0, len(e))
	for name := range e {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, len(names))
	for i, name := range names {
		v := 0
		if e[name] {
			v = 1
		}
		parts[i] = fmt.Sprintf("%s=%d", name, v)
	}
	return strings.Join(parts, " ")
}

// Eval evaluates f under env.
func Eval(f Formula, env Env) bool {
	switch e := f.(type) {
	case VarExpr:
		return env[e.Name]
	case NotExpr:
		return !Eval(e.Operand, env)
	case BinaryExpr:
		l := Eval(e.Left, env)
		r := Eval(e.Right, env)
		switch e.Op {
		case OpAnd:
			return l && r
		case OpOr:
			return l || r
		case OpImplies:
			return !l || r
		case OpIff:
			return l == r
		}
	}
	return false
}

// Variables returns the sorted, de-duplicated variable names of the formulas.
func Variables(fs ...Formula) []string {
	seen := make(map[string]struct{})
	for _, f := range fs {
		collectVars(f, seen)
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectVars(f Formula, seen map[string]struct{}) {
	switch e := f.(type) {
	case VarExpr:
		seen[e.Name] = struct{}{}
	case NotExpr:
		collectVars(e.Operand, seen)
	case BinaryExpr:
		collectVars(e.Left, seen)
		collectVars(e.Right, seen)
	}
}
