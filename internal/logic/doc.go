// Package logic implements the propositional fragment used by the exercises.
//
// It parses canonical formula and argument text (see package canon) into a
// small AST, evaluates formulas under an assignment, builds truth tables in
// the row order the exercises use, and decides equivalence of two formulas.
//
// Answer matching is textual by default. This package backs the stricter
// checks around it:
//   - well-formedness of formulas shown in well-formedness exercises
//   - truth-table solutions of truth-table exercises
//   - the opt-in semantic matching mode, where logically equivalent answers
//     (commuted conjuncts, De Morgan variants) are accepted
//
// Equivalence is decided by truth-table enumeration while the number of
// variables stays small, and by a SAT miter on larger formulas.
package logic
