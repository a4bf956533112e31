package lints

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fbf-logic/tutor/internal/logic"
	"github.com/fbf-logic/tutor/internal/problem"
	tt "github.com/fbf-logic/tutor/internal/types"
)

func parseErrorSpan(err error) (int, int) {
	var perr *logic.ParseError
	if errors.As(err, &perr) {
		return perr.Offset, perr.Offset + 1
	}
	return 0, 0
}

func DetectMalformedSolutions(t Target, severity tt.Severity) ([]tt.Issue, error) {
	p := t.Problem
	if !textSolutions(p) {
		return nil, nil
	}

	var issues []tt.Issue
	for i, s := range p.Solution {
		if strings.TrimSpace(s) == "" {
			continue
		}
		var err error
		if p.Type == problem.TypeArgument {
			_, err = logic.ParseArgument(s)
		} else {
			_, err = logic.Parse(s)
		}
		if err == nil {
			continue
		}
		start, end := parseErrorSpan(err)
		issue := at(t.issue("malformed-solution", "syntax", severity), solutionField(i), s, start, end)
		issue.Message = "accepted solution is not well formed"
		var perr *logic.ParseError
		if errors.As(err, &perr) {
			issue.Message += ": " + perr.Msg
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

func DetectWellFormedMismatch(t Target, severity tt.Severity) ([]tt.Issue, error) {
	p := t.Problem
	if p.Type != problem.TypeWellFormed || p.IsWellFormed == nil || strings.TrimSpace(p.Formula) == "" {
		return nil, nil
	}

	_, err := logic.Parse(p.Formula)
	parsed := err == nil
	if parsed == *p.IsWellFormed {
		return nil, nil
	}

	issue := t.issue("wff-mismatch", "logic", severity)
	if parsed {
		issue = at(issue, "formula", p.Formula, 0, len(p.Formula))
		issue.Message = "isWellFormed is false but the formula parses"
	} else {
		start, end := parseErrorSpan(err)
		issue = at(issue, "formula", p.Formula, start, end)
		issue.Message = "isWellFormed is true but the formula does not parse"
		issue.Note = err.Error()
	}
	return []tt.Issue{issue}, nil
}

func DetectTruthTableMismatch(t Target, severity tt.Severity) ([]tt.Issue, error) {
	p := t.Problem
	if p.Type != problem.TypeTruthTable {
		return nil, nil
	}
	issue := t.issue("truth-table-mismatch", "logic", severity)

	f, err := logic.Parse(p.Formula)
	if err != nil {
		start, end := parseErrorSpan(err)
		issue = at(issue, "formula", p.Formula, start, end)
		issue.Message = "formula does not parse: " + err.Error()
		return []tt.Issue{issue}, nil
	}

	vars := p.VariableNames()
	declared := make(map[string]bool, len(vars))
	for _, v := range vars {
		declared[v] = true
	}
	for _, v := range logic.Variables(f) {
		if !declared[v] {
			issue.Field = "variables"
			issue.Message = fmt.Sprintf("formula uses %s, which is not a declared variable", v)
			return []tt.Issue{issue}, nil
		}
	}

	cells, err := p.TableSolution()
	if err != nil {
		issue.Field = "solution"
		issue.Message = err.Error()
		issue.Note = fmt.Sprintf("expected %d cells of 0 or 1", p.Rows())
		return []tt.Issue{issue}, nil
	}

	table := logic.NewTruthTable(f, vars...)
	for row, want := range table.Column() {
		if cells[row] == want {
			continue
		}
		issue.Field = solutionField(row)
		issue.Message = fmt.Sprintf("row %d (%s): formula gives %d, solution has %d",
			row, logic.Assignment(vars, row), want, cells[row])
		issue.Suggestion = fmt.Sprint(table.Column())
		return []tt.Issue{issue}, nil
	}
	return nil, nil
}

func DetectInvalidArguments(t Target, severity tt.Severity) ([]tt.Issue, error) {
	p := t.Problem
	if p.Type != problem.TypeArgument {
		return nil, nil
	}

	stated := statedArgument(p)
	verifier := logic.NewVerifier(logic.DefaultConfig())

	var issues []tt.Issue
	for i, s := range p.Solution {
		arg, err := logic.ParseArgument(s)
		if err != nil {
			// reported by malformed-solution
			continue
		}

		valid, counter, err := logic.Valid(arg)
		if err != nil {
			return nil, err
		}
		if !valid {
			issue := at(t.issue("invalid-argument", "logic", severity), solutionField(i), s, 0, len(s))
			issue.Message = "conclusion does not follow from the premises"
			issue.Note = "counterexample: " + counter.String()
			issues = append(issues, issue)
			continue
		}

		if stated != nil && verifier.CheckArguments(arg, stated).Result != logic.Equivalent {
			issue := at(t.issue("invalid-argument", "logic", severity), solutionField(i), s, 0, len(s))
			issue.Message = "solution does not match the stated premises and conclusion"
			issue.Suggestion = stated.String()
			issues = append(issues, issue)
		}
	}
	return issues, nil
}

// statedArgument builds the argument from the premises and conclusion
// fields. It is nil when they are absent or are prose rather than formulas.
func statedArgument(p *problem.Problem) *logic.Argument {
	if p.Conclusion == "" {
		return nil
	}
	conclusion, err := logic.Parse(p.Conclusion)
	if err != nil {
		return nil
	}
	arg := &logic.Argument{Conclusion: conclusion}
	for _, raw := range p.Premises {
		premise, err := logic.Parse(raw)
		if err != nil {
			return nil
		}
		arg.Premises = append(arg.Premises, premise)
	}
	return arg
}
