package lints

import (
	"fmt"
	"strings"

	"github.com/fbf-logic/tutor/internal/canon"
	"github.com/fbf-logic/tutor/internal/problem"
	tt "github.com/fbf-logic/tutor/internal/types"
)

// Target is one problem of a bank under inspection.
type Target struct {
	Filename string
	Index    int
	Problem  *problem.Problem
}

func (t Target) issue(rule, category string, severity tt.Severity) tt.Issue {
	return tt.Issue{
		Rule:     rule,
		Category: category,
		Filename: t.Filename,
		Problem:  t.Problem.Label(t.Index),
		Index:    t.Index,
		Severity: severity,
	}
}

// at points the issue at value[start:end] of the named field.
func at(issue tt.Issue, field, value string, start, end int) tt.Issue {
	if end > len(value) {
		end = len(value)
	}
	if start > end {
		start = end
	}
	issue.Field = field
	issue.Value = value
	issue.Start = start
	issue.End = end
	return issue
}

func solutionField(i int) string {
	return fmt.Sprintf("solution[%d]", i)
}

// textSolutions reports whether the problem's solutions are formula text.
func textSolutions(p *problem.Problem) bool {
	return p.Type == problem.TypeTranslate || p.Type == problem.TypeArgument
}

func DetectUnknownType(t Target, severity tt.Severity) ([]tt.Issue, error) {
	if t.Problem.Type.Valid() {
		return nil, nil
	}
	issue := at(t.issue("unknown-type", "data", severity), "type", string(t.Problem.Type), 0, len(t.Problem.Type))
	issue.Message = fmt.Sprintf("unknown problem type %q", t.Problem.Type)
	names := make([]string, 0, len(problem.Types()))
	for _, known := range problem.Types() {
		names = append(names, string(known))
	}
	issue.Note = "known types: " + strings.Join(names, ", ")
	return []tt.Issue{issue}, nil
}

func DetectMissingSolution(t Target, severity tt.Severity) ([]tt.Issue, error) {
	p := t.Problem
	issue := t.issue("missing-solution", "data", severity)

	switch p.Type {
	case problem.TypeWellFormed:
		if strings.TrimSpace(p.Formula) != "" {
			return nil, nil
		}
		issue.Field = "formula"
		issue.Message = "well-formedness problem has no formula to judge"
	case problem.TypeTranslate, problem.TypeArgument, problem.TypeTruthTable:
		for _, s := range p.Solution {
			if canon.Canonicalize(s) != "" {
				return nil, nil
			}
		}
		issue.Field = "solution"
		issue.Message = "problem has no accepted solution; no answer can ever be correct"
	default:
		return nil, nil
	}
	return []tt.Issue{issue}, nil
}

func DetectUnknownSymbols(t Target, severity tt.Severity) ([]tt.Issue, error) {
	p := t.Problem
	var issues []tt.Issue

	check := func(field, value string) {
		items := canon.Scan(value)
		for i := 0; i < len(items); i++ {
			if items[i].Kind != canon.KindUnknown {
				continue
			}
			start, end := items[i].Offset, items[i].End
			for i+1 < len(items) && items[i+1].Kind == canon.KindUnknown {
				i++
				end = items[i].End
			}
			issue := at(t.issue("unknown-symbol", "syntax", severity), field, value, start, end)
			issue.Message = fmt.Sprintf("unknown symbol %q", strings.TrimSpace(value[start:end]))
			issues = append(issues, issue)
		}
	}

	if textSolutions(p) {
		for i, s := range p.Solution {
			check(solutionField(i), s)
		}
	}
	if p.Type == problem.TypeTruthTable {
		check("formula", p.Formula)
	}
	return issues, nil
}

func DetectDuplicateSolutions(t Target, severity tt.Severity) ([]tt.Issue, error) {
	if !textSolutions(t.Problem) {
		return nil, nil
	}
	var issues []tt.Issue
	seen := make(map[string]int)
	for i, s := range t.Problem.Solution {
		c := canon.Canonicalize(s)
		if c == "" {
			continue
		}
		if first, ok := seen[c]; ok {
			issue := at(t.issue("duplicate-solution", "style", severity), solutionField(i), s, 0, len(s))
			issue.Message = fmt.Sprintf("same canonical form as %s", solutionField(first))
			issue.Note = "canonical form: " + c
			issues = append(issues, issue)
			continue
		}
		seen[c] = i
	}
	return issues, nil
}
