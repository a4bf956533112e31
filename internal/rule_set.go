package internal

import (
	"github.com/fbf-logic/tutor/internal/lints"
	tt "github.com/fbf-logic/tutor/internal/types"
)

/*
* Implement each lint rule as a separate struct
 */

// LintRule defines the interface for all problem bank rules.
type LintRule interface {
	// Check runs the rule on one problem and returns a slice of Issues.
	Check(target lints.Target) ([]tt.Issue, error)

	// Name returns the name of the lint rule.
	Name() string

	Severity() tt.Severity
	SetSeverity(tt.Severity)
}

type severity struct {
	level tt.Severity
}

func (s *severity) Severity() tt.Severity {
	return s.level
}

func (s *severity) SetSeverity(level tt.Severity) {
	s.level = level
}

type UnknownTypeRule struct{ severity }

func NewUnknownTypeRule() LintRule {
	return &UnknownTypeRule{severity{tt.SeverityError}}
}

func (r *UnknownTypeRule) Check(t lints.Target) ([]tt.Issue, error) {
	return lints.DetectUnknownType(t, r.level)
}

func (r *UnknownTypeRule) Name() string {
	return "unknown-type"
}

type MissingSolutionRule struct{ severity }

func NewMissingSolutionRule() LintRule {
	return &MissingSolutionRule{severity{tt.SeverityError}}
}

func (r *MissingSolutionRule) Check(t lints.Target) ([]tt.Issue, error) {
	return lints.DetectMissingSolution(t, r.level)
}

func (r *MissingSolutionRule) Name() string {
	return "missing-solution"
}

type MalformedSolutionRule struct{ severity }

func NewMalformedSolutionRule() LintRule {
	return &MalformedSolutionRule{severity{tt.SeverityError}}
}

func (r *MalformedSolutionRule) Check(t lints.Target) ([]tt.Issue, error) {
	return lints.DetectMalformedSolutions(t, r.level)
}

func (r *MalformedSolutionRule) Name() string {
	return "malformed-solution"
}

type UnknownSymbolRule struct{ severity }

func NewUnknownSymbolRule() LintRule {
	return &UnknownSymbolRule{severity{tt.SeverityWarning}}
}

func (r *UnknownSymbolRule) Check(t lints.Target) ([]tt.Issue, error) {
	return lints.DetectUnknownSymbols(t, r.level)
}

func (r *UnknownSymbolRule) Name() string {
	return "unknown-symbol"
}

type DuplicateSolutionRule struct{ severity }

func NewDuplicateSolutionRule() LintRule {
	return &DuplicateSolutionRule{severity{tt.SeverityInfo}}
}

func (r *DuplicateSolutionRule) Check(t lints.Target) ([]tt.Issue, error) {
	return lints.DetectDuplicateSolutions(t, r.level)
}

func (r *DuplicateSolutionRule) Name() string {
	return "duplicate-solution"
}

type WellFormedMismatchRule struct{ severity }

func NewWellFormedMismatchRule() LintRule {
	return &WellFormedMismatchRule{severity{tt.SeverityWarning}}
}

func (r *WellFormedMismatchRule) Check(t lints.Target) ([]tt.Issue, error) {
	return lints.DetectWellFormedMismatch(t, r.level)
}

func (r *WellFormedMismatchRule) Name() string {
	return "wff-mismatch"
}

type TruthTableMismatchRule struct{ severity }

func NewTruthTableMismatchRule() LintRule {
	return &TruthTableMismatchRule{severity{tt.SeverityError}}
}

func (r *TruthTableMismatchRule) Check(t lints.Target) ([]tt.Issue, error) {
	return lints.DetectTruthTableMismatch(t, r.level)
}

func (r *TruthTableMismatchRule) Name() string {
	return "truth-table-mismatch"
}

type InvalidArgumentRule struct{ severity }

func NewInvalidArgumentRule() LintRule {
	return &InvalidArgumentRule{severity{tt.SeverityWarning}}
}

func (r *InvalidArgumentRule) Check(t lints.Target) ([]tt.Issue, error) {
	return lints.DetectInvalidArguments(t, r.level)
}

func (r *InvalidArgumentRule) Name() string {
	return "invalid-argument"
}
