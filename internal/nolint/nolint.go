// Package nolint tracks the lint rules individual problems opt out of.
//
// A problem silences rules through its nolint field, either by name or all
// at once:
//
//	"nolint": "duplicate-solution, unknown-symbol"
//	"nolint": "all"
package nolint

import (
	"sort"
	"strings"

	"github.com/fbf-logic/tutor/internal/problem"
)

// All silences every rule for a problem.
const All = "all"

// Manager answers whether a rule is silenced for a problem of a bank.
type Manager struct {
	// scopes maps a problem index to its silenced rules. An empty set
	// silences every rule.
	scopes map[int]map[string]struct{}
}

// Parse collects the nolint fields of problems, indexed by bank position.
func Parse(problems []*problem.Problem) *Manager {
	m := &Manager{scopes: make(map[int]map[string]struct{})}
	for i, p := range problems {
		if p == nil || strings.TrimSpace(p.Nolint) == "" {
			continue
		}
		m.scopes[i] = parseIgnoreRuleNames(p.Nolint)
	}
	return m
}

// parseIgnoreRuleNames parses a comma-separated rule list. A list naming
// All yields the empty set.
func parseIgnoreRuleNames(text string) map[string]struct{} {
	rulesMap := make(map[string]struct{})
	for _, rule := range strings.Split(text, ",") {
		rule = strings.TrimSpace(rule)
		if rule == All {
			return map[string]struct{}{}
		}
		if rule != "" {
			rulesMap[rule] = struct{}{}
		}
	}
	return rulesMap
}

// IsNolint reports whether ruleName is silenced for the problem at index.
func (m *Manager) IsNolint(index int, ruleName string) bool {
	rules, ok := m.scopes[index]
	if !ok {
		return false
	}
	if len(rules) == 0 {
		return true
	}
	_, ok = rules[ruleName]
	return ok
}

// Names returns every rule named by some problem, sorted.
func (m *Manager) Names() []string {
	seen := make(map[string]struct{})
	for _, rules := range m.scopes {
		for rule := range rules {
			seen[rule] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for rule := range seen {
		names = append(names, rule)
	}
	sort.Strings(names)
	return names
}
