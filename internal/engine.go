package internal

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/fbf-logic/tutor/internal/lints"
	"github.com/fbf-logic/tutor/internal/nolint"
	"github.com/fbf-logic/tutor/internal/problem"
	tt "github.com/fbf-logic/tutor/internal/types"
)

// Engine manages the linting process.
type Engine struct {
	ignoredRules map[string]bool
	rules        map[string]LintRule
	cache        *Cache
	logger       *zap.Logger
}

// NewEngine creates a new lint engine.
func NewEngine(rules map[string]tt.ConfigRule) (*Engine, error) {
	engine := &Engine{logger: zap.NewNop()}
	if err := engine.applyRules(rules); err != nil {
		return nil, err
	}

	return engine, nil
}

// Define the ruleConstructor type
type ruleConstructor func() LintRule

// Define the ruleMap type
type ruleMap map[string]ruleConstructor

// Create a map to hold the mappings of rule names to their constructors
var allRuleConstructors = ruleMap{
	"unknown-type":         NewUnknownTypeRule,
	"missing-solution":     NewMissingSolutionRule,
	"malformed-solution":   NewMalformedSolutionRule,
	"unknown-symbol":       NewUnknownSymbolRule,
	"duplicate-solution":   NewDuplicateSolutionRule,
	"wff-mismatch":         NewWellFormedMismatchRule,
	"truth-table-mismatch": NewTruthTableMismatchRule,
	"invalid-argument":     NewInvalidArgumentRule,
}

// RuleNames lists every known rule in alphabetical order.
func RuleNames() []string {
	names := make([]string, 0, len(allRuleConstructors))
	for name := range allRuleConstructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Engine) applyRules(rules map[string]tt.ConfigRule) error {
	e.rules = make(map[string]LintRule)
	e.registerDefaultRules()

	// Iterate over the rules and apply severity
	for key, rule := range rules {
		r := e.findRule(key)
		if r == nil {
			if allRuleConstructors[key] == nil {
				return fmt.Errorf("unknown rule %q in configuration", key)
			}
			r = allRuleConstructors[key]()
			e.rules[key] = r
		}
		if rule.Severity == tt.SeverityOff {
			e.IgnoreRule(key)
		}
		r.SetSeverity(rule.Severity)
	}
	return nil
}

func (e *Engine) registerDefaultRules() {
	// iterate over allRuleConstructors and add them to the rules map if severity is not off
	for key, newRuleCstr := range allRuleConstructors {
		newRule := newRuleCstr()
		if newRule.Severity() != tt.SeverityOff {
			e.rules[key] = newRule
		}
	}
}

func (e *Engine) findRule(name string) LintRule {
	if rule, ok := e.rules[name]; ok {
		return rule
	}
	return nil
}

// SetLogger sets the logger used for rule failures.
func (e *Engine) SetLogger(logger *zap.Logger) {
	if logger != nil {
		e.logger = logger
	}
}

// ruleSet describes the active rules and their severities, e.g.
// "duplicate-solution=INFO,unknown-type=ERROR".
func (e *Engine) ruleSet() string {
	active := make([]string, 0, len(e.rules))
	for name, rule := range e.rules {
		if e.ignoredRules[name] {
			continue
		}
		active = append(active, name+"="+rule.Severity().String())
	}
	sort.Strings(active)
	return strings.Join(active, ",")
}

// SetCache enables the per-bank result cache.
func (e *Engine) SetCache(cache *Cache) {
	e.cache = cache
}

func (e *Engine) IgnoreRule(rule string) {
	if e.ignoredRules == nil {
		e.ignoredRules = make(map[string]bool)
	}
	e.ignoredRules[rule] = true
}

// Run applies all lint rules to the problem file and returns a slice of Issues.
func (e *Engine) Run(filename string) ([]tt.Issue, error) {
	if e.cache != nil {
		if issues, ok := e.cache.Get(filename, e.ruleSet()); ok {
			return issues, nil
		}
	}

	problems, err := problem.Load(filename)
	if err != nil {
		return nil, err
	}
	issues := e.check(filename, problems)

	if e.cache != nil {
		if err := e.cache.Set(filename, e.ruleSet(), issues); err != nil {
			e.logger.Warn("Error caching lint result", zap.String("file", filename), zap.Error(err))
		}
	}
	return issues, nil
}

// RunSource applies all lint rules to an in-memory problem bank.
func (e *Engine) RunSource(source []byte, format problem.Format) ([]tt.Issue, error) {
	problems, err := problem.Decode(source, format)
	if err != nil {
		return nil, fmt.Errorf("error parsing content: %w", err)
	}
	return e.check("", problems), nil
}

func (e *Engine) check(filename string, problems []*problem.Problem) []tt.Issue {
	var wg sync.WaitGroup
	var mu sync.Mutex

	nolintManager := nolint.Parse(problems)
	for _, name := range nolintManager.Names() {
		if allRuleConstructors[name] == nil {
			e.logger.Warn("Unknown rule in nolint", zap.String("file", filename), zap.String("rule", name))
		}
	}

	var allIssues []tt.Issue
	for _, rule := range e.rules {
		if e.ignoredRules[rule.Name()] {
			continue
		}
		wg.Add(1)
		go func(r LintRule) {
			defer wg.Done()
			var found []tt.Issue
			for i, p := range problems {
				issues, err := r.Check(lints.Target{Filename: filename, Index: i, Problem: p})
				if err != nil {
					e.logger.Warn("Rule failed",
						zap.String("rule", r.Name()),
						zap.String("problem", p.Label(i)),
						zap.Error(err))
					continue
				}
				for _, issue := range issues {
					if !nolintManager.IsNolint(i, r.Name()) {
						found = append(found, issue)
					}
				}
			}

			mu.Lock()
			allIssues = append(allIssues, found...)
			mu.Unlock()
		}(rule)
	}
	wg.Wait()

	sortIssues(allIssues)
	return allIssues
}

func sortIssues(issues []tt.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		a, b := issues[i], issues[j]
		if a.Index != b.Index {
			return a.Index < b.Index
		}
		if a.Field != b.Field {
			return a.Field < b.Field
		}
		if a.Start != b.Start {
			return a.Start < b.Start
		}
		return a.Rule < b.Rule
	})
}
