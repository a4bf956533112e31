package logic

import "fmt"

// VerificationResult represents the result of an equivalence check.
type VerificationResult int

const (
	_ VerificationResult = iota
	// Equivalent indicates the two sides agree under every assignment.
	Equivalent
	// NotEquivalent indicates a counterexample exists.
	NotEquivalent
	// Unknown indicates equivalence cannot be determined.
	Unknown
)

func (r VerificationResult) String() string {
	switch r {
	case Equivalent:
		return "Equivalent"
	case NotEquivalent:
		return "NotEquivalent"
	case Unknown:
		return "Unknown"
	default:
		return "?"
	}
}

// ReasonCode provides a reason for the verification result.
type ReasonCode int

const (
	ReasonNone ReasonCode = iota
	ReasonSameTable
	ReasonUnsatisfiableMiter
	ReasonCounterexample
	ReasonPremiseCount
	ReasonPremiseMismatch
	ReasonConclusionMismatch
	ReasonSolverIncomplete
)

func (r ReasonCode) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonSameTable:
		return "same truth table"
	case ReasonUnsatisfiableMiter:
		return "no distinguishing assignment"
	case ReasonCounterexample:
		return "distinguishing assignment found"
	case ReasonPremiseCount:
		return "different number of premises"
	case ReasonPremiseMismatch:
		return "premises do not match"
	case ReasonConclusionMismatch:
		return "conclusions are not equivalent"
	case ReasonSolverIncomplete:
		return "solver gave up"
	default:
		return "unknown"
	}
}

// VerificationReport provides detailed information about a check.
type VerificationReport struct {
	Result         VerificationResult
	Reason         ReasonCode
	Detail         string
	Counterexample Env
}

// Config controls how equivalence is decided.
type Config struct {
	// MaxTableVariables is the largest variable count decided by truth-table
	// enumeration. Larger formulas go to the SAT solver.
	MaxTableVariables int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{MaxTableVariables: 10}
}

// Verifier checks formulas and arguments for logical equivalence.
type Verifier struct {
	config Config
}

// NewVerifier creates a verifier. A non-positive MaxTableVariables always
// uses the solver.
func NewVerifier(config Config) *Verifier {
	return &Verifier{config: config}
}

// CheckEquivalence decides whether a and b have the same truth value under
// every assignment of their combined variables.
func (v *Verifier) CheckEquivalence(a, b Formula) VerificationReport {
	vars := Variables(a, b)
	if len(vars) <= v.config.MaxTableVariables {
		for r := 0; r < 1<<len(vars); r++ {
			env := Assignment(vars, r)
			if Eval(a, env) != Eval(b, env) {
				return VerificationReport{
					Result:         NotEquivalent,
					Reason:         ReasonCounterexample,
					Detail:         env.String(),
					Counterexample: env,
				}
			}
		}
		return VerificationReport{Result: Equivalent, Reason: ReasonSameTable}
	}

	same, env, err := equivalentSAT(a, b)
	switch {
	case err != nil:
		return VerificationReport{Result: Unknown, Reason: ReasonSolverIncomplete, Detail: err.Error()}
	case same:
		return VerificationReport{Result: Equivalent, Reason: ReasonUnsatisfiableMiter}
	default:
		return VerificationReport{
			Result:         NotEquivalent,
			Reason:         ReasonCounterexample,
			Detail:         env.String(),
			Counterexample: env,
		}
	}
}

// Equivalent reports whether a and b are equivalent. Unknown counts as false.
func (v *Verifier) Equivalent(a, b Formula) bool {
	return v.CheckEquivalence(a, b).Result == Equivalent
}

// CheckArguments compares two arguments. They match when the conclusions are
// equivalent and the premises pair up one-to-one with equivalent partners,
// in any order.
func (v *Verifier) CheckArguments(a, b *Argument) VerificationReport {
	if len(a.Premises) != len(b.Premises) {
		return VerificationReport{
			Result: NotEquivalent,
			Reason: ReasonPremiseCount,
			Detail: fmt.Sprintf("%d vs %d", len(a.Premises), len(b.Premises)),
		}
	}

	report := v.CheckEquivalence(a.Conclusion, b.Conclusion)
	if report.Result != Equivalent {
		if report.Result == NotEquivalent {
			report.Reason = ReasonConclusionMismatch
		}
		return report
	}

	// edges[i] lists the premises of b equivalent to premise i of a
	edges := make([][]int, len(a.Premises))
	for i, pa := range a.Premises {
		for j, pb := range b.Premises {
			r := v.CheckEquivalence(pa, pb)
			if r.Result == Unknown {
				return r
			}
			if r.Result == Equivalent {
				edges[i] = append(edges[i], j)
			}
		}
	}
	if !perfectMatching(edges, len(b.Premises)) {
		return VerificationReport{Result: NotEquivalent, Reason: ReasonPremiseMismatch}
	}
	return VerificationReport{Result: Equivalent, Reason: ReasonSameTable}
}

// perfectMatching runs augmenting paths over the bipartite premise graph.
func perfectMatching(edges [][]int, n int) bool {
	owner := make([]int, n)
	for j := range owner {
		owner[j] = -1
	}

	var augment func(i int, seen []bool) bool
	augment = func(i int, seen []bool) bool {
		for _, j := range edges[i] {
			if seen[j] {
				continue
			}
			seen[j] = true
			if owner[j] < 0 || augment(owner[j], seen) {
				owner[j] = i
				return true
			}
		}
		return false
	}

	for i := range edges {
		if !augment(i, make([]bool, n)) {
			return false
		}
	}
	return true
}

var defaultVerifier = NewVerifier(DefaultConfig())

// EquivalentFormulas reports whether a and b are equivalent using the
// default configuration.
func EquivalentFormulas(a, b Formula) bool {
	return defaultVerifier.Equivalent(a, b)
}
