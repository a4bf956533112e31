package problem

// Bank is an ordered set of problems with a cursor.
//
// The cursor is not synchronized. Readers that only call Len, At and
// Problems may share a Bank.
type Bank struct {
	problems []*Problem
	index    int
}

// NewBank creates a bank positioned on the first problem.
func NewBank(problems []*Problem) *Bank {
	return &Bank{problems: problems}
}

// LoadBank reads a problem file into a bank.
func LoadBank(path string) (*Bank, error) {
	problems, err := Load(path)
	if err != nil {
		return nil, err
	}
	return NewBank(problems), nil
}

func (b *Bank) Len() int {
	return len(b.problems)
}

// Index returns the position of the current problem.
func (b *Bank) Index() int {
	return b.index
}

// Problems returns the problems in order.
func (b *Bank) Problems() []*Problem {
	return append([]*Problem(nil), b.problems...)
}

// At returns the problem at position i.
func (b *Bank) At(i int) (*Problem, bool) {
	if i < 0 || i >= len(b.problems) {
		return nil, false
	}
	return b.problems[i], true
}

// Current returns the problem under the cursor. It is false for an empty bank.
func (b *Bank) Current() (*Problem, bool) {
	return b.At(b.index)
}

// Next advances the cursor, wrapping after the last problem.
func (b *Bank) Next() (*Problem, bool) {
	if len(b.problems) == 0 {
		return nil, false
	}
	b.index = (b.index + 1) % len(b.problems)
	return b.Current()
}

// Reset moves the cursor back to the first problem.
func (b *Bank) Reset() {
	b.index = 0
}

// Filter returns a new bank with the problems of type t.
// The empty type and "all" keep every problem.
func (b *Bank) Filter(t Type) *Bank {
	if t == "" || t == "all" {
		return NewBank(b.Problems())
	}
	var out []*Problem
	for _, p := range b.problems {
		if p.Type == t {
			out = append(out, p)
		}
	}
	return NewBank(out)
}
