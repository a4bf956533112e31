package logic

// Row is one line of a truth table.
type Row struct {
	Values []bool
	Result bool
}

// TruthTable lists the value of a formula under every assignment.
//
// Rows follow the order shown to learners: in row r the variable in column c
// has value (r >> (n-c-1)) & 1, so row 0 is all false and the last column
// alternates fastest.
type TruthTable struct {
	Variables []string
	Rows      []Row
}

// NewTruthTable builds the table of f. When vars is empty the formula's own
// variables are used in sorted order.
func NewTruthTable(f Formula, vars ...string) *TruthTable {
	if len(vars) == 0 {
		vars = Variables(f)
	}
	t := &TruthTable{
		Variables: append([]string(nil), vars...),
		Rows:      make([]Row, 1<<len(vars)),
	}
	for r := range t.Rows {
		env := Assignment(vars, r)
		values := make([]bool, len(vars))
		for c, name := range vars {
			values[c] = env[name]
		}
		t.Rows[r] = Row{Values: values, Result: Eval(f, env)}
	}
	return t
}

// Assignment returns the environment of row r for the given variables.
func Assignment(vars []string, r int) Env {
	n := len(vars)
	env := make(Env, n)
	for c, name := range vars {
		env[name] = (r>>(n-c-1))&1 == 1
	}
	return env
}

// Column returns the result column as 0/1 values.
func (t *TruthTable) Column() []int {
	col := make([]int, len(t.Rows))
	for i, row := range t.Rows {
		if row.Result {
			col[i] = 1
		}
	}
	return col
}

// Matches reports whether cells equal the result column. Any other value
// than 0 or 1 (an unset cell) never matches.
func (t *TruthTable) Matches(cells []int) bool {
	if len(cells) != len(t.Rows) {
		return false
	}
	for i, want := range t.Column() {
		if cells[i] != want {
			return false
		}
	}
	return true
}
