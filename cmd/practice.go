package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fbf-logic/tutor/internal/canon"
	"github.com/fbf-logic/tutor/internal/problem"
	"github.com/fbf-logic/tutor/internal/session"
	"github.com/fbf-logic/tutor/internal/symbols"
)

var (
	practiceProblems string
	practiceType     string
	practiceNoDelay  bool
)

var (
	titleStyle  = color.New(color.FgYellow, color.Bold)
	promptStyle = color.New(color.FgHiBlue, color.Bold)
)

const practiceHelp = `Type an answer and press enter.
  formulas    any notation: \neg P, ¬P, P \rightarrow Q, P → Q
  arguments   premises separated by commas, then \therefore or ∴
  well formed y or n
  truth table the result column, e.g. 1 1 0 1
Commands: :back :clear :skip :score :tokens :help :quit`

// practiceCmd: tutor practice
var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Work through a problem bank in the terminal",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path := cfg.Problems
		if practiceProblems != "" {
			path = practiceProblems
		}
		bank, err := problem.LoadBank(path)
		if err != nil {
			logger.Error("Error loading problems", zap.String("path", path), zap.Error(err))
			os.Exit(1)
		}
		bank = bank.Filter(problem.Type(practiceType))

		matcher, err := cfg.Matcher(logger)
		if err != nil {
			logger.Error("Error creating matcher", zap.Error(err))
			os.Exit(1)
		}
		sess := session.New(
			session.WithMatcher(matcher),
			session.WithPolicies(cfg.ProblemPolicies()),
			session.WithLogger(logger),
		)

		sleep := time.Sleep
		if practiceNoDelay {
			sleep = func(time.Duration) {}
		}
		if err := runPractice(os.Stdin, cmd.OutOrStdout(), bank, sess, sleep); err != nil {
			logger.Error("Practice stopped", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	practiceCmd.Flags().StringVarP(&practiceProblems, "problems", "p", "", "Problem file (default from config)")
	practiceCmd.Flags().StringVarP(&practiceType, "type", "t", "all", "Only practice problems of this type")
	practiceCmd.Flags().BoolVar(&practiceNoDelay, "no-delay", false, "Move on immediately after a correct answer")
}

type practice struct {
	in    *bufio.Scanner
	out   io.Writer
	bank  *problem.Bank
	sess  *session.Session
	sleep func(time.Duration)
}

var errQuit = errors.New("quit")

// runPractice presents every problem of bank once, in order. A problem is
// left when it is answered correctly or skipped.
func runPractice(in io.Reader, out io.Writer, bank *problem.Bank, sess *session.Session, sleep func(time.Duration)) error {
	if bank.Len() == 0 {
		return errors.New("no problems to practice")
	}
	p := &practice{in: bufio.NewScanner(in), out: out, bank: bank, sess: sess, sleep: sleep}

	fmt.Fprintln(out, practiceHelp)
	bank.Reset()
	for i := 0; i < bank.Len(); i++ {
		prob, _ := bank.Current()
		sess.Load(prob)
		p.show(i, prob)

		err := p.attempt(prob)
		if errors.Is(err, errQuit) || errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		bank.Next()
	}

	p.printScore()
	return nil
}

func (p *practice) show(i int, prob *problem.Problem) {
	fmt.Fprintln(p.out)
	titleStyle.Fprintf(p.out, "[%d/%d] %s\n", i+1, p.bank.Len(), prob.Type.Title())
	fmt.Fprintln(p.out, prob.Text)
	for _, v := range prob.Glossary() {
		hintStyle.Fprintf(p.out, "  %s: %s\n", v.Name, v.Text)
	}

	switch prob.Type {
	case problem.TypeWellFormed:
		fmt.Fprintf(p.out, "  %s\n", canon.Display(prob.Formula))
	case problem.TypeTruthTable:
		vars := prob.VariableNames()
		fmt.Fprintf(p.out, "  %s | %s\n", strings.Join(vars, " "), canon.Display(prob.Formula))
		for r := 0; r < prob.Rows(); r++ {
			cells := make([]string, len(vars))
			for c := range vars {
				cells[c] = fmt.Sprint((r >> (len(vars) - c - 1)) & 1)
			}
			fmt.Fprintf(p.out, "  %s | ?\n", strings.Join(cells, " "))
		}
	}
}

func (p *practice) prompt() {
	if expr := p.sess.Display(); expr != "" {
		promptStyle.Fprintf(p.out, "[%s] > ", expr)
		return
	}
	promptStyle.Fprint(p.out, "> ")
}

func (p *practice) readLine() (string, error) {
	p.prompt()
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// attempt reads lines until the problem is solved or left.
func (p *practice) attempt(prob *problem.Problem) error {
	for {
		line, err := p.readLine()
		if err != nil {
			return err
		}

		switch line {
		case "":
			continue
		case ":quit", ":q":
			return errQuit
		case ":skip":
			hintStyle.Fprintln(p.out, "skipped")
			return nil
		case ":score":
			p.printScore()
			continue
		case ":help":
			fmt.Fprintln(p.out, practiceHelp)
			continue
		case ":tokens":
			if err := runTokens(p.out, symbols.Default(), false); err != nil {
				return err
			}
			continue
		case ":back":
			p.sess.Backspace()
			continue
		case ":clear":
			p.sess.Reset()
			continue
		}

		out, err := p.submit(prob, line)
		if err != nil {
			incorrectStyle.Fprintf(p.out, "%v\n", err)
			continue
		}
		if p.feedback(out) {
			return nil
		}
	}
}

func (p *practice) submit(prob *problem.Problem, line string) (session.Outcome, error) {
	switch prob.Type {
	case problem.TypeTranslate, problem.TypeArgument:
		if err := p.sess.Enter(line); err != nil {
			return session.Outcome{}, err
		}
		return p.sess.Submit()
	case problem.TypeWellFormed:
		switch strings.ToLower(line) {
		case "y", "yes":
			return p.sess.AnswerWellFormed(true)
		case "n", "no":
			return p.sess.AnswerWellFormed(false)
		}
		return session.Outcome{}, errors.New("answer y or n")
	case problem.TypeTruthTable:
		column, err := parseColumn(line, prob.Rows())
		if err != nil {
			return session.Outcome{}, err
		}
		p.sess.Reset()
		for row, v := range column {
			// unset → 1 → 0
			presses := 1
			if v == 0 {
				presses = 2
			}
			for i := 0; i < presses; i++ {
				if err := p.sess.ToggleCell(row); err != nil {
					return session.Outcome{}, err
				}
			}
		}
		return p.sess.SubmitTable()
	default:
		return session.Outcome{}, fmt.Errorf("problem type %q cannot be practiced", prob.Type)
	}
}

// feedback prints the outcome and reports whether to move on.
func (p *practice) feedback(out session.Outcome) bool {
	if out.Correct {
		correctStyle.Fprintln(p.out, "correct")
		p.sleep(out.Advance)
		return true
	}

	incorrectStyle.Fprintf(p.out, "incorrect: %s\n", out.Reason)
	switch t := p.sess.Problem().Type; {
	case out.Cleared:
		hintStyle.Fprintln(p.out, "answer cleared, try again")
	case t == problem.TypeTranslate || t == problem.TypeArgument:
		hintStyle.Fprintln(p.out, "answer kept, edit it with :back or :clear")
	}
	return false
}

func (p *practice) printScore() {
	score := p.sess.Score()
	fmt.Fprintf(p.out, "score: %d correct, %d incorrect\n", score.Correct, score.Incorrect)
}

// parseColumn reads a truth-table column such as "1 1 0 1" or "1101".
func parseColumn(line string, rows int) ([]int, error) {
	var column []int
	for _, r := range line {
		switch r {
		case '0':
			column = append(column, 0)
		case '1':
			column = append(column, 1)
		case ' ', ',', '\t':
		default:
			return nil, fmt.Errorf("unexpected %q in truth table column", r)
		}
	}
	if len(column) != rows {
		return nil, fmt.Errorf("expected %d values, got %d", rows, len(column))
	}
	return column, nil
}
