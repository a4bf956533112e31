package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fbf-logic/tutor/internal/answer"
)

var (
	checkMode string
	checkJSON bool
)

var (
	correctStyle   = color.New(color.FgGreen, color.Bold)
	incorrectStyle = color.New(color.FgRed, color.Bold)
	hintStyle      = color.New(color.FgHiBlack)
)

// checkCmd: tutor check <answer> [accepted...]
var checkCmd = &cobra.Command{
	Use:   "check <answer> [accepted...]",
	Short: "Check an answer against one or more accepted solutions",
	Long: `Compares the answer with every accepted solution after canonicalization.
The command exits with status 1 when the answer is not accepted.

Example) tutor check 'Q ∧ P' 'P \land Q' 'Q \land P'`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		settings := cfg
		if checkMode != "" {
			settings.Match.Mode = checkMode
		}
		matcher, err := settings.Matcher(logger)
		if err != nil {
			logger.Error("Error creating matcher", zap.Error(err))
			os.Exit(1)
		}

		correct, err := runCheck(cmd.OutOrStdout(), matcher, args[0], answer.Solutions(args[1:]), checkJSON)
		if err != nil {
			logger.Error("Error writing result", zap.Error(err))
			os.Exit(1)
		}
		if !correct {
			os.Exit(1)
		}
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkMode, "mode", "", "Matching mode: textual or semantic (default from config)")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Output the verdict in JSON format")
}

type checkOutput struct {
	Correct   bool     `json:"correct"`
	Canonical string   `json:"canonical"`
	Accepted  []string `json:"accepted"`
	Matched   int      `json:"matched"`
	Mode      string   `json:"mode"`
	Reason    string   `json:"reason"`
}

func runCheck(w io.Writer, matcher *answer.Matcher, candidate string, accepted answer.Solutions, asJSON bool) (bool, error) {
	v := matcher.Check(candidate, accepted)

	if asJSON {
		d, err := json.Marshal(checkOutput{
			Correct:   v.Correct,
			Canonical: v.Candidate,
			Accepted:  v.Accepted,
			Matched:   v.Matched,
			Mode:      v.Mode.String(),
			Reason:    v.Reason,
		})
		if err != nil {
			return v.Correct, err
		}
		_, err = fmt.Fprintln(w, string(d))
		return v.Correct, err
	}

	if v.Correct {
		correctStyle.Fprint(w, "correct")
	} else {
		incorrectStyle.Fprint(w, "incorrect")
	}
	fmt.Fprintf(w, " %s\n", v.Candidate)
	hintStyle.Fprintf(w, "  %s\n", v.Reason)
	return v.Correct, nil
}
