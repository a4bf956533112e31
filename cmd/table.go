package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fbf-logic/tutor/internal/canon"
	"github.com/fbf-logic/tutor/internal/logic"
)

var tableVars []string

// tableCmd: tutor table <formula>
var tableCmd = &cobra.Command{
	Use:   "table <formula>",
	Short: "Print the truth table of a formula",
	Long: `Prints the truth table of a formula. Rows start with every variable
false and the last column alternates fastest.

Example) tutor table 'P \to Q' --vars P,Q`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTable(cmd.OutOrStdout(), args[0], tableVars); err != nil {
			logger.Error("Error building truth table", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	tableCmd.Flags().StringSliceVar(&tableVars, "vars", nil, "Column order of the variables (default: sorted)")
}

func runTable(w io.Writer, raw string, vars []string) error {
	f, err := logic.Parse(raw)
	if err != nil {
		return err
	}
	for _, v := range logic.Variables(f) {
		if len(vars) > 0 && !slices.Contains(vars, v) {
			return fmt.Errorf("formula uses %s, which is missing from --vars", v)
		}
	}

	table := logic.NewTruthTable(f, vars...)
	header := strings.Join(table.Variables, " ")
	fmt.Fprintf(w, "%s | %s\n", header, canon.Display(f.String()))
	for _, row := range table.Rows {
		cells := make([]string, len(row.Values))
		for i, v := range row.Values {
			cells[i] = bit(v)
		}
		fmt.Fprintf(w, "%s | ", strings.Join(cells, " "))
		if row.Result {
			correctStyle.Fprintln(w, bit(row.Result))
		} else {
			incorrectStyle.Fprintln(w, bit(row.Result))
		}
	}
	return nil
}

func bit(v bool) string {
	if v {
		return "1"
	}
	return "0"
}
