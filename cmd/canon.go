package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fbf-logic/tutor/internal/canon"
)

var canonFormat string

// canonCmd: tutor canon [expressions...]
var canonCmd = &cobra.Command{
	Use:   "canon [expressions...]",
	Short: "Print the canonical form of expressions",
	Long: `Prints the canonical form of each expression. Without arguments the
expressions are read from standard input, one per line.

Example) tutor canon '¬ P' 'P \rightarrow Q'`,
	Run: func(cmd *cobra.Command, args []string) {
		var in io.Reader
		if len(args) == 0 {
			in = os.Stdin
		}
		if err := runCanon(cmd.OutOrStdout(), in, args, canonFormat); err != nil {
			logger.Error("Error canonicalizing", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	canonCmd.Flags().StringVarP(&canonFormat, "format", "f", "canonical", "Output format: canonical, latex or display")
}

func renderer(format string) (func(string) string, error) {
	switch strings.ToLower(format) {
	case "canonical", "":
		return canon.Canonicalize, nil
	case "latex":
		return canon.Latex, nil
	case "display":
		return canon.Display, nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}

func runCanon(w io.Writer, in io.Reader, exprs []string, format string) error {
	render, err := renderer(format)
	if err != nil {
		return err
	}

	if in != nil {
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			fmt.Fprintln(w, render(scanner.Text()))
		}
		return scanner.Err()
	}

	for _, expr := range exprs {
		fmt.Fprintln(w, render(expr))
	}
	return nil
}
