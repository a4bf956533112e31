package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fbf-logic/tutor/internal/symbols"
)

var tokensJSON bool

var groupStyle = color.New(color.FgCyan, color.Bold)

// tokensCmd: tutor tokens
var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "List the selectable symbols by group",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runTokens(cmd.OutOrStdout(), symbols.Default(), tokensJSON); err != nil {
			logger.Error("Error listing tokens", zap.Error(err))
			os.Exit(1)
		}
	},
}

func init() {
	tokensCmd.Flags().BoolVar(&tokensJSON, "json", false, "Output the tokens in JSON format")
}

func runTokens(w io.Writer, alphabet *symbols.Alphabet, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(alphabet.ByGroup())
	}

	for _, g := range alphabet.Groups() {
		groupStyle.Fprintln(w, g)
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		for _, tok := range alphabet.Tokens(g) {
			fmt.Fprintf(tw, "  %s\t%s\t%s\n", tok.ID, tok.Glyph(), tok.Canonical)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	return nil
}
