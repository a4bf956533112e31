package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fbf-logic/tutor/formatter"
	"github.com/fbf-logic/tutor/internal"
	tt "github.com/fbf-logic/tutor/internal/types"
	"github.com/fbf-logic/tutor/lint"
)

var (
	ignoreRules    string
	lintJsonOutput bool
	outPath        string
	watchMode      bool
	cacheDir       string
)

// lintCmd: tutor lint [paths...]
var lintCmd = &cobra.Command{
	Use:   "lint [paths...]",
	Short: "Check problem banks for data and logic errors",
	Long: `Lints the given problem files or directories. Without arguments the
problem bank named in the configuration is linted.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 {
			args = []string{cfg.Problems}
		}

		engine, err := internal.NewEngine(cfg.Rules)
		if err != nil {
			logger.Fatal("Failed to initialize lint engine", zap.Error(err))
		}
		engine.SetLogger(logger)

		if ignoreRules != "" {
			rules := strings.Split(ignoreRules, ",")
			for _, rule := range rules {
				engine.IgnoreRule(strings.TrimSpace(rule))
			}
		}

		if cacheDir != "" {
			cache, err := internal.NewCache(cacheDir, cfgFile)
			if err != nil {
				logger.Fatal("Failed to open lint cache", zap.Error(err))
			}
			engine.SetCache(cache)
		}

		if watchMode {
			runWatchLintProcess(engine, args)
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		runNormalLintProcess(ctx, cmd.OutOrStdout(), logger, engine, args, lintJsonOutput, outPath)
	},
}

func init() {
	lintCmd.Flags().StringVar(&ignoreRules, "ignore", "", "Comma-separated list of lint rules to ignore")
	lintCmd.Flags().BoolVar(&lintJsonOutput, "json", false, "Output issues in JSON format")
	lintCmd.Flags().StringVarP(&outPath, "output", "o", "", "Output path (when using JSON)")
	lintCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Re-lint problem files whenever they change")
	lintCmd.Flags().StringVar(&cacheDir, "cache", "", "Directory for cached lint results")
}

func runNormalLintProcess(ctx context.Context, w io.Writer, logger *zap.Logger, engine lint.LintEngine, paths []string, isJson bool, jsonOutput string) {
	issues, err := lint.ProcessFiles(ctx, logger, engine, paths, lint.ProcessFile)
	if err != nil {
		logger.Error("Error processing files", zap.Error(err))
		os.Exit(1)
	}

	if err := printIssues(w, issues, isJson, jsonOutput); err != nil {
		logger.Error("Error printing issues", zap.Error(err))
		os.Exit(1)
	}

	if hasErrors(issues) {
		os.Exit(1)
	}
}

func runWatchLintProcess(engine *internal.Engine, paths []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	report := func(filename string, issues []tt.Issue) {
		if len(issues) == 0 {
			correctStyle.Printf("%s: no issues\n", filename)
			return
		}
		fmt.Print(formatter.GenerateFormattedIssue(issues))
	}

	watcher, err := internal.NewWatcher(engine, paths, report, logger)
	if err != nil {
		logger.Fatal("Failed to start watcher", zap.Error(err))
	}
	fmt.Printf("Watching %s for changes (Ctrl-C to stop)\n", strings.Join(paths, ", "))
	if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("Watcher stopped", zap.Error(err))
		os.Exit(1)
	}
}

// hasErrors reports whether any issue has error severity. Warnings and
// infos do not fail the run.
func hasErrors(issues []tt.Issue) bool {
	for _, issue := range issues {
		if issue.Severity == tt.SeverityError {
			return true
		}
	}
	return false
}

func printIssues(w io.Writer, issues []tt.Issue, isJson bool, jsonOutput string) error {
	issuesByFile := make(map[string][]tt.Issue)
	for _, issue := range issues {
		issuesByFile[issue.Filename] = append(issuesByFile[issue.Filename], issue)
	}

	sortedFiles := make([]string, 0, len(issuesByFile))
	for filename := range issuesByFile {
		sortedFiles = append(sortedFiles, filename)
	}
	sort.Strings(sortedFiles)

	if !isJson {
		// text output
		for _, filename := range sortedFiles {
			fmt.Fprintln(w, formatter.GenerateFormattedIssue(issuesByFile[filename]))
		}
		return nil
	}

	// JSON output
	d, err := json.Marshal(issuesByFile)
	if err != nil {
		return fmt.Errorf("error marshalling issues to JSON: %w", err)
	}
	if jsonOutput == "" {
		_, err = fmt.Fprintln(w, string(d))
		return err
	}

	f, err := os.Create(jsonOutput)
	if err != nil {
		return fmt.Errorf("error creating JSON output file: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(d); err != nil {
		return fmt.Errorf("error writing JSON output file: %w", err)
	}
	return nil
}
