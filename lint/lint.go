package lint

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"

	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"

	"github.com/fbf-logic/tutor/internal"
	"github.com/fbf-logic/tutor/internal/config"
	"github.com/fbf-logic/tutor/internal/problem"
	tt "github.com/fbf-logic/tutor/internal/types"
)

type LintEngine interface {
	Run(filePath string) ([]tt.Issue, error)
	RunSource(source []byte, format problem.Format) ([]tt.Issue, error)
	IgnoreRule(rule string)
}

// ProgressOutput receives the progress bar drawn while a directory is
// processed. Set it to io.Discard to hide the bar.
var ProgressOutput io.Writer = os.Stderr

// New creates an engine with the rule severities of the configuration
// file. A missing file yields the default severities.
func New(configurationPath string) (*internal.Engine, error) {
	cfg, err := config.Load(configurationPath)
	if err != nil {
		return nil, err
	}

	return internal.NewEngine(cfg.Rules)
}

func ProcessSources(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	sources [][]byte,
	processor func(LintEngine, []byte) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for i, source := range sources {
		if err := ctx.Err(); err != nil {
			return allIssues, err
		}
		issues, err := processor(engine, source)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing source", zap.Int("source", i), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

func ProcessFiles(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	paths []string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	var allIssues []tt.Issue
	for _, path := range paths {
		issues, err := ProcessPath(ctx, logger, engine, path, processor)
		if err != nil {
			if logger != nil {
				logger.Error("Error processing path", zap.String("path", path), zap.Error(err))
			}
			return nil, err
		}
		allIssues = append(allIssues, issues...)
	}

	return allIssues, nil
}

type fileResult struct {
	filename string
	issues   []tt.Issue
	err      error
}

// ProcessPath lints a single problem file, or every problem file below a
// directory using one worker per CPU. Issues of files that fail are
// dropped and the first failure is returned along with the rest.
func ProcessPath(
	ctx context.Context,
	logger *zap.Logger,
	engine LintEngine,
	path string,
	processor func(LintEngine, string) ([]tt.Issue, error),
) ([]tt.Issue, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing %s: %w", path, err)
	}

	issues := []tt.Issue{}
	if !info.IsDir() {
		if !problem.IsProblemFile(path) {
			return issues, nil
		}
		fileIssues, err := processor(engine, path)
		if err != nil {
			return issues, err
		}
		return append(issues, fileIssues...), nil
	}

	files, err := collectProblemFiles(path)
	if err != nil {
		return nil, err
	}

	results := make(chan fileResult, len(files))

	// limit the number of workers
	maxWorkers := runtime.NumCPU()
	sem := make(chan struct{}, maxWorkers)

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetWriter(ProgressOutput),
		progressbar.OptionSetDescription(path),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}))

	var wg sync.WaitGroup
	var cancelled error

	// for each file, run a goroutine
dispatch:
	for _, filePath := range files {
		if err := ctx.Err(); err != nil {
			cancelled = err
			break
		}
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break dispatch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(fp string) {
			defer wg.Done()
			defer func() { <-sem }()

			fileIssues, err := processor(engine, fp)
			if err != nil && logger != nil {
				logger.Error("Error processing file", zap.String("file", fp), zap.Error(err))
			}
			results <- fileResult{filename: fp, issues: fileIssues, err: err}
			_ = bar.Add(1)
		}(filePath)
	}

	wg.Wait()
	close(results)
	_ = bar.Finish()

	// collect all results
	var collected []fileResult
	for result := range results {
		collected = append(collected, result)
	}
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].filename < collected[j].filename
	})

	var firstErr error
	for _, result := range collected {
		if result.err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", result.filename, result.err)
			}
			continue
		}
		issues = append(issues, result.issues...)
	}

	if cancelled != nil {
		return issues, cancelled
	}
	return issues, firstErr
}

func collectProblemFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(filePath string, fileInfo os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !fileInfo.IsDir() && problem.IsProblemFile(filePath) {
			files = append(files, filePath)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking %s: %w", root, err)
	}
	return files, nil
}

func ProcessFile(engine LintEngine, filePath string) ([]tt.Issue, error) {
	return engine.Run(filePath)
}

// ProcessSource lints a bank read from memory. Content starting with a
// bracket or brace is decoded as JSON, anything else as YAML.
func ProcessSource(engine LintEngine, source []byte) ([]tt.Issue, error) {
	return engine.RunSource(source, sourceFormat(source))
}

func sourceFormat(source []byte) problem.Format {
	trimmed := bytes.TrimSpace(source)
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return problem.FormatJSON
	}
	return problem.FormatYAML
}
