package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/fbf-logic/tutor/internal/problem"
	tt "github.com/fbf-logic/tutor/internal/types"
)

// settle is how long to wait after a write so that editors saving in
// several steps trigger a single run.
const settle = 100 * time.Millisecond

// ReportFunc receives the issues of a re-linted file.
type ReportFunc func(filename string, issues []tt.Issue)

// Watcher re-lints problem files when they are written.
type Watcher struct {
	engine  *Engine
	watcher *fsnotify.Watcher
	report  ReportFunc
	logger  *zap.Logger
}

// NewWatcher watches every directory under the given paths. A path naming
// a file watches its directory.
func NewWatcher(engine *Engine, paths []string, report ReportFunc, logger *zap.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("error accessing %s: %w", path, err)
		}
		if !info.IsDir() {
			path = filepath.Dir(path)
		}
		err = filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() {
				return fw.Add(p)
			}
			return nil
		})
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	return &Watcher{engine: engine, watcher: fw, report: report, logger: logger}, nil
}

// Run processes file events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFileEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("Watcher error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if !problem.IsProblemFile(event.Name) {
		return
	}

	time.Sleep(settle)
	issues, err := w.engine.Run(event.Name)
	if err != nil {
		w.logger.Error("Error linting file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	w.logger.Debug("Re-linted file", zap.String("file", event.Name), zap.Int("issues", len(issues)))
	if w.report != nil {
		w.report(event.Name, issues)
	}
}
