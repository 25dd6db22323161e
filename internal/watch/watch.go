// Package watch reports work tree changes after a quiet period.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/interpretive-systems/contrast/internal/logging"
)

// DefaultDebounce is the quiet period used when none is configured.
const DefaultDebounce = 200 * time.Millisecond

// Watcher watches a work tree recursively plus the git metadata that moves
// HEAD or the index.
type Watcher struct {
	root     string
	debounce time.Duration
	logger   logging.Logger
}

// New returns a Watcher for root. A nil logger discards output.
func New(root string, debounce time.Duration, logger logging.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Watcher{root: root, debounce: debounce, logger: logger}
}

// Run blocks until ctx is done, calling onChange once per burst of events.
// Calls are made from Run's goroutine, so they never overlap.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := addRecursive(fw, w.root); err != nil {
		return fmt.Errorf("watch %s: %w", w.root, err)
	}
	gitDir := filepath.Join(w.root, ".git")
	if info, err := os.Stat(gitDir); err == nil && info.IsDir() {
		if err := fw.Add(gitDir); err != nil {
			w.logger.Warn("watch git dir failed", "path", gitDir, "error", err)
		}
		_ = addRecursive(fw, filepath.Join(gitDir, "refs", "heads"))
	}

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !relevant(w.root, ev.Name) {
				continue
			}
			if ev.Op&fsnotify.Create != 0 && !inGitDir(w.root, ev.Name) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addRecursive(fw, ev.Name)
				}
			}
			w.logger.Debug("work tree event", "path", ev.Name, "op", ev.Op.String())
			timer.Reset(w.debounce)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", "error", err)
		case <-timer.C:
			onChange()
		}
	}
}

// addRecursive adds root and its subdirectories, skipping .git below root.
func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() == ".git" && path != root {
			return filepath.SkipDir
		}
		_ = w.Add(path)
		return nil
	})
}

func inGitDir(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	return first == ".git"
}

// relevant reports whether an event at path can change the comparison.
// Inside .git only HEAD, the index and branch refs matter.
func relevant(root, path string) bool {
	if path == "" {
		return false
	}
	if !inGitDir(root, path) {
		return true
	}
	rel, _ := filepath.Rel(filepath.Join(root, ".git"), path)
	rel = filepath.ToSlash(rel)
	if strings.HasSuffix(rel, ".lock") {
		return false
	}
	switch rel {
	case "HEAD", "index", "packed-refs":
		return true
	}
	return strings.HasPrefix(rel, "refs/heads/")
}
