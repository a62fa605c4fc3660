package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/erraggy/hsrgen/parser"
)

// DefaultDebounce is how long Watch waits after the last change before
// regenerating.
const DefaultDebounce = 200 * time.Millisecond

// Watch calls fn each time the file at path changes, until ctx is done.
// Bursts of events within debounce collapse into one call. Errors from fn are
// logged and do not stop the watch.
//
// The parent directory is watched rather than the file so that editors which
// save by renaming a temporary file over the original keep triggering.
func Watch(ctx context.Context, path string, debounce time.Duration, fn func() error, logger parser.Logger) error {
	log := parser.OrNop(logger)

	target, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			log.Debug("contract changed", "path", ev.Name, "op", ev.Op.String())
			fire = time.After(debounce)
		case <-fire:
			fire = nil
			if err := fn(); err != nil {
				log.Error("regeneration failed", "error", err)
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("watch error", "error", err)
		}
	}
}
