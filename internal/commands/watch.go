package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pentops/log.go/log"
)

// debounce is how long the watcher waits for writes to settle.
const debounce = 200 * time.Millisecond

// watch calls run whenever one of paths is written or replaced, until ctx
// is done. Errors of run are logged and do not stop the watch.
func watch(ctx context.Context, paths []string, run func(context.Context) error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	files := make([]string, 0, len(paths))
	for _, p := range paths {
		p = filepath.Clean(p)
		files = append(files, p)
		// Editors replace files, so the directory is watched.
		if err := w.Add(filepath.Dir(p)); err != nil {
			return fmt.Errorf("watching %s: %w", p, err)
		}
	}

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !slices.Contains(files, filepath.Clean(ev.Name)) || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			log.WithField(ctx, "file", ev.Name).Debug("change detected")
			pending = time.After(debounce)
		case <-pending:
			pending = nil
			if err := run(ctx); err != nil {
				log.WithError(ctx, err).Error("regenerating")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.WithError(ctx, err).Error("watching files")
		}
	}
}
