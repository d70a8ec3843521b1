package enumgen

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch generates once, then watches the source headers and regenerates
// whenever one changes. onRun is invoked after every run with its outcome;
// a failing regeneration is reported there and watching continues. Watch
// returns when ctx is canceled or the watcher breaks.
func Watch(ctx context.Context, cfg *Config, onRun func(*Result, error)) error {
	c := *cfg
	c.applyDefaults()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch directories, not files: editors replace files on save, which
	// drops file-level watches.
	sources := make(map[string]bool, len(c.Sources))
	dirs := make(map[string]bool)
	for _, src := range c.Sources {
		abs, err := filepath.Abs(src)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", src, err)
		}
		sources[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}

	run := func() {
		result, err := Generate(ctx, &c)
		if err != nil {
			c.Logger.Error("generation failed", slog.Any("error", err))
		}
		if onRun != nil {
			onRun(result, err)
		}
	}
	run()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil || !sources[abs] {
				continue
			}
			c.Logger.Info("source changed, regenerating", slog.String("path", event.Name))
			run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher: %w", err)
		}
	}
}
