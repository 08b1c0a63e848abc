package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"charm.land/log/v2"
	"github.com/fsnotify/fsnotify"
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "config",
})

// SetLogger replaces the package logger.
func SetLogger(l *log.Logger) {
	logger = l
}

// Watch reloads path whenever it changes and passes the result to fn until
// ctx is cancelled. Invalid files are reported to fn with a nil config so the
// caller can keep its current settings.
//
// The parent directory is watched because editors often replace the file
// instead of writing it in place.
func Watch(ctx context.Context, path string, fn func(*Config, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	name := filepath.Clean(path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := Load(path)
			if err != nil {
				logger.Warn("config reload failed", "path", path, "err", err)
			} else {
				logger.Info("config reloaded", "path", path)
			}
			fn(cfg, err)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("config watcher", "err", err)
		}
	}
}
