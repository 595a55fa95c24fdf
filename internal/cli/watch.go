package cli

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// watchedExts are the source files whose changes trigger a new analysis.
var watchedExts = map[string]bool{".py": true, ".go": true, ".mod": true, ".toml": true}

// watchTree watches root and its subdirectories. After a change to a
// source file, and once no further change arrived for debounce, onChange
// is called from the watcher goroutine. Watching stops with ctx.
func watchTree(ctx context.Context, root string, debounce time.Duration, logger *log.Logger, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := addDirs(w, root); err != nil {
		w.Close()
		return err
	}

	go func() {
		defer w.Close()

		timer := time.NewTimer(debounce)
		timer.Stop()

		for {
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if ev.Has(fsnotify.Create) {
					if err := addDirs(w, ev.Name); err != nil {
						logger.Debug("Cannot watch", "path", ev.Name, "err", err)
					}
				}
				if !isWatchedChange(ev) {
					continue
				}
				logger.Debug("Change detected", "path", ev.Name, "op", ev.Op.String())
				timer.Reset(debounce)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logger.Warn("Watcher error", "err", err)
			case <-timer.C:
				onChange()
			}
		}
	}()

	logger.Info("Watching for changes", "root", root)
	return nil
}

// addDirs adds path and every directory below it. Files are ignored.
func addDirs(w *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != path && skipWatchDir(d.Name()) {
			return filepath.SkipDir
		}
		return w.Add(p)
	})
}

func skipWatchDir(name string) bool {
	switch name {
	case "vendor", "node_modules", "__pycache__", "testdata":
		return true
	}
	return strings.HasPrefix(name, ".")
}

func isWatchedChange(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	return watchedExts[filepath.Ext(ev.Name)]
}
