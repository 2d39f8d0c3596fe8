package stylesheet

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/dmitrymomot/homedata/pkg/logger"
)

// Watcher rebuilds the stylesheet whenever a source file changes.
type Watcher struct {
	builder  *Builder
	dir      string
	debounce time.Duration
	onBuild  func(error)
}

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithBuildHook is called after every rebuild with its result.
func WithBuildHook(fn func(error)) WatchOption {
	return func(w *Watcher) { w.onBuild = fn }
}

// NewWatcher watches the builder's source directory.
func NewWatcher(b *Builder, opts ...WatchOption) *Watcher {
	w := &Watcher{
		builder:  b,
		dir:      b.cfg.SourceDir,
		debounce: b.cfg.Debounce,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run watches until ctx is cancelled. Bursts of changes collapse into one
// rebuild; build failures are logged and watching continues.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Join(ErrWatchFailed, err)
	}
	defer fw.Close()

	if err := w.addTree(fw, w.dir); err != nil {
		return errors.Join(ErrWatchFailed, err)
	}

	log := w.builder.log
	log.InfoContext(ctx, "watching stylesheets", slog.String("dir", w.dir))

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(fw, ev.Name); err != nil {
						log.WarnContext(ctx, "watch new directory", logger.Error(err))
					}
					continue
				}
			}
			if !isSource(ev) {
				continue
			}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.WarnContext(ctx, "watcher error", logger.Error(err))

		case <-timer.C:
			err := w.builder.Build(ctx)
			if err != nil && ctx.Err() == nil {
				log.ErrorContext(ctx, "stylesheet build failed", logger.Error(err))
			}
			if w.onBuild != nil {
				w.onBuild(err)
			}
		}
	}
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

func isSource(ev fsnotify.Event) bool {
	if !strings.EqualFold(filepath.Ext(ev.Name), ".less") {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename)
}
