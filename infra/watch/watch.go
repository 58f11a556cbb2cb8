// Package watch reloads the catalog when its backing files change.
package watch

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/kilianp07/sectionplanner/core/logger"
)

// DefaultDebounce absorbs the burst of events editors emit for one save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher calls Reload once per burst of changes to any of its files.
type Watcher struct {
	Paths    []string
	Reload   func(ctx context.Context) error
	Debounce time.Duration
	Log      logger.Logger
}

// Run watches the parent directories of Paths until ctx is canceled.
// Directories are watched instead of files so that editors replacing the
// file by rename are still seen.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = fw.Close() }()

	files := make(map[string]struct{}, len(w.Paths))
	dirs := make(map[string]struct{})
	for _, p := range w.Paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		files[abs] = struct{}{}
		dirs[filepath.Dir(abs)] = struct{}{}
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			return err
		}
	}

	delay := w.Debounce
	if delay <= 0 {
		delay = DefaultDebounce
	}
	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	schedule := func(name string) {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		w.Log.Debugf("change detected on %s; scheduling reload", name)
		timer = time.AfterFunc(delay, func() {
			if ctx.Err() != nil {
				return
			}
			if err := w.Reload(ctx); err != nil {
				w.Log.Warnf("reload failed, keeping previous catalog: %v", err)
				return
			}
			w.Log.Infof("catalog reloaded")
		})
	}
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			abs, err := filepath.Abs(ev.Name)
			if err != nil {
				continue
			}
			if _, watched := files[abs]; !watched {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				schedule(ev.Name)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Log.Warnf("watch error: %v", err)
		}
	}
}
