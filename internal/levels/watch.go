package levels

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a level file whenever it changes on disk.
// It watches the containing directory so editors that replace the file
// by renaming a temporary one are still noticed.
type Watcher struct {
	w       *fsnotify.Watcher
	path    string
	levels  chan *Level
	errs    chan error
	done    chan struct{}
	stopped chan struct{}

	closeOnce sync.Once
	closeErr  error
}

// Watch starts watching the level file at path.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("levels: watch %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("levels: watch %s: %w", path, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("levels: watch %s: %w", path, err)
	}

	lw := &Watcher{
		w:       w,
		path:    abs,
		levels:  make(chan *Level, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go lw.loop()
	return lw, nil
}

// Levels delivers freshly parsed levels. Only the newest pending level is kept.
func (lw *Watcher) Levels() <-chan *Level { return lw.levels }

// Errors delivers parse and watch failures. Only the newest pending error is kept.
func (lw *Watcher) Errors() <-chan error { return lw.errs }

// Path returns the absolute path being watched.
func (lw *Watcher) Path() string { return lw.path }

// Close stops watching. It is safe to call more than once, also concurrently.
func (lw *Watcher) Close() error {
	lw.closeOnce.Do(func() {
		close(lw.done)
		lw.closeErr = lw.w.Close()
		<-lw.stopped
	})
	return lw.closeErr
}

func (lw *Watcher) loop() {
	defer close(lw.stopped)
	for {
		select {
		case <-lw.done:
			return
		case ev, ok := <-lw.w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != lw.path || !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) {
				continue
			}
			level, err := LoadFile(lw.path)
			if err != nil {
				offer(lw.errs, err)
				continue
			}
			offer(lw.levels, level)
		case err, ok := <-lw.w.Errors:
			if !ok {
				return
			}
			offer(lw.errs, fmt.Errorf("levels: watch %s: %w", lw.path, err))
		}
	}
}

// offer sends v on a one-slot channel, replacing a value nobody has taken yet.
func offer[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
