package theme

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long a Watcher waits after the last write before
// reloading. Editors often write a file in several steps.
const DefaultDebounce = 50 * time.Millisecond

// WatchOption configures a Watcher.
type WatchOption func(*Watcher)

// WithLogger sets the logger for reload diagnostics.
func WithLogger(l *slog.Logger) WatchOption {
	return func(w *Watcher) {
		if l != nil {
			w.log = l
		}
	}
}

// WithDebounce sets the reload delay.
func WithDebounce(d time.Duration) WatchOption {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// Watcher reloads a theme file into a Theme when the file changes and
// then calls onChange. A file that fails to load leaves the theme as it
// was.
type Watcher struct {
	theme    *Theme
	path     string
	onChange func()
	log      *slog.Logger
	debounce time.Duration

	fs   *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup
	once sync.Once
}

// Watch starts watching path. The directory is watched rather than the
// file so that editors replacing the file by rename are seen.
func Watch(t *Theme, path string, onChange func(), opts ...WatchOption) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("theme: watch %s: %w", path, err)
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("theme: creating file watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		_ = fs.Close()
		return nil, fmt.Errorf("theme: watch %s: %w", path, err)
	}

	w := &Watcher{
		theme:    t,
		path:     abs,
		onChange: onChange,
		log:      slog.New(slog.DiscardHandler),
		debounce: DefaultDebounce,
		fs:       fs,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			w.reload()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			w.log.Warn("theme: watcher error", slog.String("err", err.Error()))
		}
	}
}

func (w *Watcher) reload() {
	t, err := Load(w.path)
	if err != nil {
		w.log.Warn("theme: reload failed", slog.String("path", w.path), slog.String("err", err.Error()))
		return
	}
	w.theme.Replace(t)
	w.log.Debug("theme: reloaded", slog.String("path", w.path))
	if w.onChange != nil {
		w.onChange()
	}
}

// Close stops the watcher and waits for its goroutine to exit.
// It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		w.wg.Wait()
		err = w.fs.Close()
	})
	return err
}
