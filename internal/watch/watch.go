// Package watch re-runs an action whenever watched files change.
//
// Directories rather than files are registered with fsnotify so that
// editors which save by writing a temporary file and renaming it over the
// original keep triggering events. Bursts of events are collapsed: the
// handler runs once per file after the quiet period has passed without
// further changes.
package watch

import (
	"context"
	"path/filepath"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/matzehuels/visigraph/pkg/errors"
)

// DefaultQuietPeriod is the debounce interval.
const DefaultQuietPeriod = 200 * time.Millisecond

// Handler is called with the path of a changed file.
type Handler func(ctx context.Context, path string) error

// Watcher observes a set of files.
type Watcher struct {
	files   []string
	handler Handler
	quiet   time.Duration
	initial bool
	logger  *log.Logger
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithQuietPeriod sets how long the files must stay unchanged before the
// handler runs.
func WithQuietPeriod(d time.Duration) Option {
	return func(w *Watcher) { w.quiet = d }
}

// WithInitialRun calls the handler for every file once before waiting for
// changes.
func WithInitialRun() Option {
	return func(w *Watcher) { w.initial = true }
}

// WithLogger sets the logger for handler failures.
func WithLogger(l *log.Logger) Option {
	return func(w *Watcher) { w.logger = l }
}

// New creates a watcher for files.
func New(files []string, handler Handler, opts ...Option) (*Watcher, error) {
	if len(files) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no files to watch")
	}
	w := &Watcher{handler: handler, quiet: DefaultQuietPeriod, logger: log.Default()}
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "resolve %s", f)
		}
		if !slices.Contains(w.files, abs) {
			w.files = append(w.files, abs)
		}
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Files returns the absolute paths being watched.
func (w *Watcher) Files() []string { return slices.Clone(w.files) }

// Run watches until ctx is cancelled and returns ctx.Err(). Handler errors
// are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create watcher")
	}
	defer fsw.Close()

	var dirs []string
	for _, f := range w.files {
		dir := filepath.Dir(f)
		if slices.Contains(dirs, dir) {
			continue
		}
		if err := fsw.Add(dir); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "watch %s", dir)
		}
		dirs = append(dirs, dir)
	}
	w.logger.Debug("Watching", "files", len(w.files), "dirs", len(dirs))

	if w.initial {
		for _, f := range w.files {
			w.run(ctx, f)
		}
	}

	timer := time.NewTimer(w.quiet)
	timer.Stop()
	pending := make(map[string]bool)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-fsw.Events:
			if !ok {
				return ctx.Err()
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Clean(ev.Name)
			if !slices.Contains(w.files, name) {
				continue
			}
			pending[name] = true
			timer.Reset(w.quiet)

		case err, ok := <-fsw.Errors:
			if !ok {
				return ctx.Err()
			}
			w.logger.Warn("Watch error", "err", err)

		case <-timer.C:
			for _, f := range w.files {
				if pending[f] {
					w.run(ctx, f)
				}
			}
			clear(pending)
		}
	}
}

func (w *Watcher) run(ctx context.Context, path string) {
	if err := w.handler(ctx, path); err != nil {
		w.logger.Error("Update failed", "file", filepath.Base(path), "err", err)
	}
}
