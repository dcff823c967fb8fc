// Package watch re-runs a copy when the source file changes.
// It wraps fsnotify with debouncing so editors that write in bursts
// (truncate, write, rename) trigger a single re-copy.
package watch

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Iron-Ham/shuttle/internal/logging"
)

// Watcher observes a single source file and invokes a callback after it
// changes, coalescing bursts of events into one invocation.
type Watcher struct {
	source   string
	debounce time.Duration
	onChange func()
	log      *logging.Logger

	fsw    *fsnotify.Watcher
	stopCh chan struct{}
	doneCh chan struct{}
}

// New creates a watcher for the given source file. The parent directory
// is watched rather than the file itself, because most editors replace
// files on save and a direct watch would die on the rename. onChange is
// called from the watcher's goroutine after the debounce window closes.
func New(source string, debounce time.Duration, onChange func(), log *logging.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	return &Watcher{
		source:   abs,
		debounce: debounce,
		onChange: onChange,
		log:      log,
		fsw:      fsw,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine.
func (w *Watcher) Start() {
	go w.loop()
}

// Stop shuts the watcher down and waits for its goroutine to exit.
// It is safe to call only once.
func (w *Watcher) Stop() {
	close(w.stopCh)
	w.fsw.Close()
	<-w.doneCh
}

func (w *Watcher) loop() {
	defer close(w.doneCh)

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			w.log.Debug("source changed", "op", ev.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(w.debounce)
			fire = timer.C

		case <-fire:
			timer, fire = nil, nil
			w.onChange()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("watch error", "error", err)

		case <-w.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

// relevant reports whether the event concerns the watched source file and
// describes a content change.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if filepath.Clean(ev.Name) != w.source {
		return false
	}
	return ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) || ev.Op.Has(fsnotify.Rename)
}
