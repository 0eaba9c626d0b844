package backend

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/atomicstack/panelbar/internal/logging/events"
)

// Kind represents the type of signal emitted by the watcher.
type Kind int

const (
	KindReload Kind = iota
)

// Event asks the application loop to act. Reload events carry the document
// path that changed.
type Event struct {
	Kind Kind
	Path string
}

// settle is how long the watcher waits after the first change so an editor
// can finish writing before the reload reads the file.
const settle = 100 * time.Millisecond

// Watcher follows the configuration document and publishes a reload event
// after it changes. Bursts of filesystem events collapse into one signal and
// signals are spaced at least the debounce interval apart.
type Watcher struct {
	path    string
	fs      *fsnotify.Watcher
	limiter *rate.Limiter

	ctx    context.Context
	cancel context.CancelFunc

	kick   chan struct{}
	events chan Event
	wg     sync.WaitGroup
}

// NewWatcher starts watching path. The parent directory is watched so that
// editors replacing the file atomically are still noticed.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	clean := filepath.Clean(path)
	if err := fsw.Add(filepath.Dir(clean)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(clean), err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		path:    clean,
		fs:      fsw,
		limiter: newLimiter(debounce),
		ctx:     ctx,
		cancel:  cancel,
		kick:    make(chan struct{}, 1),
		events:  make(chan Event, 16),
	}

	w.wg.Add(2)
	go w.watch()
	go w.emit()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w, nil
}

// Events returns a channel of reload signals. It is closed after Stop once
// both goroutines have exited.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher and releases the underlying notifier.
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the watcher goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) watch() {
	defer w.wg.Done()
	defer w.fs.Close()

	for {
		select {
		case <-w.ctx.Done():
			return
		case evt, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != w.path {
				continue
			}
			if !evt.Has(fsnotify.Write) && !evt.Has(fsnotify.Create) && !evt.Has(fsnotify.Rename) {
				continue
			}
			events.Watcher.Signal(evt.Name, evt.Op.String())
			select {
			case w.kick <- struct{}{}:
			default:
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			events.Watcher.Error(err)
		}
	}
}

// newLimiter spaces reload signals at least interval apart. The first signal
// passes immediately.
func newLimiter(interval time.Duration) *rate.Limiter {
	if interval <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

func (w *Watcher) emit() {
	defer w.wg.Done()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-w.kick:
		}

		select {
		case <-w.ctx.Done():
			return
		case <-time.After(settle):
		}
		select {
		case <-w.kick:
		default:
		}

		if err := w.limiter.Wait(w.ctx); err != nil {
			return
		}
		select {
		case <-w.ctx.Done():
			return
		case w.events <- Event{Kind: KindReload, Path: w.path}:
		}
	}
}
