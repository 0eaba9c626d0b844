package events

import (
	"fmt"

	"github.com/atomicstack/panelbar/internal/logging"
)

type WatcherTracer struct{}

var Watcher = WatcherTracer{}

func (WatcherTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Error(fmt.Errorf("file watcher: %w", err))
	logging.Trace("watcher.error", map[string]interface{}{"error": err.Error()})
}

func (WatcherTracer) Disabled(path string, err error) {
	logging.Error(fmt.Errorf("live reload disabled for %s: %w", path, err))
	logging.Trace("watcher.disabled", map[string]interface{}{"path": path, "error": err.Error()})
}

func (WatcherTracer) Signal(path, op string) {
	logging.Trace("watcher.signal", map[string]interface{}{"path": path, "op": op})
}
