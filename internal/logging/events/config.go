package events

import (
	"fmt"

	"github.com/atomicstack/panelbar/internal/logging"
)

type ConfigTracer struct{}

var Config = ConfigTracer{}

func (ConfigTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Error(fmt.Errorf("configuration: %w", err))
	logging.Trace("config.error", map[string]interface{}{"error": err.Error()})
}

func (ConfigTracer) Loaded(path string, entries int, colorize bool) {
	logging.Trace("config.loaded", map[string]interface{}{"path": path, "entries": entries, "colorize": colorize})
}

func (ConfigTracer) Fallback(path string) {
	logging.Warn("configuration %s not found, using default layout", path)
	logging.Trace("config.fallback", map[string]interface{}{"path": path})
}
