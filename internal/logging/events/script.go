package events

import (
	"fmt"

	"github.com/atomicstack/panelbar/internal/logging"
)

type ScriptTracer struct{}

var Script = ScriptTracer{}

func (ScriptTracer) Loaded(name, path string) {
	logging.Trace("script.load", map[string]interface{}{"name": name, "path": path})
}

// LoadError is fatal to the single script registration only.
func (ScriptTracer) LoadError(name, path string, err error) {
	if err == nil {
		return
	}
	logging.Error(fmt.Errorf("script %s (%s): %w", name, path, err))
	logging.Trace("script.load.error", map[string]interface{}{"name": name, "path": path, "error": err.Error()})
}
