package events

import (
	"fmt"

	"github.com/atomicstack/panelbar/internal/logging"
)

type ReloadTracer struct{}

var Reload = ReloadTracer{}

func (ReloadTracer) Start(path string) {
	logging.Trace("reload.start", map[string]interface{}{"path": path})
}

func (ReloadTracer) Success(components int) {
	logging.Trace("reload.success", map[string]interface{}{"components": components})
}

// Failure records a rejected reload; the previous component set stays live.
func (ReloadTracer) Failure(err error) {
	if err == nil {
		return
	}
	logging.Error(fmt.Errorf("failed to reload configuration: %w", err))
	logging.Trace("reload.failure", map[string]interface{}{"error": err.Error()})
}
