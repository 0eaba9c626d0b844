package events

import (
	"fmt"

	"github.com/atomicstack/panelbar/internal/logging"
)

type ComponentTracer struct{}

var Component = ComponentTracer{}

// Error reports a failed refresh. The component keeps running in a degraded state.
func (ComponentTracer) Error(name string, err error) {
	if err == nil {
		return
	}
	logging.Error(fmt.Errorf("component %s: %w", name, err))
	logging.Trace("component.error", map[string]interface{}{"component": name, "error": err.Error()})
}

func (ComponentTracer) Panic(name string, recovered interface{}) {
	logging.Error(fmt.Errorf("component %s panicked: %v", name, recovered))
	logging.Trace("component.panic", map[string]interface{}{"component": name, "panic": fmt.Sprint(recovered)})
}

func (ComponentTracer) Unknown(region, name string, suggestions []string) {
	if len(suggestions) > 0 {
		logging.Warn("unknown component %q in %s bar (did you mean %v?)", name, region, suggestions)
	} else {
		logging.Warn("unknown component %q in %s bar", name, region)
	}
	logging.Trace("component.unknown", map[string]interface{}{
		"region":      region,
		"component":   name,
		"suggestions": suggestions,
	})
}

func (ComponentTracer) Created(region, name, kind string) {
	logging.Trace("component.created", map[string]interface{}{"region": region, "component": name, "kind": kind})
}
