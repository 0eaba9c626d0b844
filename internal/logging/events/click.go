package events

import (
	"fmt"

	"github.com/atomicstack/panelbar/internal/logging"
)

type ClickTracer struct{}

var Click = ClickTracer{}

func (ClickTracer) Dispatch(kind, id string, x, y int) {
	logging.Trace("click.dispatch", map[string]interface{}{"kind": kind, "id": id, "x": x, "y": y})
}

func (ClickTracer) Miss(x, y int) {
	logging.Trace("click.miss", map[string]interface{}{"x": x, "y": y})
}

func (ClickTracer) Error(kind, id string, err error) {
	if err == nil {
		return
	}
	logging.Error(fmt.Errorf("focus %s %s: %w", kind, id, err))
	logging.Trace("click.error", map[string]interface{}{"kind": kind, "id": id, "error": err.Error()})
}
