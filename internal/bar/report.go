package bar

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/atomicstack/panelbar/internal/logging/events"
)

// ReportInterval is the minimum spacing between logged errors of one
// component after the first.
const ReportInterval = 30 * time.Second

// Reporter logs a component's refresh errors without flooding the log when
// the failure repeats every tick.
type Reporter struct {
	name  string
	every *rate.Sometimes
	last  error
}

func NewReporter(name string) *Reporter {
	return &Reporter{name: name, every: &rate.Sometimes{First: 1, Interval: ReportInterval}}
}

// Report records err. A nil error clears the degraded state.
func (r *Reporter) Report(err error) {
	r.last = err
	if err == nil {
		return
	}
	r.every.Do(func() { events.Component.Error(r.name, err) })
}

// Err returns the most recent refresh error.
func (r *Reporter) Err() error {
	return r.last
}

// Name returns the component name reports are logged under.
func (r *Reporter) Name() string {
	return r.name
}
