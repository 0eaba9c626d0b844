package command

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/logging/events"
)

// DispatchTimeout bounds a single window-manager action.
const DispatchTimeout = 5 * time.Second

// Dispatcher focuses a workspace or window in the window manager.
type Dispatcher interface {
	Dispatch(ctx context.Context, target bar.Target) error
	Name() string
}

// Nop records clicks without acting on them.
type Nop struct{}

func (Nop) Dispatch(context.Context, bar.Target) error { return nil }
func (Nop) Name() string                               { return "none" }

// Request is a click that resolved to a target.
type Request struct {
	Target bar.Target
	X      int
	Y      int
}

// ResultMsg reports the outcome of a dispatched request.
type ResultMsg struct {
	Request    Request
	Dispatcher string
	Err        error
}

// Bus runs click actions off the event loop.
type Bus struct {
	dispatcher Dispatcher
	timeout    time.Duration
}

// New returns a bus sending targets to d. A nil dispatcher behaves like Nop.
func New(d Dispatcher) *Bus {
	if d == nil {
		d = Nop{}
	}
	return &Bus{dispatcher: d, timeout: DispatchTimeout}
}

// Dispatcher returns the collaborator requests are sent to.
func (b *Bus) Dispatcher() Dispatcher {
	return b.dispatcher
}

// Execute wraps the request into a Bubble Tea command. The command touches
// only the dispatcher, never component state.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Click.Dispatch(req.Target.Kind.String(), req.Target.ID, req.X, req.Y)
	d := b.dispatcher
	timeout := b.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		err := d.Dispatch(ctx, req.Target)
		return ResultMsg{Request: req, Dispatcher: d.Name(), Err: err}
	}
}
