package tmux

import (
	"context"
	"fmt"

	"github.com/atomicstack/panelbar/internal/bar"
)

// Dispatcher focuses tmux sessions and windows in response to clicks.
// Workspace targets name a session; window targets are tmux window targets.
type Dispatcher struct {
	Socket string
	Client string
}

func (d Dispatcher) Dispatch(_ context.Context, target bar.Target) error {
	switch target.Kind {
	case bar.TargetWorkspace:
		return SwitchClient(d.Socket, d.Client, target.ID)
	case bar.TargetWindow:
		return SelectWindow(d.Socket, target.ID)
	}
	return fmt.Errorf("unsupported click target %s", target)
}

func (Dispatcher) Name() string { return "tmux" }
