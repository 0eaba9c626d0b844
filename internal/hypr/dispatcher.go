package hypr

import (
	"context"
	"fmt"

	"github.com/atomicstack/panelbar/internal/bar"
)

// Dispatcher focuses Hyprland workspaces and windows in response to clicks.
type Dispatcher struct{}

func (Dispatcher) Dispatch(ctx context.Context, target bar.Target) error {
	switch target.Kind {
	case bar.TargetWorkspace:
		return Dispatch(ctx, "workspace", target.ID)
	case bar.TargetWindow:
		return Dispatch(ctx, "focuswindow", "address:"+target.ID)
	}
	return fmt.Errorf("unsupported click target %s", target)
}

func (Dispatcher) Name() string { return "hyprland" }
