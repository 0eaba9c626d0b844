package kitty

import (
	"context"
	"fmt"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/ui/command"
)

// Dispatcher focuses kitty tabs and hands every other target to Next.
type Dispatcher struct {
	Next command.Dispatcher
}

func (d Dispatcher) Dispatch(ctx context.Context, target bar.Target) error {
	if target.Kind == bar.TargetTab {
		if target.Endpoint == "" {
			return fmt.Errorf("tab %s has no kitty endpoint", target.ID)
		}
		return FocusTab(ctx, target.Endpoint, target.ID)
	}
	if d.Next == nil {
		return fmt.Errorf("unsupported click target %s", target)
	}
	return d.Next.Dispatch(ctx, target)
}

func (d Dispatcher) Name() string {
	if d.Next == nil {
		return "kitty"
	}
	return d.Next.Name()
}
