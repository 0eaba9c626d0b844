package components

import (
	"context"
	"fmt"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/logging"
	"github.com/atomicstack/panelbar/internal/theme"
)

// ErrorIcon surfaces how many errors have been logged this session.
type ErrorIcon struct {
	count int64
}

func NewErrorIcon() *ErrorIcon {
	return &ErrorIcon{}
}

func (e *ErrorIcon) Update(context.Context) {
	e.count = logging.ErrorCount()
}

func (e *ErrorIcon) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	if e.count == 0 {
		return nil, nil
	}
	return []bar.Fragment{bar.Styled(fmt.Sprintf(" 󰀪 %d", e.count), theme.Style(theme.Default().ErrorIcon, colorize))}, nil
}
