package components

import (
	"context"

	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/theme"
)

// Space is a single blank cell.
type Space struct{}

func (Space) Update(context.Context) {}

func (Space) Render(bool, int, int) ([]bar.Fragment, []bar.ClickArea) {
	return []bar.Fragment{bar.Plain(" ")}, nil
}

type separatorConfig struct {
	Text string `json:"text"`
}

var separatorFactory = bar.Configurable(separatorConfig{Text: " | "}, func(cfg separatorConfig) (bar.Component, error) {
	return Separator{text: cfg.Text}, nil
})

// Separator draws a dimmed divider between components.
type Separator struct {
	text string
}

func (Separator) Update(context.Context) {}

func (s Separator) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	return []bar.Fragment{bar.Styled(s.text, theme.Style(theme.Default().Separator, colorize))}, nil
}

type textConfig struct {
	Text string `json:"text"`
	Fg   string `json:"fg"`
	Bg   string `json:"bg"`
	Bold bool   `json:"bold"`
}

var textFactory = bar.Configurable(textConfig{}, func(cfg textConfig) (bar.Component, error) {
	return Text{cfg: cfg}, nil
})

// Text renders a fixed label.
type Text struct {
	cfg textConfig
}

func (Text) Update(context.Context) {}

func (t Text) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	style := lipgloss.NewStyle()
	if colorize {
		if t.cfg.Fg != "" {
			style = style.Foreground(theme.Color(t.cfg.Fg))
		}
		if t.cfg.Bg != "" {
			style = style.Background(theme.Color(t.cfg.Bg))
		}
		style = style.Bold(t.cfg.Bold)
	}
	return []bar.Fragment{bar.Styled(t.cfg.Text, style)}, nil
}
