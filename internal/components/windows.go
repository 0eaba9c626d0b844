package components

import (
	"context"

	"github.com/mattn/go-runewidth"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/hypr"
	"github.com/atomicstack/panelbar/internal/theme"
)

const windowTitleWidth = 24

// Windows lists the clients on the active Hyprland workspace; clicking one
// focuses it.
type Windows struct {
	windows  []hypr.Window
	focused  string
	reporter *bar.Reporter
}

func NewWindows() *Windows {
	return &Windows{reporter: bar.NewReporter("windows")}
}

func (w *Windows) Update(ctx context.Context) {
	if !hypr.Available() {
		w.windows = nil
		return
	}
	clients, err := hypr.Clients(ctx)
	if err != nil {
		w.reporter.Report(err)
		return
	}
	active, err := hypr.ActiveWorkspace(ctx)
	if err != nil {
		w.reporter.Report(err)
		return
	}
	focused, err := hypr.ActiveWindow(ctx)
	if err != nil {
		w.reporter.Report(err)
		return
	}
	w.reporter.Report(nil)

	visible := clients[:0]
	for _, c := range clients {
		if c.Mapped && !c.Hidden && c.Workspace.ID == active.ID {
			visible = append(visible, c)
		}
	}
	w.windows = visible
	w.focused = focused.Address
}

func (w *Windows) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	styles := theme.Default()
	var (
		fragments []bar.Fragment
		areas     []bar.ClickArea
		cursor    = x
	)
	for _, c := range w.windows {
		style := styles.Inactive
		if c.Address == w.focused {
			style = styles.Active
		}
		title := c.Title
		if title == "" {
			title = c.Class
		}
		frag := bar.Styled(" "+runewidth.Truncate(title, windowTitleWidth, "…")+" ", theme.Style(style, colorize))
		width := frag.Width()
		fragments = append(fragments, frag)
		areas = append(areas, bar.ClickArea{X: cursor, Y: y, Width: width, Height: 1, Target: bar.Window(c.Address)})
		cursor += width
	}
	return fragments, areas
}
