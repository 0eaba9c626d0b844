package components

import (
	"context"
	"sort"
	"strconv"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/hypr"
	"github.com/atomicstack/panelbar/internal/theme"
)

// Workspaces lists Hyprland workspaces; clicking one switches to it.
type Workspaces struct {
	workspaces []hypr.Workspace
	active     int
	reporter   *bar.Reporter
}

func NewWorkspaces() *Workspaces {
	return &Workspaces{reporter: bar.NewReporter("workspaces")}
}

func (w *Workspaces) Update(ctx context.Context) {
	if !hypr.Available() {
		w.workspaces = nil
		return
	}
	list, err := hypr.Workspaces(ctx)
	if err != nil {
		w.reporter.Report(err)
		return
	}
	active, err := hypr.ActiveWorkspace(ctx)
	if err != nil {
		w.reporter.Report(err)
		return
	}
	w.reporter.Report(nil)

	visible := list[:0]
	for _, ws := range list {
		// special workspaces carry negative ids
		if ws.ID > 0 {
			visible = append(visible, ws)
		}
	}
	sort.Slice(visible, func(i, j int) bool { return visible[i].ID < visible[j].ID })
	w.workspaces = visible
	w.active = active.ID
}

func (w *Workspaces) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	styles := theme.Default()
	var (
		fragments []bar.Fragment
		areas     []bar.ClickArea
		cursor    = x
	)
	for _, ws := range w.workspaces {
		style := styles.Inactive
		if ws.ID == w.active {
			style = styles.Active
		}
		frag := bar.Styled(" "+label(ws)+" ", theme.Style(style, colorize))
		width := frag.Width()
		fragments = append(fragments, frag)
		areas = append(areas, bar.ClickArea{X: cursor, Y: y, Width: width, Height: 1, Target: bar.Workspace(hypr.WorkspaceID(ws.ID))})
		cursor += width
	}
	return fragments, areas
}

func label(ws hypr.Workspace) string {
	if ws.Name != "" {
		return ws.Name
	}
	return strconv.Itoa(ws.ID)
}
