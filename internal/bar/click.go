package bar

import "fmt"

// TargetKind tags the window-manager action behind a click area.
type TargetKind int

const (
	TargetWorkspace TargetKind = iota
	TargetWindow
	TargetTab
)

func (k TargetKind) String() string {
	switch k {
	case TargetWorkspace:
		return "workspace"
	case TargetWindow:
		return "window"
	case TargetTab:
		return "tab"
	default:
		return fmt.Sprintf("target(%d)", int(k))
	}
}

// Target identifies what a click should focus. Endpoint names the control
// socket of the terminal owning a tab and is empty for other kinds.
type Target struct {
	Kind     TargetKind
	ID       string
	Endpoint string
}

// Workspace targets the workspace (or tmux session) with the given id.
func Workspace(id string) Target {
	return Target{Kind: TargetWorkspace, ID: id}
}

// Window targets the window with the given address.
func Window(address string) Target {
	return Target{Kind: TargetWindow, ID: address}
}

// Tab targets the terminal tab id reachable through endpoint.
func Tab(endpoint, id string) Target {
	return Target{Kind: TargetTab, ID: id, Endpoint: endpoint}
}

func (t Target) String() string {
	return t.Kind.String() + " " + t.ID
}

// ClickArea maps a half-open screen rectangle to a Target.
type ClickArea struct {
	X      int
	Y      int
	Width  int
	Height int
	Target Target
}

// Contains reports whether (x, y) lies inside the area. The minimum edges are
// inclusive and the maximum edges exclusive.
func (a ClickArea) Contains(x, y int) bool {
	return x >= a.X && x < a.X+a.Width && y >= a.Y && y < a.Y+a.Height
}

// FindClick returns the first area containing (x, y). Earlier areas win when
// areas overlap.
func FindClick(areas []ClickArea, x, y int) (ClickArea, bool) {
	for _, area := range areas {
		if area.Contains(x, y) {
			return area, true
		}
	}
	return ClickArea{}, false
}
