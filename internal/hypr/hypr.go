// Package hypr queries and drives the Hyprland compositor through hyprctl.
package hypr

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/panelbar/internal/shell"
)

// Workspace is a Hyprland workspace as reported by `hyprctl -j workspaces`.
type Workspace struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Monitor string `json:"monitor"`
	Windows int    `json:"windows"`
}

// Window is a Hyprland client as reported by `hyprctl -j clients`.
type Window struct {
	Address   string `json:"address"`
	Title     string `json:"title"`
	Class     string `json:"class"`
	PID       int    `json:"pid"`
	Mapped    bool   `json:"mapped"`
	Hidden    bool   `json:"hidden"`
	Workspace struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"workspace"`
	FocusHistoryID int `json:"focusHistoryID"`
}

// Available reports whether the process runs inside a Hyprland session.
func Available() bool {
	return strings.TrimSpace(os.Getenv("HYPRLAND_INSTANCE_SIGNATURE")) != ""
}

func query(ctx context.Context, what string, v interface{}) error {
	out, err := shell.Output(ctx, "hyprctl", "-j", what)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(out, v); err != nil {
		return fmt.Errorf("decode hyprctl %s: %w", what, err)
	}
	return nil
}

func Workspaces(ctx context.Context) ([]Workspace, error) {
	var ws []Workspace
	err := query(ctx, "workspaces", &ws)
	return ws, err
}

func ActiveWorkspace(ctx context.Context) (Workspace, error) {
	var ws Workspace
	err := query(ctx, "activeworkspace", &ws)
	return ws, err
}

func Clients(ctx context.Context) ([]Window, error) {
	var ws []Window
	err := query(ctx, "clients", &ws)
	return ws, err
}

// ActiveWindow returns the focused client. With no focused client hyprctl
// prints an empty object, which decodes to a Window with no address.
func ActiveWindow(ctx context.Context) (Window, error) {
	var w Window
	err := query(ctx, "activewindow", &w)
	return w, err
}

// Dispatch runs a hyprctl dispatcher. hyprctl exits zero even for rejected
// dispatches, so anything other than "ok" is an error.
func Dispatch(ctx context.Context, args ...string) error {
	out, err := shell.Output(ctx, "hyprctl", append([]string{"dispatch"}, args...)...)
	if err != nil {
		return err
	}
	if reply := strings.TrimSpace(string(out)); reply != "ok" {
		return fmt.Errorf("hyprctl dispatch %s: %s", strings.Join(args, " "), reply)
	}
	return nil
}

// WorkspaceID renders a workspace id the way dispatchers expect it.
func WorkspaceID(id int) string {
	return strconv.Itoa(id)
}
