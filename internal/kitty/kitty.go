// Package kitty talks to a kitty terminal over its remote-control socket.
package kitty

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/panelbar/internal/shell"
)

// Class is the Hyprland window class kitty reports.
const Class = "kitty"

// OSWindow is a top-level kitty window as reported by `kitty @ ls`.
type OSWindow struct {
	ID          int   `json:"id"`
	IsActive    bool  `json:"is_active"`
	IsFocused   bool  `json:"is_focused"`
	LastFocused bool  `json:"last_focused"`
	Tabs        []Tab `json:"tabs"`
}

// Tab is one tab of an OS window.
type Tab struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	IsActive  bool   `json:"is_active"`
	IsFocused bool   `json:"is_focused"`
}

// DefaultSocket is where a kitty configured with `listen_on unix:/tmp/kitty`
// listens. kitty appends its pid to the configured path.
func DefaultSocket(pid int) string {
	return "/tmp/kitty-" + strconv.Itoa(pid)
}

// Endpoint turns a socket path into a --to address. Addresses that already
// carry a scheme are returned unchanged.
func Endpoint(socket string) string {
	if strings.Contains(socket, ":") {
		return socket
	}
	return "unix:" + socket
}

// SingleInstance reports whether pid is a kitty started with
// --single-instance. Only those instances serve every OS window on one socket.
func SingleInstance(ctx context.Context, pid int) (bool, error) {
	out, err := shell.Output(ctx, "pgrep", "-f", "kitty.*--single-instance")
	if err != nil {
		// pgrep exits 1 when nothing matches
		var exit interface{ ExitCode() int }
		if errors.As(err, &exit) && exit.ExitCode() == 1 {
			return false, nil
		}
		return false, err
	}
	want := strconv.Itoa(pid)
	for _, line := range strings.Fields(string(out)) {
		if line == want {
			return true, nil
		}
	}
	return false, nil
}

// List runs `kitty @ ls` against endpoint.
func List(ctx context.Context, endpoint string) ([]OSWindow, error) {
	out, err := shell.Output(ctx, "kitty", "@", "--to", endpoint, "ls")
	if err != nil {
		return nil, err
	}
	var windows []OSWindow
	if err := json.Unmarshal(out, &windows); err != nil {
		return nil, fmt.Errorf("decode kitty ls: %w", err)
	}
	return windows, nil
}

// FocusedTabs returns the tabs of the focused OS window, falling back to the
// active or most recently focused one. Untitled tabs are named by position.
func FocusedTabs(ctx context.Context, endpoint string) ([]Tab, error) {
	windows, err := List(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	for _, w := range windows {
		if !w.IsActive && !w.IsFocused && !w.LastFocused {
			continue
		}
		tabs := make([]Tab, len(w.Tabs))
		for i, tab := range w.Tabs {
			if strings.TrimSpace(tab.Title) == "" {
				tab.Title = "Tab " + strconv.Itoa(i+1)
			}
			tabs[i] = tab
		}
		return tabs, nil
	}
	return nil, nil
}

// FocusTab switches the kitty at endpoint to tab id.
func FocusTab(ctx context.Context, endpoint, id string) error {
	return shell.Run(ctx, "kitty", "@", "--to", endpoint, "focus-tab", "--match", "id:"+id)
}
