package components

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/theme"
	"github.com/atomicstack/panelbar/internal/tmux"
)

type tmuxWindowsConfig struct {
	Session  string `json:"session"`
	MaxTitle int    `json:"max_title"`
}

var (
	fetchTmuxWindows   = tmux.FetchWindows
	currentTmuxSession = tmux.CurrentSession
)

func tmuxWindowsFactory(env Env) bar.Factory {
	return bar.Configurable(tmuxWindowsConfig{MaxTitle: 16}, func(cfg tmuxWindowsConfig) (bar.Component, error) {
		return NewTmuxWindows(cfg, env.TmuxSocket), nil
	})
}

// TmuxWindows lists the windows of one tmux session; clicking a window
// selects it.
type TmuxWindows struct {
	cfg      tmuxWindowsConfig
	socket   string
	windows  []tmux.Window
	reporter *bar.Reporter
}

func NewTmuxWindows(cfg tmuxWindowsConfig, socket string) *TmuxWindows {
	return &TmuxWindows{cfg: cfg, socket: socket, reporter: bar.NewReporter("tmux_windows")}
}

func (t *TmuxWindows) reachable() bool {
	return t.socket != "" || strings.TrimSpace(os.Getenv("TMUX")) != ""
}

func (t *TmuxWindows) Update(ctx context.Context) {
	if !t.reachable() {
		t.windows = nil
		return
	}
	if t.expired(ctx) {
		return
	}
	session := t.cfg.Session
	if session == "" {
		current, err := currentTmuxSession(t.socket)
		if err != nil {
			t.reporter.Report(err)
			return
		}
		session = current
	}
	if t.expired(ctx) {
		return
	}
	windows, err := fetchTmuxWindows(t.socket, session)
	if t.expired(ctx) {
		return
	}
	t.reporter.Report(err)
	if err != nil {
		return
	}
	t.windows = windows
}

// expired reports a passed update deadline. The tmux client takes no context,
// so results arriving after the deadline are dropped.
func (t *TmuxWindows) expired(ctx context.Context) bool {
	if err := ctx.Err(); err != nil {
		t.reporter.Report(fmt.Errorf("tmux windows: %w", err))
		return true
	}
	return false
}

func (t *TmuxWindows) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	styles := theme.Default()
	var (
		fragments []bar.Fragment
		areas     []bar.ClickArea
		cursor    = x
	)
	for _, w := range t.windows {
		style := styles.Inactive
		if w.Active {
			style = styles.Active
		}
		text := " " + strconv.Itoa(w.Index) + ":" + runewidth.Truncate(w.Name, t.cfg.MaxTitle, "…") + " "
		frag := bar.Styled(text, theme.Style(style, colorize))
		width := frag.Width()
		fragments = append(fragments, frag)
		areas = append(areas, bar.ClickArea{X: cursor, Y: y, Width: width, Height: 1, Target: bar.Window(w.Target())})
		cursor += width
	}
	return fragments, areas
}
