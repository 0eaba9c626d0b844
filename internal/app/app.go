package app

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"

	"github.com/atomicstack/panelbar/internal/backend"
	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/components"
	"github.com/atomicstack/panelbar/internal/format/table"
	"github.com/atomicstack/panelbar/internal/hypr"
	"github.com/atomicstack/panelbar/internal/kitty"
	"github.com/atomicstack/panelbar/internal/logging/events"
	"github.com/atomicstack/panelbar/internal/pidfile"
	"github.com/atomicstack/panelbar/internal/script"
	"github.com/atomicstack/panelbar/internal/tmux"
	"github.com/atomicstack/panelbar/internal/ui"
	"github.com/atomicstack/panelbar/internal/ui/command"
)

// Window-manager collaborators selectable with Config.WM.
const (
	WMAuto     = "auto"
	WMHyprland = "hyprland"
	WMTmux     = "tmux"
	WMNone     = "none"
)

// reloadDebounce is the minimum spacing between reload signals.
const reloadDebounce = time.Second

// Config describes user-provided application options.
type Config struct {
	DocumentPath   string
	Tick           time.Duration
	UpdateTimeout  time.Duration
	WM             string
	SocketPath     string
	PIDFile        string
	Watch          bool
	ListComponents bool
}

var runProgram = func(model tea.Model) error {
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := program.Run()
	return err
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	if cfg.ListComponents {
		return ListComponents(os.Stdout, cfg)
	}

	pid, err := pidfile.Acquire(pidPath(cfg))
	if err != nil {
		return err
	}
	defer pid.Release()
	defer tmux.Shutdown()

	manager := newManager(cfg)
	if err := manager.Load(); err != nil {
		return fmt.Errorf("load components: %w", err)
	}
	defer manager.Close()

	var reloads <-chan backend.Event
	if cfg.Watch && manager.Path() != "" {
		watcher, err := backend.NewWatcher(manager.Path(), reloadDebounce)
		if err != nil {
			events.Watcher.Disabled(manager.Path(), err)
		} else {
			defer watcher.Stop()
			reloads = watcher.Events()
		}
	}

	model := ui.NewModel(ui.Options{
		Components: manager,
		Events:     reloads,
		Bus:        command.New(selectDispatcher(cfg.WM, cfg.SocketPath, os.Getenv)),
		Tick:       cfg.Tick,
		NoColor:    termenv.EnvNoColor(),
	})
	err = runProgram(model)
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// ListComponents writes every component name available to the document,
// with how it is provided.
func ListComponents(w io.Writer, cfg Config) error {
	manager := newManager(cfg)
	if err := manager.Load(); err != nil {
		return fmt.Errorf("load components: %w", err)
	}
	defer manager.Close()

	names := manager.Names(nil)
	rows := make([][]string, 0, len(names))
	for _, name := range names {
		kind, _ := manager.Kind(name)
		rows = append(rows, []string{name, kind.String()})
	}
	return table.Write(w, []string{"NAME", "KIND"}, rows, nil)
}

func newManager(cfg Config) *bar.Manager {
	env := components.Env{TmuxSocket: cfg.SocketPath}
	path := cfg.DocumentPath
	if path == "" {
		path = bar.DefaultPath()
	}
	return bar.NewManager(bar.ManagerOptions{
		Path:          path,
		Register:      func(reg *bar.Registry) { components.Register(reg, env) },
		Builtins:      components.Builtins(env),
		Scripts:       script.NewLoader(),
		UpdateTimeout: cfg.UpdateTimeout,
	})
}

// CheckRunning reports pidfile.ErrAlreadyRunning when another bar holds the
// pid file cfg points at.
func CheckRunning(cfg Config) error {
	return pidfile.Check(pidPath(cfg))
}

func pidPath(cfg Config) string {
	if cfg.PIDFile != "" {
		return cfg.PIDFile
	}
	return pidfile.DefaultPath()
}

// hyprDispatcher focuses kitty tabs itself and sends everything else to
// Hyprland. kitty tabs are only discovered through Hyprland's active window.
func hyprDispatcher() command.Dispatcher {
	return kitty.Dispatcher{Next: hypr.Dispatcher{}}
}

// selectDispatcher picks the click collaborator. Auto prefers Hyprland, then
// tmux when running inside a tmux client, and otherwise only logs clicks.
func selectDispatcher(wm, socket string, getenv func(string) string) command.Dispatcher {
	switch strings.ToLower(strings.TrimSpace(wm)) {
	case WMHyprland:
		return hyprDispatcher()
	case WMTmux:
		return tmux.Dispatcher{Socket: socket, Client: tmux.CurrentClientID(socket)}
	case WMNone:
		return command.Nop{}
	}
	if getenv("HYPRLAND_INSTANCE_SIGNATURE") != "" {
		return hyprDispatcher()
	}
	if getenv("TMUX") != "" || socket != "" {
		return tmux.Dispatcher{Socket: socket, Client: tmux.CurrentClientID(socket)}
	}
	return command.Nop{}
}
