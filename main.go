package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/atomicstack/panelbar/internal/app"
	"github.com/atomicstack/panelbar/internal/config"
	"github.com/atomicstack/panelbar/internal/logging"
	"github.com/atomicstack/panelbar/internal/logging/events"
	"github.com/atomicstack/panelbar/internal/panel"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	traceStartup(runtimeCfg)

	if runtimeCfg.Panel.Spawn {
		if err := spawnPanel(runtimeCfg); err != nil {
			logging.Error(err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := app.Run(runtimeCfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var startPanel = panel.Spawn

// spawnPanel relaunches the bar in a kitty panel unless one is already
// running, since the child would only fail on the pid file inside the panel.
func spawnPanel(cfg config.Config) error {
	if err := app.CheckRunning(cfg.App); err != nil {
		return err
	}
	return startPanel(panelArgs(cfg.Args))
}

// panelArgs drops the panel switch so the relaunched child runs the bar.
func panelArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for _, arg := range args {
		name := strings.TrimLeft(arg, "-")
		if name == "panel" || strings.HasPrefix(name, "panel=") {
			continue
		}
		out = append(out, arg)
	}
	return out
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"config":   cfg,
		"pid":      os.Getpid(),
		"terminal": probeTerminal(os.Getenv),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	return payload
}

// terminalDetails records what the bar will be drawn into.
type terminalDetails struct {
	Term         string        `json:"term,omitempty"`
	ColorProfile string        `json:"color_profile"`
	NoColor      bool          `json:"no_color"`
	Hyprland     bool          `json:"hyprland"`
	Tmux         bool          `json:"tmux"`
	Size         *terminalSize `json:"size,omitempty"`
	Descriptors  []descriptor  `json:"descriptors"`
}

type terminalSize struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type descriptor struct {
	Name     string `json:"name"`
	Terminal bool   `json:"terminal"`
	Error    string `json:"error,omitempty"`
}

func probeTerminal(getenv func(string) string) terminalDetails {
	details := terminalDetails{
		Term:         getenv("TERM"),
		ColorProfile: profileName(termenv.EnvColorProfile()),
		NoColor:      termenv.EnvNoColor(),
		Hyprland:     getenv("HYPRLAND_INSTANCE_SIGNATURE") != "",
		Tmux:         getenv("TMUX") != "",
	}
	for _, f := range []*os.File{os.Stdin, os.Stdout, os.Stderr} {
		d := descriptor{Name: strings.TrimPrefix(f.Name(), "/dev/")}
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			d.Terminal = true
			width, height, err := term.GetSize(fd)
			switch {
			case err != nil:
				d.Error = err.Error()
			case details.Size == nil:
				details.Size = &terminalSize{Source: d.Name, Width: width, Height: height}
			}
		}
		details.Descriptors = append(details.Descriptors, d)
	}
	return details
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}
