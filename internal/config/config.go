package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atomicstack/panelbar/internal/app"
	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/ui"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Panel   Panel
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// Panel controls relaunching the bar inside a kitty panel.
type Panel struct {
	Spawn bool
}

const (
	envConfig        = "PANELBAR_CONFIG"
	envLogFile       = "PANELBAR_LOG_FILE"
	envTrace         = "PANELBAR_TRACE"
	envTick          = "PANELBAR_TICK"
	envUpdateTimeout = "PANELBAR_UPDATE_TIMEOUT"
	envWM            = "PANELBAR_WM"
	envSocketPath    = "PANELBAR_SOCKET"
	envPIDFile       = "PANELBAR_PID_FILE"
	envPanel         = "PANELBAR_PANEL"
)

var windowManagers = []string{app.WMAuto, app.WMHyprland, app.WMTmux, app.WMNone}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("panelbar", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	document := fs.String("config", envOrDefault(env, envConfig, ""), "path to the bar document (json, toml or yaml)")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	tick := fs.Duration("tick", envOrDuration(env, envTick, ui.DefaultTick), "redraw interval")
	updateTimeout := fs.Duration("update-timeout", envOrDuration(env, envUpdateTimeout, bar.DefaultUpdateTimeout), "deadline for a single component refresh")
	wm := fs.String("wm", envOrDefault(env, envWM, app.WMAuto), "click target: auto, hyprland, tmux or none")
	socket := fs.String("socket", envOrDefault(env, envSocketPath, ""), "path to the tmux socket (overrides environment detection)")
	pidFile := fs.String("pid-file", envOrDefault(env, envPIDFile, ""), "path to the pid file")
	spawnPanel := fs.Bool("panel", envOrBool(env, envPanel, false), "relaunch inside a kitty panel and exit")
	noPanel := fs.Bool("no-panel", false, "run the bar in this terminal even when --panel is set")
	noWatch := fs.Bool("no-watch", false, "disable reloading when the document changes")
	list := fs.Bool("list-components", false, "print the available components and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	cfg := Config{
		App: app.Config{
			DocumentPath:   *document,
			Tick:           *tick,
			UpdateTimeout:  *updateTimeout,
			WM:             strings.ToLower(strings.TrimSpace(*wm)),
			SocketPath:     *socket,
			PIDFile:        *pidFile,
			Watch:          !*noWatch,
			ListComponents: *list,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Panel: Panel{
			Spawn: *spawnPanel && !*noPanel,
		},
		Flags: map[string]string{
			"config":         *document,
			"tick":           tick.String(),
			"updateTimeout":  updateTimeout.String(),
			"wm":             *wm,
			"socket":         *socket,
			"pidFile":        *pidFile,
			"panel":          strconv.FormatBool(*spawnPanel),
			"noPanel":        strconv.FormatBool(*noPanel),
			"noWatch":        strconv.FormatBool(*noWatch),
			"listComponents": strconv.FormatBool(*list),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects settings the loop cannot run with.
func Validate(cfg Config) error {
	if cfg.App.Tick <= 0 {
		return fmt.Errorf("tick must be > 0 (got %s)", cfg.App.Tick)
	}
	if cfg.App.UpdateTimeout <= 0 {
		return fmt.Errorf("update-timeout must be > 0 (got %s)", cfg.App.UpdateTimeout)
	}
	for _, wm := range windowManagers {
		if cfg.App.WM == wm {
			return nil
		}
	}
	return fmt.Errorf("wm must be one of %s (got %q)", strings.Join(windowManagers, ", "), cfg.App.WM)
}
