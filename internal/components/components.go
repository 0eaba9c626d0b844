// Package components holds the compiled bar components and their
// registration.
package components

import (
	"time"

	"github.com/atomicstack/panelbar/internal/bar"
)

// Env carries runtime settings some components need at construction.
type Env struct {
	TmuxSocket string
}

// Register adds every configurable component to reg. Each entry pairs the
// document name with a factory decoding that component's options.
func Register(reg *bar.Registry, env Env) {
	reg.Register("time", timeFactory)
	reg.Register("cpu", cpuFactory)
	reg.Register("ram", ramFactory)
	reg.Register("battery", batteryFactory)
	reg.Register("temperature", temperatureFactory)
	reg.Register("wifi", wifiFactory)
	reg.Register("weather", weatherFactory)
	reg.Register("separator", separatorFactory)
	reg.Register("text", textFactory)
	reg.Register("tmux_windows", tmuxWindowsFactory(env))
	reg.Register("kitty_tabs", kittyTabsFactory)
}

// Builtins returns constructors for the components that take no options.
func Builtins(env Env) map[string]func() bar.Component {
	return map[string]func() bar.Component{
		"volume":     func() bar.Component { return NewVolume() },
		"brightness": func() bar.Component { return NewBrightness() },
		"workspaces": func() bar.Component { return NewWorkspaces() },
		"windows":    func() bar.Component { return NewWindows() },
		"space":      func() bar.Component { return Space{} },
		"error_icon": func() bar.Component { return NewErrorIcon() },
	}
}

var now = time.Now

// interval gates refreshes that are more expensive than a tick.
type interval struct {
	every time.Duration
	last  time.Time
}

// due reports whether a refresh should run now and records it if so. The
// first call is always due.
func (i *interval) due() bool {
	n := now()
	if !i.last.IsZero() && n.Sub(i.last) < i.every {
		return false
	}
	i.last = n
	return true
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}
