package script

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	lua "github.com/yuin/gopher-lua"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/theme"
)

// renderTimeout bounds a single render call. Render runs on every frame and
// must not stall the loop.
const renderTimeout = 250 * time.Millisecond

// Component adapts a Lua script to bar.Component. It owns one interpreter,
// released by Close.
type Component struct {
	name     string
	L        *lua.LState
	update   *lua.LFunction
	render   *lua.LFunction
	reporter *bar.Reporter
}

// New instantiates the compiled script proto with the entry's options.
func New(name string, proto *lua.FunctionProto, opts bar.Options) (*Component, error) {
	return instantiate(name, proto, opts)
}

func (c *Component) Update(ctx context.Context) {
	if c.L == nil {
		return
	}
	c.L.SetContext(ctx)
	defer c.L.RemoveContext()
	err := c.L.CallByParam(lua.P{Fn: c.update, NRet: 0, Protect: true})
	if err != nil {
		err = fmt.Errorf("update: %w", err)
	}
	c.reporter.Report(err)
}

func (c *Component) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	if c.L == nil || c.reporter.Err() != nil {
		return c.degraded(colorize), nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
	defer cancel()
	c.L.SetContext(ctx)
	defer c.L.RemoveContext()

	if err := c.L.CallByParam(lua.P{Fn: c.render, NRet: 1, Protect: true}, lua.LBool(colorize)); err != nil {
		c.reporter.Report(fmt.Errorf("render: %w", err))
		return c.degraded(colorize), nil
	}
	ret := c.L.Get(-1)
	c.L.Pop(1)
	return decode(ret, colorize, x, y)
}

// Close releases the interpreter.
func (c *Component) Close() error {
	if c.L != nil {
		c.L.Close()
		c.L = nil
	}
	return nil
}

func (c *Component) degraded(colorize bool) []bar.Fragment {
	return []bar.Fragment{bar.Styled("⚠ "+c.name, theme.Style(theme.Default().Warning, colorize))}
}

// decode converts a render return value into fragments and click areas.
func decode(value lua.LValue, colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	switch v := value.(type) {
	case lua.LString:
		return []bar.Fragment{bar.Plain(string(v))}, nil
	case lua.LNumber:
		return []bar.Fragment{bar.Plain(v.String())}, nil
	case *lua.LTable:
		var (
			fragments []bar.Fragment
			areas     []bar.ClickArea
			cursor    = x
		)
		for i := 1; i <= v.Len(); i++ {
			frag, target := decodeFragment(v.RawGetInt(i), colorize)
			if frag.Text == "" {
				continue
			}
			width := frag.Width()
			if target != nil {
				areas = append(areas, bar.ClickArea{X: cursor, Y: y, Width: width, Height: 1, Target: *target})
			}
			fragments = append(fragments, frag)
			cursor += width
		}
		return fragments, areas
	}
	return nil, nil
}

func decodeFragment(value lua.LValue, colorize bool) (bar.Fragment, *bar.Target) {
	switch v := value.(type) {
	case lua.LString:
		return bar.Plain(string(v)), nil
	case lua.LNumber:
		return bar.Plain(v.String()), nil
	case *lua.LTable:
		frag := bar.Plain(lua.LVAsString(v.RawGetString("text")))
		if colorize {
			style := lipgloss.NewStyle()
			if fg := lua.LVAsString(v.RawGetString("fg")); fg != "" {
				style = style.Foreground(theme.Color(fg))
			}
			if bg := lua.LVAsString(v.RawGetString("bg")); bg != "" {
				style = style.Background(theme.Color(bg))
			}
			if lua.LVAsBool(v.RawGetString("bold")) {
				style = style.Bold(true)
			}
			if lua.LVAsBool(v.RawGetString("italic")) {
				style = style.Italic(true)
			}
			frag.Style = style
		}
		if ws := v.RawGetString("workspace"); ws != lua.LNil {
			t := bar.Workspace(lua.LVAsString(ws))
			return frag, &t
		}
		if win := v.RawGetString("window"); win != lua.LNil {
			t := bar.Window(lua.LVAsString(win))
			return frag, &t
		}
		return frag, nil
	}
	return bar.Fragment{}, nil
}
