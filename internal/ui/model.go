package ui

import (
	"context"
	"reflect"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/panelbar/internal/backend"
	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/logging/events"
	"github.com/atomicstack/panelbar/internal/ui/command"
)

const (
	DefaultTick  = 333 * time.Millisecond
	defaultWidth = 80
)

// State is the lifecycle phase of the loop.
type State int

const (
	Running State = iota
	Quitting
)

func (s State) String() string {
	if s == Quitting {
		return "quitting"
	}
	return "running"
}

// Components is the live component set as seen by the loop.
type Components interface {
	bar.Source
	Update(ctx context.Context)
	Reload() error
}

// Options configures a Model.
type Options struct {
	Components Components
	// Events delivers reload signals. Nil disables live reload.
	Events <-chan backend.Event
	Bus    *command.Bus
	Tick   time.Duration
	Width  int
	Height int
	// NoColor forces plain output regardless of the document's colorize flag.
	NoColor bool
}

// Model implements tea.Model for the status bar.
type Model struct {
	components Components
	source     bar.Source
	events     <-chan backend.Event
	bus        *command.Bus
	tick       time.Duration
	schedule   func(time.Duration) tea.Cmd
	ctx        context.Context

	renderers []bar.Renderer
	width     int
	height    int
	state     State

	frame string
	areas []bar.ClickArea
	ticks int

	handlers map[reflect.Type]msgHandler
}

type msgHandler func(tea.Msg) tea.Cmd

type tickMsg time.Time

// NewModel wires a model to its component set and collaborators.
func NewModel(opts Options) *Model {
	m := &Model{
		components: opts.Components,
		source:     opts.Components,
		events:     opts.Events,
		bus:        opts.Bus,
		tick:       opts.Tick,
		schedule:   scheduleTick,
		ctx:        context.Background(),
		renderers:  []bar.Renderer{bar.NewLeftBar(), bar.NewMiddleBar(), bar.NewRightBar()},
		width:      opts.Width,
		height:     opts.Height,
	}
	if m.tick <= 0 {
		m.tick = DefaultTick
	}
	if m.width <= 0 {
		m.width = defaultWidth
	}
	if m.height <= 0 {
		m.height = 1
	}
	if m.bus == nil {
		m.bus = command.New(nil)
	}
	if opts.NoColor && opts.Components != nil {
		m.source = plainSource{opts.Components}
	}
	m.registerHandlers()
	return m
}

func scheduleTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init renders the first frame immediately and starts listening for reloads.
func (m *Model) Init() tea.Cmd {
	first := func() tea.Msg { return tickMsg(time.Now()) }
	if m.events == nil {
		return first
	}
	return tea.Batch(first, waitForBackendEvent(m.events))
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

// State reports the loop's lifecycle phase.
func (m *Model) State() State {
	return m.state
}

// ClickAreas returns the click areas of the current frame.
func (m *Model) ClickAreas() []bar.ClickArea {
	return m.areas
}

// Ticks counts processed ticks.
func (m *Model) Ticks() int {
	return m.ticks
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tickMsg{}):           m.handleTickMsg,
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
		reflect.TypeOf(command.ResultMsg{}): m.handleResultMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleTickMsg(tea.Msg) tea.Cmd {
	if m.state == Quitting {
		return nil
	}
	m.ticks++
	if m.components != nil {
		m.components.Update(m.ctx)
	}
	m.render()
	return m.schedule(m.tick)
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size := msg.(tea.WindowSizeMsg)
	m.width = size.Width
	m.height = size.Height
	if m.ticks > 0 && m.state == Running {
		m.render()
	}
	return nil
}

func (m *Model) handleResultMsg(msg tea.Msg) tea.Cmd {
	res := msg.(command.ResultMsg)
	if res.Err != nil {
		events.Click.Error(res.Request.Target.Kind.String(), res.Request.Target.ID, res.Err)
	}
	return nil
}

func (m *Model) quit(reason string) tea.Cmd {
	m.state = Quitting
	m.areas = nil
	events.App.Quit(reason)
	return tea.Quit
}

// plainSource disables colour for every component.
type plainSource struct {
	bar.Source
}

func (plainSource) Colorize() bool { return false }
