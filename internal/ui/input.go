package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/logging/events"
	"github.com/atomicstack/panelbar/internal/ui/command"
)

type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("esc", "q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg := msg.(tea.KeyMsg)
	if m.state == Quitting {
		return nil
	}
	if key.Matches(keyMsg, keys.Quit) {
		return m.quit(keyMsg.String())
	}
	return nil
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse := msg.(tea.MouseMsg)
	if m.state == Quitting {
		return nil
	}
	if mouse.Action != tea.MouseActionPress || mouse.Button != tea.MouseButtonLeft {
		return nil
	}
	area, ok := bar.FindClick(m.areas, mouse.X, mouse.Y)
	if !ok {
		events.Click.Miss(mouse.X, mouse.Y)
		return nil
	}
	return m.bus.Execute(command.Request{Target: area.Target, X: mouse.X, Y: mouse.Y})
}
