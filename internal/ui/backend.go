package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/panelbar/internal/backend"
)

func waitForBackendEvent(ch <-chan backend.Event) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-ch
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.events != nil {
		return waitForBackendEvent(m.events)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(tea.Msg) tea.Cmd {
	m.events = nil
	return nil
}

// applyBackendEvent rebuilds the component set. The frame on screen and its
// click areas stay as they are until the next tick renders the new set.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Kind != backend.KindReload || m.state == Quitting || m.components == nil {
		return
	}
	// Reload logs its own failures and leaves the live set in place.
	_ = m.components.Reload()
}
