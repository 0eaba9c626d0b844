package ui

import (
	"strings"

	"github.com/atomicstack/panelbar/internal/bar"
)

// barRow is the terminal row the bar occupies.
const barRow = 0

// layout splits the row into left, middle and right rectangles. The middle
// rectangle absorbs the remainder so the three always cover the full width.
func layout(width int) [3]bar.Rect {
	if width < 0 {
		width = 0
	}
	side := width / 3
	return [3]bar.Rect{
		{X: 0, Y: barRow, Width: side, Height: 1},
		{X: side, Y: barRow, Width: width - 2*side, Height: 1},
		{X: width - side, Y: barRow, Width: side, Height: 1},
	}
}

// render draws a fresh frame. Click areas from the previous frame are
// discarded first and the new ones are collected left, middle, right.
func (m *Model) render() {
	m.areas = nil
	if m.source == nil {
		m.frame = ""
		return
	}
	var b strings.Builder
	rects := layout(m.width)
	for i, renderer := range m.renderers {
		rect := rects[i]
		line, areas := renderer.Render(m.source, rect)
		if line == "" {
			line = strings.Repeat(" ", rect.Width)
		}
		b.WriteString(line)
		m.areas = append(m.areas, areas...)
	}
	m.frame = b.String()
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.state == Quitting {
		return ""
	}
	return m.frame
}
