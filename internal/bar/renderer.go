package bar

import (
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/panelbar/internal/logging/events"
)

// Source supplies the components a renderer lays out.
type Source interface {
	BarComponents(r Region) []Component
	Colorize() bool
}

// Align positions a region's content inside its rectangle.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Rect is the screen rectangle assigned to a region.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Renderer lays out one region's components left to right.
type Renderer struct {
	region Region
	align  Align
}

func NewLeftBar() Renderer   { return Renderer{region: Left, align: AlignLeft} }
func NewMiddleBar() Renderer { return Renderer{region: Middle, align: AlignCenter} }
func NewRightBar() Renderer  { return Renderer{region: Right, align: AlignRight} }

// Region returns the region this renderer draws.
func (r Renderer) Region() Region {
	return r.region
}

// Render draws the region into area and returns the line together with the
// click areas produced this frame. The line is exactly area.Width cells wide
// unless the region is empty, in which case it is the empty string.
func (r Renderer) Render(src Source, area Rect) (string, []ClickArea) {
	components := src.BarComponents(r.region)
	if len(components) == 0 || area.Width <= 0 {
		return "", nil
	}
	colorize := src.Colorize()

	var (
		b      strings.Builder
		areas  []ClickArea
		cursor = area.X
	)
	for _, c := range components {
		fragments, clicks := renderComponent(c, colorize, cursor, area.Y)
		for _, f := range fragments {
			b.WriteString(f.String())
		}
		areas = append(areas, clicks...)
		cursor += Width(fragments)
	}

	line := b.String()
	used := cursor - area.X
	offset := 0
	if used > area.Width {
		// a wide rune straddling the edge is dropped, leaving the line short
		line = ansi.Truncate(line, area.Width, "")
		used = ansi.StringWidth(line)
	} else {
		switch r.align {
		case AlignCenter:
			offset = (area.Width - used) / 2
		case AlignRight:
			offset = area.Width - used
		}
	}

	areas = clip(areas, offset, area)
	line = strings.Repeat(" ", offset) + line + strings.Repeat(" ", area.Width-offset-used)
	return line, areas
}

func renderComponent(c Component, colorize bool, x, y int) (fragments []Fragment, clicks []ClickArea) {
	defer func() {
		if rec := recover(); rec != nil {
			events.Component.Panic("render", rec)
			fragments, clicks = nil, nil
		}
	}()
	return c.Render(colorize, x, y)
}

// clip shifts areas by offset and trims them to the region rectangle.
func clip(areas []ClickArea, offset int, area Rect) []ClickArea {
	if len(areas) == 0 {
		return nil
	}
	right := area.X + area.Width
	out := areas[:0]
	for _, a := range areas {
		a.X += offset
		if a.X >= right || a.X+a.Width <= area.X {
			continue
		}
		if a.X < area.X {
			a.Width -= area.X - a.X
			a.X = area.X
		}
		if a.X+a.Width > right {
			a.Width = right - a.X
		}
		out = append(out, a)
	}
	return out
}
