package bar

import (
	"context"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Component is a single widget placed in one of the bar regions.
//
// Update may block on I/O (external commands, sysfs reads) and must absorb
// failures into a degraded display state instead of returning them. Render
// is a pure function of the state captured by the last Update; click areas it
// returns use absolute coordinates derived from the supplied origin.
type Component interface {
	Update(ctx context.Context)
	Render(colorize bool, x, y int) ([]Fragment, []ClickArea)
}

// Fragment is a run of styled text inside a rendered component.
type Fragment struct {
	Text  string
	Style lipgloss.Style
}

// Plain returns an unstyled fragment.
func Plain(text string) Fragment {
	return Fragment{Text: text, Style: lipgloss.NewStyle()}
}

// Styled returns a fragment rendered with style.
func Styled(text string, style lipgloss.Style) Fragment {
	return Fragment{Text: text, Style: style}
}

// Width is the number of terminal cells the fragment occupies.
func (f Fragment) Width() int {
	return ansi.StringWidth(f.Text)
}

// String renders the fragment with its style applied.
func (f Fragment) String() string {
	if f.Text == "" {
		return ""
	}
	return f.Style.Render(f.Text)
}

// Width sums the cell width of a fragment sequence.
func Width(fragments []Fragment) int {
	total := 0
	for _, f := range fragments {
		total += f.Width()
	}
	return total
}

// Text concatenates the unstyled text of a fragment sequence.
func Text(fragments []Fragment) string {
	var b strings.Builder
	for _, f := range fragments {
		b.WriteString(f.Text)
	}
	return b.String()
}
