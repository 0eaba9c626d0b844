package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles describes reusable Lip Gloss styles shared by bar components.
type Styles struct {
	Text      *lipgloss.Style
	Dim       *lipgloss.Style
	Accent    *lipgloss.Style
	Good      *lipgloss.Style
	Warning   *lipgloss.Style
	Critical  *lipgloss.Style
	Active    *lipgloss.Style
	Inactive  *lipgloss.Style
	Day       *lipgloss.Style
	Night     *lipgloss.Style
	Sparkline *lipgloss.Style
	Separator *lipgloss.Style
	ErrorIcon *lipgloss.Style
}

var defaultStyles = Styles{
	Text: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Dim: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Accent: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	Good: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Warning: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	),
	Critical: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Active: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	Inactive: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	Day: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	),
	Night: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("69")),
	),
	Sparkline: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("37")),
	),
	Separator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	ErrorIcon: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
}

// Default exposes the standard style set used across the bar.
func Default() *Styles {
	return &defaultStyles
}

// palette maps the colour names accepted in configuration and scripts onto
// ANSI 256 colour numbers.
var palette = map[string]string{
	"black":   "0",
	"red":     "196",
	"green":   "34",
	"yellow":  "220",
	"orange":  "214",
	"blue":    "33",
	"magenta": "170",
	"purple":  "99",
	"cyan":    "37",
	"white":   "255",
	"gray":    "245",
	"grey":    "245",
	"dim":     "241",
}

// Color resolves a colour name, ANSI number or hex code. Unknown names
// resolve to the empty colour, which leaves the terminal default.
func Color(name string) lipgloss.Color {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return lipgloss.Color("")
	}
	if code, ok := palette[name]; ok {
		return lipgloss.Color(code)
	}
	if strings.HasPrefix(name, "#") || isNumber(name) {
		return lipgloss.Color(name)
	}
	return lipgloss.Color("")
}

// Style returns s when colorize is set and an empty style otherwise.
func Style(s *lipgloss.Style, colorize bool) lipgloss.Style {
	if !colorize || s == nil {
		return lipgloss.NewStyle()
	}
	return *s
}

func isNumber(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
