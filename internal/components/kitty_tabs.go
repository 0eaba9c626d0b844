package components

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/hypr"
	"github.com/atomicstack/panelbar/internal/kitty"
	"github.com/atomicstack/panelbar/internal/theme"
)

type kittyTabsConfig struct {
	Socket   string `json:"socket"`
	MaxTitle int    `json:"max_title"`
}

var kittyTabsFactory = bar.Configurable(kittyTabsConfig{MaxTitle: 16}, func(cfg kittyTabsConfig) (bar.Component, error) {
	return NewKittyTabs(cfg), nil
})

// tabRule styles tabs whose lower-cased title starts with one of prefixes or
// contains one of substrings. Rules are tried in order.
type tabRule struct {
	prefixes   []string
	substrings []string
	icon       string
	bg, fg     string
}

func (r tabRule) matches(title string) bool {
	for _, p := range r.prefixes {
		if strings.HasPrefix(title, p) {
			return true
		}
	}
	for _, s := range r.substrings {
		if strings.Contains(title, s) {
			return true
		}
	}
	return false
}

var tabRules = []tabRule{
	{prefixes: []string{"nvim"}, substrings: []string{"neovim"}, icon: "\ue62b", bg: "#006b54", fg: "#ffffff"},
	{prefixes: []string{"vim"}, icon: "\ue7c5", bg: "#138647", fg: "#ffffff"},
	{prefixes: []string{"emacs"}, icon: "󰍹", bg: "#92237f", fg: "#ffffff"},
	{prefixes: []string{"htop", "btop", "bottom", "glances"}, icon: "󰔚", bg: "#ff9800", fg: "#000000"},
	{prefixes: []string{"yazi"}, icon: "󰇥", bg: "#ffc857", fg: "#000000"},
	{prefixes: []string{"ranger", "lf", "nnn", "ncdu"}, icon: "󰉋", bg: "#2980b9", fg: "#ffffff"},
	{prefixes: []string{"lazygit", "gitui", "tig", "git"}, icon: "󰊢", bg: "#f05032", fg: "#ffffff"},
	{prefixes: []string{"ssh"}, icon: "󰣀", bg: "#0064c8", fg: "#ffffff"},
	{prefixes: []string{"cmus", "ncmpcpp"}, icon: "󰓇", bg: "#1db954", fg: "#ffffff"},
	{prefixes: []string{"lazydocker", "docker"}, icon: "󰡨", bg: "#2980b9", fg: "#ffffff"},
	{prefixes: []string{"node", "npm", "deno", "bun"}, icon: "󰎙", bg: "#664dff", fg: "#ffffff"},
	{prefixes: []string{"python", "pip", "poetry"}, icon: "󰌠", bg: "#3572a5", fg: "#ffffff"},
	{prefixes: []string{"rustc"}, substrings: []string{"cargo"}, icon: "󱘗", bg: "#de4c41", fg: "#ffffff"},
	{prefixes: []string{"go"}, icon: "󰟦", bg: "#00add8", fg: "#000000"},
	{prefixes: []string{"k9s", "kubectl"}, icon: "󱃾", bg: "#3d5afe", fg: "#ffffff"},
	{prefixes: []string{"terraform", "tf"}, icon: "󱁢", bg: "#5e676e", fg: "#ffffff"},
	{prefixes: []string{"tmux", "screen"}, icon: "󰆍", bg: "#2e3440", fg: "#ffffff"},
	{prefixes: []string{"weechat", "irssi"}, icon: "󰒱", bg: "#fe0054", fg: "#ffffff"},
	{prefixes: []string{"neomutt", "mutt"}, icon: "󰇰", bg: "#0070c1", fg: "#ffffff"},
	{prefixes: []string{"jq", "yq"}, icon: "󰉼", bg: "#009688", fg: "#ffffff"},
	{prefixes: []string{"make", "cmake"}, icon: "󰆍", bg: "#e67e22", fg: "#ffffff"},
	{prefixes: []string{"gdb", "lldb"}, icon: "󰃤", bg: "#e74c3c", fg: "#ffffff"},
	{prefixes: []string{"wget", "curl"}, icon: "󰈁", bg: "#3498db", fg: "#ffffff"},
	{substrings: []string{"watch", "tail"}, icon: "󰈰", bg: "#9c27b0", fg: "#ffffff"},
	{prefixes: []string{"fzf", "rg", "grep", "fd", "find"}, icon: "󰍉", bg: "#67758c", fg: "#ffffff"},
	{prefixes: []string{"bat", "less", "more", "man"}, icon: "󰈚", bg: "#67758c", fg: "#ffffff"},
}

// shellTab covers shells and anything no rule knows.
var shellTab = tabRule{icon: "󰆍", bg: "#67758c", fg: "#ffffff"}

func ruleFor(title string) tabRule {
	lower := strings.ToLower(strings.TrimSpace(title))
	for _, r := range tabRules {
		if r.matches(lower) {
			return r
		}
	}
	return shellTab
}

// KittyTabs lists the tabs of the focused kitty window. Only kitty instances
// started with --single-instance are queried; any other focused window
// renders nothing. Clicking a tab focuses it.
type KittyTabs struct {
	cfg      kittyTabsConfig
	endpoint string
	tabs     []kitty.Tab
	reporter *bar.Reporter
}

func NewKittyTabs(cfg kittyTabsConfig) *KittyTabs {
	return &KittyTabs{cfg: cfg, reporter: bar.NewReporter("kitty_tabs")}
}

func (k *KittyTabs) Update(ctx context.Context) {
	k.tabs = nil
	if !hypr.Available() {
		return
	}
	active, err := hypr.ActiveWindow(ctx)
	if err != nil {
		k.reporter.Report(err)
		return
	}
	if active.Class != kitty.Class || active.PID <= 0 {
		k.reporter.Report(nil)
		return
	}
	single, err := kitty.SingleInstance(ctx, active.PID)
	if err != nil || !single {
		k.reporter.Report(err)
		return
	}
	socket := k.cfg.Socket
	if socket == "" {
		socket = kitty.DefaultSocket(active.PID)
	}
	k.endpoint = kitty.Endpoint(socket)
	tabs, err := kitty.FocusedTabs(ctx, k.endpoint)
	k.reporter.Report(err)
	if err != nil {
		return
	}
	k.tabs = tabs
}

// Render shows the active tab with its icon and title on the program's
// colour, and the other tabs as bare icons.
func (k *KittyTabs) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	styles := theme.Default()
	var (
		fragments []bar.Fragment
		areas     []bar.ClickArea
		cursor    = x
	)
	for _, tab := range k.tabs {
		rule := ruleFor(tab.Title)
		var frag bar.Fragment
		if tab.IsActive {
			style := lipgloss.NewStyle().Reverse(true)
			if colorize {
				style = lipgloss.NewStyle().Background(lipgloss.Color(rule.bg)).Foreground(lipgloss.Color(rule.fg))
			}
			frag = bar.Styled(" "+rule.icon+" "+runewidth.Truncate(tab.Title, k.cfg.MaxTitle, "…")+" ", style)
		} else {
			frag = bar.Styled(" "+rule.icon+" ", theme.Style(styles.Inactive, colorize))
		}
		width := frag.Width()
		fragments = append(fragments, frag)
		areas = append(areas, bar.ClickArea{X: cursor, Y: y, Width: width, Height: 1, Target: bar.Tab(k.endpoint, strconv.Itoa(tab.ID))})
		cursor += width
	}
	return fragments, areas
}
