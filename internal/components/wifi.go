package components

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/shell"
	"github.com/atomicstack/panelbar/internal/theme"
)

type wifiConfig struct {
	Interface      string `json:"interface"`
	ShowSSID       bool   `json:"show_ssid"`
	UpdateInterval int    `json:"update_interval"`
}

var wifiFactory = bar.Configurable(wifiConfig{ShowSSID: true, UpdateInterval: 5}, func(cfg wifiConfig) (bar.Component, error) {
	return NewWifi(cfg), nil
})

// Wifi shows the connected network and its signal strength from nmcli.
type Wifi struct {
	cfg       wifiConfig
	connected bool
	ssid      string
	signal    int
	interval  interval
	reporter  *bar.Reporter
}

func NewWifi(cfg wifiConfig) *Wifi {
	return &Wifi{cfg: cfg, interval: interval{every: seconds(cfg.UpdateInterval)}, reporter: bar.NewReporter("wifi")}
}

func (w *Wifi) Update(ctx context.Context) {
	if !w.interval.due() {
		return
	}
	args := []string{"-t", "-f", "ACTIVE,SSID,SIGNAL", "device", "wifi", "list", "--rescan", "no"}
	if w.cfg.Interface != "" {
		args = append(args, "ifname", w.cfg.Interface)
	}
	out, err := shell.Output(ctx, "nmcli", args...)
	w.reporter.Report(err)
	if err != nil {
		w.connected = false
		return
	}
	w.connected, w.ssid, w.signal = parseNmcli(out)
}

// parseNmcli finds the active network in terse nmcli output. Colons inside
// the SSID arrive escaped as `\:`.
func parseNmcli(out []byte) (bool, string, int) {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "yes:") {
			continue
		}
		rest := strings.TrimPrefix(line, "yes:")
		cut := strings.LastIndex(rest, ":")
		if cut < 0 {
			continue
		}
		signal, _ := strconv.Atoi(rest[cut+1:])
		ssid := strings.ReplaceAll(rest[:cut], `\:`, ":")
		return true, ssid, signal
	}
	return false, "", 0
}

func (w *Wifi) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	styles := theme.Default()
	if !w.connected {
		return []bar.Fragment{bar.Styled("󰖪", theme.Style(styles.Dim, colorize))}, nil
	}
	style := styles.Text
	if w.signal < 30 {
		style = styles.Warning
	}
	text := fmt.Sprintf("󰖩 %d%%", w.signal)
	if w.cfg.ShowSSID {
		text = fmt.Sprintf("󰖩 %s %d%%", w.ssid, w.signal)
	}
	return []bar.Fragment{bar.Styled(text, theme.Style(style, colorize))}, nil
}
