package components

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/shell"
	"github.com/atomicstack/panelbar/internal/theme"
)

// Volume shows the default audio sink level reported by wpctl.
type Volume struct {
	percent  int
	muted    bool
	known    bool
	reporter *bar.Reporter
}

func NewVolume() *Volume {
	return &Volume{reporter: bar.NewReporter("volume")}
}

func (v *Volume) Update(ctx context.Context) {
	out, err := shell.Output(ctx, "wpctl", "get-volume", "@DEFAULT_AUDIO_SINK@")
	if err == nil {
		v.percent, v.muted, err = parseWpctl(string(out))
	}
	v.reporter.Report(err)
	v.known = err == nil
}

// parseWpctl reads output such as "Volume: 0.40 [MUTED]".
func parseWpctl(out string) (int, bool, error) {
	fields := strings.Fields(out)
	if len(fields) < 2 {
		return 0, false, fmt.Errorf("unexpected wpctl output %q", strings.TrimSpace(out))
	}
	level, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse volume %q: %w", fields[1], err)
	}
	return int(level*100 + 0.5), strings.Contains(out, "[MUTED]"), nil
}

func (v *Volume) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	styles := theme.Default()
	if !v.known {
		return []bar.Fragment{bar.Styled("󰕾 --", theme.Style(styles.Dim, colorize))}, nil
	}
	if v.muted {
		return []bar.Fragment{bar.Styled("󰖁 muted", theme.Style(styles.Dim, colorize))}, nil
	}
	return []bar.Fragment{bar.Styled(fmt.Sprintf("󰕾 %d%%", v.percent), theme.Style(styles.Text, colorize))}, nil
}
