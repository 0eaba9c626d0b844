package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/shell"
	"github.com/atomicstack/panelbar/internal/theme"
)

// Brightness shows the backlight level reported by brightnessctl.
type Brightness struct {
	level    string
	reporter *bar.Reporter
}

func NewBrightness() *Brightness {
	return &Brightness{reporter: bar.NewReporter("brightness")}
}

func (b *Brightness) Update(ctx context.Context) {
	out, err := shell.Output(ctx, "brightnessctl", "-m")
	if err == nil {
		b.level, err = parseBrightnessctl(string(out))
	}
	if err != nil {
		b.level = ""
	}
	b.reporter.Report(err)
}

// parseBrightnessctl reads machine output such as
// "intel_backlight,backlight,400,40%,1000".
func parseBrightnessctl(out string) (string, error) {
	line := strings.TrimSpace(strings.SplitN(out, "\n", 2)[0])
	fields := strings.Split(line, ",")
	if len(fields) < 4 || !strings.HasSuffix(fields[3], "%") {
		return "", fmt.Errorf("unexpected brightnessctl output %q", line)
	}
	return fields[3], nil
}

func (b *Brightness) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	if b.level == "" {
		return nil, nil
	}
	return []bar.Fragment{bar.Styled("󰃠 "+b.level, theme.Style(theme.Default().Text, colorize))}, nil
}
