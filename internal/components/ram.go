package components

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/theme"
)

var ramFactory = bar.Configurable(usageConfig{
	Icon:            "󰍛",
	SparklineLength: 10,
	UpdateInterval:  2,
	Format:          "percent",
	High:            90,
}, func(cfg usageConfig) (bar.Component, error) {
	if cfg.Format != "percent" && cfg.Format != "bytes" {
		return nil, fmt.Errorf("%w: format must be percent or bytes, got %q", bar.ErrInvalidOptions, cfg.Format)
	}
	return NewRAM(cfg), nil
})

type memory struct {
	Used    uint64
	Total   uint64
	Percent float64
}

var virtualMemory = func(ctx context.Context) (memory, error) {
	v, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return memory{}, err
	}
	return memory{Used: v.Used, Total: v.Total, Percent: v.UsedPercent}, nil
}

// RAM shows memory utilisation as a percentage, byte counts or a sparkline.
type RAM struct {
	cfg      usageConfig
	mem      memory
	spark    *sparkline
	interval interval
	reporter *bar.Reporter
}

func NewRAM(cfg usageConfig) *RAM {
	return &RAM{
		cfg:      cfg,
		spark:    newSparkline(cfg.SparklineLength),
		interval: interval{every: seconds(cfg.UpdateInterval)},
		reporter: bar.NewReporter("ram"),
	}
}

func (r *RAM) Update(ctx context.Context) {
	if !r.interval.due() {
		return
	}
	m, err := virtualMemory(ctx)
	r.reporter.Report(err)
	if err != nil {
		return
	}
	r.mem = m
	r.spark.push(m.Percent)
}

func (r *RAM) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	styles := theme.Default()
	style := styles.Good
	if int(r.mem.Percent) >= r.cfg.High {
		style = styles.Critical
	}
	var text string
	switch {
	case r.cfg.Sparkline:
		text = r.cfg.Icon + " " + r.spark.String()
	case r.cfg.Format == "bytes":
		text = fmt.Sprintf("%s %s/%s", r.cfg.Icon, humanize.IBytes(r.mem.Used), humanize.IBytes(r.mem.Total))
	default:
		text = fmt.Sprintf("%s %d%%", r.cfg.Icon, int(r.mem.Percent))
	}
	return []bar.Fragment{bar.Styled(text, theme.Style(style, colorize))}, nil
}
