package components

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v3/cpu"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/theme"
)

type usageConfig struct {
	Icon            string `json:"icon"`
	Sparkline       bool   `json:"sparkline"`
	SparklineLength int    `json:"sparkline_length"`
	UpdateInterval  int    `json:"update_interval"`
	Format          string `json:"format"`
	High            int    `json:"high"`
}

var cpuFactory = bar.Configurable(usageConfig{
	Icon:            "󰻠",
	SparklineLength: 10,
	UpdateInterval:  3,
	High:            90,
}, func(cfg usageConfig) (bar.Component, error) {
	return NewCPU(cfg), nil
})

var cpuPercent = func(ctx context.Context) (float64, error) {
	values, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, err
	}
	if len(values) == 0 {
		return 0, fmt.Errorf("no cpu samples")
	}
	return values[0], nil
}

// CPU shows total processor utilisation, optionally as a sparkline.
type CPU struct {
	cfg      usageConfig
	usage    int
	spark    *sparkline
	interval interval
	reporter *bar.Reporter
}

func NewCPU(cfg usageConfig) *CPU {
	return &CPU{
		cfg:      cfg,
		spark:    newSparkline(cfg.SparklineLength),
		interval: interval{every: seconds(cfg.UpdateInterval)},
		reporter: bar.NewReporter("cpu"),
	}
}

func (c *CPU) Update(ctx context.Context) {
	if !c.interval.due() {
		return
	}
	pct, err := cpuPercent(ctx)
	c.reporter.Report(err)
	if err != nil {
		return
	}
	c.usage = int(pct)
	c.spark.push(pct)
}

func (c *CPU) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	styles := theme.Default()
	style := styles.Text
	if c.usage >= c.cfg.High {
		style = styles.Critical
	}
	text := fmt.Sprintf("%s %d%%", c.cfg.Icon, c.usage)
	if c.cfg.Sparkline {
		text = c.cfg.Icon + " " + c.spark.String()
	}
	return []bar.Fragment{bar.Styled(text, theme.Style(style, colorize))}, nil
}
