package components

import (
	"context"
	"fmt"
	"math"

	"github.com/distatus/battery"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/theme"
)

type batteryConfig struct {
	Index int `json:"index"`
	Low   int `json:"low"`
}

var batteryFactory = bar.Configurable(batteryConfig{Low: 20}, func(cfg batteryConfig) (bar.Component, error) {
	if cfg.Index < 0 {
		return nil, fmt.Errorf("%w: index must be >= 0", bar.ErrInvalidOptions)
	}
	return NewBattery(cfg), nil
})

// batteryReading is one battery's charge. Known is false for a slot the
// platform listed but could not read.
type batteryReading struct {
	Known   bool
	Percent int
	State   string
}

func readingOf(dev *battery.Battery) batteryReading {
	if dev == nil || dev.Full <= 0 {
		return batteryReading{}
	}
	pct := int(math.Round(dev.Current / dev.Full * 100))
	if pct > 100 {
		pct = 100
	}
	return batteryReading{Known: true, Percent: pct, State: dev.State.String()}
}

// readBatteries lists every battery in platform order. The error may be
// partial, in which case readable slots are still returned.
var readBatteries = func() ([]batteryReading, error) {
	devices, err := battery.GetAll()
	readings := make([]batteryReading, len(devices))
	for i, dev := range devices {
		readings[i] = readingOf(dev)
	}
	return readings, err
}

// Battery shows the charge of one battery. Machines without a battery
// render nothing.
type Battery struct {
	cfg      batteryConfig
	present  bool
	capacity int
	status   string
	reporter *bar.Reporter
}

func NewBattery(cfg batteryConfig) *Battery {
	return &Battery{cfg: cfg, reporter: bar.NewReporter("battery")}
}

func (b *Battery) Update(context.Context) {
	readings, err := readBatteries()
	if b.cfg.Index < len(readings) && readings[b.cfg.Index].Known {
		r := readings[b.cfg.Index]
		b.present = true
		b.capacity = r.Percent
		b.status = r.State
		b.reporter.Report(nil)
		return
	}
	b.present = false
	b.reporter.Report(err)
}

func (b *Battery) charging() bool {
	return b.status == "Charging" || b.status == "Full"
}

func (b *Battery) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	if !b.present {
		return nil, nil
	}
	styles := theme.Default()
	style := styles.Text
	switch {
	case b.charging():
		style = styles.Good
	case b.capacity <= b.cfg.Low:
		style = styles.Critical
	}
	icon := "󰁹"
	if b.charging() {
		icon = "󰂄"
	}
	return []bar.Fragment{bar.Styled(fmt.Sprintf("%s %d%%", icon, b.capacity), theme.Style(style, colorize))}, nil
}
