package components

import (
	"context"
	"fmt"
	"strings"

	"github.com/shirou/gopsutil/v3/host"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/theme"
)

type temperatureConfig struct {
	Sensor         string `json:"sensor"`
	High           int    `json:"high"`
	UpdateInterval int    `json:"update_interval"`
}

var temperatureFactory = bar.Configurable(temperatureConfig{High: 80, UpdateInterval: 5}, func(cfg temperatureConfig) (bar.Component, error) {
	return NewTemperature(cfg), nil
})

type sensorReading struct {
	Key     string
	Celsius float64
}

var sensorTemperatures = func(ctx context.Context) ([]sensorReading, error) {
	stats, err := host.SensorsTemperaturesWithContext(ctx)
	// partial readings arrive together with a warnings error
	if len(stats) == 0 && err != nil {
		return nil, err
	}
	out := make([]sensorReading, 0, len(stats))
	for _, s := range stats {
		out = append(out, sensorReading{Key: s.SensorKey, Celsius: s.Temperature})
	}
	return out, nil
}

// Temperature shows one sensor reading, or the hottest sensor when none is
// configured.
type Temperature struct {
	cfg      temperatureConfig
	celsius  float64
	valid    bool
	interval interval
	reporter *bar.Reporter
}

func NewTemperature(cfg temperatureConfig) *Temperature {
	return &Temperature{cfg: cfg, interval: interval{every: seconds(cfg.UpdateInterval)}, reporter: bar.NewReporter("temperature")}
}

func (t *Temperature) Update(ctx context.Context) {
	if !t.interval.due() {
		return
	}
	readings, err := sensorTemperatures(ctx)
	if err != nil {
		t.reporter.Report(err)
		return
	}
	reading, ok := pickSensor(readings, t.cfg.Sensor)
	if !ok {
		t.valid = false
		t.reporter.Report(fmt.Errorf("sensor %q not found", t.cfg.Sensor))
		return
	}
	t.celsius = reading.Celsius
	t.valid = true
	t.reporter.Report(nil)
}

func pickSensor(readings []sensorReading, want string) (sensorReading, bool) {
	var (
		best  sensorReading
		found bool
	)
	for _, r := range readings {
		if want != "" {
			if strings.Contains(r.Key, want) {
				return r, true
			}
			continue
		}
		if !found || r.Celsius > best.Celsius {
			best, found = r, true
		}
	}
	return best, found
}

func (t *Temperature) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	if !t.valid {
		return nil, nil
	}
	styles := theme.Default()
	style := styles.Text
	if int(t.celsius) >= t.cfg.High {
		style = styles.Critical
	}
	return []bar.Fragment{bar.Styled(fmt.Sprintf("󰔏 %d°C", int(t.celsius)), theme.Style(style, colorize))}, nil
}
