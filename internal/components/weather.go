package components

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/shell"
	"github.com/atomicstack/panelbar/internal/theme"
)

type weatherConfig struct {
	Location       string `json:"location"`
	Format         string `json:"format"`
	UpdateInterval int    `json:"update_interval"`
}

var weatherFactory = bar.Configurable(weatherConfig{Format: "%c%t", UpdateInterval: 900}, func(cfg weatherConfig) (bar.Component, error) {
	return NewWeather(cfg), nil
})

// weatherRetry is how soon a failed fetch is retried.
const weatherRetry = time.Minute

// Weather shows a one-line forecast from wttr.in, refreshed sparingly.
type Weather struct {
	cfg      weatherConfig
	text     string
	interval interval
	reporter *bar.Reporter
}

func NewWeather(cfg weatherConfig) *Weather {
	return &Weather{cfg: cfg, interval: interval{every: seconds(cfg.UpdateInterval)}, reporter: bar.NewReporter("weather")}
}

func (w *Weather) url() string {
	return "https://wttr.in/" + url.PathEscape(w.cfg.Location) + "?format=" + url.QueryEscape(w.cfg.Format)
}

func (w *Weather) Update(ctx context.Context) {
	if !w.interval.due() {
		return
	}
	out, err := shell.Output(ctx, "curl", "-sf", "--max-time", "5", w.url())
	w.reporter.Report(err)
	if err != nil {
		w.interval.last = now().Add(weatherRetry - w.interval.every)
		return
	}
	w.text = strings.Join(strings.Fields(string(out)), " ")
}

func (w *Weather) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	if w.text == "" {
		return nil, nil
	}
	return []bar.Fragment{bar.Styled(w.text, theme.Style(theme.Default().Text, colorize))}, nil
}
