package components

import (
	"context"
	"fmt"

	"github.com/atomicstack/panelbar/internal/bar"
	"github.com/atomicstack/panelbar/internal/theme"
)

type timeConfig struct {
	Format     string `json:"format"`
	DayStart   int    `json:"day_start"`
	NightStart int    `json:"night_start"`
}

var timeFactory = bar.Configurable(timeConfig{
	Format:     "2006-01-02 15:04:05",
	DayStart:   6,
	NightStart: 18,
}, func(cfg timeConfig) (bar.Component, error) {
	return NewTime(cfg)
})

// Time shows the wall clock, coloured by whether the hour falls in the
// configured day window.
type Time struct {
	cfg   timeConfig
	text  string
	night bool
}

func NewTime(cfg timeConfig) (*Time, error) {
	for _, h := range []int{cfg.DayStart, cfg.NightStart} {
		if h < 0 || h > 23 {
			return nil, fmt.Errorf("%w: hour %d out of range 0-23", bar.ErrInvalidOptions, h)
		}
	}
	t := &Time{cfg: cfg}
	t.Update(context.Background())
	return t, nil
}

func (t *Time) Update(context.Context) {
	n := now()
	t.text = n.Format(t.cfg.Format)
	t.night = isNight(n.Hour(), t.cfg.DayStart, t.cfg.NightStart)
}

func (t *Time) Render(colorize bool, x, y int) ([]bar.Fragment, []bar.ClickArea) {
	styles := theme.Default()
	style := styles.Day
	if t.night {
		style = styles.Night
	}
	return []bar.Fragment{bar.Styled(t.text, theme.Style(style, colorize))}, nil
}

// isNight reports whether hour lies outside [dayStart, nightStart).
func isNight(hour, dayStart, nightStart int) bool {
	return hour < dayStart || hour >= nightStart
}
