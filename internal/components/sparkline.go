package components

import "strings"

var sparkBars = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// sparkline keeps a fixed-length history of samples scaled to block glyphs.
type sparkline struct {
	data []float64
}

func newSparkline(length int) *sparkline {
	if length < 1 {
		length = 1
	}
	return &sparkline{data: make([]float64, length)}
}

// push drops the oldest sample and appends v.
func (s *sparkline) push(v float64) {
	copy(s.data, s.data[1:])
	s.data[len(s.data)-1] = v
}

// String scales every sample against the current maximum.
func (s *sparkline) String() string {
	max := 0.0
	for _, v := range s.data {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return strings.Repeat(" ", len(s.data))
	}
	var b strings.Builder
	top := len(sparkBars) - 1
	for _, v := range s.data {
		if v <= 0 {
			b.WriteRune(' ')
			continue
		}
		idx := int(v / max * float64(top))
		if idx > top {
			idx = top
		}
		b.WriteRune(sparkBars[idx])
	}
	return b.String()
}
