package bar

import (
	"fmt"
	"strings"
)

// Region is one of the three horizontal placement zones.
type Region int

const (
	Left Region = iota
	Middle
	Right
)

// Regions lists every region in render and click priority order.
var Regions = []Region{Left, Middle, Right}

func (r Region) String() string {
	switch r {
	case Left:
		return "left"
	case Middle:
		return "middle"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("region(%d)", int(r))
	}
}

// ParseRegion maps a region name to its Region.
func ParseRegion(name string) (Region, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left":
		return Left, nil
	case "middle", "center", "centre":
		return Middle, nil
	case "right":
		return Right, nil
	}
	return Left, fmt.Errorf("unknown bar region %q", name)
}
