package peaks

import (
	"fmt"
	"strconv"
	"strings"
)

// MZToleranceUnits selects how an MZTolerance is measured.
type MZToleranceUnits int

// Tolerance units: absolute m/z or parts per million.
const (
	MZ MZToleranceUnits = iota
	PPM
)

// MZTolerance is an m/z tolerance, either absolute or relative to the
// m/z it is applied to.
type MZTolerance struct {
	Value float64
	Units MZToleranceUnits
}

// AddTolerance returns d plus the tolerance measured at d.
func (t MZTolerance) AddTolerance(d float64) float64 {
	if t.Units == PPM {
		return d + d*t.Value*1e-6
	}
	return d + t.Value
}

// SubTolerance returns d minus the tolerance measured at d.
func (t MZTolerance) SubTolerance(d float64) float64 {
	if t.Units == PPM {
		return d - d*t.Value*1e-6
	}
	return d - t.Value
}

// IsWithinTolerance reports whether a lies inside the open tolerance
// window around b. For PPM units the window scales with b.
func (t MZTolerance) IsWithinTolerance(a, b float64) bool {
	return a > t.SubTolerance(b) && a < t.AddTolerance(b)
}

// String formats the tolerance as e.g. "0.1mz" or "5ppm".
func (t MZTolerance) String() string {
	unit := "mz"
	if t.Units == PPM {
		unit = "ppm"
	}
	return strconv.FormatFloat(t.Value, 'g', -1, 64) + unit
}

// ParseMZTolerance parses a tolerance of the form "<value>[mz|ppm]".
// A bare number is an absolute m/z tolerance.
func ParseMZTolerance(s string) (MZTolerance, error) {
	t := MZTolerance{Units: MZ}
	v := strings.TrimSpace(strings.ToLower(s))
	if rest, ok := strings.CutSuffix(v, "ppm"); ok {
		t.Units = PPM
		v = rest
	} else if rest, ok := strings.CutSuffix(v, "mz"); ok {
		v = rest
	}
	value, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || value < 0 {
		return MZTolerance{}, fmt.Errorf("peaks: bad tolerance %q", s)
	}
	t.Value = value
	return t, nil
}
