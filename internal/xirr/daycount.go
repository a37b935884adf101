package xirr

import (
	"fmt"
	"strings"

	"cloud.google.com/go/civil"
)

// DayCount is the convention used to turn day differences into year fractions.
type DayCount string

const (
	Act365F  DayCount = "ACT/365F"
	Act360   DayCount = "ACT/360"
	Act36525 DayCount = "ACT/365.25"
)

// ParseDayCount maps a convention name to a DayCount. The empty string is Act365F.
func ParseDayCount(s string) (DayCount, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ACT/365F", "ACT/365", "ACT_365F":
		return Act365F, nil
	case "ACT/360", "ACT_360":
		return Act360, nil
	case "ACT/365.25", "ACT_365_25":
		return Act36525, nil
	}
	return "", fmt.Errorf("unknown day count convention %q: %w", s, ErrInvalidOption)
}

func (dc DayCount) basis() float64 {
	switch dc {
	case Act360:
		return 360
	case Act36525:
		return 365.25
	default:
		return 365
	}
}

// YearFraction returns the number of years from start to d.
func (dc DayCount) YearFraction(start, d civil.Date) float64 {
	return float64(d.DaysSince(start)) / dc.basis()
}
