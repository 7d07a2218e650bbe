package model

import (
	"fmt"
	"time"
)

const AllKinds = "all"

type DirectionFilter string

const (
	DirectionAll     DirectionFilter = "all"
	DirectionInflow  DirectionFilter = "inflow"
	DirectionOutflow DirectionFilter = "outflow"
)

func ParseDirectionFilter(s string) (DirectionFilter, error) {
	switch DirectionFilter(s) {
	case DirectionAll, DirectionInflow, DirectionOutflow:
		return DirectionFilter(s), nil
	case "":
		return DirectionAll, nil
	default:
		return "", fmt.Errorf("invalid direction '%s' (use all, inflow or outflow)", s)
	}
}

// Direction returns the concrete direction, false for DirectionAll.
func (d DirectionFilter) Direction() (Direction, bool) {
	switch d {
	case DirectionInflow:
		return Inflow, true
	case DirectionOutflow:
		return Outflow, true
	default:
		return "", false
	}
}

type Period string

const (
	PeriodAll    Period = "all"
	PeriodToday  Period = "today"
	Period7Days  Period = "7d"
	Period30Days Period = "30d"
)

func ParsePeriod(s string) (Period, error) {
	switch Period(s) {
	case PeriodAll, PeriodToday, Period7Days, Period30Days:
		return Period(s), nil
	case "":
		return PeriodAll, nil
	default:
		return "", fmt.Errorf("invalid period '%s' (use all, today, 7d or 30d)", s)
	}
}

// From resolves the lower bound of the period relative to now.
// The second value is false when the period has no lower bound.
func (p Period) From(now time.Time) (time.Time, bool) {
	switch p {
	case PeriodToday:
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, now.Location()), true
	case Period7Days:
		return now.Add(-7 * 24 * time.Hour), true
	case Period30Days:
		return now.Add(-30 * 24 * time.Hour), true
	default:
		return time.Time{}, false
	}
}

type Filters struct {
	Direction DirectionFilter
	Kind      string
	Period    Period
}

func DefaultFilters() Filters {
	return Filters{
		Direction: DirectionAll,
		Kind:      AllKinds,
		Period:    PeriodAll,
	}
}

// WithDirection switches the direction filter. A selected kind that does not
// belong to the new direction is dropped back to AllKinds.
func (f Filters) WithDirection(d DirectionFilter, kinds KindLookup) Filters {
	f.Direction = d
	want, ok := d.Direction()
	if !ok {
		f.Kind = AllKinds
		return f
	}
	if f.Kind != AllKinds {
		if k, found := kinds.Get(f.Kind); !found || k.Direction != want {
			f.Kind = AllKinds
		}
	}
	return f
}

func (f Filters) WithKind(code string) Filters {
	if code == "" {
		code = AllKinds
	}
	f.Kind = code
	return f
}

func (f Filters) WithPeriod(p Period) Filters {
	f.Period = p
	return f
}
