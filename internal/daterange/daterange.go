package daterange

import (
	"fmt"
	"time"
)

// Preset is a named date-range shortcut.
type Preset string

const (
	PresetAllTime   Preset = "All Time"
	PresetThisMonth Preset = "This Month"
	PresetLastMonth Preset = "Last Month"
	PresetLast7Days Preset = "Last 7 Days"
	PresetCustom    Preset = "Custom"
)

// Presets lists the presets in display order.
var Presets = []Preset{PresetAllTime, PresetThisMonth, PresetLastMonth, PresetLast7Days, PresetCustom}

// Range is an inclusive date range in YYYY-MM-DD form. An empty bound is
// unbounded on that side.
type Range struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
	Label Preset `json:"label"`
}

// All is the unbounded range.
func All() Range {
	return Range{Label: PresetAllTime}
}

// IsAll reports whether the range was selected as All Time.
func (r Range) IsAll() bool {
	return r.Label == PresetAllTime
}

func ParsePreset(s string) (Preset, error) {
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}

	return "", fmt.Errorf("unknown preset %q", s)
}

// Resolve maps a preset to concrete bounds anchored to today. Custom keeps the
// bounds of current; every other preset ignores it.
func Resolve(p Preset, today time.Time, current Range) Range {
	y, m, d := today.Date()
	loc := today.Location()

	switch p {
	case PresetThisMonth:
		return Range{
			Start: format(time.Date(y, m, 1, 0, 0, 0, 0, loc)),
			Label: p,
		}
	case PresetLastMonth:
		// time.Date normalizes month 0 to December of the previous year and
		// day 0 to the last day of the previous month.
		return Range{
			Start: format(time.Date(y, m-1, 1, 0, 0, 0, 0, loc)),
			End:   format(time.Date(y, m, 0, 0, 0, 0, 0, loc)),
			Label: p,
		}
	case PresetLast7Days:
		return Range{
			Start: format(time.Date(y, m, d-7, 0, 0, 0, 0, loc)),
			Label: p,
		}
	case PresetCustom:
		return Range{Start: current.Start, End: current.End, Label: p}
	}

	return All()
}

// Custom builds a Custom range after checking both bounds are valid dates.
func Custom(start, end string) (Range, error) {
	for _, s := range []string{start, end} {
		if s == "" {
			continue
		}

		if _, err := time.Parse(time.DateOnly, s); err != nil {
			return Range{}, fmt.Errorf("invalid date %q (YYYY-MM-DD)", s)
		}
	}

	return Range{Start: start, End: end, Label: PresetCustom}, nil
}

func format(t time.Time) string {
	return t.Format(time.DateOnly)
}
