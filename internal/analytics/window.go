// Package analytics holds the pure aggregation functions behind the charts
// and summary screens. Everything here is side-effect free: the functions
// take a slice of normalized entries plus a reference instant and return
// derived views. Bad numeric input degrades to zero instead of failing;
// a chart with a missing bar beats a broken screen.
package analytics

import "time"

const (
	Day   Granularity = "day"
	Month Granularity = "month"
	Year  Granularity = "year"
)

type (
	Granularity string

	// Window is an inclusive time range.
	Window struct {
		Start time.Time
		End   time.Time
	}
)

// CurrentWindow returns the calendar period containing now with the upper
// bound clamped to now itself. The clamp is policy, not an accident: the
// current period deliberately shows partial data and excludes future-dated
// records from the same period. Past periods (PeriodWindow) get the full
// calendar range.
func CurrentWindow(now time.Time, g Granularity) Window {
	w := PeriodWindow(now, g)
	if w.End.After(now) {
		w.End = now
	}
	return w
}

// PeriodWindow returns the full calendar period containing ref: start and
// end of day, calendar month or calendar year. Bounds are calendar-aware,
// never fixed 24h/30d/365d durations.
func PeriodWindow(ref time.Time, g Granularity) Window {
	switch g {
	case Day:
		start := startOfDay(ref)
		return Window{Start: start, End: start.AddDate(0, 0, 1).Add(-time.Nanosecond)}
	case Year:
		start := time.Date(ref.Year(), 1, 1, 0, 0, 0, 0, ref.Location())
		return Window{Start: start, End: start.AddDate(1, 0, 0).Add(-time.Nanosecond)}
	default: // month is also the fallback, as in the original screens
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return Window{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
	}
}

// Contains reports whether t falls inside the window, bounds included.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
