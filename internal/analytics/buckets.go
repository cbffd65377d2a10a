package analytics

import (
	"strconv"
	"time"

	"pext/internal/core"
)

// Bucket is one fixed chart slot with its summed amount. Bucket slices are
// always complete for their range, zero-filled where no data landed, so
// chart axes stay stable.
type Bucket struct {
	Label  string  `json:"name"`
	Amount float64 `json:"amount"`
}

// FilterExpenses returns the entries classified as spending whose date
// falls inside the window.
func FilterExpenses(entries []core.Entry, w Window) []core.Entry {
	var out []core.Entry
	for _, e := range entries {
		if e.IsExpense() && w.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

// HourlyTotals buckets spending on the given day into 24 hour-of-day slots.
func HourlyTotals(entries []core.Entry, day time.Time) []Bucket {
	totals := make([]float64, 24)
	for _, e := range entries {
		if !e.IsExpense() || !sameDay(e.Date, day) {
			continue
		}
		totals[e.Date.Hour()] += core.AmountValue(e.Amount)
	}

	buckets := make([]Bucket, 24)
	for h := 0; h < 24; h++ {
		buckets[h] = Bucket{Label: strconv.Itoa(h) + ":00", Amount: totals[h]}
	}
	return buckets
}

// DailyTotals buckets spending in ref's calendar month into one slot per
// day of that month. The bucket count always equals the number of days in
// the month.
func DailyTotals(entries []core.Entry, ref time.Time) []Bucket {
	days := daysInMonth(ref)
	totals := make([]float64, days+1)
	for _, e := range entries {
		if !e.IsExpense() {
			continue
		}
		if e.Date.Year() != ref.Year() || e.Date.Month() != ref.Month() {
			continue
		}
		totals[e.Date.Day()] += core.AmountValue(e.Amount)
	}

	buckets := make([]Bucket, days)
	for d := 1; d <= days; d++ {
		buckets[d-1] = Bucket{Label: strconv.Itoa(d), Amount: totals[d]}
	}
	return buckets
}

// MonthlyTotals buckets spending in ref's calendar year into twelve
// month slots.
func MonthlyTotals(entries []core.Entry, ref time.Time) []Bucket {
	var totals [13]float64
	for _, e := range entries {
		if !e.IsExpense() || e.Date.Year() != ref.Year() {
			continue
		}
		totals[int(e.Date.Month())] += core.AmountValue(e.Amount)
	}

	buckets := make([]Bucket, 12)
	for m := time.January; m <= time.December; m++ {
		buckets[m-1] = Bucket{Label: m.String()[:3], Amount: totals[m]}
	}
	return buckets
}

// WeekdayTotals buckets spending by day of week, Monday first.
func WeekdayTotals(entries []core.Entry) []Bucket {
	var totals [7]float64
	for _, e := range entries {
		if !e.IsExpense() {
			continue
		}
		// time.Weekday is Sunday-based; shift so Monday is slot 0.
		totals[(int(e.Date.Weekday())+6)%7] += core.AmountValue(e.Amount)
	}

	labels := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	buckets := make([]Bucket, 7)
	for i, label := range labels {
		buckets[i] = Bucket{Label: label, Amount: totals[i]}
	}
	return buckets
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
