package analytics

import (
	"sort"
	"time"

	"pext/internal/core"
)

// DayGroup is one calendar day of spending, most recent first in the
// grouped view.
type DayGroup struct {
	Date    time.Time    `json:"date"`
	Total   float64      `json:"total"`
	Entries []core.Entry `json:"entries"`
}

// GroupByDay groups spending entries by calendar day. Groups are ordered by
// descending date; inside a group entries are ordered by descending amount.
func GroupByDay(entries []core.Entry) []DayGroup {
	byDay := make(map[time.Time][]core.Entry)
	for _, e := range entries {
		if !e.IsExpense() {
			continue
		}
		day := startOfDay(e.Date)
		byDay[day] = append(byDay[day], e)
	}

	groups := make([]DayGroup, 0, len(byDay))
	for day, dayEntries := range byDay {
		sort.Slice(dayEntries, func(i, j int) bool {
			return core.AmountValue(dayEntries[i].Amount) > core.AmountValue(dayEntries[j].Amount)
		})
		var total float64
		for _, e := range dayEntries {
			total += core.AmountValue(e.Amount)
		}
		groups = append(groups, DayGroup{Date: day, Total: total, Entries: dayEntries})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Date.After(groups[j].Date) })
	return groups
}
