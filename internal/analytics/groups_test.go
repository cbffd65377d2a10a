package analytics

import (
	"testing"
	"time"

	"pext/internal/core"
)

func TestGroupByDay(t *testing.T) {
	d1 := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	d2 := time.Date(2025, 6, 3, 14, 0, 0, 0, time.UTC)

	entries := []core.Entry{
		serverDebit("10", d1),
		serverDebit("25", d2.Add(time.Hour)),
		localExpense("40", d2),
		serverCredit("99", d2), // income, excluded
	}

	groups := GroupByDay(entries)
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}

	// Most recent day first.
	if groups[0].Date.Day() != 3 || groups[1].Date.Day() != 1 {
		t.Fatalf("group order: %v then %v", groups[0].Date, groups[1].Date)
	}

	// Inside a day, largest amount first.
	day3 := groups[0]
	if day3.Entries[0].Amount != "40" || day3.Entries[1].Amount != "25" {
		t.Fatalf("entry order in group: %+v", day3.Entries)
	}
	if day3.Total != 65 {
		t.Fatalf("day 3 total = %v", day3.Total)
	}
}

func TestGroupByDayEmpty(t *testing.T) {
	if groups := GroupByDay(nil); len(groups) != 0 {
		t.Fatalf("got %d groups from no entries", len(groups))
	}
}
