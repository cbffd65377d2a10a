package analytics

import (
	"testing"
	"time"

	"pext/internal/core"
)

func serverDebit(amount string, date time.Time) core.Entry {
	return core.Entry{Source: core.SourceServer, Kind: core.Debit, Amount: amount, Date: date}
}

func serverCredit(amount string, date time.Time) core.Entry {
	return core.Entry{Source: core.SourceServer, Kind: core.Credit, Amount: amount, Date: date}
}

func localExpense(amount string, date time.Time) core.Entry {
	return core.Entry{Source: core.SourceLocal, Kind: core.Debit, Amount: amount, Date: date}
}

func TestFilterExpensesClassification(t *testing.T) {
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	w := CurrentWindow(now, Month)

	entries := []core.Entry{
		serverDebit("10", now.AddDate(0, 0, -1)),
		serverCredit("100", now.AddDate(0, 0, -1)), // income, excluded
		localExpense("5", now.AddDate(0, 0, -2)),   // local, always an expense
		serverDebit("7", now.AddDate(0, -2, 0)),    // outside the window
	}

	got := FilterExpenses(entries, w)
	if len(got) != 2 {
		t.Fatalf("got %d entries, want 2", len(got))
	}
}

func TestDailyTotalsZeroFill(t *testing.T) {
	ref := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	entries := []core.Entry{
		serverDebit("10", time.Date(2025, 2, 3, 9, 0, 0, 0, time.UTC)),
		serverDebit("20", time.Date(2025, 2, 3, 18, 0, 0, 0, time.UTC)),
		localExpense("5", time.Date(2025, 2, 28, 12, 0, 0, 0, time.UTC)),
		serverDebit("99", time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)), // other month
	}

	buckets := DailyTotals(entries, ref)
	if len(buckets) != 28 {
		t.Fatalf("February 2025 must yield 28 buckets, got %d", len(buckets))
	}
	if buckets[2].Amount != 30 {
		t.Fatalf("day 3 total = %v, want 30", buckets[2].Amount)
	}
	if buckets[27].Amount != 5 {
		t.Fatalf("day 28 total = %v, want 5", buckets[27].Amount)
	}
	for i, b := range buckets {
		if i != 2 && i != 27 && b.Amount != 0 {
			t.Fatalf("bucket %d not zero-filled: %v", i, b.Amount)
		}
	}

	// A leap-year month gets its extra bucket.
	if got := len(DailyTotals(nil, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))); got != 29 {
		t.Fatalf("February 2024 must yield 29 buckets, got %d", got)
	}
}

func TestHourlyTotals(t *testing.T) {
	day := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	entries := []core.Entry{
		serverDebit("4", day.Add(8*time.Hour)),
		localExpense("6", day.Add(8*time.Hour+30*time.Minute)),
		serverDebit("3", day.AddDate(0, 0, 1)), // next day
	}

	buckets := HourlyTotals(entries, day)
	if len(buckets) != 24 {
		t.Fatalf("got %d buckets, want 24", len(buckets))
	}
	if buckets[8].Label != "8:00" || buckets[8].Amount != 10 {
		t.Fatalf("hour 8 = %+v", buckets[8])
	}
	if buckets[0].Amount != 0 {
		t.Fatalf("hour 0 not zero-filled: %v", buckets[0].Amount)
	}
}

func TestMonthlyTotals(t *testing.T) {
	ref := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	entries := []core.Entry{
		serverDebit("15", time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC)),
		serverDebit("bad-amount", time.Date(2025, 4, 3, 0, 0, 0, 0, time.UTC)), // contributes zero
		serverDebit("10", time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)),         // other year
	}

	buckets := MonthlyTotals(entries, ref)
	if len(buckets) != 12 {
		t.Fatalf("got %d buckets, want 12", len(buckets))
	}
	if buckets[3].Label != "Apr" || buckets[3].Amount != 15 {
		t.Fatalf("April = %+v", buckets[3])
	}
}

func TestWeekdayTotals(t *testing.T) {
	// 2025-06-09 is a Monday, 2025-06-15 a Sunday.
	entries := []core.Entry{
		serverDebit("10", time.Date(2025, 6, 9, 12, 0, 0, 0, time.UTC)),
		localExpense("5", time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)),
	}

	buckets := WeekdayTotals(entries)
	if buckets[0].Label != "Mon" || buckets[0].Amount != 10 {
		t.Fatalf("Mon = %+v", buckets[0])
	}
	if buckets[6].Label != "Sun" || buckets[6].Amount != 5 {
		t.Fatalf("Sun = %+v", buckets[6])
	}
}
