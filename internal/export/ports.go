// Package export defines the report exporter boundary: a fixed input
// contract (a flat list of normalized expense entries plus summary figures)
// and pluggable sinks that turn it into a document somewhere.
package export

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"pext/internal/core"
)

// Report kinds, one per export button in the client.
const (
	KindAll     = "all"
	KindCash    = "cash"
	KindMonthly = "monthly"
	KindLoan    = "loan"
)

type (
	// Report is what every sink consumes. Totals are precomputed here so
	// all sinks agree on the numbers.
	Report struct {
		Title       string
		Subtitle    string
		GeneratedAt time.Time
		Currency    string
		Entries     []core.Entry
		Total       decimal.Decimal
		Count       int
		Average     decimal.Decimal
	}

	// Sink renders a report into its destination under the suggested
	// filename. Callers consume no return value beyond the error.
	Sink interface {
		Export(ctx context.Context, rep Report, filename string) error
	}
)

// ValidKind reports whether kind names a known report flavor.
func ValidKind(kind string) bool {
	switch kind {
	case KindAll, KindCash, KindMonthly, KindLoan:
		return true
	}
	return false
}

// DefaultFilename is the suggested output name for a report kind.
func DefaultFilename(kind string) string {
	switch kind {
	case KindCash:
		return "cash-expenses-report.pdf"
	case KindMonthly:
		return "monthly-expenses-report.pdf"
	case KindLoan:
		return "loan-expenses-report.pdf"
	default:
		return "expense-report.pdf"
	}
}

func headings(kind string) (title, subtitle string) {
	switch kind {
	case KindCash:
		return "CASH EXPENSES REPORT", "Detailed Cash Expense Analysis"
	case KindMonthly:
		return "MONTHLY EXPENSES REPORT", "Monthly Spending Summary"
	case KindLoan:
		return "LOAN EXPENSES REPORT", "Loan Payment Summary"
	default:
		return "EXPENSE REPORT", "General Expenses"
	}
}

// Build assembles the sink input from normalized entries. Amounts that do
// not parse contribute zero to the total; the currency label comes from the
// first entry, falling back to "$".
func Build(kind string, entries []core.Entry, now time.Time) Report {
	title, subtitle := headings(kind)
	rep := Report{
		Title:       title,
		Subtitle:    subtitle,
		GeneratedAt: now,
		Currency:    "$",
		Entries:     entries,
		Count:       len(entries),
	}
	if len(entries) > 0 && entries[0].Currency != "" {
		rep.Currency = entries[0].Currency
	}

	for _, e := range entries {
		if amt, err := core.ParseAmount(e.Amount); err == nil {
			rep.Total = rep.Total.Add(amt)
		}
	}
	if rep.Count > 0 {
		rep.Average = rep.Total.DivRound(decimal.NewFromInt(int64(rep.Count)), 2)
	}
	return rep
}
