package analytics

import (
	"sort"

	"pext/internal/core"
)

// CategorySummary is the per-category slice of the spending pie.
type CategorySummary struct {
	Name    string  `json:"name"`
	Total   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// CategoryBreakdown sums spending per category and computes each
// category's percentage share of the total. Entries without a category land
// in the "Others" bucket. Results are sorted by descending total; when the
// total is zero every percentage is zero rather than NaN.
func CategoryBreakdown(entries []core.Entry) []CategorySummary {
	totals := make(map[string]float64)
	var grand float64
	for _, e := range entries {
		if !e.IsExpense() {
			continue
		}
		name := e.Category
		if name == "" {
			name = core.CategoryOthers
		}
		v := core.AmountValue(e.Amount)
		totals[name] += v
		grand += v
	}

	out := make([]CategorySummary, 0, len(totals))
	for name, total := range totals {
		s := CategorySummary{Name: name, Total: total}
		if grand > 0 {
			s.Percent = total / grand * 100
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// TopCategories truncates a breakdown to its n largest categories.
func TopCategories(breakdown []CategorySummary, n int) []CategorySummary {
	if len(breakdown) <= n {
		return breakdown
	}
	return breakdown[:n]
}
