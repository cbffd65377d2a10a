package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"pext/internal/analytics"
	"pext/internal/api"
	"pext/internal/core"
	"pext/internal/localstore"
)

const topCategoryCount = 4

type (
	// DashboardService merges server transactions with local cash expenses
	// and feeds the merged entries through the aggregation functions.
	DashboardService struct {
		api  *api.Client
		cash *localstore.CashExpenses
		now  func() time.Time
	}

	// CategorySpend is a category slice annotated with the accounts that
	// contributed to it.
	CategorySpend struct {
		Name     string   `json:"name"`
		Total    float64  `json:"value"`
		Percent  float64  `json:"percent"`
		Accounts []string `json:"accounts"`
	}

	// Summary backs the dashboard screen.
	Summary struct {
		WeeklySpending []analytics.Bucket `json:"weeklySpending"`
		TopCategories  []CategorySpend    `json:"topCategories"`
		TotalSpend     float64            `json:"totalSpend"`
		TotalBalance   float64            `json:"totalBalance"`
	}

	// ChartData backs the analytics screen for one time filter.
	ChartData struct {
		Window     analytics.Window            `json:"window"`
		Buckets    []analytics.Bucket          `json:"buckets"`
		Categories []analytics.CategorySummary `json:"categories"`
		Groups     []analytics.DayGroup        `json:"groups"`
		Total      float64                     `json:"total"`
	}
)

func NewDashboardService(apiClient *api.Client, cash *localstore.CashExpenses) *DashboardService {
	return &DashboardService{
		api:  apiClient,
		cash: cash,
		now:  time.Now,
	}
}

// Entries fetches every record visible to the owner: transactions across
// all linked accounts plus local cash expenses, normalized into the common
// view. Per-account fetch failures degrade to missing data rather than
// failing the whole merge; a broken account fetch or cash store does fail.
func (s *DashboardService) Entries(ctx context.Context, ownerID int64) ([]core.Entry, []api.Account, error) {
	return s.entries(ctx, ownerID, false)
}

// FreshEntries drops the cached transaction lists before fetching, so the
// result reflects the backend's current state rather than a cached
// snapshot. Report rendering reads through this path.
func (s *DashboardService) FreshEntries(ctx context.Context, ownerID int64) ([]core.Entry, []api.Account, error) {
	return s.entries(ctx, ownerID, true)
}

func (s *DashboardService) entries(ctx context.Context, ownerID int64, fresh bool) ([]core.Entry, []api.Account, error) {
	accounts, err := s.api.Accounts(ctx, ownerID)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch accounts: %w", err)
	}
	if fresh {
		for _, a := range accounts {
			s.api.InvalidateTransactions(a.ID)
		}
	}

	txs := s.api.AllTransactions(ctx, accounts)
	entries := make([]core.Entry, 0, len(txs))
	for _, t := range txs {
		entries = append(entries, core.EntryFromTransaction(t, localstore.DefaultCurrency))
	}

	cash, err := s.cash.List(ownerID)
	if err != nil {
		return nil, nil, fmt.Errorf("load cash expenses: %w", err)
	}
	for _, e := range cash {
		entries = append(entries, core.EntryFromCashExpense(e))
	}
	return entries, accounts, nil
}

// CashEntries returns only the locally-sourced records, normalized.
func (s *DashboardService) CashEntries(ownerID int64) ([]core.Entry, error) {
	cash, err := s.cash.List(ownerID)
	if err != nil {
		return nil, fmt.Errorf("load cash expenses: %w", err)
	}
	entries := make([]core.Entry, 0, len(cash))
	for _, e := range cash {
		entries = append(entries, core.EntryFromCashExpense(e))
	}
	return entries, nil
}

// Dashboard computes the dashboard screen figures over all fetched entries:
// spending by weekday, the four largest categories with their contributing
// accounts, total spend and the summed account balances.
func (s *DashboardService) Dashboard(ctx context.Context, ownerID int64) (Summary, error) {
	entries, accounts, err := s.Entries(ctx, ownerID)
	if err != nil {
		return Summary{}, err
	}

	var totalSpend float64
	for _, e := range entries {
		if e.IsExpense() {
			totalSpend += core.AmountValue(e.Amount)
		}
	}

	var totalBalance float64
	for _, a := range accounts {
		totalBalance += core.AmountValue(a.Balance)
	}

	top := analytics.TopCategories(analytics.CategoryBreakdown(entries), topCategoryCount)

	return Summary{
		WeeklySpending: analytics.WeekdayTotals(entries),
		TopCategories:  annotateAccounts(top, entries, accounts),
		TotalSpend:     totalSpend,
		TotalBalance:   totalBalance,
	}, nil
}

// Charts computes the analytics screen data for one time filter. The window
// is the current period clamped to now; past data outside it is excluded.
func (s *DashboardService) Charts(ctx context.Context, ownerID int64, g analytics.Granularity) (ChartData, error) {
	entries, _, err := s.Entries(ctx, ownerID)
	if err != nil {
		return ChartData{}, err
	}

	now := s.now()
	w := analytics.CurrentWindow(now, g)
	expenses := analytics.FilterExpenses(entries, w)

	var buckets []analytics.Bucket
	switch g {
	case analytics.Day:
		buckets = analytics.HourlyTotals(expenses, now)
	case analytics.Year:
		buckets = analytics.MonthlyTotals(expenses, now)
	default:
		buckets = analytics.DailyTotals(expenses, now)
	}

	var total float64
	for _, e := range expenses {
		total += core.AmountValue(e.Amount)
	}

	return ChartData{
		Window:     w,
		Buckets:    buckets,
		Categories: analytics.CategoryBreakdown(expenses),
		Groups:     analytics.GroupByDay(expenses),
		Total:      total,
	}, nil
}

// Profile, Cards and Loans are pass-throughs to the backend API; the client
// screens render them as fetched.

func (s *DashboardService) Profile(ctx context.Context, ownerID int64) (api.User, error) {
	return s.api.User(ctx, ownerID)
}

func (s *DashboardService) Cards(ctx context.Context, ownerID int64) ([]api.Card, error) {
	return s.api.Cards(ctx, ownerID)
}

func (s *DashboardService) Loans(ctx context.Context, ownerID int64) ([]api.Loan, error) {
	return s.api.Loans(ctx, ownerID)
}

// annotateAccounts attaches the display labels of the accounts that spent in
// each category. Local entries are attributed to "Cash".
func annotateAccounts(top []analytics.CategorySummary, entries []core.Entry, accounts []api.Account) []CategorySpend {
	labels := make(map[int64]string, len(accounts))
	for _, a := range accounts {
		labels[a.ID] = a.Label()
	}

	perCategory := make(map[string]map[string]bool)
	for _, e := range entries {
		if !e.IsExpense() {
			continue
		}
		name := e.Category
		if name == "" {
			name = core.CategoryOthers
		}

		label := "Cash"
		if e.Source == core.SourceServer {
			var ok bool
			if label, ok = labels[e.AccountID]; !ok {
				label = "Account " + strconv.FormatInt(e.AccountID, 10)
			}
		}

		if perCategory[name] == nil {
			perCategory[name] = make(map[string]bool)
		}
		perCategory[name][label] = true
	}

	out := make([]CategorySpend, 0, len(top))
	for _, c := range top {
		var names []string
		for label := range perCategory[c.Name] {
			names = append(names, label)
		}
		sort.Strings(names)
		out = append(out, CategorySpend{
			Name:     c.Name,
			Total:    c.Total,
			Percent:  c.Percent,
			Accounts: names,
		})
	}
	return out
}
