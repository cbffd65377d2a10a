package localstore

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"pext/internal/core"
	"pext/internal/kv"
)

// cashNamespace matches the original client's local storage key prefix.
const cashNamespace = "offline_cash_expenses"

// DefaultCurrency is used when a draft does not name one.
const DefaultCurrency = "USD"

// CashExpenses stores locally-sourced expense records per owner.
type CashExpenses struct {
	col collection[core.CashExpense]
	now func() time.Time
}

func NewCashExpenses(store kv.Store) *CashExpenses {
	return &CashExpenses{
		col: collection[core.CashExpense]{store: store, namespace: cashNamespace},
		now: time.Now,
	}
}

// List returns the owner's cash expenses. The offline tag is reasserted on
// every read; records round-trip through JSON and the tag is what marks
// them as locally-sourced when merged with server transactions.
func (s *CashExpenses) List(ownerID int64) ([]core.CashExpense, error) {
	items, err := s.col.load(ownerID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].Offline = true
	}
	return items, nil
}

// Insert validates the draft, assigns a generated id and defaults, appends
// the record and writes the collection through. The created record is
// returned with its id.
func (s *CashExpenses) Insert(ownerID int64, draft core.CashExpenseDraft) (core.CashExpense, error) {
	if err := draft.Validate(); err != nil {
		return core.CashExpense{}, err
	}

	now := s.now()
	date := draft.Date
	if date.IsZero() {
		date = now
	}
	currency := strings.TrimSpace(draft.Currency)
	if currency == "" {
		currency = DefaultCurrency
	}

	exp := core.CashExpense{
		ID:          newCashID(now),
		Amount:      strings.TrimSpace(draft.Amount),
		Category:    strings.TrimSpace(draft.Category),
		Description: strings.TrimSpace(draft.Description),
		Date:        date,
		Currency:    currency,
		Offline:     true,
	}

	if err := s.col.append(ownerID, exp); err != nil {
		slog.Error("Failed to persist cash expense",
			"owner_id", ownerID,
			"expense_id", exp.ID,
			"error", err)
		return core.CashExpense{}, err
	}
	return exp, nil
}

// Delete removes the record with the given id. Deleting an absent id
// returns (false, nil).
func (s *CashExpenses) Delete(ownerID int64, id string) (bool, error) {
	deleted, err := s.col.remove(ownerID, func(e core.CashExpense) bool { return e.ID == id })
	if err != nil {
		slog.Error("Failed to delete cash expense",
			"owner_id", ownerID,
			"expense_id", id,
			"error", err)
		return false, err
	}
	return deleted, nil
}

// newCashID keeps the original "cash_<millis>_<suffix>" layout; the suffix
// comes from a random UUID so same-millisecond inserts stay unique.
func newCashID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
	return fmt.Sprintf("cash_%d_%s", now.UnixMilli(), suffix)
}
