package core

import (
	"strconv"
	"time"
)

const (
	Credit EntryKind = "credit"
	Debit  EntryKind = "debit"
)

const (
	// SourceServer marks an entry that came from the remote transaction API.
	SourceServer EntrySource = "server"
	// SourceLocal marks an entry created and persisted on this device only.
	SourceLocal EntrySource = "local"
)

type (
	EntryKind   string
	EntrySource string

	// Transaction is the shape consumed from the remote transaction API.
	Transaction struct {
		ID          int64     `json:"id"`
		AccountID   int64     `json:"accountId"`
		Amount      string    `json:"amount"`
		Type        EntryKind `json:"type"`
		Category    string    `json:"category,omitempty"`
		Description string    `json:"description,omitempty"`
		Date        time.Time `json:"date"`
	}

	// Entry is the common expense view projected from the two record
	// variants. Everything downstream of the normalization (filtering,
	// bucketing, category breakdown, report export) works on Entry and
	// never inspects the variant-specific shapes again.
	Entry struct {
		ID          string      `json:"id"`
		Source      EntrySource `json:"source"`
		Kind        EntryKind   `json:"type"`
		AccountID   int64       `json:"accountId,omitempty"` // zero for local entries
		Amount      string      `json:"amount"`
		Category    string      `json:"category,omitempty"`
		Description string      `json:"description,omitempty"`
		Date        time.Time   `json:"date"`
		Currency    string      `json:"currency,omitempty"`
	}
)

// EntryFromTransaction projects a server transaction into the common view.
func EntryFromTransaction(t Transaction, currency string) Entry {
	return Entry{
		ID:          "txn_" + strconv.FormatInt(t.ID, 10),
		Source:      SourceServer,
		Kind:        t.Type,
		AccountID:   t.AccountID,
		Amount:      t.Amount,
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
		Currency:    currency,
	}
}

// EntryFromCashExpense projects a locally-sourced expense into the common
// view. Local records carry no credit/debit type: they are always spending.
func EntryFromCashExpense(e CashExpense) Entry {
	desc := e.Description
	if desc == "" {
		desc = e.Category
	}
	return Entry{
		ID:          e.ID,
		Source:      SourceLocal,
		Kind:        Debit,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: desc,
		Date:        e.Date,
		Currency:    e.Currency,
	}
}

// IsExpense reports whether the entry counts as spending: an explicit debit,
// or any locally-sourced record.
func (e Entry) IsExpense() bool {
	return e.Kind == Debit || e.Source == SourceLocal
}
