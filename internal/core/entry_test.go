package core

import (
	"testing"
	"time"
)

func TestEntryFromTransaction(t *testing.T) {
	when := time.Date(2025, 5, 2, 14, 0, 0, 0, time.UTC)
	tx := Transaction{ID: 42, AccountID: 7, Amount: "30", Type: Debit, Category: "Food", Date: when}
	e := EntryFromTransaction(tx, "USD")

	if e.ID != "txn_42" {
		t.Fatalf("id = %q", e.ID)
	}
	if e.Source != SourceServer || e.Kind != Debit || e.AccountID != 7 {
		t.Fatalf("unexpected projection: %+v", e)
	}
	if !e.IsExpense() {
		t.Fatal("debit transaction must classify as expense")
	}

	credit := EntryFromTransaction(Transaction{ID: 1, Amount: "10", Type: Credit, Date: when}, "USD")
	if credit.IsExpense() {
		t.Fatal("credit transaction must not classify as expense")
	}
}

func TestEntryFromCashExpense(t *testing.T) {
	exp := CashExpense{ID: "cash_1", Amount: "5", Category: "Transport", Date: time.Now(), Currency: "USD", Offline: true}
	e := EntryFromCashExpense(exp)

	if e.Source != SourceLocal || e.Kind != Debit {
		t.Fatalf("unexpected projection: %+v", e)
	}
	if !e.IsExpense() {
		t.Fatal("local records are always expenses")
	}
	if e.Description != "Transport" {
		t.Fatalf("empty description should fall back to category, got %q", e.Description)
	}
}
