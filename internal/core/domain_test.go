package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestCashExpenseDraftValidate(t *testing.T) {
	good := CashExpenseDraft{Amount: "12.50", Category: "Food", Currency: "USD"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name  string
		draft CashExpenseDraft
		want  error
	}{
		{"empty amount", CashExpenseDraft{Amount: "", Category: "Food"}, ErrInvalidAmount},
		{"non numeric amount", CashExpenseDraft{Amount: "abc", Category: "Food"}, ErrInvalidAmount},
		{"negative amount", CashExpenseDraft{Amount: "-3", Category: "Food"}, ErrInvalidAmount},
		{"empty category", CashExpenseDraft{Amount: "5", Category: "  "}, ErrEmptyCategory},
		{"long description", CashExpenseDraft{Amount: "5", Category: "Food", Description: strings.Repeat("x", 250)}, ErrDescriptionTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.draft.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestSavingGoalDraftValidate(t *testing.T) {
	good := SavingGoalDraft{Category: "Vacation", TargetAmount: 1000, CurrentAmount: 200, GoalType: MonthlyGoal}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		name  string
		draft SavingGoalDraft
		want  error
	}{
		{"empty category", SavingGoalDraft{TargetAmount: 100, GoalType: MonthlyGoal}, ErrEmptyCategory},
		{"zero target", SavingGoalDraft{Category: "c", TargetAmount: 0, GoalType: MonthlyGoal}, ErrTargetNotPositive},
		{"negative current", SavingGoalDraft{Category: "c", TargetAmount: 100, CurrentAmount: -1, GoalType: MonthlyGoal}, ErrNegativeCurrent},
		{"current over target", SavingGoalDraft{Category: "c", TargetAmount: 1000, CurrentAmount: 1200, GoalType: MonthlyGoal}, ErrCurrentExceedsTarget},
		{"bad goal type", SavingGoalDraft{Category: "c", TargetAmount: 100, GoalType: "weekly"}, ErrInvalidGoalType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.draft.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}
}

func TestGoalTypeDefaultDeadline(t *testing.T) {
	from := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	if got := MonthlyGoal.DefaultDeadline(from); !got.Equal(time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("monthly deadline = %v", got)
	}
	if got := YearlyGoal.DefaultDeadline(from); !got.Equal(time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("yearly deadline = %v", got)
	}
}

func TestSavingGoalDaysRemaining(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	g := SavingGoal{Deadline: now.AddDate(0, 0, 10)}
	if got := g.DaysRemaining(now); got != 10 {
		t.Fatalf("got %d, want 10", got)
	}
	past := SavingGoal{Deadline: now.AddDate(0, 0, -3)}
	if got := past.DaysRemaining(now); got != 0 {
		t.Fatalf("past deadline should clamp to 0, got %d", got)
	}
}
