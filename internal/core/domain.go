package core

import (
	"errors"
	"strings"
	"time"
)

const (
	MonthlyGoal GoalType = "monthly"
	YearlyGoal  GoalType = "yearly"
)

// CategoryOthers is the fallback bucket for records without a category.
const CategoryOthers = "Others"

// SuggestedCategories is the conventional category set offered by the UI.
// Free-form categories are still accepted everywhere.
var SuggestedCategories = []string{
	"Shopping", "Food", "Transport", "Bills", "Entertainment", CategoryOthers,
}

type (
	GoalType string

	// CashExpense is a locally-sourced expense record. It never originates
	// from, and is never sent to, the remote backend. The JSON shape matches
	// the on-disk format of the original client, isOffline tag included.
	CashExpense struct {
		ID          string    `json:"id"`
		Amount      string    `json:"amount"`
		Category    string    `json:"category"`
		Description string    `json:"description,omitempty"`
		Date        time.Time `json:"date"`
		Currency    string    `json:"currency"`
		Offline     bool      `json:"isOffline"`
	}

	// CashExpenseDraft is the transient form input for a cash expense.
	// A CashExpense is produced from it only after successful validation.
	CashExpenseDraft struct {
		Amount      string
		Category    string
		Description string
		Date        time.Time // zero means "now" at insert time
		Currency    string
	}

	// SavingGoal is a locally persisted saving target. Immutable once
	// created; changes go through delete and recreate.
	SavingGoal struct {
		ID            int64     `json:"id"`
		OwnerID       int64     `json:"userId"`
		Category      string    `json:"category"`
		TargetAmount  float64   `json:"targetAmount"`
		CurrentAmount float64   `json:"currentAmount"`
		GoalType      GoalType  `json:"goalType"`
		Deadline      time.Time `json:"deadline"`
		CreatedAt     time.Time `json:"createdAt"`
	}

	// SavingGoalDraft is the transient form input for a saving goal.
	SavingGoalDraft struct {
		Category      string
		TargetAmount  float64
		CurrentAmount float64
		GoalType      GoalType
		Deadline      time.Time // zero means defaulted from GoalType
	}
)

var (
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrEmptyCategory        = errors.New("empty category")
	ErrDescriptionTooLong   = errors.New("description too long (max 200 characters)")
	ErrInvalidGoalType      = errors.New("invalid goal type")
	ErrTargetNotPositive    = errors.New("target amount must be positive")
	ErrNegativeCurrent      = errors.New("current amount cannot be negative")
	ErrCurrentExceedsTarget = errors.New("current amount exceeds target amount")
)

func (g GoalType) Valid() bool {
	switch g {
	case MonthlyGoal, YearlyGoal:
		return true
	}
	return false
}

// DefaultDeadline returns the deadline implied by the goal type when the
// user did not pick one: one calendar month or one calendar year out.
func (g GoalType) DefaultDeadline(from time.Time) time.Time {
	if g == YearlyGoal {
		return from.AddDate(1, 0, 0)
	}
	return from.AddDate(0, 1, 0)
}

func (d CashExpenseDraft) Validate() error {
	amt, err := ParseAmount(d.Amount)
	if err != nil {
		return err
	}
	if amt.IsNegative() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(d.Category) == "" {
		return ErrEmptyCategory
	}
	if len(d.Description) > 200 {
		return ErrDescriptionTooLong
	}
	return nil
}

func (d SavingGoalDraft) Validate() error {
	if strings.TrimSpace(d.Category) == "" {
		return ErrEmptyCategory
	}
	if d.TargetAmount <= 0 {
		return ErrTargetNotPositive
	}
	if d.CurrentAmount < 0 {
		return ErrNegativeCurrent
	}
	if d.CurrentAmount > d.TargetAmount {
		return ErrCurrentExceedsTarget
	}
	if !d.GoalType.Valid() {
		return ErrInvalidGoalType
	}
	return nil
}

// DaysRemaining reports the whole days left until the goal deadline,
// never negative.
func (g SavingGoal) DaysRemaining(now time.Time) int {
	d := int(g.Deadline.Sub(now).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}
