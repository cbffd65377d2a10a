package localstore

import (
	"log/slog"
	"strings"
	"time"

	"pext/internal/core"
	"pext/internal/kv"
)

// goalsNamespace matches the original client's local storage key prefix.
const goalsNamespace = "savingGoals"

// SavingGoals stores saving-goal records per owner.
type SavingGoals struct {
	col collection[core.SavingGoal]
	now func() time.Time
}

func NewSavingGoals(store kv.Store) *SavingGoals {
	return &SavingGoals{
		col: collection[core.SavingGoal]{store: store, namespace: goalsNamespace},
		now: time.Now,
	}
}

func (s *SavingGoals) List(ownerID int64) ([]core.SavingGoal, error) {
	return s.col.load(ownerID)
}

// Insert validates the draft and persists a new goal. Deadline defaults
// from the goal type when unset; CreatedAt is the insertion instant and
// immutable afterwards. Validation failures never reach the store.
func (s *SavingGoals) Insert(ownerID int64, draft core.SavingGoalDraft) (core.SavingGoal, error) {
	if err := draft.Validate(); err != nil {
		return core.SavingGoal{}, err
	}

	goals, err := s.col.load(ownerID)
	if err != nil {
		return core.SavingGoal{}, err
	}

	now := s.now()
	deadline := draft.Deadline
	if deadline.IsZero() {
		deadline = draft.GoalType.DefaultDeadline(now)
	}

	goal := core.SavingGoal{
		ID:            nextGoalID(goals, now),
		OwnerID:       ownerID,
		Category:      strings.TrimSpace(draft.Category),
		TargetAmount:  draft.TargetAmount,
		CurrentAmount: draft.CurrentAmount,
		GoalType:      draft.GoalType,
		Deadline:      deadline,
		CreatedAt:     now,
	}

	if err := s.col.replace(ownerID, append(goals, goal)); err != nil {
		slog.Error("Failed to persist saving goal",
			"owner_id", ownerID,
			"goal_id", goal.ID,
			"error", err)
		return core.SavingGoal{}, err
	}
	return goal, nil
}

func (s *SavingGoals) Delete(ownerID int64, id int64) (bool, error) {
	deleted, err := s.col.remove(ownerID, func(g core.SavingGoal) bool { return g.ID == id })
	if err != nil {
		slog.Error("Failed to delete saving goal",
			"owner_id", ownerID,
			"goal_id", id,
			"error", err)
		return false, err
	}
	return deleted, nil
}

// nextGoalID derives a numeric id from the wall clock. Two inserts within
// the same millisecond would collide, so the id is bumped past the current
// maximum in the collection.
func nextGoalID(goals []core.SavingGoal, now time.Time) int64 {
	id := now.UnixMilli()
	for _, g := range goals {
		if g.ID >= id {
			id = g.ID + 1
		}
	}
	return id
}
