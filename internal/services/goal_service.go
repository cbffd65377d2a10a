package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"pext/internal/core"
	"pext/internal/localstore"
)

// SavingGoalService wraps the saving goal store with logging and the
// progress computation the dashboard shows.
type SavingGoalService struct {
	goals *localstore.SavingGoals
}

func NewSavingGoalService(goals *localstore.SavingGoals) *SavingGoalService {
	return &SavingGoalService{goals: goals}
}

func (s *SavingGoalService) List(ownerID int64) ([]core.SavingGoal, error) {
	return s.goals.List(ownerID)
}

func (s *SavingGoalService) Create(ctx context.Context, ownerID int64, draft core.SavingGoalDraft) (core.SavingGoal, error) {
	g, err := s.goals.Insert(ownerID, draft)
	if err != nil {
		return core.SavingGoal{}, fmt.Errorf("save saving goal: %w", err)
	}

	slog.InfoContext(ctx, "Saving goal created",
		"owner_id", ownerID,
		"goal_id", g.ID,
		"category", g.Category,
		"goal_type", string(g.GoalType))
	return g, nil
}

func (s *SavingGoalService) Delete(ctx context.Context, ownerID int64, id int64) (bool, error) {
	removed, err := s.goals.Delete(ownerID, id)
	if err != nil {
		return false, fmt.Errorf("delete saving goal: %w", err)
	}
	if removed {
		slog.InfoContext(ctx, "Saving goal deleted", "owner_id", ownerID, "goal_id", id)
	}
	return removed, nil
}

// GoalProgress is the whole-percent completion of a goal, clamped to [0, 100].
func GoalProgress(g core.SavingGoal) int {
	if g.TargetAmount <= 0 {
		return 0
	}
	pct := int(math.Round(g.CurrentAmount / g.TargetAmount * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
