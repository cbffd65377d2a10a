package services

import (
	"context"
	"fmt"
	"log/slog"

	"pext/internal/amqp"
	"pext/internal/core"
	"pext/internal/export"
	"pext/internal/localstore"
)

// CashExpenseService orchestrates cash expense operations across the local
// store and AMQP.
type CashExpenseService struct {
	expenses   *localstore.CashExpenses
	amqpClient *amqp.Client
}

func NewCashExpenseService(expenses *localstore.CashExpenses, amqpClient *amqp.Client) *CashExpenseService {
	return &CashExpenseService{
		expenses:   expenses,
		amqpClient: amqpClient,
	}
}

func (s *CashExpenseService) List(ownerID int64) ([]core.CashExpense, error) {
	return s.expenses.List(ownerID)
}

// Create validates and persists a cash expense. Local records never leave
// the device, so nothing is published here.
func (s *CashExpenseService) Create(ctx context.Context, ownerID int64, draft core.CashExpenseDraft) (core.CashExpense, error) {
	e, err := s.expenses.Insert(ownerID, draft)
	if err != nil {
		return core.CashExpense{}, fmt.Errorf("save cash expense: %w", err)
	}

	slog.InfoContext(ctx, "Cash expense created",
		"owner_id", ownerID,
		"expense_id", e.ID,
		"category", e.Category,
		"amount", e.Amount)
	return e, nil
}

// Delete removes a cash expense. Deleting an id that does not exist is not
// an error; the removed flag tells the caller which case it was.
func (s *CashExpenseService) Delete(ctx context.Context, ownerID int64, id string) (bool, error) {
	removed, err := s.expenses.Delete(ownerID, id)
	if err != nil {
		return false, fmt.Errorf("delete cash expense: %w", err)
	}
	if removed {
		slog.InfoContext(ctx, "Cash expense deleted", "owner_id", ownerID, "expense_id", id)
	}
	return removed, nil
}

// RequestReport enqueues an asynchronous report export and returns the
// filename the worker will render under. Unlike record writes, the publish
// is the whole operation here, so a broker failure fails the request.
func (s *CashExpenseService) RequestReport(ctx context.Context, ownerID int64, kind string) (string, error) {
	if !export.ValidKind(kind) {
		return "", fmt.Errorf("unknown report kind %q", kind)
	}
	if s.amqpClient == nil {
		return "", fmt.Errorf("report queue not configured")
	}

	filename := export.DefaultFilename(kind)
	msg := amqp.NewReportRequest(ownerID, kind, filename)
	if err := s.amqpClient.PublishReportRequest(ctx, msg); err != nil {
		return "", fmt.Errorf("enqueue report request: %w", err)
	}
	return filename, nil
}

func (s *CashExpenseService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp: %w", err)
		}
	}
	return nil
}
