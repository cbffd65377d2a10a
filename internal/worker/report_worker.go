// Package worker renders queued report requests into the configured sinks.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pext/internal/amqp"
	"pext/internal/analytics"
	"pext/internal/core"
	"pext/internal/export"
	"pext/internal/services"
)

// ReportWorker assembles report input per request kind and fans it out to
// every configured sink. At least one sink must be set.
type ReportWorker struct {
	dashboard *services.DashboardService
	sinks     []export.Sink
	now       func() time.Time
}

func NewReportWorker(dashboard *services.DashboardService, sinks ...export.Sink) *ReportWorker {
	return &ReportWorker{
		dashboard: dashboard,
		sinks:     sinks,
		now:       time.Now,
	}
}

// HandleReportRequest processes one queued request: select entries for the
// kind, build the summary, render through each sink. A sink failure fails
// the request so the message is redelivered.
func (w *ReportWorker) HandleReportRequest(ctx context.Context, msg *amqp.ReportRequest) error {
	slog.InfoContext(ctx, "Processing report request",
		"owner_id", msg.OwnerID,
		"report_kind", msg.Kind,
		"filename", msg.Filename)

	if len(w.sinks) == 0 {
		return fmt.Errorf("no report sinks configured")
	}
	if !export.ValidKind(msg.Kind) {
		return fmt.Errorf("unknown report kind %q", msg.Kind)
	}

	entries, err := w.entriesFor(ctx, msg.OwnerID, msg.Kind)
	if err != nil {
		return fmt.Errorf("assemble report entries: %w", err)
	}

	filename := msg.Filename
	if filename == "" {
		filename = export.DefaultFilename(msg.Kind)
	}

	rep := export.Build(msg.Kind, entries, w.now())
	for _, sink := range w.sinks {
		if err := sink.Export(ctx, rep, filename); err != nil {
			return fmt.Errorf("export report: %w", err)
		}
	}

	slog.InfoContext(ctx, "Report rendered",
		"owner_id", msg.OwnerID,
		"report_kind", msg.Kind,
		"entries", rep.Count)
	return nil
}

func (w *ReportWorker) entriesFor(ctx context.Context, ownerID int64, kind string) ([]core.Entry, error) {
	switch kind {
	case export.KindCash:
		return w.dashboard.CashEntries(ownerID)
	case export.KindMonthly:
		entries, _, err := w.dashboard.FreshEntries(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		w2 := analytics.CurrentWindow(w.now(), analytics.Month)
		return analytics.FilterExpenses(entries, w2), nil
	case export.KindLoan:
		entries, _, err := w.dashboard.FreshEntries(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		var loans []core.Entry
		for _, e := range entries {
			if e.IsExpense() && e.Category == "Loan" {
				loans = append(loans, e)
			}
		}
		return loans, nil
	default:
		entries, _, err := w.dashboard.FreshEntries(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		var expenses []core.Entry
		for _, e := range entries {
			if e.IsExpense() {
				expenses = append(expenses, e)
			}
		}
		return expenses, nil
	}
}
