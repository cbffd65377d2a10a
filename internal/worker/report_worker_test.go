package worker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"pext/internal/amqp"
	"pext/internal/api"
	"pext/internal/core"
	"pext/internal/export"
	"pext/internal/export/pdf"
	"pext/internal/kv/memory"
	"pext/internal/localstore"
	"pext/internal/services"
)

type recordingSink struct {
	reports   []export.Report
	filenames []string
}

func (s *recordingSink) Export(ctx context.Context, rep export.Report, filename string) error {
	s.reports = append(s.reports, rep)
	s.filenames = append(s.filenames, filename)
	return nil
}

func newWorkerFixture(t *testing.T, sinks ...export.Sink) (*ReportWorker, *localstore.CashExpenses) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/accounts":
			w.Write([]byte(`[{"id":1,"userId":7,"bankId":5,"accountNumber":"00124821","balance":"100","bank":{"id":5,"name":"HDFC"}}]`))
		case "/api/transactions":
			w.Write([]byte(`[
				{"id":10,"accountId":1,"amount":"30.00","type":"debit","category":"Loan","date":"2025-06-02T09:00:00Z"},
				{"id":11,"accountId":1,"amount":"500.00","type":"credit","category":"Salary","date":"2025-06-01T08:00:00Z"}
			]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	cash := localstore.NewCashExpenses(memory.New())
	dashboard := services.NewDashboardService(api.New(srv.URL), cash)
	w := NewReportWorker(dashboard, sinks...)
	return w, cash
}

func seedCash(t *testing.T, cash *localstore.CashExpenses) {
	t.Helper()
	if _, err := cash.Insert(7, core.CashExpenseDraft{
		Amount:   "12.50",
		Category: "Food",
		Date:     time.Date(2025, time.June, 10, 10, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("seed cash expense: %v", err)
	}
}

func TestHandleCashReport(t *testing.T) {
	sink := &recordingSink{}
	w, cash := newWorkerFixture(t, sink)
	seedCash(t, cash)

	msg := amqp.NewReportRequest(7, export.KindCash, "")
	if err := w.HandleReportRequest(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	if len(sink.reports) != 1 {
		t.Fatalf("sink received %d reports, want 1", len(sink.reports))
	}
	rep := sink.reports[0]
	// Cash reports carry only the local records, never server transactions.
	if rep.Count != 1 || rep.Total.StringFixed(2) != "12.50" {
		t.Fatalf("report summary = %+v", rep)
	}
	if sink.filenames[0] != "cash-expenses-report.pdf" {
		t.Errorf("defaulted filename = %q", sink.filenames[0])
	}
}

func TestHandleLoanReportFiltersCategory(t *testing.T) {
	sink := &recordingSink{}
	w, cash := newWorkerFixture(t, sink)
	seedCash(t, cash)

	msg := amqp.NewReportRequest(7, export.KindLoan, "loan-expenses-report.pdf")
	if err := w.HandleReportRequest(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	rep := sink.reports[0]
	if rep.Count != 1 || rep.Entries[0].Category != "Loan" {
		t.Fatalf("loan report entries = %+v", rep.Entries)
	}
}

func TestHandleAllReportExcludesCredits(t *testing.T) {
	sink := &recordingSink{}
	w, cash := newWorkerFixture(t, sink)
	seedCash(t, cash)

	msg := amqp.NewReportRequest(7, export.KindAll, "")
	if err := w.HandleReportRequest(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	rep := sink.reports[0]
	// The debit and the cash expense count; the salary credit does not.
	if rep.Count != 2 {
		t.Fatalf("report count = %d, want 2: %+v", rep.Count, rep.Entries)
	}
}

func TestReportsFetchFreshTransactions(t *testing.T) {
	var txHits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/accounts":
			w.Write([]byte(`[{"id":1,"userId":7,"accountNumber":"00124821","balance":"100"}]`))
		case "/api/transactions":
			txHits.Add(1)
			w.Write([]byte(`[{"id":10,"accountId":1,"amount":"30.00","type":"debit","category":"Food","date":"2025-06-02T09:00:00Z"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	dashboard := services.NewDashboardService(api.New(srv.URL), localstore.NewCashExpenses(memory.New()))
	w := NewReportWorker(dashboard, &recordingSink{})

	// Back-to-back reports must not serve the second from the transaction
	// cache: every render reads current backend state.
	for i := 0; i < 2; i++ {
		if err := w.HandleReportRequest(context.Background(), amqp.NewReportRequest(7, export.KindAll, "")); err != nil {
			t.Fatalf("handle %d: %v", i, err)
		}
	}
	if got := txHits.Load(); got != 2 {
		t.Fatalf("backend transactions fetched %d times, want 2", got)
	}
}

func TestHandleReportRequestErrors(t *testing.T) {
	w, _ := newWorkerFixture(t, &recordingSink{})

	if err := w.HandleReportRequest(context.Background(), amqp.NewReportRequest(7, "weekly", "")); err == nil {
		t.Fatal("expected error for unknown kind")
	}

	noSinks, _ := newWorkerFixture(t)
	if err := noSinks.HandleReportRequest(context.Background(), amqp.NewReportRequest(7, export.KindCash, "")); err == nil {
		t.Fatal("expected error with no sinks configured")
	}
}

func TestHandleReportWritesPDF(t *testing.T) {
	dir := t.TempDir()
	w, cash := newWorkerFixture(t, pdf.New(dir))
	seedCash(t, cash)

	msg := amqp.NewReportRequest(7, export.KindCash, "")
	if err := w.HandleReportRequest(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "cash-expenses-report.pdf"))
	if err != nil {
		t.Fatalf("read rendered report: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("rendered report is empty")
	}
}
