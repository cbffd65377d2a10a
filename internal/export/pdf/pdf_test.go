package pdf

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
	"unicode/utf8"

	"pext/internal/core"
	"pext/internal/export"
)

func sampleReport(t *testing.T, n int) export.Report {
	t.Helper()
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	entries := make([]core.Entry, 0, n)
	for i := 0; i < n; i++ {
		entries = append(entries, core.Entry{
			ID:          "cash_1",
			Amount:      "12.50",
			Category:    "Food",
			Description: "Lunch",
			Currency:    "USD",
			Kind:        core.Debit,
			Source:      core.SourceLocal,
			Date:        now,
		})
	}
	return export.Build(export.KindCash, entries, now)
}

func TestRenderProducesPDF(t *testing.T) {
	data, err := Render(sampleReport(t, 3))
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatalf("output does not start with PDF magic: %q", data[:8])
	}
}

func TestRenderEmptyReport(t *testing.T) {
	data, err := Render(sampleReport(t, 0))
	if err != nil {
		t.Fatalf("render empty: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty report produced no document")
	}
}

func TestRenderManyEntriesPaginates(t *testing.T) {
	// Enough rows to force a second page; rendering must not error.
	if _, err := Render(sampleReport(t, 120)); err != nil {
		t.Fatalf("render paginated: %v", err)
	}
}

func TestTrimToKeepsRunesIntact(t *testing.T) {
	cases := []struct {
		name string
		in   string
		max  int
	}{
		{"cyrillic", "Продукты на неделю в магазине у дома", 20},
		{"cjk", "毎月の食料品と交通費の支出", 8},
		{"short multibyte unchanged", "Café", 20},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := trimTo(tc.in, tc.max)
			if !utf8.ValidString(got) {
				t.Fatalf("truncation produced invalid UTF-8: %q", got)
			}
			if utf8.RuneCountInString(got) > tc.max {
				t.Fatalf("got %d runes, want at most %d: %q", utf8.RuneCountInString(got), tc.max, got)
			}
		})
	}

	if got := trimTo("Lunch", 42); got != "Lunch" {
		t.Fatalf("short ascii changed: %q", got)
	}
}

func TestExportWritesFile(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	if err := s.Export(context.Background(), sampleReport(t, 2), "cash-expenses-report.pdf"); err != nil {
		t.Fatalf("export: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "cash-expenses-report.pdf"))
	if err != nil {
		t.Fatalf("read exported file: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Fatal("exported file is not a PDF")
	}
}

func TestExportStripsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	if err := s.Export(context.Background(), sampleReport(t, 1), "../../escape.pdf"); err != nil {
		t.Fatalf("export: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "escape.pdf")); err != nil {
		t.Fatalf("file not written inside output dir: %v", err)
	}
}
