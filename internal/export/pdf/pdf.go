// Package pdf renders expense reports into PDF files on local disk.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/phpdave11/gofpdf"

	"pext/internal/core"
	"pext/internal/export"
)

const pageBreakY = 270

var detailCols = []float64{26, 70, 36, 28, 22}

// Sink writes rendered reports under a single output directory.
type Sink struct {
	dir string
}

func New(outputDir string) *Sink {
	return &Sink{dir: outputDir}
}

func (s *Sink) Export(ctx context.Context, rep export.Report, filename string) error {
	data, err := Render(rep)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create report directory: %w", err)
	}
	path := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}

	slog.InfoContext(ctx, "Report written",
		"path", path,
		"entries", rep.Count,
		"bytes", len(data))
	return nil
}

// Render produces the PDF document for a report: title block, summary
// table, then a paginated detail table of every entry.
func Render(rep export.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(rep.Title, false)
	pdf.SetMargins(14, 14, 14)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(29, 78, 216)
	pdf.Cell(0, 10, rep.Title)
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(80, 80, 80)
	pdf.Cell(0, 6, rep.Subtitle)
	pdf.Ln(5)
	pdf.Cell(0, 6, "Generated: "+rep.GeneratedAt.Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetDrawColor(200, 200, 200)
	pdf.SetFillColor(248, 248, 248)
	pdf.SetTextColor(20, 20, 20)
	pdf.SetFont("Helvetica", "B", 11)

	sumW := []float64{62, 62, 62}
	pdf.CellFormat(sumW[0], 10, "Total ("+rep.Currency+")", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[1], 10, "Entries", "1", 0, "C", true, 0, "")
	pdf.CellFormat(sumW[2], 10, "Average ("+rep.Currency+")", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(sumW[0], 10, rep.Total.StringFixed(2), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[1], 10, fmt.Sprintf("%d", rep.Count), "1", 0, "C", false, 0, "")
	pdf.CellFormat(sumW[2], 10, rep.Average.StringFixed(2), "1", 1, "C", false, 0, "")
	pdf.Ln(6)

	detailHeader(pdf)

	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(30, 30, 30)
	for _, e := range rep.Entries {
		if pdf.GetY() > pageBreakY {
			pdf.AddPage()
			detailHeader(pdf)
			pdf.SetFont("Helvetica", "", 9)
			pdf.SetTextColor(30, 30, 30)
		}

		amount := core.AmountValue(e.Amount)
		pdf.CellFormat(detailCols[0], 8, e.Date.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(detailCols[1], 8, trimTo(e.Description, 42), "1", 0, "L", false, 0, "")
		pdf.CellFormat(detailCols[2], 8, trimTo(e.Category, 20), "1", 0, "L", false, 0, "")
		pdf.CellFormat(detailCols[3], 8, fmt.Sprintf("%.2f", amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(detailCols[4], 8, sourceLabel(e.Source), "1", 1, "C", false, 0, "")
	}
	if len(rep.Entries) == 0 {
		pdf.CellFormat(0, 8, "No entries in this report", "1", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("build pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func detailHeader(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(20, 20, 20)
	pdf.CellFormat(detailCols[0], 8, "DATE", "1", 0, "C", true, 0, "")
	pdf.CellFormat(detailCols[1], 8, "DESCRIPTION", "1", 0, "L", true, 0, "")
	pdf.CellFormat(detailCols[2], 8, "CATEGORY", "1", 0, "L", true, 0, "")
	pdf.CellFormat(detailCols[3], 8, "AMOUNT", "1", 0, "R", true, 0, "")
	pdf.CellFormat(detailCols[4], 8, "SOURCE", "1", 1, "C", true, 0, "")
}

func sourceLabel(src core.EntrySource) string {
	if src == core.SourceLocal {
		return "CASH"
	}
	return "BANK"
}

// trimTo truncates on runes so multibyte text is never cut mid-character.
func trimTo(s string, max int) string {
	s = strings.TrimSpace(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
