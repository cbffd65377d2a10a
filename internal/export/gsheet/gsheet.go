// Package gsheet mirrors report rows into a Google Sheets spreadsheet so
// reports stay inspectable outside the generated documents.
package gsheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"pext/internal/core"
	"pext/internal/export"
)

type Sink struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

var _ export.Sink = (*Sink)(nil)

// NewFromEnv creates a Sheets sink from environment variables.
// Required: GOOGLE_SPREADSHEET_ID.
// Credentials: GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or
// GOOGLE_APPLICATION_CREDENTIALS.
// Optional: GOOGLE_REPORT_SHEET_NAME (default "Reports").
func NewFromEnv(ctx context.Context) (*Sink, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_REPORT_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Reports"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Sink{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
	}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	serviceAccountFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if serviceAccountJSON == "" && serviceAccountFile == "" {
		serviceAccountFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	var credentialsJSON []byte
	var err error
	switch {
	case serviceAccountJSON != "":
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return service, nil
}

// Export appends one header row plus one row per entry to the report sheet.
// Rows accumulate across exports; the report title and timestamp on the
// header row keep runs distinguishable.
func (s *Sink) Export(ctx context.Context, rep export.Report, filename string) error {
	if s.svc == nil {
		return errors.New("sheets service not initialized")
	}

	rows := make([][]any, 0, len(rep.Entries)+1)
	rows = append(rows, []any{
		rep.Title,
		rep.GeneratedAt.Format("2006-01-02 15:04"),
		filename,
		rep.Total.StringFixed(2),
		rep.Count,
	})
	for _, e := range rep.Entries {
		rows = append(rows, []any{
			e.Date.Format("2006-01-02"),
			e.Description,
			e.Category,
			core.AmountValue(e.Amount),
			rep.Currency,
			sourceLabel(e.Source),
		})
	}

	rng := fmt.Sprintf("%s!A:F", s.sheetName)
	vr := &gsheet.ValueRange{Values: rows}
	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append report rows to sheet %s: %w", s.sheetName, err)
	}

	slog.InfoContext(ctx, "Report mirrored to spreadsheet",
		"sheet", s.sheetName,
		"rows", len(rows))
	return nil
}

func sourceLabel(src core.EntrySource) string {
	if src == core.SourceLocal {
		return "CASH"
	}
	return "BANK"
}
