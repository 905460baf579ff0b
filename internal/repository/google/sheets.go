package google

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/sheets/v4"

	registryRepo "regdocs/internal/domain/repositories/registry"
)

// Sheets value options. RAW keeps dates like 2024-01-01 as literal strings so
// they read back exactly as written.
const (
	valueInputRaw   = "RAW"
	insertRows      = "INSERT_ROWS"
	renderFormatted = "FORMATTED_VALUE"
)

// Verify interface compliance
var _ registryRepo.TableStore = (*SheetStore)(nil)

// SheetStore implements registryRepo.TableStore over one spreadsheet
type SheetStore struct {
	svc           *sheets.Service
	spreadsheetID string
	limiter       *RateLimiter
}

// NewSheetStore creates a SheetStore for spreadsheetID
func NewSheetStore(svc *sheets.Service, spreadsheetID string, limiter *RateLimiter) *SheetStore {
	return &SheetStore{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		limiter:       limiter,
	}
}

// ReadAll returns every row of the sheet, header included
func (s *SheetStore) ReadAll(ctx context.Context, sheet string) ([][]string, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, WrapError("read sheet "+sheet, err)
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, sheetRange(sheet)).
		ValueRenderOption(renderFormatted).
		Context(ctx).
		Do()
	if err != nil {
		return nil, WrapError("read sheet "+sheet, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		cells := make([]string, len(raw))
		for i, v := range raw {
			cells[i] = cellString(v)
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// AppendRow appends one row after the last non-empty row of the sheet
func (s *SheetStore) AppendRow(ctx context.Context, sheet string, cells []string) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return WrapError("append row to "+sheet, err)
	}

	values := make([]interface{}, len(cells))
	for i, c := range cells {
		values[i] = c
	}

	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, sheetRange(sheet), &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         [][]interface{}{values},
	}).
		ValueInputOption(valueInputRaw).
		InsertDataOption(insertRows).
		Context(ctx).
		Do()
	if err != nil {
		return WrapError("append row to "+sheet, err)
	}
	return nil
}

// sheetRange quotes a sheet name as an A1 range covering the whole sheet.
func sheetRange(sheet string) string {
	return "'" + strings.ReplaceAll(sheet, "'", "''") + "'"
}

// cellString renders a cell value. Formatted values arrive as strings already.
func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}
