package registry

import (
	"fmt"
	"time"
)

// DocumentColumns is the positional width of a row in the metadata sheet.
const DocumentColumns = 8

// DocumentHeader is the header row of a fresh metadata sheet.
var DocumentHeader = []string{
	"Nama Regulasi", "Kategori", "Bidang", "Unit", "Subkategori",
	"File ID", "Tanggal Terbit", "Tanggal Kadaluarsa",
}

// DateLayout is the stored date format. Dates are compared as plain strings,
// which orders them chronologically only because this layout is zero-padded.
const DateLayout = "2006-01-02"

// PreviewURLFormat builds the drive preview link for a stored file id.
const PreviewURLFormat = "https://drive.google.com/file/d/%s/preview"

// DocumentRow is one row of the metadata sheet.
type DocumentRow struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Area        string `json:"area"`
	Unit        string `json:"unit"`
	Subcategory string `json:"subcategory"`
	FileID      string `json:"file_id"`
	IssueDate   string `json:"issue_date"`
	ExpiryDate  string `json:"expiry_date"`
}

// Cells returns the row in sheet column order.
func (d DocumentRow) Cells() []string {
	return []string{
		d.Name,
		d.Category,
		d.Area,
		d.Unit,
		d.Subcategory,
		d.FileID,
		d.IssueDate,
		d.ExpiryDate,
	}
}

// Path returns the taxonomy path the document was filed under.
func (d DocumentRow) Path() CategoryPath {
	return CategoryPath{
		Category:    d.Category,
		Area:        d.Area,
		Unit:        d.Unit,
		Subcategory: d.Subcategory,
	}
}

// PreviewURL returns the drive preview link, or "" when no file is attached.
func (d DocumentRow) PreviewURL() string {
	if d.FileID == "" {
		return ""
	}
	return fmt.Sprintf(PreviewURLFormat, d.FileID)
}

// DocumentRowFromCells builds a DocumentRow from a ragged sheet row.
// Missing trailing cells become empty strings; extra cells are dropped.
func DocumentRowFromCells(cells []string) DocumentRow {
	c := padCells(cells, DocumentColumns)
	return DocumentRow{
		Name:        c[0],
		Category:    c[1],
		Area:        c[2],
		Unit:        c[3],
		Subcategory: c[4],
		FileID:      c[5],
		IssueDate:   c[6],
		ExpiryDate:  c[7],
	}
}

// FormatDate renders a date in the stored layout. The zero time renders as "".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// ParseDate parses a stored or submitted date. An empty string yields the zero time.
func ParseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(DateLayout, s)
}
