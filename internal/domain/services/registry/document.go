package registry

import (
	"context"
	"iter"
	"time"

	models "regdocs/internal/domain/models/registry"
)

// DocumentService handles document listing and intake
type DocumentService interface {
	// ListDocuments loads the metadata sheet and applies the filter and sort
	ListDocuments(ctx context.Context, req *ListDocumentsRequest) (*DocumentListing, error)

	// SubmitDocument validates, files and records a new document
	SubmitDocument(ctx context.Context, req *SubmitDocumentRequest) (*models.DocumentRow, error)
}

// SortColumn is a display column the listing can be ordered by
type SortColumn string

const (
	SortByName       SortColumn = "name"
	SortByCategory   SortColumn = "category"
	SortByIssueDate  SortColumn = "issue_date"
	SortByExpiryDate SortColumn = "expiry_date"
)

// DefaultSortColumn orders the listing when no column is requested
const DefaultSortColumn = SortByName

// SortColumns lists the sortable columns in display order
var SortColumns = []SortColumn{SortByName, SortByCategory, SortByIssueDate, SortByExpiryDate}

// ListDocumentsRequest selects and orders the listing
type ListDocumentsRequest struct {
	Query      string     `json:"q"`
	SortBy     SortColumn `json:"sort"`
	Descending bool       `json:"desc"`
}

// DocumentView is one displayed table row
type DocumentView struct {
	Name       string `json:"name"`
	Category   string `json:"category"`
	IssueDate  string `json:"issue_date"`
	ExpiryDate string `json:"expiry_date"`
	Link       string `json:"link,omitempty"`
}

// DocumentListing is the filtered, ordered result of ListDocuments
type DocumentListing struct {
	Total int
	rows  []models.DocumentRow
}

// NewDocumentListing wraps already filtered and ordered rows.
// Total is the number of rows in the sheet before filtering.
func NewDocumentListing(rows []models.DocumentRow, total int) *DocumentListing {
	return &DocumentListing{Total: total, rows: rows}
}

// Len returns the number of rows that passed the filter.
func (l *DocumentListing) Len() int {
	return len(l.rows)
}

// All yields the display rows in order. The sequence can be ranged repeatedly.
func (l *DocumentListing) All() iter.Seq[DocumentView] {
	return func(yield func(DocumentView) bool) {
		for _, row := range l.rows {
			view := DocumentView{
				Name:       row.Name,
				Category:   row.Category,
				IssueDate:  row.IssueDate,
				ExpiryDate: row.ExpiryDate,
				Link:       row.PreviewURL(),
			}
			if !yield(view) {
				return
			}
		}
	}
}

// Views collects All into a slice.
func (l *DocumentListing) Views() []DocumentView {
	views := make([]DocumentView, 0, len(l.rows))
	for v := range l.All() {
		views = append(views, v)
	}
	return views
}

// SubmitDocumentRequest is the intake form
type SubmitDocumentRequest struct {
	Name        string        `json:"name"`
	Category    string        `json:"category"`
	Area        string        `json:"area"`
	Unit        string        `json:"unit"`
	Subcategory string        `json:"subcategory"`
	File        *UploadedFile `json:"-"`
	IssueDate   time.Time     `json:"issue_date"`
	ExpiryDate  time.Time     `json:"expiry_date"`
}
