package registry

import (
	"context"
	"io"

	models "regdocs/internal/domain/models/registry"
)

// TableStore is the spreadsheet side of the external store: named sheets
// addressed positionally, read whole and appended one row at a time.
type TableStore interface {
	// ReadAll returns every row of the sheet, header included.
	ReadAll(ctx context.Context, sheet string) ([][]string, error)

	// AppendRow appends one row after the last non-empty row of the sheet.
	AppendRow(ctx context.Context, sheet string, cells []string) error
}

// FolderStore is the drive side of the external store: a folder tree holding
// uploaded files.
type FolderStore interface {
	// FindFolder returns the first non-trashed child folder of parentID whose
	// name equals name exactly. Returns (nil, nil) when there is none.
	FindFolder(ctx context.Context, parentID, name string) (*models.Folder, error)

	// CreateFolder creates a child folder of parentID.
	CreateFolder(ctx context.Context, parentID, name string) (*models.Folder, error)

	// UploadFile stores content as a new file under parentID.
	UploadFile(ctx context.Context, parentID, name, mimeType string, content io.Reader) (*models.StoredFile, error)
}
