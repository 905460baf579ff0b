package registry

import (
	"context"

	models "regdocs/internal/domain/models/registry"
)

// DocumentRepository defines data access operations for the metadata sheet
type DocumentRepository interface {
	// List returns every document row, header excluded, normalized to eight fields
	List(ctx context.Context) ([]models.DocumentRow, error)

	// Append adds one document row
	Append(ctx context.Context, row *models.DocumentRow) error
}
