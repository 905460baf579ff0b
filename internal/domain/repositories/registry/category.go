package registry

import (
	"context"

	models "regdocs/internal/domain/models/registry"
)

// CategoryRepository defines data access operations for the category sheet
type CategoryRepository interface {
	// List returns every category row, header excluded, normalized to five fields
	List(ctx context.Context) ([]models.CategoryRow, error)

	// Append adds one category row
	Append(ctx context.Context, row *models.CategoryRow) error
}
