package registry

import (
	"context"
	"log/slog"

	models "regdocs/internal/domain/models/registry"
	registryRepo "regdocs/internal/domain/repositories/registry"
)

// Verify interface compliance
var _ registryRepo.CategoryRepository = (*CategoryRepository)(nil)

// CategoryRepository implements registryRepo.CategoryRepository over the category sheet
type CategoryRepository struct {
	store  registryRepo.TableStore
	sheet  string
	logger *slog.Logger
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(config *RepositoryConfig) *CategoryRepository {
	return &CategoryRepository{
		store:  config.Store,
		sheet:  config.Sheets.Categories,
		logger: config.Logger,
	}
}

// List returns every category row, header excluded
func (r *CategoryRepository) List(ctx context.Context) ([]models.CategoryRow, error) {
	rows, err := r.store.ReadAll(ctx, r.sheet)
	if err != nil {
		return nil, err
	}

	data := dataRows(rows)
	categories := make([]models.CategoryRow, 0, len(data))
	for _, cells := range data {
		categories = append(categories, models.CategoryRowFromCells(cells))
	}
	return categories, nil
}

// Append adds one category row
func (r *CategoryRepository) Append(ctx context.Context, row *models.CategoryRow) error {
	if err := r.store.AppendRow(ctx, r.sheet, row.Cells()); err != nil {
		return err
	}

	r.logger.Debug("category row appended",
		"sheet", r.sheet,
		"category", row.Category,
		"folder_id", row.FolderID,
	)
	return nil
}
