package registry

import (
	"context"
	"log/slog"

	models "regdocs/internal/domain/models/registry"
	registryRepo "regdocs/internal/domain/repositories/registry"
)

// Verify interface compliance
var _ registryRepo.DocumentRepository = (*DocumentRepository)(nil)

// DocumentRepository implements registryRepo.DocumentRepository over the metadata sheet
type DocumentRepository struct {
	store  registryRepo.TableStore
	sheet  string
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *RepositoryConfig) *DocumentRepository {
	return &DocumentRepository{
		store:  config.Store,
		sheet:  config.Sheets.Metadata,
		logger: config.Logger,
	}
}

// List returns every document row, header excluded, padded to eight fields
func (r *DocumentRepository) List(ctx context.Context) ([]models.DocumentRow, error) {
	rows, err := r.store.ReadAll(ctx, r.sheet)
	if err != nil {
		return nil, err
	}

	data := dataRows(rows)
	docs := make([]models.DocumentRow, 0, len(data))
	for _, cells := range data {
		docs = append(docs, models.DocumentRowFromCells(cells))
	}
	return docs, nil
}

// Append adds one document row
func (r *DocumentRepository) Append(ctx context.Context, row *models.DocumentRow) error {
	if err := r.store.AppendRow(ctx, r.sheet, row.Cells()); err != nil {
		return err
	}

	r.logger.Debug("document row appended",
		"sheet", r.sheet,
		"name", row.Name,
		"file_id", row.FileID,
	)
	return nil
}
