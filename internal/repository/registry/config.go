package registry

import (
	"log/slog"

	registryRepo "regdocs/internal/domain/repositories/registry"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Store  registryRepo.TableStore
	Sheets *SheetNames
	Logger *slog.Logger
}

// SheetNames holds the configured sheet names
type SheetNames struct {
	Categories string
	Metadata   string
}

// NewSheetNames creates sheet names, falling back to the defaults for empty values
func NewSheetNames(categories, metadata string) *SheetNames {
	if categories == "" {
		categories = "kategori"
	}
	if metadata == "" {
		metadata = "metadata"
	}
	return &SheetNames{Categories: categories, Metadata: metadata}
}

// dataRows drops the header row. A sheet with only a header, or nothing, has no data.
func dataRows(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}
