package metrics

import (
	"context"
	"io"
	"time"

	models "regdocs/internal/domain/models/registry"
	registryRepo "regdocs/internal/domain/repositories/registry"
)

// Verify interface compliance
var (
	_ registryRepo.TableStore  = (*InstrumentedTableStore)(nil)
	_ registryRepo.FolderStore = (*InstrumentedFolderStore)(nil)
)

// InstrumentedTableStore records metrics around a TableStore
type InstrumentedTableStore struct {
	next    registryRepo.TableStore
	metrics *Metrics
}

// InstrumentTableStore wraps next. A nil Metrics returns next unchanged.
func InstrumentTableStore(next registryRepo.TableStore, m *Metrics) registryRepo.TableStore {
	if m == nil {
		return next
	}
	return &InstrumentedTableStore{next: next, metrics: m}
}

func (s *InstrumentedTableStore) ReadAll(ctx context.Context, sheet string) ([][]string, error) {
	start := time.Now()
	rows, err := s.next.ReadAll(ctx, sheet)
	s.metrics.RecordStoreOperation("sheets", "read_all", err, time.Since(start))
	return rows, err
}

func (s *InstrumentedTableStore) AppendRow(ctx context.Context, sheet string, cells []string) error {
	start := time.Now()
	err := s.next.AppendRow(ctx, sheet, cells)
	s.metrics.RecordStoreOperation("sheets", "append_row", err, time.Since(start))
	return err
}

// InstrumentedFolderStore records metrics around a FolderStore
type InstrumentedFolderStore struct {
	next    registryRepo.FolderStore
	metrics *Metrics
}

// InstrumentFolderStore wraps next. A nil Metrics returns next unchanged.
func InstrumentFolderStore(next registryRepo.FolderStore, m *Metrics) registryRepo.FolderStore {
	if m == nil {
		return next
	}
	return &InstrumentedFolderStore{next: next, metrics: m}
}

func (s *InstrumentedFolderStore) FindFolder(ctx context.Context, parentID, name string) (*models.Folder, error) {
	start := time.Now()
	folder, err := s.next.FindFolder(ctx, parentID, name)
	s.metrics.RecordStoreOperation("drive", "find_folder", err, time.Since(start))
	return folder, err
}

func (s *InstrumentedFolderStore) CreateFolder(ctx context.Context, parentID, name string) (*models.Folder, error) {
	start := time.Now()
	folder, err := s.next.CreateFolder(ctx, parentID, name)
	s.metrics.RecordStoreOperation("drive", "create_folder", err, time.Since(start))
	return folder, err
}

func (s *InstrumentedFolderStore) UploadFile(ctx context.Context, parentID, name, mimeType string, content io.Reader) (*models.StoredFile, error) {
	start := time.Now()
	file, err := s.next.UploadFile(ctx, parentID, name, mimeType, content)
	s.metrics.RecordStoreOperation("drive", "upload_file", err, time.Since(start))
	return file, err
}
