package memory

import (
	"context"
	"sync"

	registryRepo "regdocs/internal/domain/repositories/registry"
)

// Verify interface compliance
var _ registryRepo.TableStore = (*TableStore)(nil)

// TableStore is an in-process spreadsheet used for local development and tests
type TableStore struct {
	mu     sync.RWMutex
	sheets map[string][][]string
}

// NewTableStore creates an empty TableStore
func NewTableStore() *TableStore {
	return &TableStore{sheets: make(map[string][][]string)}
}

// Seed replaces the content of a sheet
func (s *TableStore) Seed(sheet string, rows ...[]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[sheet] = cloneRows(rows)
}

// ReadAll returns every row of the sheet, header included
func (s *TableStore) ReadAll(_ context.Context, sheet string) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRows(s.sheets[sheet]), nil
}

// AppendRow appends one row to the sheet
func (s *TableStore) AppendRow(_ context.Context, sheet string, cells []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[sheet] = append(s.sheets[sheet], append([]string(nil), cells...))
	return nil
}

func cloneRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}
