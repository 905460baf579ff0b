package registry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "regdocs/internal/domain/models/registry"
	"regdocs/internal/repository/memory"
)

func newTestConfig(store *memory.TableStore) *RepositoryConfig {
	return &RepositoryConfig{
		Store:  store,
		Sheets: NewSheetNames("", ""),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestNewSheetNames_Defaults(t *testing.T) {
	names := NewSheetNames("", "")
	assert.Equal(t, "kategori", names.Categories)
	assert.Equal(t, "metadata", names.Metadata)

	names = NewSheetNames("cats", "docs")
	assert.Equal(t, "cats", names.Categories)
	assert.Equal(t, "docs", names.Metadata)
}

func TestDocumentRepository_ListPadsRaggedRows(t *testing.T) {
	store := memory.NewTableStore()
	store.Seed("metadata",
		[]string{"Nama", "Kategori", "Area", "Unit", "Sub", "File", "Terbit", "Kadaluarsa"},
		[]string{"SOP A", "Health"},
		[]string{"SOP B", "Health", "", "", "", "f1", "2024-01-01", "2025-01-01", "extra"},
	)

	docs, err := NewDocumentRepository(newTestConfig(store)).List(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, models.DocumentRow{Name: "SOP A", Category: "Health"}, docs[0])
	assert.Equal(t, "f1", docs[1].FileID)
	assert.Equal(t, "2025-01-01", docs[1].ExpiryDate)
}

func TestDocumentRepository_HeaderOnly(t *testing.T) {
	store := memory.NewTableStore()
	store.Seed("metadata", []string{"Nama"})

	docs, err := NewDocumentRepository(newTestConfig(store)).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentRepository_Append(t *testing.T) {
	ctx := context.Background()
	store := memory.NewTableStore()
	repo := NewDocumentRepository(newTestConfig(store))

	row := &models.DocumentRow{Name: "SOP", Category: "Health", FileID: "f9", IssueDate: "2024-03-01"}
	require.NoError(t, repo.Append(ctx, row))

	rows, err := store.ReadAll(ctx, "metadata")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"SOP", "Health", "", "", "", "f9", "2024-03-01", ""}}, rows)
}

func TestCategoryRepository_ListAndAppend(t *testing.T) {
	ctx := context.Background()
	store := memory.NewTableStore()
	store.Seed("kategori",
		[]string{"Kategori", "Area", "Unit", "Sub", "Folder"},
		[]string{"Health", "Clinic"},
	)
	repo := NewCategoryRepository(newTestConfig(store))

	row := &models.CategoryRow{
		CategoryPath: models.CategoryPath{Category: "Health", Area: "Clinic", Unit: "Lab"},
		FolderID:     "lab-id",
	}
	require.NoError(t, repo.Append(ctx, row))

	cats, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "", cats[0].Unit)
	assert.Equal(t, "", cats[0].FolderID)
	assert.Equal(t, *row, cats[1])
}

type failingStore struct{ err error }

func (f failingStore) ReadAll(context.Context, string) ([][]string, error) { return nil, f.err }
func (f failingStore) AppendRow(context.Context, string, []string) error   { return f.err }

func TestRepositories_PropagateStoreErrors(t *testing.T) {
	boom := errors.New("boom")
	cfg := &RepositoryConfig{
		Store:  failingStore{err: boom},
		Sheets: NewSheetNames("", ""),
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	_, err := NewCategoryRepository(cfg).List(context.Background())
	assert.ErrorIs(t, err, boom)

	err = NewDocumentRepository(cfg).Append(context.Background(), &models.DocumentRow{Name: "x"})
	assert.ErrorIs(t, err, boom)
}
