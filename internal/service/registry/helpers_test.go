package registry

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	models "regdocs/internal/domain/models/registry"
	registrySvc "regdocs/internal/domain/services/registry"
	"regdocs/internal/repository/memory"
	registryStore "regdocs/internal/repository/registry"
)

const testRootID = "root"

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingTables records every call that reaches the spreadsheet
type countingTables struct {
	*memory.TableStore
	reads   int
	appends int
	err     error
}

func (c *countingTables) ReadAll(ctx context.Context, sheet string) ([][]string, error) {
	c.reads++
	if c.err != nil {
		return nil, c.err
	}
	return c.TableStore.ReadAll(ctx, sheet)
}

func (c *countingTables) AppendRow(ctx context.Context, sheet string, cells []string) error {
	c.appends++
	if c.err != nil {
		return c.err
	}
	return c.TableStore.AppendRow(ctx, sheet, cells)
}

// countingFolders records every call that reaches the drive
type countingFolders struct {
	*memory.FolderStore
	finds   int
	creates int
	uploads int
	err     error
}

func (c *countingFolders) FindFolder(ctx context.Context, parentID, name string) (*models.Folder, error) {
	c.finds++
	if c.err != nil {
		return nil, c.err
	}
	return c.FolderStore.FindFolder(ctx, parentID, name)
}

func (c *countingFolders) CreateFolder(ctx context.Context, parentID, name string) (*models.Folder, error) {
	c.creates++
	if c.err != nil {
		return nil, c.err
	}
	return c.FolderStore.CreateFolder(ctx, parentID, name)
}

func (c *countingFolders) UploadFile(ctx context.Context, parentID, name, mimeType string, content io.Reader) (*models.StoredFile, error) {
	c.uploads++
	if c.err != nil {
		return nil, c.err
	}
	return c.FolderStore.UploadFile(ctx, parentID, name, mimeType, content)
}

func (c *countingFolders) calls() int {
	return c.finds + c.creates + c.uploads
}

var errRemote = errors.New("remote unavailable")

type fixture struct {
	tables   *countingTables
	folders  *countingFolders
	resolver registrySvc.HierarchyResolver
	docs     registrySvc.DocumentService
	cats     registrySvc.CategoryService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tables := &countingTables{TableStore: memory.NewTableStore()}
	tables.Seed("kategori", []string{"Kategori", "Bidang", "Unit", "Subkategori", "Folder ID"})
	tables.Seed("metadata", []string{"Nama Regulasi", "Kategori", "Bidang", "Unit", "Subkategori", "File ID", "Tanggal Terbit", "Tanggal Kadaluarsa"})
	folders := &countingFolders{FolderStore: memory.NewFolderStore()}

	cfg := &registryStore.RepositoryConfig{
		Store:  tables,
		Sheets: registryStore.NewSheetNames("", ""),
		Logger: discardLogger(),
	}
	resolver := NewHierarchyResolver(folders, testRootID, discardLogger())

	return &fixture{
		tables:   tables,
		folders:  folders,
		resolver: resolver,
		docs:     NewDocumentService(registryStore.NewDocumentRepository(cfg), folders, resolver, discardLogger()),
		cats:     NewCategoryService(registryStore.NewCategoryRepository(cfg), resolver, discardLogger()),
	}
}

// sheet returns the data rows of a sheet, header excluded
func (f *fixture) sheet(t *testing.T, name string) [][]string {
	t.Helper()
	rows, err := f.tables.TableStore.ReadAll(context.Background(), name)
	if err != nil {
		t.Fatalf("read %s: %v", name, err)
	}
	return rows[1:]
}

// resetCounts clears call counters after seeding
func (f *fixture) resetCounts() {
	f.tables.reads, f.tables.appends = 0, 0
	f.folders.finds, f.folders.creates, f.folders.uploads = 0, 0, 0
}
