package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "regdocs/internal/domain/models/registry"
	registrySvc "regdocs/internal/domain/services/registry"
	"regdocs/internal/repository/memory"
	registryStore "regdocs/internal/repository/registry"
	registryService "regdocs/internal/service/registry"
)

// useMemoryStore points the commands at an in-memory sheet
func useMemoryStore(t *testing.T) *memory.TableStore {
	t.Helper()
	tables := memory.NewTableStore()
	tables.Seed("kategori", models.CategoryHeader)

	original := openCategories
	openCategories = func(_ context.Context, logger *slog.Logger) (registrySvc.CategoryService, func() error, error) {
		discard := slog.New(slog.NewTextHandler(io.Discard, nil))
		repo := registryStore.NewCategoryRepository(&registryStore.RepositoryConfig{
			Store:  tables,
			Sheets: registryStore.NewSheetNames("", ""),
			Logger: discard,
		})
		resolver := registryService.NewHierarchyResolver(memory.NewFolderStore(), "root", discard)
		return registryService.NewCategoryService(repo, resolver, discard), func() error { return nil }, nil
	}
	t.Cleanup(func() {
		openCategories = original
		taxonomyFile, dryRun, verbose = "taxonomy.yaml", false, false
	})
	return tables
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func writeTaxonomy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const taxonomyYAML = `categories:
  - category: Health
    area: Clinic
  - category: Health
    area: Clinic
  - category: Finance
`

func TestTaxonomyCmd(t *testing.T) {
	tables := useMemoryStore(t)
	path := writeTaxonomy(t, taxonomyYAML)

	out, err := execute(t, "taxonomy", "--file", path)
	require.NoError(t, err)

	assert.Contains(t, out, "created   Health / Clinic")
	assert.Contains(t, out, "duplicate Health / Clinic")
	assert.Contains(t, out, "2 created, 1 already present")

	rows, err := tables.ReadAll(context.Background(), "kategori")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestTaxonomyCmd_DryRun(t *testing.T) {
	tables := useMemoryStore(t)
	path := writeTaxonomy(t, taxonomyYAML)

	out, err := execute(t, "taxonomy", "--file", path, "--dry-run")
	require.NoError(t, err)

	assert.Contains(t, out, "dry run: 2 to add, 1 already present")
	rows, err := tables.ReadAll(context.Background(), "kategori")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestTaxonomyCmd_MissingFile(t *testing.T) {
	useMemoryStore(t)

	_, err := execute(t, "taxonomy", "--file", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestTreeCmd(t *testing.T) {
	tables := useMemoryStore(t)
	tables.Seed("kategori", models.CategoryHeader,
		[]string{"Health", "Clinic", "", "", "f1"},
		[]string{"Finance", "", "", "", "f2"},
	)

	out, err := execute(t, "tree")
	require.NoError(t, err)

	assert.Equal(t, "Taxonomy\n├── Health\n│   └── Clinic\n└── Finance\n", out)
}
