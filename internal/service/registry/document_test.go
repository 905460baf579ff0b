package registry

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regdocs/internal/domain"
	registrySvc "regdocs/internal/domain/services/registry"
)

func seedDocuments(f *fixture, rows ...[]string) {
	header := []string{"Nama Regulasi", "Kategori", "Bidang", "Unit", "Subkategori", "File ID", "Tanggal Terbit", "Tanggal Kadaluarsa"}
	f.tables.Seed("metadata", append([][]string{header}, rows...)...)
}

func names(listing *registrySvc.DocumentListing) []string {
	var out []string
	for view := range listing.All() {
		out = append(out, view.Name)
	}
	return out
}

func pdf(content string) *registrySvc.UploadedFile {
	return &registrySvc.UploadedFile{
		Filename: "policy.pdf",
		Size:     int64(len(content)),
		Content:  strings.NewReader(content),
	}
}

func TestListDocuments_FilterCaseInsensitive(t *testing.T) {
	f := newFixture(t)
	seedDocuments(f,
		[]string{"my regulation", "Health"},
		[]string{"other", "Health"},
		[]string{"REGULATION 2", "Finance"},
	)

	listing, err := f.docs.ListDocuments(context.Background(), &registrySvc.ListDocumentsRequest{Query: "REG"})
	require.NoError(t, err)

	assert.Equal(t, []string{"my regulation", "REGULATION 2"}, names(listing))
	assert.Equal(t, 3, listing.Total)
	assert.Equal(t, 2, listing.Len())
}

func TestListDocuments_QueryMatchedAsTyped(t *testing.T) {
	f := newFixture(t)
	seedDocuments(f,
		[]string{"my regulation"},
		[]string{"regulation 2"},
	)

	req := &registrySvc.ListDocumentsRequest{Query: " reg"}
	listing, err := f.docs.ListDocuments(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, []string{"my regulation"}, names(listing))
	assert.Equal(t, &registrySvc.ListDocumentsRequest{Query: " reg"}, req, "request is left untouched")
}

func TestListDocuments_RaggedRows(t *testing.T) {
	f := newFixture(t)
	seedDocuments(f, []string{"Short"})

	listing, err := f.docs.ListDocuments(context.Background(), nil)
	require.NoError(t, err)

	views := listing.Views()
	require.Len(t, views, 1)
	assert.Equal(t, "Short", views[0].Name)
	assert.Empty(t, views[0].Category)
	assert.Empty(t, views[0].Link, "no file id means no link")
}

func TestListDocuments_PreviewLink(t *testing.T) {
	f := newFixture(t)
	seedDocuments(f, []string{"SOP", "Health", "", "", "", "file-9", "2024-01-01", "2025-01-01"})

	listing, err := f.docs.ListDocuments(context.Background(), nil)
	require.NoError(t, err)

	views := listing.Views()
	require.Len(t, views, 1)
	assert.Equal(t, "https://drive.google.com/file/d/file-9/preview", views[0].Link)
	assert.Equal(t, "2024-01-01", views[0].IssueDate)
}

func TestListDocuments_DefaultSortByName(t *testing.T) {
	f := newFixture(t)
	seedDocuments(f, []string{"beta"}, []string{"Alpha"}, []string{"gamma"})

	listing, err := f.docs.ListDocuments(context.Background(), &registrySvc.ListDocumentsRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Alpha", "beta", "gamma"}, names(listing))
}

func TestListDocuments_DescendingIsExactReverse(t *testing.T) {
	f := newFixture(t)
	seedDocuments(f,
		[]string{"a", "Health"},
		[]string{"b", "finance"},
		[]string{"c", "health"},
		[]string{"d", "Finance"},
		[]string{"e", ""},
	)
	ctx := context.Background()

	for _, column := range registrySvc.SortColumns {
		asc, err := f.docs.ListDocuments(ctx, &registrySvc.ListDocumentsRequest{SortBy: column})
		require.NoError(t, err)
		desc, err := f.docs.ListDocuments(ctx, &registrySvc.ListDocumentsRequest{SortBy: column, Descending: true})
		require.NoError(t, err)

		reversed := names(asc)
		for i, j := 0, len(reversed)-1; i < j; i, j = i+1, j-1 {
			reversed[i], reversed[j] = reversed[j], reversed[i]
		}
		assert.Equal(t, reversed, names(desc), "column %s", column)
	}
}

func TestListDocuments_SortByDate(t *testing.T) {
	f := newFixture(t)
	seedDocuments(f,
		[]string{"late", "", "", "", "", "", "2024-12-01"},
		[]string{"early", "", "", "", "", "", "2023-02-10"},
		[]string{"undated"},
	)

	listing, err := f.docs.ListDocuments(context.Background(), &registrySvc.ListDocumentsRequest{SortBy: registrySvc.SortByIssueDate})
	require.NoError(t, err)
	assert.Equal(t, []string{"undated", "early", "late"}, names(listing))
}

func TestListDocuments_UnknownColumn(t *testing.T) {
	f := newFixture(t)

	_, err := f.docs.ListDocuments(context.Background(), &registrySvc.ListDocumentsRequest{SortBy: "file_id"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, f.tables.reads)
}

func TestListDocuments_StoreFailure(t *testing.T) {
	f := newFixture(t)
	f.tables.err = errRemote

	_, err := f.docs.ListDocuments(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrStore)
	assert.Equal(t, 502, domain.StatusFor(err))
}

func TestListDocuments_AllIsRepeatable(t *testing.T) {
	f := newFixture(t)
	seedDocuments(f, []string{"a"}, []string{"b"})

	listing, err := f.docs.ListDocuments(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, names(listing), names(listing))

	count := 0
	for range listing.All() {
		count++
		break
	}
	assert.Equal(t, 1, count)
}

func TestSubmitDocument_EmptyNameMakesNoRemoteCalls(t *testing.T) {
	f := newFixture(t)

	_, err := f.docs.SubmitDocument(context.Background(), &registrySvc.SubmitDocumentRequest{
		Name:     "   ",
		Category: "Health",
		File:     pdf("%PDF-1.4"),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, f.folders.calls())
	assert.Zero(t, f.tables.reads+f.tables.appends)
}

func TestSubmitDocument_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		req  *registrySvc.SubmitDocumentRequest
	}{
		{"nil request", nil},
		{"missing category", &registrySvc.SubmitDocumentRequest{Name: "Policy", File: pdf("%PDF")}},
		{"missing file", &registrySvc.SubmitDocumentRequest{Name: "Policy", Category: "Health"}},
		{"empty file", &registrySvc.SubmitDocumentRequest{Name: "Policy", Category: "Health", File: pdf("")}},
		{"name too long", &registrySvc.SubmitDocumentRequest{Name: strings.Repeat("n", 256), Category: "Health", File: pdf("%PDF")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.docs.SubmitDocument(context.Background(), tt.req)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Zero(t, f.folders.calls())
			assert.Zero(t, f.tables.appends)
		})
	}
}

func TestSubmitDocument_EndToEnd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.tables.Seed("kategori",
		[]string{"Kategori", "Bidang", "Unit", "Subkategori", "Folder ID"},
		[]string{"Health", "Clinic", "", "", "folder123"},
	)

	row, err := f.docs.SubmitDocument(ctx, &registrySvc.SubmitDocumentRequest{
		Name:       "Policy A",
		Category:   "Health",
		Area:       "Clinic",
		File:       pdf("%PDF-1.4 policy"),
		IssueDate:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpiryDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotEmpty(t, row.FileID)

	assert.Equal(t, [][]string{
		{"Policy A", "Health", "Clinic", "", "", row.FileID, "2024-01-01", "2025-01-01"},
	}, f.sheet(t, "metadata"))
	assert.Len(t, f.sheet(t, "kategori"), 1, "intake never adds category rows")

	stored, content, ok := f.folders.File(row.FileID)
	require.True(t, ok)
	assert.Equal(t, "application/pdf", stored.MimeType)
	assert.Equal(t, "policy.pdf", stored.Name)
	assert.Equal(t, "%PDF-1.4 policy", string(content))

	clinic, err := f.resolver.ResolveFolder(ctx, "Health", "Clinic")
	require.NoError(t, err)
	assert.Equal(t, clinic, stored.ParentID)
}

func TestSubmitDocument_UndatedStoresEmptyStrings(t *testing.T) {
	f := newFixture(t)

	row, err := f.docs.SubmitDocument(context.Background(), &registrySvc.SubmitDocumentRequest{
		Name:     "Policy B",
		Category: "Finance",
		File:     &registrySvc.UploadedFile{Size: 4, Content: strings.NewReader("%PDF")},
	})
	require.NoError(t, err)
	assert.Empty(t, row.IssueDate)
	assert.Empty(t, row.ExpiryDate)

	stored, _, ok := f.folders.File(row.FileID)
	require.True(t, ok)
	assert.Equal(t, "Policy B.pdf", stored.Name)
}

func TestSubmitDocument_UploadFailure(t *testing.T) {
	f := newFixture(t)
	f.folders.err = errRemote

	_, err := f.docs.SubmitDocument(context.Background(), &registrySvc.SubmitDocumentRequest{
		Name:     "Policy",
		Category: "Health",
		File:     pdf("%PDF"),
	})
	assert.ErrorIs(t, err, domain.ErrStore)
	assert.Zero(t, f.tables.appends)
}
