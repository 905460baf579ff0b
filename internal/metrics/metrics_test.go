package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	models "regdocs/internal/domain/models/registry"
	"regdocs/internal/repository/memory"
)

type brokenTables struct{}

func (brokenTables) ReadAll(context.Context, string) ([][]string, error) {
	return nil, errors.New("down")
}
func (brokenTables) AppendRow(context.Context, string, []string) error { return nil }

func TestInstrumentTableStore(t *testing.T) {
	m := NewMetrics()
	ctx := context.Background()

	store := InstrumentTableStore(memory.NewTableStore(), m)
	require.NoError(t, store.AppendRow(ctx, "metadata", []string{"a"}))
	_, err := store.ReadAll(ctx, "metadata")
	require.NoError(t, err)

	broken := InstrumentTableStore(brokenTables{}, m)
	_, err = broken.ReadAll(ctx, "metadata")
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperationsTotal.WithLabelValues("sheets", "append_row", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperationsTotal.WithLabelValues("sheets", "read_all", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperationsTotal.WithLabelValues("sheets", "read_all", "error")))
}

func TestInstrumentFolderStore(t *testing.T) {
	m := NewMetrics()
	ctx := context.Background()
	store := InstrumentFolderStore(memory.NewFolderStore(), m)

	folder, err := store.CreateFolder(ctx, "root", "Health")
	require.NoError(t, err)
	_, err = store.FindFolder(ctx, "root", "Health")
	require.NoError(t, err)
	_, err = store.UploadFile(ctx, folder.ID, "a.pdf", models.PDFMimeType, strings.NewReader("%PDF"))
	require.NoError(t, err)

	for _, op := range []string{"create_folder", "find_folder", "upload_file"} {
		assert.Equal(t, 1.0, testutil.ToFloat64(m.StoreOperationsTotal.WithLabelValues("drive", op, "success")), op)
	}
}

func TestInstrument_NilMetricsPassesThrough(t *testing.T) {
	tables := memory.NewTableStore()
	assert.Same(t, tables, InstrumentTableStore(tables, nil))

	folders := memory.NewFolderStore()
	assert.Same(t, folders, InstrumentFolderStore(folders, nil))
}

func TestHandler_ExposesMetrics(t *testing.T) {
	m := NewMetrics()
	m.RecordHTTPRequest("GET", "/documents", "200", 10*time.Millisecond)
	m.RecordLogin("admin", false)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `regdocs_http_requests_total{code="200",method="GET",route="/documents"} 1`)
	assert.Contains(t, string(body), `regdocs_login_attempts_total{result="failure",role="admin"} 1`)
}
