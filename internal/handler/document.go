package handler

import (
	"log/slog"
	"net/http"

	registrySvc "regdocs/internal/domain/services/registry"
	"regdocs/internal/httputil"
)

// DocumentHandler handles document API requests
type DocumentHandler struct {
	docService registrySvc.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService registrySvc.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// DocumentListResponse is the listing returned by the API
type DocumentListResponse struct {
	Total     int                        `json:"total"`
	Count     int                        `json:"count"`
	Documents []registrySvc.DocumentView `json:"documents"`
}

// ListDocuments returns the filtered, sorted document table
// GET /api/documents?q=&sort=&dir=
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	listing, err := h.docService.ListDocuments(r.Context(), listRequestFromQuery(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, DocumentListResponse{
		Total:     listing.Total,
		Count:     listing.Len(),
		Documents: listing.Views(),
	})
}

// SubmitDocument uploads a PDF and records its metadata
// POST /api/documents (multipart/form-data)
func (h *DocumentHandler) SubmitDocument(w http.ResponseWriter, r *http.Request) {
	form, err := parseSubmitForm(w, r)
	if err != nil {
		handleError(w, err)
		return
	}
	defer form.Close()

	row, err := h.docService.SubmitDocument(r.Context(), form.Request)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, row)
}
