package handler

import (
	"log/slog"
	"net/http"

	registrySvc "regdocs/internal/domain/services/registry"
	"regdocs/internal/httputil"
)

// CategoryHandler handles taxonomy API requests
type CategoryHandler struct {
	categoryService registrySvc.CategoryService
	logger          *slog.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(categoryService registrySvc.CategoryService, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		logger:          logger,
	}
}

// ListCategories returns every recorded taxonomy row
// GET /api/categories
func (h *CategoryHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	rows, err := h.categoryService.ListCategories(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, rows)
}

// GetOptions returns the cascading select choices
// GET /api/categories/options?category=&area=&unit=
func (h *CategoryHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.categoryService.CategoryOptions(r.Context(), selectionFromQuery(r))
	if err != nil {
		handleError(w, err)
		return
	}
	httputil.RespondJSON(w, http.StatusOK, opts)
}

// AddCategory provisions and records a taxonomy path
// POST /api/categories
// Returns 201 if created, 200 with a warning if the path already exists
func (h *CategoryHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	var req registrySvc.AddCategoryRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.categoryService.AddCategory(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	status := http.StatusCreated
	if result.Status == registrySvc.CategoryDuplicate {
		status = http.StatusOK
	}
	httputil.RespondJSON(w, status, result)
}
