package registry

import (
	"context"

	models "regdocs/internal/domain/models/registry"
)

// CategoryService handles taxonomy management
type CategoryService interface {
	// AddCategory provisions the folder chain for a new taxonomy path and
	// records it. An exact duplicate yields a warning result, not an error.
	AddCategory(ctx context.Context, req *AddCategoryRequest) (*AddCategoryResult, error)

	// CategoryOptions returns the choices for each cascading select given the
	// levels selected so far
	CategoryOptions(ctx context.Context, sel models.CategoryPath) (*CascadeOptions, error)

	// ListCategories returns every recorded taxonomy row
	ListCategories(ctx context.Context) ([]models.CategoryRow, error)
}

// AddCategoryRequest is the category form
type AddCategoryRequest struct {
	Category    string `json:"category" yaml:"category"`
	Area        string `json:"area" yaml:"area"`
	Unit        string `json:"unit" yaml:"unit"`
	Subcategory string `json:"subcategory" yaml:"subcategory"`
}

// Path returns the requested taxonomy path
func (r *AddCategoryRequest) Path() models.CategoryPath {
	return models.CategoryPath{
		Category:    r.Category,
		Area:        r.Area,
		Unit:        r.Unit,
		Subcategory: r.Subcategory,
	}
}

// AddCategoryStatus reports what AddCategory did
type AddCategoryStatus string

const (
	CategoryCreated   AddCategoryStatus = "created"
	CategoryDuplicate AddCategoryStatus = "duplicate"
)

// AddCategoryResult is the outcome of AddCategory
type AddCategoryResult struct {
	Status  AddCategoryStatus   `json:"status"`
	Message string              `json:"message"`
	Row     *models.CategoryRow `json:"row,omitempty"`
}

// CascadeOptions holds the distinct, sorted, non-empty choices per level
type CascadeOptions struct {
	Categories    []string `json:"categories"`
	Areas         []string `json:"areas"`
	Units         []string `json:"units"`
	Subcategories []string `json:"subcategories"`
}
