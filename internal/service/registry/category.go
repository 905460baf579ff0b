package registry

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"regdocs/internal/config"
	"regdocs/internal/domain"
	models "regdocs/internal/domain/models/registry"
	registryRepo "regdocs/internal/domain/repositories/registry"
	registrySvc "regdocs/internal/domain/services/registry"
)

type categoryService struct {
	categoryRepo registryRepo.CategoryRepository
	resolver     registrySvc.HierarchyResolver
	logger       *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo registryRepo.CategoryRepository,
	resolver registrySvc.HierarchyResolver,
	logger *slog.Logger,
) registrySvc.CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		resolver:     resolver,
		logger:       logger,
	}
}

// AddCategory records a new taxonomy path after provisioning its folder chain
func (s *categoryService) AddCategory(ctx context.Context, req *registrySvc.AddCategoryRequest) (*registrySvc.AddCategoryResult, error) {
	if err := s.validateAdd(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	path := req.Path()

	rows, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, domain.WrapStore("read categories", err)
	}

	// Duplicates are a warning, not a failure; nothing is written
	if slices.ContainsFunc(rows, func(row models.CategoryRow) bool { return row.Matches(path) }) {
		s.logger.Debug("category already exists", "category", path.Category, "area", path.Area,
			"unit", path.Unit, "subcategory", path.Subcategory)
		return &registrySvc.AddCategoryResult{
			Status:  registrySvc.CategoryDuplicate,
			Message: fmt.Sprintf("%s already exists, not added", describePath(path)),
		}, nil
	}

	folderID, err := s.resolver.ResolveFolder(ctx, path.Segments()...)
	if err != nil {
		return nil, err
	}

	row := &models.CategoryRow{CategoryPath: path, FolderID: folderID}
	if err := s.categoryRepo.Append(ctx, row); err != nil {
		return nil, domain.WrapStore("append category", err)
	}

	s.logger.Info("category added",
		"category", path.Category,
		"area", path.Area,
		"unit", path.Unit,
		"subcategory", path.Subcategory,
		"folder_id", folderID,
	)

	return &registrySvc.AddCategoryResult{
		Status:  registrySvc.CategoryCreated,
		Message: fmt.Sprintf("Category '%s' created", path.Category),
		Row:     row,
	}, nil
}

// CategoryOptions returns the cascading select choices for the current selection
func (s *categoryService) CategoryOptions(ctx context.Context, sel models.CategoryPath) (*registrySvc.CascadeOptions, error) {
	rows, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, domain.WrapStore("read categories", err)
	}
	return BuildCascadeOptions(rows, sel), nil
}

// ListCategories returns every recorded taxonomy row
func (s *categoryService) ListCategories(ctx context.Context) ([]models.CategoryRow, error) {
	rows, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, domain.WrapStore("read categories", err)
	}
	return rows, nil
}

func (s *categoryService) validateAdd(req *registrySvc.AddCategoryRequest) error {
	if req == nil {
		return fmt.Errorf("request is required")
	}

	req.Category = strings.TrimSpace(req.Category)
	req.Area = strings.TrimSpace(req.Area)
	req.Unit = strings.TrimSpace(req.Unit)
	req.Subcategory = strings.TrimSpace(req.Subcategory)

	return validation.ValidateStruct(req,
		validation.Field(&req.Category,
			validation.Required.Error("category name is required"),
			validation.Length(1, config.MaxFolderNameLength),
		),
		validation.Field(&req.Area, validation.Length(0, config.MaxFolderNameLength)),
		validation.Field(&req.Unit, validation.Length(0, config.MaxFolderNameLength)),
		validation.Field(&req.Subcategory, validation.Length(0, config.MaxFolderNameLength)),
	)
}

// describePath renders a taxonomy path as "A / B / C", skipping empty levels.
func describePath(p models.CategoryPath) string {
	parts := slices.DeleteFunc(p.Segments(), func(s string) bool { return s == "" })
	return strings.Join(parts, " / ")
}
