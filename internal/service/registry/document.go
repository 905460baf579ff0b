package registry

import (
	"context"
	"errors"
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

type documentService struct {
	docRepo  registryRepo.DocumentRepository
	folders  registryRepo.FolderStore
	resolver registrySvc.HierarchyResolver
	logger   *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo registryRepo.DocumentRepository,
	folders registryRepo.FolderStore,
	resolver registrySvc.HierarchyResolver,
	logger *slog.Logger,
) registrySvc.DocumentService {
	return &documentService{
		docRepo:  docRepo,
		folders:  folders,
		resolver: resolver,
		logger:   logger,
	}
}

// ListDocuments filters by name and orders by one display column. The query
// is matched as typed, surrounding spaces included.
func (s *documentService) ListDocuments(ctx context.Context, req *registrySvc.ListDocumentsRequest) (*registrySvc.DocumentListing, error) {
	var query registrySvc.ListDocumentsRequest
	if req != nil {
		query = *req
	}
	if query.SortBy == "" {
		query.SortBy = registrySvc.DefaultSortColumn
	}

	if err := validation.ValidateStruct(&query,
		validation.Field(&query.Query, validation.Length(0, config.MaxSearchLength)),
		validation.Field(&query.SortBy, validation.In(sortColumnValues()...)),
	); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	rows, err := s.docRepo.List(ctx)
	if err != nil {
		return nil, domain.WrapStore("read metadata", err)
	}
	total := len(rows)

	if query.Query != "" {
		needle := strings.ToLower(query.Query)
		rows = slices.DeleteFunc(rows, func(row models.DocumentRow) bool {
			return !strings.Contains(strings.ToLower(row.Name), needle)
		})
	}

	key := sortKey(query.SortBy)
	slices.SortStableFunc(rows, func(a, b models.DocumentRow) int {
		return strings.Compare(strings.ToLower(key(a)), strings.ToLower(key(b)))
	})
	// Descending is the exact mirror of ascending, ties included
	if query.Descending {
		slices.Reverse(rows)
	}

	return registrySvc.NewDocumentListing(rows, total), nil
}

func sortColumnValues() []any {
	values := make([]any, len(registrySvc.SortColumns))
	for i, c := range registrySvc.SortColumns {
		values[i] = c
	}
	return values
}

func sortKey(column registrySvc.SortColumn) func(models.DocumentRow) string {
	switch column {
	case registrySvc.SortByCategory:
		return func(d models.DocumentRow) string { return d.Category }
	case registrySvc.SortByIssueDate:
		return func(d models.DocumentRow) string { return d.IssueDate }
	case registrySvc.SortByExpiryDate:
		return func(d models.DocumentRow) string { return d.ExpiryDate }
	default:
		return func(d models.DocumentRow) string { return d.Name }
	}
}

// SubmitDocument files the PDF under its taxonomy folder and records a metadata row.
// A failure after the upload leaves the file in the drive without a row.
func (s *documentService) SubmitDocument(ctx context.Context, req *registrySvc.SubmitDocumentRequest) (*models.DocumentRow, error) {
	if err := s.validateSubmit(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	folderID, err := s.resolver.ResolveFolder(ctx, req.Category, req.Area, req.Unit, req.Subcategory)
	if err != nil {
		return nil, err
	}

	file, err := s.folders.UploadFile(ctx, folderID, uploadName(req), models.PDFMimeType, req.File.Content)
	if err != nil {
		return nil, domain.WrapStore("upload file", err)
	}

	s.logger.Info("document uploaded",
		"file_id", file.ID,
		"name", file.Name,
		"folder_id", folderID,
		"size", req.File.Size,
	)

	row := &models.DocumentRow{
		Name:        req.Name,
		Category:    req.Category,
		Area:        req.Area,
		Unit:        req.Unit,
		Subcategory: req.Subcategory,
		FileID:      file.ID,
		IssueDate:   models.FormatDate(req.IssueDate),
		ExpiryDate:  models.FormatDate(req.ExpiryDate),
	}

	if err := s.docRepo.Append(ctx, row); err != nil {
		s.logger.Error("metadata append failed after upload",
			"file_id", file.ID,
			"name", row.Name,
			"error", err,
		)
		return nil, domain.WrapStore("append metadata", err)
	}

	return row, nil
}

func (s *documentService) validateSubmit(req *registrySvc.SubmitDocumentRequest) error {
	if req == nil {
		return errors.New("request is required")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Category = strings.TrimSpace(req.Category)
	req.Area = strings.TrimSpace(req.Area)
	req.Unit = strings.TrimSpace(req.Unit)
	req.Subcategory = strings.TrimSpace(req.Subcategory)

	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxDocumentNameLength),
		),
		validation.Field(&req.Category,
			validation.Required,
			validation.Length(1, config.MaxFolderNameLength),
		),
		validation.Field(&req.Area, validation.Length(0, config.MaxFolderNameLength)),
		validation.Field(&req.Unit, validation.Length(0, config.MaxFolderNameLength)),
		validation.Field(&req.Subcategory, validation.Length(0, config.MaxFolderNameLength)),
		validation.Field(&req.File,
			validation.By(requireFile),
			validation.By(limitFileSize),
		),
	)
}

func requireFile(value any) error {
	file, _ := value.(*registrySvc.UploadedFile)
	if file.Empty() {
		return errors.New("cannot be blank")
	}
	return nil
}

func limitFileSize(value any) error {
	file, _ := value.(*registrySvc.UploadedFile)
	if file != nil && file.Size > config.MaxUploadSize {
		return fmt.Errorf("exceeds maximum size of %d MB", config.MaxUploadSize>>20)
	}
	return nil
}

// uploadName keeps the submitted filename, falling back to the document name.
func uploadName(req *registrySvc.SubmitDocumentRequest) string {
	if name := strings.TrimSpace(req.File.Filename); name != "" {
		return name
	}
	return req.Name + ".pdf"
}
