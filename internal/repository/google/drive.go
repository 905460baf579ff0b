package google

import (
	"context"
	"fmt"
	"io"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"

	models "regdocs/internal/domain/models/registry"
	registryRepo "regdocs/internal/domain/repositories/registry"
)

// Verify interface compliance
var _ registryRepo.FolderStore = (*DriveStore)(nil)

// DriveStore implements registryRepo.FolderStore over Google Drive
type DriveStore struct {
	svc     *drive.Service
	limiter *RateLimiter
}

// NewDriveStore creates a DriveStore
func NewDriveStore(svc *drive.Service, limiter *RateLimiter) *DriveStore {
	return &DriveStore{svc: svc, limiter: limiter}
}

// FindFolder returns the first non-trashed child folder named name, or nil
func (d *DriveStore) FindFolder(ctx context.Context, parentID, name string) (*models.Folder, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, WrapError("find folder "+name, err)
	}

	resp, err := d.svc.Files.List().
		Q(folderQuery(parentID, name)).
		Fields("files(id, name)").
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, WrapError("find folder "+name, err)
	}

	if len(resp.Files) == 0 {
		return nil, nil
	}

	f := resp.Files[0]
	return &models.Folder{ID: f.Id, Name: f.Name, ParentID: parentID}, nil
}

// CreateFolder creates a child folder of parentID
func (d *DriveStore) CreateFolder(ctx context.Context, parentID, name string) (*models.Folder, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, WrapError("create folder "+name, err)
	}

	created, err := d.svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: models.FolderMimeType,
		Parents:  []string{parentID},
	}).
		Fields("id, name").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, WrapError("create folder "+name, err)
	}

	return &models.Folder{ID: created.Id, Name: created.Name, ParentID: parentID}, nil
}

// UploadFile stores content as a new file under parentID
func (d *DriveStore) UploadFile(ctx context.Context, parentID, name, mimeType string, content io.Reader) (*models.StoredFile, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return nil, WrapError("upload file "+name, err)
	}

	created, err := d.svc.Files.Create(&drive.File{
		Name:     name,
		MimeType: mimeType,
		Parents:  []string{parentID},
	}).
		Media(content, googleapi.ContentType(mimeType)).
		Fields("id, name, mimeType").
		SupportsAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return nil, WrapError("upload file "+name, err)
	}

	return &models.StoredFile{
		ID:       created.Id,
		Name:     created.Name,
		ParentID: parentID,
		MimeType: created.MimeType,
	}, nil
}

// folderQuery builds the Drive search expression for an exact-name,
// non-trashed child folder.
func folderQuery(parentID, name string) string {
	return fmt.Sprintf("name = '%s' and '%s' in parents and mimeType = '%s' and trashed = false",
		escapeQuery(name), escapeQuery(parentID), models.FolderMimeType)
}

// escapeQuery escapes a literal for use inside single quotes in a Drive query.
func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
