package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/google/uuid"

	models "regdocs/internal/domain/models/registry"
	registryRepo "regdocs/internal/domain/repositories/registry"
)

// Verify interface compliance
var _ registryRepo.FolderStore = (*FolderStore)(nil)

// FolderStore is an in-process folder tree used for local development and tests
type FolderStore struct {
	mu      sync.RWMutex
	folders []models.Folder
	files   map[string][]byte
	meta    map[string]models.StoredFile
}

// NewFolderStore creates an empty FolderStore
func NewFolderStore() *FolderStore {
	return &FolderStore{
		files: make(map[string][]byte),
		meta:  make(map[string]models.StoredFile),
	}
}

// AddFolder registers an existing folder, e.g. one already provisioned remotely
func (s *FolderStore) AddFolder(folder models.Folder) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folders = append(s.folders, folder)
}

// FindFolder returns the first child folder of parentID named name, or nil
func (s *FolderStore) FindFolder(_ context.Context, parentID, name string) (*models.Folder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, f := range s.folders {
		if f.ParentID == parentID && f.Name == name {
			found := f
			return &found, nil
		}
	}
	return nil, nil
}

// CreateFolder creates a child folder of parentID. Like the drive, it does
// not refuse a duplicate name.
func (s *FolderStore) CreateFolder(_ context.Context, parentID, name string) (*models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	folder := models.Folder{ID: uuid.NewString(), Name: name, ParentID: parentID}
	s.folders = append(s.folders, folder)
	return &folder, nil
}

// UploadFile stores content as a new file under parentID
func (s *FolderStore) UploadFile(_ context.Context, parentID, name, mimeType string, content io.Reader) (*models.StoredFile, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	file := models.StoredFile{ID: uuid.NewString(), Name: name, ParentID: parentID, MimeType: mimeType}
	s.files[file.ID] = data
	s.meta[file.ID] = file
	return &file, nil
}

// Folders returns a snapshot of every folder
func (s *FolderStore) Folders() []models.Folder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Folder(nil), s.folders...)
}

// File returns an uploaded file and its content
func (s *FolderStore) File(id string) (models.StoredFile, []byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meta, ok := s.meta[id]
	return meta, s.files[id], ok
}
