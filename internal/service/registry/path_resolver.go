package registry

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"regdocs/internal/config"
	"regdocs/internal/domain"
	registryRepo "regdocs/internal/domain/repositories/registry"
	registrySvc "regdocs/internal/domain/services/registry"
)

type hierarchyResolver struct {
	folders registryRepo.FolderStore
	rootID  string
	logger  *slog.Logger
}

// NewHierarchyResolver creates a resolver rooted at rootID
func NewHierarchyResolver(
	folders registryRepo.FolderStore,
	rootID string,
	logger *slog.Logger,
) registrySvc.HierarchyResolver {
	return &hierarchyResolver{
		folders: folders,
		rootID:  rootID,
		logger:  logger,
	}
}

func (r *hierarchyResolver) RootFolderID() string {
	return r.rootID
}

// ResolveFolder resolves a taxonomy path to a folder ID, creating folders if needed.
// Concurrent calls for the same missing path may create duplicate siblings.
func (r *hierarchyResolver) ResolveFolder(ctx context.Context, segments ...string) (string, error) {
	// Validate every level before touching the drive
	for _, segment := range segments {
		if err := validateFolderName(segment); err != nil {
			return "", err
		}
	}

	currentID := r.rootID
	for _, segment := range segments {
		// Empty optional level: stay on the parent
		if segment == "" {
			continue
		}

		folder, err := r.folders.FindFolder(ctx, currentID, segment)
		if err != nil {
			return "", domain.WrapStore("find folder", err)
		}

		if folder == nil {
			folder, err = r.folders.CreateFolder(ctx, currentID, segment)
			if err != nil {
				return "", domain.WrapStore("create folder", err)
			}
			r.logger.Info("folder created",
				"id", folder.ID,
				"name", segment,
				"parent_id", currentID,
			)
		}

		// Move to next level
		currentID = folder.ID
	}

	return currentID, nil
}

func validateFolderName(name string) error {
	if utf8.RuneCountInString(name) > config.MaxFolderNameLength {
		return fmt.Errorf("%w: folder name '%s' exceeds maximum length of %d",
			domain.ErrValidation, truncate(name, 32), config.MaxFolderNameLength)
	}
	if strings.ContainsAny(name, "\r\n") {
		return fmt.Errorf("%w: folder name cannot contain line breaks", domain.ErrValidation)
	}
	return nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
