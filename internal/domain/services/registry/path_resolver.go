package registry

import (
	"context"
)

// HierarchyResolver maps a taxonomy path onto the drive folder tree
type HierarchyResolver interface {
	// ResolveFolder walks segments from the root folder, creating any missing
	// level, and returns the deepest folder's ID. Empty segments are skipped,
	// so an empty path resolves to the root itself.
	// Example: ("Health", "", "Clinic") -> ID of root/Health/Clinic
	ResolveFolder(ctx context.Context, segments ...string) (string, error)

	// RootFolderID returns the folder every chain starts from
	RootFolderID() string
}
