package registry

// FolderMimeType marks a drive object as a folder.
const FolderMimeType = "application/vnd.google-apps.folder"

// PDFMimeType is the media type every uploaded document is stored with.
const PDFMimeType = "application/pdf"

// Folder is a node in the drive folder tree.
type Folder struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id"`
}

// StoredFile is a binary object uploaded into a folder.
type StoredFile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id"`
	MimeType string `json:"mime_type"`
}
