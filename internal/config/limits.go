package config

const (
	// MaxDocumentNameLength is the maximum length for document names.
	MaxDocumentNameLength = 255

	// MaxFolderNameLength is the maximum length for one taxonomy level.
	// Each level becomes a drive folder name.
	MaxFolderNameLength = 255

	// MaxUploadSize bounds a single PDF upload.
	MaxUploadSize = 50 << 20

	// MaxSearchLength bounds the listing filter string.
	MaxSearchLength = 200
)
