package registry

import "io"

// UploadedFile represents a PDF submitted through the intake form
type UploadedFile struct {
	Filename string
	Size     int64
	Content  io.Reader
}

// Empty reports whether no file (or a zero-byte file) was submitted.
func (f *UploadedFile) Empty() bool {
	return f == nil || f.Content == nil || f.Size <= 0
}
