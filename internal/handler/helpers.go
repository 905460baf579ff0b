package handler

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"regdocs/internal/config"
	"regdocs/internal/domain"
	models "regdocs/internal/domain/models/registry"
	registrySvc "regdocs/internal/domain/services/registry"
)

// sniffLen is how many leading bytes http.DetectContentType looks at
const sniffLen = 512

// listRequestFromQuery reads ?q=&sort=&dir= into a listing request
func listRequestFromQuery(r *http.Request) *registrySvc.ListDocumentsRequest {
	query := r.URL.Query()
	return &registrySvc.ListDocumentsRequest{
		Query:      query.Get("q"),
		SortBy:     registrySvc.SortColumn(query.Get("sort")),
		Descending: strings.EqualFold(query.Get("dir"), "desc"),
	}
}

// selectionFromQuery reads the cascading select state from the query string
func selectionFromQuery(r *http.Request) models.CategoryPath {
	query := r.URL.Query()
	return models.CategoryPath{
		Category:    query.Get("category"),
		Area:        query.Get("area"),
		Unit:        query.Get("unit"),
		Subcategory: query.Get("subcategory"),
	}
}

// submitForm is a parsed intake form. Close releases the uploaded file.
type submitForm struct {
	Request *registrySvc.SubmitDocumentRequest
	file    multipart.File
	form    *multipart.Form
}

func (f *submitForm) Close() {
	if f.file != nil {
		f.file.Close()
	}
	if f.form != nil {
		f.form.RemoveAll()
	}
}

// parseSubmitForm reads the multipart intake form shared by the upload page and the API.
// Anything that is not a PDF by content sniffing is rejected.
func parseSubmitForm(w http.ResponseWriter, r *http.Request) (*submitForm, error) {
	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadSize+(1<<20))
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, domain.NewValidationError("upload exceeds the %d MB limit", config.MaxUploadSize>>20)
		}
		return nil, domain.NewValidationError("invalid multipart form: %v", err)
	}

	issue, err := models.ParseDate(strings.TrimSpace(r.FormValue("issue_date")))
	if err != nil {
		return nil, domain.NewValidationError("issue_date must be formatted as YYYY-MM-DD")
	}
	expiry, err := models.ParseDate(strings.TrimSpace(r.FormValue("expiry_date")))
	if err != nil {
		return nil, domain.NewValidationError("expiry_date must be formatted as YYYY-MM-DD")
	}

	form := &submitForm{
		form: r.MultipartForm,
		Request: &registrySvc.SubmitDocumentRequest{
			Name:        r.FormValue("name"),
			Category:    r.FormValue("category"),
			Area:        r.FormValue("area"),
			Unit:        r.FormValue("unit"),
			Subcategory: r.FormValue("subcategory"),
			IssueDate:   issue,
			ExpiryDate:  expiry,
		},
	}

	file, header, err := r.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		// The service reports the missing file with the other required fields
		return form, nil
	}
	if err != nil {
		form.Close()
		return nil, domain.NewValidationError("invalid file: %v", err)
	}
	form.file = file

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(file, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		form.Close()
		return nil, domain.NewValidationError("unreadable file: %v", err)
	}
	head = head[:n]
	if n > 0 && http.DetectContentType(head) != models.PDFMimeType {
		form.Close()
		return nil, domain.NewValidationError("file must be a PDF")
	}

	form.Request.File = &registrySvc.UploadedFile{
		Filename: header.Filename,
		Size:     header.Size,
		Content:  io.MultiReader(bytes.NewReader(head), file),
	}
	return form, nil
}
