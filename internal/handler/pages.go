package handler

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"regdocs/internal/domain"
	models "regdocs/internal/domain/models/registry"
	registrySvc "regdocs/internal/domain/services/registry"
	"regdocs/internal/httputil"
	"regdocs/internal/metrics"
)

//go:embed templates/*.html
var templateFS embed.FS

// newOption is the select value that switches a level to free-text entry
const newOption = "__new__"

var pageNames = []string{"login", "documents", "upload", "categories"}

// pageData is what every page template receives
type pageData struct {
	Title   string
	Active  string
	Session *models.Session
	Error   string
	Warning string
	Info    string
	Success string
	Body    any
}

type sortOption struct {
	Value registrySvc.SortColumn
	Label string
}

var sortOptions = []sortOption{
	{registrySvc.SortByName, "Name"},
	{registrySvc.SortByCategory, "Category"},
	{registrySvc.SortByIssueDate, "Issue date"},
	{registrySvc.SortByExpiryDate, "Expiry date"},
}

type loginBody struct {
	Role string
}

type documentsBody struct {
	Query      string
	SortBy     registrySvc.SortColumn
	Descending bool
	Columns    []sortOption
	Listing    *registrySvc.DocumentListing
}

// levelField is one cascading select
type levelField struct {
	Key      string
	Label    string
	Options  []string
	Selected string
	Required bool
	AllowNew bool
	New      bool
	NewValue string
}

type uploadBody struct {
	Allowed    bool
	Levels     []levelField
	Selection  models.CategoryPath
	Name       string
	IssueDate  string
	ExpiryDate string
}

type categoriesBody struct {
	Allowed   bool
	Levels    []levelField
	Selection models.CategoryPath
}

// PageHandler serves the HTML pages
type PageHandler struct {
	docService      registrySvc.DocumentService
	categoryService registrySvc.CategoryService
	accessService   registrySvc.AccessService
	metrics         *metrics.Metrics
	secureCookie    bool
	templates       map[string]*template.Template
	logger          *slog.Logger
	now             func() time.Time
}

// NewPageHandler parses the embedded templates and creates a page handler
func NewPageHandler(
	docService registrySvc.DocumentService,
	categoryService registrySvc.CategoryService,
	accessService registrySvc.AccessService,
	m *metrics.Metrics,
	secureCookie bool,
	logger *slog.Logger,
) (*PageHandler, error) {
	funcs := template.FuncMap{
		"newOption": func() string { return newOption },
	}

	templates := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s template: %w", name, err)
		}
		templates[name] = tmpl
	}

	return &PageHandler{
		docService:      docService,
		categoryService: categoryService,
		accessService:   accessService,
		metrics:         m,
		secureCookie:    secureCookie,
		templates:       templates,
		logger:          logger,
		now:             time.Now,
	}, nil
}

// Root sends signed-in users to the document list and everyone else to sign-in
// GET /
func (h *PageHandler) Root(w http.ResponseWriter, r *http.Request) {
	if httputil.GetSession(r) == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/documents", http.StatusSeeOther)
}

// LoginPage shows the role choice and password form
// GET /login
func (h *PageHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if httputil.GetSession(r) != nil {
		http.Redirect(w, r, "/documents", http.StatusSeeOther)
		return
	}
	h.render(w, http.StatusOK, "login", &pageData{Title: "Sign in", Body: loginBody{}})
}

// Login checks the role password and sets the session cookie
// POST /login
func (h *PageHandler) Login(w http.ResponseWriter, r *http.Request) {
	req := &registrySvc.LoginRequest{
		Role:     models.Role(r.PostFormValue("role")),
		Password: r.PostFormValue("password"),
	}

	result, err := h.accessService.Login(r.Context(), req)
	recordLogin(h.metrics, string(req.Role), err)
	if err != nil {
		h.render(w, domain.StatusFor(err), "login", &pageData{
			Title: "Sign in",
			Error: inlineMessage(err),
			Body:  loginBody{Role: string(req.Role)},
		})
		return
	}

	httputil.SetSessionCookie(w, result.Token, h.secureCookie)
	http.Redirect(w, r, "/documents", http.StatusSeeOther)
}

// Logout clears the session
// POST /logout
func (h *PageHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if session := httputil.GetSession(r); session != nil {
		if err := h.accessService.Logout(r.Context(), session.ID); err != nil {
			h.logger.Error("logout failed", "session_id", session.ID, "error", err)
		}
	}
	httputil.ClearSessionCookie(w, h.secureCookie)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// Documents shows the searchable, sortable document table
// GET /documents?q=&sort=&dir=
func (h *PageHandler) Documents(w http.ResponseWriter, r *http.Request) {
	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	req := listRequestFromQuery(r)
	if req.SortBy == "" {
		req.SortBy = registrySvc.DefaultSortColumn
	}
	body := documentsBody{
		Query:      req.Query,
		SortBy:     req.SortBy,
		Descending: req.Descending,
		Columns:    sortOptions,
	}
	data := &pageData{Title: "Regulations", Active: "documents", Session: session, Body: &body}

	listing, err := h.docService.ListDocuments(r.Context(), req)
	switch {
	case err != nil:
		data.Error = inlineMessage(err)
	case listing.Total == 0:
		data.Info = "No regulations have been uploaded yet."
	default:
		body.Listing = listing
	}

	h.render(w, http.StatusOK, "documents", data)
}

// UploadPage shows the intake form with cascading category selects
// GET /upload?category=&area=&unit=&subcategory=&name=&issue_date=&expiry_date=
func (h *PageHandler) UploadPage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	data := &pageData{Title: "Upload regulation", Active: "upload", Session: session}
	if !session.IsAdmin() {
		data.Warning = "Only admins can upload regulations."
		data.Body = uploadBody{}
		h.render(w, http.StatusForbidden, "upload", data)
		return
	}

	today := h.now().Format(models.DateLayout)
	body, err := h.uploadBody(r, selectionFromQuery(r))
	if err != nil {
		data.Error = inlineMessage(err)
	}
	// A select change resubmits the whole form; keep what was typed
	query := r.URL.Query()
	body.Name = query.Get("name")
	body.IssueDate = dateOr(query.Get("issue_date"), today)
	body.ExpiryDate = dateOr(query.Get("expiry_date"), today)
	data.Body = body

	h.render(w, http.StatusOK, "upload", data)
}

// Upload validates, files and records a new document
// POST /upload
func (h *PageHandler) Upload(w http.ResponseWriter, r *http.Request) {
	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	data := &pageData{Title: "Upload regulation", Active: "upload", Session: session}
	if !session.IsAdmin() {
		data.Warning = "Only admins can upload regulations."
		data.Body = uploadBody{}
		h.render(w, http.StatusForbidden, "upload", data)
		return
	}

	status := http.StatusOK
	var submitted *registrySvc.SubmitDocumentRequest

	form, err := parseSubmitForm(w, r)
	if err == nil {
		defer form.Close()
		submitted = form.Request
		var row *models.DocumentRow
		row, err = h.docService.SubmitDocument(r.Context(), form.Request)
		if err == nil {
			data.Success = fmt.Sprintf("Regulation %q uploaded.", row.Name)
		}
	}
	if err != nil {
		status = domain.StatusFor(err)
		data.Error = inlineMessage(err)
	}

	sel := models.CategoryPath{
		Category:    r.FormValue("category"),
		Area:        r.FormValue("area"),
		Unit:        r.FormValue("unit"),
		Subcategory: r.FormValue("subcategory"),
	}
	body, optsErr := h.uploadBody(r, sel)
	if optsErr != nil && data.Error == "" {
		data.Error = inlineMessage(optsErr)
	}

	today := h.now().Format(models.DateLayout)
	body.IssueDate, body.ExpiryDate = today, today
	if submitted != nil && data.Success == "" {
		// Keep what the user typed so a failed submission can be retried
		body.Name = submitted.Name
		if d := models.FormatDate(submitted.IssueDate); d != "" {
			body.IssueDate = d
		}
		if d := models.FormatDate(submitted.ExpiryDate); d != "" {
			body.ExpiryDate = d
		}
	}
	data.Body = body

	h.render(w, status, "upload", data)
}

func (h *PageHandler) uploadBody(r *http.Request, sel models.CategoryPath) (uploadBody, error) {
	opts, err := h.categoryService.CategoryOptions(r.Context(), sel)
	if err != nil {
		return uploadBody{Allowed: true}, err
	}
	sel = clampSelection(sel, opts)

	return uploadBody{
		Allowed:   true,
		Selection: sel,
		Levels: []levelField{
			{Key: "category", Label: "Category", Options: opts.Categories, Selected: sel.Category, Required: true},
			{Key: "area", Label: "Service area", Options: opts.Areas, Selected: sel.Area},
			{Key: "unit", Label: "Service unit", Options: opts.Units, Selected: sel.Unit},
			{Key: "subcategory", Label: "Subcategory", Options: opts.Subcategories, Selected: sel.Subcategory},
		},
	}, nil
}

// CategoriesPage shows the taxonomy form
// GET /categories?category=&new_category=&area=...
func (h *PageHandler) CategoriesPage(w http.ResponseWriter, r *http.Request) {
	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	data := &pageData{Title: "Manage categories", Active: "categories", Session: session}
	if !session.IsAdmin() {
		data.Warning = "Only admins can manage categories."
		data.Body = categoriesBody{}
		h.render(w, http.StatusForbidden, "categories", data)
		return
	}

	body, err := h.categoriesBody(r, r.URL.Query().Get)
	if err != nil {
		data.Error = inlineMessage(err)
	}
	data.Body = body

	h.render(w, http.StatusOK, "categories", data)
}

// AddCategory provisions and records a taxonomy path
// POST /categories
func (h *PageHandler) AddCategory(w http.ResponseWriter, r *http.Request) {
	session, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	data := &pageData{Title: "Manage categories", Active: "categories", Session: session}
	if !session.IsAdmin() {
		data.Warning = "Only admins can manage categories."
		data.Body = categoriesBody{}
		h.render(w, http.StatusForbidden, "categories", data)
		return
	}

	status := http.StatusOK
	levels, sel := categoryLevels(r.PostFormValue)

	result, err := h.addCategory(r, levels, sel)
	switch {
	case err != nil:
		status = domain.StatusFor(err)
		data.Error = inlineMessage(err)
	case result.Status == registrySvc.CategoryDuplicate:
		data.Warning = result.Message
	default:
		data.Success = result.Message
	}

	// Keep the typed form after a failure, show the saved path otherwise
	get := r.PostFormValue
	if err == nil {
		get = selectionValue(sel)
	}
	body, optsErr := h.categoriesBody(r, get)
	if optsErr != nil && data.Error == "" {
		data.Error = inlineMessage(optsErr)
	}
	data.Body = body

	h.render(w, status, "categories", data)
}

func (h *PageHandler) addCategory(r *http.Request, levels []levelField, sel models.CategoryPath) (*registrySvc.AddCategoryResult, error) {
	for _, level := range levels {
		if level.New && level.Selected == "" {
			return nil, domain.NewValidationError("enter a name for the new %s", strings.ToLower(level.Label))
		}
	}
	if slices.Contains(sel.Segments(), newOption) {
		return nil, domain.NewValidationError("%q is not a valid name", newOption)
	}

	return h.categoryService.AddCategory(r.Context(), &registrySvc.AddCategoryRequest{
		Category:    sel.Category,
		Area:        sel.Area,
		Unit:        sel.Unit,
		Subcategory: sel.Subcategory,
	})
}

var (
	levelKeys   = []string{"category", "area", "unit", "subcategory"}
	levelLabels = []string{"Category", "Service area", "Service unit", "Subcategory"}
)

// categoryLevels reads the four taxonomy levels of the category form. A level
// set to "+ new" takes its name from the new_<key> text field.
func categoryLevels(get func(string) string) ([]levelField, models.CategoryPath) {
	levels := make([]levelField, len(levelKeys))
	values := make([]string, len(levelKeys))
	for i, key := range levelKeys {
		levels[i] = levelField{Key: key, Label: levelLabels[i], AllowNew: true, Required: i == 0}
		value := get(key)
		if value == newOption {
			levels[i].New = true
			levels[i].NewValue = get("new_" + key)
			value = strings.TrimSpace(levels[i].NewValue)
		}
		levels[i].Selected = value
		values[i] = value
	}
	return levels, models.CategoryPath{Category: values[0], Area: values[1], Unit: values[2], Subcategory: values[3]}
}

// selectionValue reads a resolved path back as form values
func selectionValue(sel models.CategoryPath) func(string) string {
	return func(key string) string {
		switch key {
		case "category":
			return sel.Category
		case "area":
			return sel.Area
		case "unit":
			return sel.Unit
		case "subcategory":
			return sel.Subcategory
		}
		return ""
	}
}

// categoriesBody builds the category form. Every level offers "+ new" with a
// free-text name; deeper levels list what already exists under the selection.
func (h *PageHandler) categoriesBody(r *http.Request, get func(string) string) (categoriesBody, error) {
	levels, sel := categoryLevels(get)
	body := categoriesBody{Allowed: true, Levels: levels, Selection: sel}

	opts, err := h.categoryService.CategoryOptions(r.Context(), sel)
	if err != nil {
		return body, err
	}
	body.Levels[0].Options = opts.Categories
	body.Levels[1].Options = opts.Areas
	body.Levels[2].Options = opts.Units
	body.Levels[3].Options = opts.Subcategories
	return body, nil
}

// dateOr returns s when it is a valid date, fallback otherwise
func dateOr(s, fallback string) string {
	if t, err := models.ParseDate(strings.TrimSpace(s)); err == nil && !t.IsZero() {
		return models.FormatDate(t)
	}
	return fallback
}

// clampSelection clears selected levels that are no longer offered, e.g.
// after the category changed
func clampSelection(sel models.CategoryPath, opts *registrySvc.CascadeOptions) models.CategoryPath {
	if !slices.Contains(opts.Categories, sel.Category) {
		return models.CategoryPath{}
	}
	if !slices.Contains(opts.Areas, sel.Area) {
		sel.Area = ""
	}
	if !slices.Contains(opts.Units, sel.Unit) {
		sel.Unit = ""
	}
	if !slices.Contains(opts.Subcategories, sel.Subcategory) {
		sel.Subcategory = ""
	}
	return sel
}

// requireSession redirects to sign-in when there is no session
func (h *PageHandler) requireSession(w http.ResponseWriter, r *http.Request) (*models.Session, bool) {
	session := httputil.GetSession(r)
	if session == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return nil, false
	}
	return session, true
}

// render executes the page into a buffer first so a template error never
// produces a half-written page
func (h *PageHandler) render(w http.ResponseWriter, status int, name string, data *pageData) {
	tmpl, ok := h.templates[name]
	if !ok {
		handleError(w, errors.New("unknown page "+name))
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		h.logger.Error("template execution failed", "page", name, "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
