package registry

// CategoryColumns is the positional width of a row in the category sheet:
// category, area, unit, subcategory, folder_id.
const CategoryColumns = 5

// CategoryHeader is the header row of a fresh category sheet.
var CategoryHeader = []string{"Kategori", "Bidang", "Unit", "Subkategori", "Folder ID"}

// CategoryPath is one taxonomy path. Only Category is required; the deeper
// levels may be left empty.
type CategoryPath struct {
	Category    string `json:"category" yaml:"category"`
	Area        string `json:"area,omitempty" yaml:"area,omitempty"`
	Unit        string `json:"unit,omitempty" yaml:"unit,omitempty"`
	Subcategory string `json:"subcategory,omitempty" yaml:"subcategory,omitempty"`
}

// Segments returns the path as an ordered list of folder names, root first.
// Empty levels are kept so callers can decide how to treat them.
func (p CategoryPath) Segments() []string {
	return []string{p.Category, p.Area, p.Unit, p.Subcategory}
}

// CategoryRow is one row of the category sheet: a taxonomy path and the
// drive folder it was provisioned into.
type CategoryRow struct {
	CategoryPath
	FolderID string `json:"folder_id"`
}

// Matches reports whether the row has exactly the given taxonomy path.
// Comparison is case-sensitive on all four levels.
func (r CategoryRow) Matches(p CategoryPath) bool {
	return r.CategoryPath == p
}

// Cells returns the row in sheet column order.
func (r CategoryRow) Cells() []string {
	return []string{r.Category, r.Area, r.Unit, r.Subcategory, r.FolderID}
}

// CategoryRowFromCells builds a CategoryRow from a ragged sheet row.
// Missing trailing cells become empty strings; extra cells are dropped.
func CategoryRowFromCells(cells []string) CategoryRow {
	c := padCells(cells, CategoryColumns)
	return CategoryRow{
		CategoryPath: CategoryPath{
			Category:    c[0],
			Area:        c[1],
			Unit:        c[2],
			Subcategory: c[3],
		},
		FolderID: c[4],
	}
}

// padCells returns exactly n cells, padding with empty strings or truncating.
func padCells(cells []string, n int) []string {
	out := make([]string, n)
	copy(out, cells)
	return out
}
