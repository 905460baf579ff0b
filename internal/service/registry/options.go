package registry

import (
	"slices"

	models "regdocs/internal/domain/models/registry"
	registrySvc "regdocs/internal/domain/services/registry"
)

// BuildCascadeOptions derives the choices for each select from the category rows.
// A deeper level only lists rows whose preceding levels equal the selection,
// empty levels included.
func BuildCascadeOptions(rows []models.CategoryRow, sel models.CategoryPath) *registrySvc.CascadeOptions {
	var categories, areas, units, subcategories []string

	for _, row := range rows {
		categories = append(categories, row.Category)
		if row.Category != sel.Category {
			continue
		}
		areas = append(areas, row.Area)
		if row.Area != sel.Area {
			continue
		}
		units = append(units, row.Unit)
		if row.Unit != sel.Unit {
			continue
		}
		subcategories = append(subcategories, row.Subcategory)
	}

	return &registrySvc.CascadeOptions{
		Categories:    distinctSorted(categories),
		Areas:         distinctSorted(areas),
		Units:         distinctSorted(units),
		Subcategories: distinctSorted(subcategories),
	}
}

// distinctSorted drops empty values and duplicates. Never returns nil.
func distinctSorted(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}
