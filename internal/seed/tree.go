package seed

import (
	"github.com/disiqueira/gotree/v3"

	models "regdocs/internal/domain/models/registry"
)

// TaxonomyTree renders category rows as category → area → unit → subcategory.
// Empty levels are skipped, so a row with only a category is a top-level node.
type TaxonomyTree struct {
	tree  gotree.Tree
	nodes map[string]gotree.Tree
}

// NewTaxonomyTree creates an empty tree with the given root label
func NewTaxonomyTree(rootLabel string) *TaxonomyTree {
	return &TaxonomyTree{tree: gotree.New(rootLabel), nodes: make(map[string]gotree.Tree)}
}

// Insert adds the path of row, reusing nodes already present
func (t *TaxonomyTree) Insert(row models.CategoryRow) {
	node := t.tree
	key := ""
	for _, segment := range row.Segments() {
		if segment == "" {
			continue
		}
		key += "\x00" + segment
		child, ok := t.nodes[key]
		if !ok {
			child = node.Add(segment)
			t.nodes[key] = child
		}
		node = child
	}
}

// Render returns the tree as text
func (t *TaxonomyTree) Render() string {
	return t.tree.Print()
}

// BuildTree renders every row under rootLabel
func BuildTree(rootLabel string, rows []models.CategoryRow) string {
	t := NewTaxonomyTree(rootLabel)
	for _, row := range rows {
		t.Insert(row)
	}
	return t.Render()
}
