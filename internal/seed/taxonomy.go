package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	models "regdocs/internal/domain/models/registry"
	registrySvc "regdocs/internal/domain/services/registry"
)

// Taxonomy is the seed file format:
//
//	categories:
//	  - category: Health
//	    area: Clinic
//	  - category: Finance
type Taxonomy struct {
	Categories []models.CategoryPath `yaml:"categories"`
}

// LoadTaxonomy reads a taxonomy YAML file
func LoadTaxonomy(path string) (*Taxonomy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return ParseTaxonomy(f)
}

// ParseTaxonomy decodes a taxonomy document. Unknown keys are rejected.
func ParseTaxonomy(r io.Reader) (*Taxonomy, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var t Taxonomy
	if err := dec.Decode(&t); err != nil {
		if err == io.EOF {
			return &t, nil
		}
		return nil, fmt.Errorf("failed to parse taxonomy: %w", err)
	}
	return &t, nil
}

// Outcome is what happened to one seeded path
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeDuplicate Outcome = "duplicate"
	OutcomePlanned   Outcome = "planned"
)

// Entry reports one seeded path
type Entry struct {
	Path    models.CategoryPath
	Outcome Outcome
	Message string
}

// Report summarizes a seeding run
type Report struct {
	Entries []Entry
}

// Count returns how many entries had the given outcome
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, e := range r.Entries {
		if e.Outcome == o {
			n++
		}
	}
	return n
}

// TaxonomySeeder runs taxonomy paths through category management
type TaxonomySeeder struct {
	categories registrySvc.CategoryService
	logger     *slog.Logger
}

// NewTaxonomySeeder creates a new taxonomy seeder
func NewTaxonomySeeder(categories registrySvc.CategoryService, logger *slog.Logger) *TaxonomySeeder {
	return &TaxonomySeeder{
		categories: categories,
		logger:     logger,
	}
}

// Seed adds every path in order. Duplicates are reported, not fatal; the
// first error stops the run and the report covers what was done so far.
// With dryRun set nothing is written and paths missing from the sheet are
// reported as planned.
func (s *TaxonomySeeder) Seed(ctx context.Context, t *Taxonomy, dryRun bool) (*Report, error) {
	report := &Report{}

	if dryRun {
		return s.plan(ctx, t, report)
	}

	for _, path := range t.Categories {
		result, err := s.categories.AddCategory(ctx, &registrySvc.AddCategoryRequest{
			Category:    path.Category,
			Area:        path.Area,
			Unit:        path.Unit,
			Subcategory: path.Subcategory,
		})
		if err != nil {
			return report, fmt.Errorf("seed %q: %w", path.Category, err)
		}

		outcome := OutcomeCreated
		if result.Status == registrySvc.CategoryDuplicate {
			outcome = OutcomeDuplicate
		}
		report.Entries = append(report.Entries, Entry{Path: path, Outcome: outcome, Message: result.Message})
		s.logger.Debug("taxonomy path seeded", "category", path.Category, "outcome", outcome)
	}

	s.logger.Info("taxonomy seeded",
		"created", report.Count(OutcomeCreated),
		"duplicates", report.Count(OutcomeDuplicate),
	)
	return report, nil
}

func (s *TaxonomySeeder) plan(ctx context.Context, t *Taxonomy, report *Report) (*Report, error) {
	existing, err := s.categories.ListCategories(ctx)
	if err != nil {
		return report, err
	}

	seen := make(map[models.CategoryPath]bool, len(existing))
	for _, row := range existing {
		seen[row.CategoryPath] = true
	}

	for _, path := range t.Categories {
		if path.Category == "" {
			return report, fmt.Errorf("seed entry %d: category is required", len(report.Entries)+1)
		}
		outcome := OutcomePlanned
		if seen[path] {
			outcome = OutcomeDuplicate
		}
		seen[path] = true
		report.Entries = append(report.Entries, Entry{Path: path, Outcome: outcome})
	}
	return report, nil
}
