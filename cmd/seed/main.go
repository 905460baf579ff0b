package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"regdocs/internal/config"
	registrySvc "regdocs/internal/domain/services/registry"
	"regdocs/internal/repository"
	registryStore "regdocs/internal/repository/registry"
	"regdocs/internal/seed"
	registryService "regdocs/internal/service/registry"
)

// openCategories builds the category service against the configured store.
// Tests replace it.
var openCategories = func(ctx context.Context, logger *slog.Logger) (registrySvc.CategoryService, func() error, error) {
	cfg := config.Load()

	stores, err := repository.SetupStores(ctx, cfg, nil, logger)
	if err != nil {
		return nil, nil, err
	}

	repo := registryStore.NewCategoryRepository(&registryStore.RepositoryConfig{
		Store:  stores.Tables,
		Sheets: registryStore.NewSheetNames(cfg.CategorySheet, cfg.MetadataSheet),
		Logger: logger,
	})
	resolver := registryService.NewHierarchyResolver(stores.Folders, cfg.RootFolderID, logger)
	return registryService.NewCategoryService(repo, resolver, logger), stores.Close, nil
}

var (
	taxonomyFile string
	dryRun       bool
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:           "seed",
	Short:         "Provision and inspect the regulation taxonomy",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Add every category path listed in a YAML file",
	Long: `Read a YAML list of category paths and add each one through category
management. Existing paths are reported as duplicates and skipped.

Example file:

  categories:
    - category: Health
      area: Clinic
    - category: Finance`,
	RunE: runTaxonomy,
}

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the taxonomy as a tree",
	RunE:  runTree,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log every seeded path")
	taxonomyCmd.Flags().StringVarP(&taxonomyFile, "file", "f", "taxonomy.yaml", "taxonomy YAML file")
	taxonomyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report what would be added without writing")
	rootCmd.AddCommand(taxonomyCmd)
	rootCmd.AddCommand(treeCmd)
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}

func runTaxonomy(cmd *cobra.Command, _ []string) error {
	logger := newLogger(cmd)

	tax, err := seed.LoadTaxonomy(taxonomyFile)
	if err != nil {
		return err
	}

	categories, closeStores, err := openCategories(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer closeStores()

	report, err := seed.NewTaxonomySeeder(categories, logger).Seed(cmd.Context(), tax, dryRun)

	out := cmd.OutOrStdout()
	for _, e := range report.Entries {
		fmt.Fprintf(out, "%-9s %s\n", e.Outcome, describe(e))
	}
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Fprintf(out, "\ndry run: %d to add, %d already present\n",
			report.Count(seed.OutcomePlanned), report.Count(seed.OutcomeDuplicate))
		return nil
	}
	fmt.Fprintf(out, "\n%d created, %d already present\n",
		report.Count(seed.OutcomeCreated), report.Count(seed.OutcomeDuplicate))
	return nil
}

func runTree(cmd *cobra.Command, _ []string) error {
	logger := newLogger(cmd)

	categories, closeStores, err := openCategories(cmd.Context(), logger)
	if err != nil {
		return err
	}
	defer closeStores()

	rows, err := categories.ListCategories(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), seed.BuildTree("Taxonomy", rows))
	return nil
}

func describe(e seed.Entry) string {
	s := e.Path.Category
	for _, level := range []string{e.Path.Area, e.Path.Unit, e.Path.Subcategory} {
		if level != "" {
			s += " / " + level
		}
	}
	return s
}

func main() {
	// Load .env file (silently ignore if it doesn't exist)
	_ = godotenv.Load()

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Printf("seed failed: %v", err)
		os.Exit(1)
	}
}
