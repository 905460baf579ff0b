package repository

import (
	"context"
	"fmt"
	"log/slog"

	"regdocs/internal/config"
	models "regdocs/internal/domain/models/registry"
	registryRepo "regdocs/internal/domain/repositories/registry"
	"regdocs/internal/metrics"
	"regdocs/internal/repository/google"
	"regdocs/internal/repository/memory"
	redisStore "regdocs/internal/repository/redis"
)

// Stores bundles the backends the registry runs on
type Stores struct {
	Tables   registryRepo.TableStore
	Folders  registryRepo.FolderStore
	Sessions registryRepo.SessionStore
	closers  []func() error
}

// Close releases every backend connection
func (s *Stores) Close() error {
	var firstErr error
	for _, c := range s.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SetupStores opens the table, folder and session stores selected by cfg.
// The table and folder stores are wrapped with metrics when m is not nil.
func SetupStores(ctx context.Context, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) (*Stores, error) {
	stores := &Stores{}

	switch cfg.StoreBackend {
	case config.StoreGoogle:
		clients, err := google.NewClients(ctx, cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create google clients: %w", err)
		}
		limiter := google.NewRateLimiter(google.RateLimitConfig{
			RequestsPerSecond: cfg.GoogleRPS,
			BurstSize:         cfg.GoogleBurst,
		})
		stores.Tables = google.NewSheetStore(clients.Sheets, cfg.SpreadsheetID, limiter)
		stores.Folders = google.NewDriveStore(clients.Drive, limiter)
		logger.Info("google store ready",
			"spreadsheet_id", cfg.SpreadsheetID,
			"root_folder_id", cfg.RootFolderID,
			"rps", cfg.GoogleRPS,
		)
	case config.StoreMemory:
		tables := memory.NewTableStore()
		tables.Seed(cfg.CategorySheet, models.CategoryHeader)
		tables.Seed(cfg.MetadataSheet, models.DocumentHeader)
		folders := memory.NewFolderStore()
		folders.AddFolder(models.Folder{ID: cfg.RootFolderID, Name: "root"})
		stores.Tables = tables
		stores.Folders = folders
		logger.Warn("using in-memory store, nothing is persisted")
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}

	stores.Tables = metrics.InstrumentTableStore(stores.Tables, m)
	stores.Folders = metrics.InstrumentFolderStore(stores.Folders, m)

	if cfg.RedisURL != "" {
		client, err := redisStore.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		stores.Sessions = redisStore.NewSessionStore(client)
		stores.closers = append(stores.closers, client.Close)
		logger.Info("redis session store connected")
	} else {
		stores.Sessions = memory.NewSessionStore()
	}

	return stores, nil
}
