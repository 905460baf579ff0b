package main

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"regdocs/internal/auth"
	"regdocs/internal/config"
	"regdocs/internal/handler"
	"regdocs/internal/metrics"
	"regdocs/internal/middleware"
	"regdocs/internal/repository"
	registryStore "regdocs/internal/repository/registry"
	registryService "regdocs/internal/service/registry"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging
	logger, closeLog, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to set up logging: %v", err)
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"store", cfg.StoreBackend,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.NewMetrics()

	// Open stores
	stores, err := repository.SetupStores(ctx, cfg, m, logger)
	if err != nil {
		log.Fatalf("Failed to set up stores: %v", err)
	}
	defer stores.Close()

	// Create repositories
	repoConfig := &registryStore.RepositoryConfig{
		Store:  stores.Tables,
		Sheets: registryStore.NewSheetNames(cfg.CategorySheet, cfg.MetadataSheet),
		Logger: logger,
	}
	categoryRepo := registryStore.NewCategoryRepository(repoConfig)
	docRepo := registryStore.NewDocumentRepository(repoConfig)

	// Session signing
	secret := []byte(cfg.SessionSecret)
	if len(secret) == 0 {
		secret = []byte(rand.Text())
		logger.Warn("SESSION_SECRET not set, using a random secret; sessions end on restart")
	}
	signer, err := auth.NewHMACSigner(secret, logger)
	if err != nil {
		log.Fatalf("Failed to create session signer: %v", err)
	}

	// Create services
	resolver := registryService.NewHierarchyResolver(stores.Folders, cfg.RootFolderID, logger)
	docService := registryService.NewDocumentService(docRepo, stores.Folders, resolver, logger)
	categoryService := registryService.NewCategoryService(categoryRepo, resolver, logger)
	accessService := registryService.NewAccessService(
		registryService.RolePasswords{Admin: cfg.AdminPassword, Visitor: cfg.VisitorPassword},
		stores.Sessions,
		signer,
		logger,
	)

	// Create handlers
	secureCookie := cfg.Environment == "prod"
	pageHandler, err := handler.NewPageHandler(docService, categoryService, accessService, m, secureCookie, logger)
	if err != nil {
		log.Fatalf("Failed to load page templates: %v", err)
	}

	router := &handler.Router{
		Pages:      pageHandler,
		Documents:  handler.NewDocumentHandler(docService, logger),
		Categories: handler.NewCategoryHandler(categoryService, logger),
		Sessions:   handler.NewSessionHandler(accessService, m, secureCookie, logger),
		Auth:       middleware.NewSessionMiddleware(accessService, logger),
		Metrics:    m,
	}

	logger.Info("services initialized")

	// Build middleware chain
	// Order: CORS → Recovery → Session → Routes
	var h http.Handler = router.Handler()
	h = middleware.Recovery(logger)(h)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  60 * time.Second, // uploads up to the size limit
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown failed", "error", err)
		}
	}()

	// Start server
	logger.Info("server listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Failed to start server: %v", err)
	}
	logger.Info("server stopped")
}
