package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"adboard/internal/config"
	"adboard/internal/handler"
	"adboard/internal/middleware"
	"adboard/internal/repository/postgres"
	"adboard/internal/service/ads"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	logLevel := slog.LevelInfo
	if cfg.Environment == "dev" {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to migrate schema: %v", err)
		}
		logger.Info("schema migrated", "tables", []string{tables.Folders, tables.Ads})
	}

	// Repositories
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	adRepo := postgres.NewAdRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Engine
	validator := ads.NewTreeValidator(folderRepo)
	folderService := ads.NewFolderService(folderRepo, adRepo, txManager, validator, logger)
	adService := ads.NewAdService(adRepo, txManager, validator, logger)
	viewService := ads.NewViewService(folderRepo, adRepo, logger)

	// Handlers
	folderHandler := handler.NewFolderHandler(folderService, viewService, logger)
	adHandler := handler.NewAdHandler(adService, viewService, logger)
	viewHandler := handler.NewViewHandler(viewService, logger)

	logger.Info("services initialized")

	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("GET /health", viewHandler.HealthCheck)

	// CRUD API for folders
	mux.HandleFunc("GET /api/folders", folderHandler.ListFolders)
	mux.HandleFunc("POST /api/folders", folderHandler.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folderHandler.GetFolder)
	mux.HandleFunc("PATCH /api/folders/{id}", folderHandler.UpdateFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folderHandler.DeleteFolder)

	// CRUD API for ads
	mux.HandleFunc("GET /api/ads", adHandler.ListAds)
	mux.HandleFunc("POST /api/ads", adHandler.CreateAd)
	mux.HandleFunc("GET /api/ads/{id}", adHandler.GetAd)
	mux.HandleFunc("PATCH /api/ads/{id}", adHandler.UpdateAd)
	mux.HandleFunc("DELETE /api/ads/{id}", adHandler.DeleteAd)

	// Tree-browsing projections
	mux.HandleFunc("GET /api/folder_ad", viewHandler.DefaultFolderView)
	mux.HandleFunc("GET /api/folder_ad/{id}", viewHandler.FolderView)

	// Front end
	mux.HandleFunc("GET /", handler.AdCreatorPage)

	// Build middleware chain (applied in reverse order, they wrap each other)
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Origin", "Content-Type", "Accept"},
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
