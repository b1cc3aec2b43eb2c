// Command seed populates the store from a YAML fixture describing the folder
// tree and its ads. Intended for dev environments; it refuses nothing that
// the engine itself would accept.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"adboard/internal/config"
	"adboard/internal/domain/services"
	"adboard/internal/repository/postgres"
	"adboard/internal/service/ads"
)

type seedAd struct {
	Name      string `yaml:"name"`
	TargetURL string `yaml:"target_url"`
}

type seedFolder struct {
	Name    string       `yaml:"name"`
	Folders []seedFolder `yaml:"folders"`
	Ads     []seedAd     `yaml:"ads"`
}

type seedFile struct {
	Root seedFolder `yaml:"root"`
}

func main() {
	file := flag.String("file", "seed.yaml", "path to the seed fixture")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read seed file: %v", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("Failed to parse seed file: %v", err)
	}
	if seed.Root.Name == "" {
		log.Fatalf("Seed file must define a root folder")
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)
	if err := postgres.Migrate(ctx, pool, tables); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	repoConfig := &postgres.RepositoryConfig{Pool: pool, Tables: tables, Logger: logger}
	folderRepo := postgres.NewFolderRepository(repoConfig)
	adRepo := postgres.NewAdRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	validator := ads.NewTreeValidator(folderRepo)
	folderService := ads.NewFolderService(folderRepo, adRepo, txManager, validator, logger)
	adService := ads.NewAdService(adRepo, txManager, validator, logger)

	if err := plant(ctx, folderService, adService, seed.Root, nil); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	logger.Info("seed complete", "file", *file)
}

// plant creates one folder and then descends into its ads and subfolders.
func plant(ctx context.Context, folders services.FolderService, adsSvc services.AdService, node seedFolder, parent *string) error {
	folder, err := folders.CreateFolder(ctx, &services.CreateFolderRequest{
		Name:   node.Name,
		Parent: parent,
	})
	if err != nil {
		return fmt.Errorf("create folder %q: %w", node.Name, err)
	}

	for _, ad := range node.Ads {
		if _, err := adsSvc.CreateAd(ctx, &services.CreateAdRequest{
			Name:      ad.Name,
			TargetURL: ad.TargetURL,
			Folder:    folder.ID,
		}); err != nil {
			return fmt.Errorf("create ad %q: %w", ad.Name, err)
		}
	}

	for _, child := range node.Folders {
		if err := plant(ctx, folders, adsSvc, child, &folder.ID); err != nil {
			return err
		}
	}

	return nil
}
