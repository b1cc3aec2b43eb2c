package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the folder and ad tables if they do not exist yet.
// Soft delete is a first-class column, not a tombstone: rows are never removed.
func Migrate(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         UUID PRIMARY KEY,
				name       VARCHAR(100) NOT NULL,
				parent_id  UUID REFERENCES %s(id),
				is_active  BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)
		`, tables.Folders, tables.Folders),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_parent_idx ON %s (parent_id)
		`, tables.Folders, tables.Folders),
		fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id         UUID PRIMARY KEY,
				name       VARCHAR(100) NOT NULL,
				target_url TEXT NOT NULL,
				folder_id  UUID NOT NULL REFERENCES %s(id),
				is_active  BOOLEAN NOT NULL DEFAULT TRUE,
				created_at TIMESTAMPTZ NOT NULL,
				updated_at TIMESTAMPTZ NOT NULL
			)
		`, tables.Ads, tables.Folders),
		fmt.Sprintf(`
			CREATE INDEX IF NOT EXISTS %s_folder_idx ON %s (folder_id)
		`, tables.Ads, tables.Ads),
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate schema: %w", err)
		}
	}

	return nil
}
