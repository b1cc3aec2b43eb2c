package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"adboard/internal/domain"
	"adboard/internal/domain/models"
	"adboard/internal/domain/repositories"
)

// PostgresAdRepository implements the AdRepository interface
type PostgresAdRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewAdRepository creates a new ad repository
func NewAdRepository(config *RepositoryConfig) repositories.AdRepository {
	return &PostgresAdRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const adColumns = "id, name, target_url, folder_id, is_active, created_at, updated_at"

func scanAd(row interface{ Scan(dest ...any) error }, ad *models.Ad) error {
	return row.Scan(
		&ad.ID,
		&ad.Name,
		&ad.TargetURL,
		&ad.FolderID,
		&ad.IsActive,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)
}

// Create inserts a new ad, assigning its id and timestamps
func (r *PostgresAdRepository) Create(ctx context.Context, ad *models.Ad) error {
	if ad.ID == "" {
		ad.ID = uuid.New().String()
	}
	now := time.Now()
	ad.CreatedAt = now
	ad.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, target_url, folder_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Ads)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		ad.ID,
		ad.Name,
		ad.TargetURL,
		ad.FolderID,
		ad.IsActive,
		ad.CreatedAt,
		ad.UpdatedAt,
	)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("ad folder %s: %w", ad.FolderID, domain.ErrNotFound)
		}
		return fmt.Errorf("create ad: %w", err)
	}

	return nil
}

// GetActive retrieves an active ad; inactive ads are reported as absent
func (r *PostgresAdRepository) GetActive(ctx context.Context, id string) (*models.Ad, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1 AND is_active
	`, adColumns, r.tables.Ads)

	var ad models.Ad
	err := scanAd(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id), &ad)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Entity: "ad", ID: id}
		}
		return nil, fmt.Errorf("get active ad: %w", err)
	}

	return &ad, nil
}

// Update persists name, target URL and folder changes
func (r *PostgresAdRepository) Update(ctx context.Context, ad *models.Ad) error {
	ad.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE %s SET name = $1, target_url = $2, folder_id = $3, updated_at = $4
		WHERE id = $5
	`, r.tables.Ads)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		ad.Name,
		ad.TargetURL,
		ad.FolderID,
		ad.UpdatedAt,
		ad.ID,
	)
	if err != nil {
		return fmt.Errorf("update ad: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "ad", ID: ad.ID}
	}

	return nil
}

// SetActive flips the active flag on one ad
func (r *PostgresAdRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := fmt.Sprintf(`
		UPDATE %s SET is_active = $1, updated_at = $2 WHERE id = $3
	`, r.tables.Ads)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, active, time.Now(), id)
	if err != nil {
		return fmt.Errorf("set ad active: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "ad", ID: id}
	}

	return nil
}

// ListActive lists active ads ordered by name, then id
func (r *PostgresAdRepository) ListActive(ctx context.Context) ([]models.Ad, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE is_active ORDER BY name ASC, id ASC
	`, adColumns, r.tables.Ads)

	return r.queryAds(ctx, query)
}

// ListActiveByFolder lists the active ads of one folder, ordered by name, then id
func (r *PostgresAdRepository) ListActiveByFolder(ctx context.Context, folderID string) ([]models.Ad, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE folder_id = $1 AND is_active ORDER BY name ASC, id ASC
	`, adColumns, r.tables.Ads)

	return r.queryAds(ctx, query, folderID)
}

// SetInactiveByFolderIDs deactivates every active ad belonging to any of the
// listed folders
func (r *PostgresAdRepository) SetInactiveByFolderIDs(ctx context.Context, folderIDs []string) error {
	if len(folderIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE %s SET is_active = FALSE, updated_at = $1
		WHERE folder_id = ANY($2) AND is_active
	`, r.tables.Ads)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, time.Now(), folderIDs); err != nil {
		return fmt.Errorf("deactivate ads: %w", err)
	}

	return nil
}

func (r *PostgresAdRepository) queryAds(ctx context.Context, query string, args ...interface{}) ([]models.Ad, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ads: %w", err)
	}
	defer rows.Close()

	var ads []models.Ad
	for rows.Next() {
		var ad models.Ad
		if err := scanAd(rows, &ad); err != nil {
			return nil, fmt.Errorf("scan ad: %w", err)
		}
		ads = append(ads, ad)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ads: %w", err)
	}

	return ads, nil
}
