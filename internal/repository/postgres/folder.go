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

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const folderColumns = "id, name, parent_id, is_active, created_at, updated_at"

func scanFolder(row interface{ Scan(dest ...any) error }, folder *models.Folder) error {
	return row.Scan(
		&folder.ID,
		&folder.Name,
		&folder.ParentID,
		&folder.IsActive,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
}

// Create inserts a new folder, assigning its id and timestamps
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	if folder.ID == "" {
		folder.ID = uuid.New().String()
	}
	now := time.Now()
	folder.CreatedAt = now
	folder.UpdatedAt = now

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, parent_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Folders)

	_, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		folder.ID,
		folder.Name,
		folder.ParentID,
		folder.IsActive,
		folder.CreatedAt,
		folder.UpdatedAt,
	)
	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("folder parent %v: %w", folder.ParentID, domain.ErrNotFound)
		}
		return fmt.Errorf("create folder: %w", err)
	}

	return nil
}

// GetByID retrieves a folder regardless of its active state
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1
	`, folderColumns, r.tables.Folders)

	var folder models.Folder
	err := scanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id), &folder)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Entity: "folder", ID: id}
		}
		return nil, fmt.Errorf("get folder: %w", err)
	}

	return &folder, nil
}

// GetActive retrieves an active folder; inactive folders are reported as absent
func (r *PostgresFolderRepository) GetActive(ctx context.Context, id string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1 AND is_active
	`, folderColumns, r.tables.Folders)

	var folder models.Folder
	err := scanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id), &folder)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, &domain.NotFoundError{Entity: "folder", ID: id}
		}
		return nil, fmt.Errorf("get active folder: %w", err)
	}

	return &folder, nil
}

// Update persists name and parent changes
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	folder.UpdatedAt = time.Now()

	query := fmt.Sprintf(`
		UPDATE %s SET name = $1, parent_id = $2, updated_at = $3
		WHERE id = $4
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		folder.Name,
		folder.ParentID,
		folder.UpdatedAt,
		folder.ID,
	)
	if err != nil {
		return fmt.Errorf("update folder: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "folder", ID: folder.ID}
	}

	return nil
}

// SetActive flips the active flag on one folder
func (r *PostgresFolderRepository) SetActive(ctx context.Context, id string, active bool) error {
	query := fmt.Sprintf(`
		UPDATE %s SET is_active = $1, updated_at = $2 WHERE id = $3
	`, r.tables.Folders)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, active, time.Now(), id)
	if err != nil {
		return fmt.Errorf("set folder active: %w", err)
	}

	if result.RowsAffected() == 0 {
		return &domain.NotFoundError{Entity: "folder", ID: id}
	}

	return nil
}

// ListActive lists active folders ordered by name, then id
func (r *PostgresFolderRepository) ListActive(ctx context.Context) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE is_active ORDER BY name ASC, id ASC
	`, folderColumns, r.tables.Folders)

	return r.queryFolders(ctx, query)
}

// ListActiveChildren lists the immediate active children of a folder
func (r *PostgresFolderRepository) ListActiveChildren(ctx context.Context, parentID string) ([]models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE parent_id = $1 AND is_active ORDER BY name ASC, id ASC
	`, folderColumns, r.tables.Folders)

	return r.queryFolders(ctx, query, parentID)
}

// ActiveRootExcept returns the active root folder, ignoring the folder with
// the given id. Returns nil when no such root exists.
func (r *PostgresFolderRepository) ActiveRootExcept(ctx context.Context, excludeID string) (*models.Folder, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE parent_id IS NULL AND is_active AND id::text <> $1
		LIMIT 1
	`, folderColumns, r.tables.Folders)

	var folder models.Folder
	err := scanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, excludeID), &folder)
	if err != nil {
		if isPgNoRowsError(err) {
			return nil, nil // no active root, not an error
		}
		return nil, fmt.Errorf("get active root: %w", err)
	}

	return &folder, nil
}

// HasActiveFolders reports whether any active folder exists
func (r *PostgresFolderRepository) HasActiveFolders(ctx context.Context) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE is_active)
	`, r.tables.Folders)

	var exists bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query).Scan(&exists); err != nil {
		return false, fmt.Errorf("check active folders: %w", err)
	}

	return exists, nil
}

// SetInactiveByIDs deactivates every listed folder that is still active
func (r *PostgresFolderRepository) SetInactiveByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
		UPDATE %s SET is_active = FALSE, updated_at = $1
		WHERE id = ANY($2) AND is_active
	`, r.tables.Folders)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, time.Now(), ids); err != nil {
		return fmt.Errorf("deactivate folders: %w", err)
	}

	return nil
}

func (r *PostgresFolderRepository) queryFolders(ctx context.Context, query string, args ...interface{}) ([]models.Folder, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	defer rows.Close()

	var folders []models.Folder
	for rows.Next() {
		var folder models.Folder
		if err := scanFolder(rows, &folder); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, folder)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate folders: %w", err)
	}

	return folders, nil
}
