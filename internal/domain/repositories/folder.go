package repositories

import (
	"context"

	"adboard/internal/domain/models"
)

// FolderRepository defines data access operations for folders. Writes are
// durable once the call returns; cross-entity invariants are the validator's
// job, not the store's.
type FolderRepository interface {
	// Create inserts a new folder, assigning its id and timestamps
	Create(ctx context.Context, folder *models.Folder) error

	// GetByID retrieves a folder regardless of its active state
	GetByID(ctx context.Context, id string) (*models.Folder, error)

	// GetActive retrieves an active folder; inactive folders are reported as absent
	GetActive(ctx context.Context, id string) (*models.Folder, error)

	// Update persists name and parent changes
	Update(ctx context.Context, folder *models.Folder) error

	// SetActive flips the active flag on one folder
	SetActive(ctx context.Context, id string, active bool) error

	// ListActive lists active folders ordered by name, then id
	ListActive(ctx context.Context) ([]models.Folder, error)

	// ListActiveChildren lists the immediate active children of a folder,
	// ordered by name, then id
	ListActiveChildren(ctx context.Context, parentID string) ([]models.Folder, error)

	// ActiveRootExcept returns the active root folder, ignoring the folder
	// with the given id. Returns nil when no such root exists.
	ActiveRootExcept(ctx context.Context, excludeID string) (*models.Folder, error)

	// HasActiveFolders reports whether any active folder exists
	HasActiveFolders(ctx context.Context) (bool, error)

	// SetInactiveByIDs deactivates every listed folder that is still active
	SetInactiveByIDs(ctx context.Context, ids []string) error
}
