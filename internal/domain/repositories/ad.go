package repositories

import (
	"context"

	"adboard/internal/domain/models"
)

// AdRepository defines data access operations for ads.
type AdRepository interface {
	// Create inserts a new ad, assigning its id and timestamps
	Create(ctx context.Context, ad *models.Ad) error

	// GetActive retrieves an active ad; inactive ads are reported as absent
	GetActive(ctx context.Context, id string) (*models.Ad, error)

	// Update persists name, target URL and folder changes
	Update(ctx context.Context, ad *models.Ad) error

	// SetActive flips the active flag on one ad
	SetActive(ctx context.Context, id string, active bool) error

	// ListActive lists active ads ordered by name, then id
	ListActive(ctx context.Context) ([]models.Ad, error)

	// ListActiveByFolder lists the active ads of one folder, ordered by name, then id
	ListActiveByFolder(ctx context.Context, folderID string) ([]models.Ad, error)

	// SetInactiveByFolderIDs deactivates every active ad belonging to any of
	// the listed folders
	SetInactiveByFolderIDs(ctx context.Context, folderIDs []string) error
}
