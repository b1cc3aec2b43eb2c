package services

import (
	"context"

	"adboard/internal/domain/models"
	"adboard/internal/httputil"
)

// FolderService orchestrates folder writes: validate, persist, cascade.
type FolderService interface {
	// CreateFolder creates a new folder
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// GetFolder retrieves an active folder
	GetFolder(ctx context.Context, id string) (*models.Folder, error)

	// UpdateFolder applies a partial update (rename or move) to an active folder
	UpdateFolder(ctx context.Context, id string, req *UpdateFolderRequest) (*models.Folder, error)

	// DeactivateFolder soft-deletes a folder and cascades the deactivation to
	// every descendant folder and every ad in that subtree
	DeactivateFolder(ctx context.Context, id string) error
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name   string  `json:"name"`
	Parent *string `json:"parent"` // nil = root folder
}

// UpdateFolderRequest represents a partial folder update. Parent is tri-state:
// absent leaves the parent unchanged, null moves the folder to the root.
type UpdateFolderRequest struct {
	Name   *string                 `json:"name"`
	Parent httputil.OptionalString `json:"parent"`
}
