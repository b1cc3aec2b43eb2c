package services

import (
	"context"

	"adboard/internal/domain/models"
)

// ViewService provides active-only read projections over the folder tree.
type ViewService interface {
	// ListActiveFolders lists active folders ordered by name, then id
	ListActiveFolders(ctx context.Context) ([]models.Folder, error)

	// ListActiveAds lists active ads ordered by name, then id
	ListActiveAds(ctx context.Context) ([]models.Ad, error)

	// FolderView assembles one folder with its immediate active children and
	// active ads; inactive folders are reported as absent
	FolderView(ctx context.Context, id string) (*FolderContents, error)

	// DefaultRootID resolves the id of the single active root folder
	DefaultRootID(ctx context.Context) (string, error)
}

// FolderRef is a slim reference to a folder used inside view projections.
type FolderRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FolderContents represents a folder with one level of active children and ads.
// Parent is a reference to the parent folder, null for the root; it is included
// even when the parent itself is inactive.
type FolderContents struct {
	Folder  models.Folder   `json:"folder"`
	Parent  *FolderRef      `json:"parent"`
	Folders []models.Folder `json:"folders"`
	Ads     []models.Ad     `json:"ads"`
}
