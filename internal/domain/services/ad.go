package services

import (
	"context"

	"adboard/internal/domain/models"
)

// AdService orchestrates ad writes.
type AdService interface {
	// CreateAd creates a new ad inside an active folder
	CreateAd(ctx context.Context, req *CreateAdRequest) (*models.Ad, error)

	// GetAd retrieves an active ad
	GetAd(ctx context.Context, id string) (*models.Ad, error)

	// UpdateAd applies a partial update to an active ad
	UpdateAd(ctx context.Context, id string, req *UpdateAdRequest) (*models.Ad, error)

	// DeactivateAd soft-deletes a single ad; ads have no descendants, so there
	// is no cascade
	DeactivateAd(ctx context.Context, id string) error
}

// CreateAdRequest represents an ad creation request
type CreateAdRequest struct {
	Name      string `json:"name"`
	TargetURL string `json:"target_url"`
	Folder    string `json:"folder"`
}

// UpdateAdRequest represents a partial ad update
type UpdateAdRequest struct {
	Name      *string `json:"name"`
	TargetURL *string `json:"target_url"`
	Folder    *string `json:"folder"`
}
