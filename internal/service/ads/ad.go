package ads

import (
	"context"
	"log/slog"
	"strings"

	"adboard/internal/domain"
	"adboard/internal/domain/models"
	"adboard/internal/domain/repositories"
	"adboard/internal/domain/services"
)

type adService struct {
	adRepo    repositories.AdRepository
	txManager repositories.TransactionManager
	validator *TreeValidator
	logger    *slog.Logger
}

// NewAdService creates a new ad service
func NewAdService(
	adRepo repositories.AdRepository,
	txManager repositories.TransactionManager,
	validator *TreeValidator,
	logger *slog.Logger,
) services.AdService {
	return &adService{
		adRepo:    adRepo,
		txManager: txManager,
		validator: validator,
		logger:    logger,
	}
}

// CreateAd creates a new ad inside an active folder. The folder-liveness
// check and the insert share one transaction so a concurrent folder
// deactivation cannot interleave.
func (s *adService) CreateAd(ctx context.Context, req *services.CreateAdRequest) (*models.Ad, error) {
	ad := &models.Ad{
		Name:      strings.TrimSpace(req.Name),
		TargetURL: strings.TrimSpace(req.TargetURL),
		FolderID:  req.Folder,
		IsActive:  true,
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.validator.ValidateAd(ctx, ad); err != nil {
			return err
		}
		return s.adRepo.Create(ctx, ad)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ad created",
		"id", ad.ID,
		"name", ad.Name,
		"folder", ad.FolderID,
	)

	return ad, nil
}

// GetAd retrieves an active ad
func (s *adService) GetAd(ctx context.Context, id string) (*models.Ad, error) {
	return s.adRepo.GetActive(ctx, id)
}

// UpdateAd applies a partial update to an active ad
func (s *adService) UpdateAd(ctx context.Context, id string, req *services.UpdateAdRequest) (*models.Ad, error) {
	if req.Name == nil && req.TargetURL == nil && req.Folder == nil {
		verr := domain.NewValidationError()
		verr.Add(domain.NonFieldErrors, "at least one field must be provided")
		return nil, verr
	}

	var ad *models.Ad
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		ad, err = s.adRepo.GetActive(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			ad.Name = strings.TrimSpace(*req.Name)
		}
		if req.TargetURL != nil {
			ad.TargetURL = strings.TrimSpace(*req.TargetURL)
		}
		if req.Folder != nil {
			ad.FolderID = *req.Folder
		}

		if err := s.validator.ValidateAd(ctx, ad); err != nil {
			return err
		}
		return s.adRepo.Update(ctx, ad)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("ad updated",
		"id", ad.ID,
		"name", ad.Name,
		"folder", ad.FolderID,
	)

	return ad, nil
}

// DeactivateAd soft-deletes a single ad. Ads have no descendants, so there is
// no cascade.
func (s *adService) DeactivateAd(ctx context.Context, id string) error {
	if _, err := s.adRepo.GetActive(ctx, id); err != nil {
		return err
	}

	if err := s.adRepo.SetActive(ctx, id, false); err != nil {
		return err
	}

	s.logger.Info("ad deactivated", "id", id)
	return nil
}
