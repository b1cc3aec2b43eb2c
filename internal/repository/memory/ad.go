package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"adboard/internal/domain"
	"adboard/internal/domain/models"
)

type adRepo struct {
	s *Store
}

func (r *adRepo) Create(ctx context.Context, ad *models.Ad) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.folders[ad.FolderID]; !ok {
		// Mirrors the database foreign key on folder_id
		return &domain.NotFoundError{Entity: "folder", ID: ad.FolderID}
	}

	if ad.ID == "" {
		ad.ID = uuid.New().String()
	}
	now := time.Now()
	ad.CreatedAt = now
	ad.UpdatedAt = now

	r.s.ads[ad.ID] = *ad
	return nil
}

func (r *adRepo) GetActive(ctx context.Context, id string) (*models.Ad, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ad, ok := r.s.ads[id]
	if !ok || !ad.IsActive {
		return nil, &domain.NotFoundError{Entity: "ad", ID: id}
	}
	return &ad, nil
}

func (r *adRepo) Update(ctx context.Context, ad *models.Ad) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.ads[ad.ID]
	if !ok {
		return &domain.NotFoundError{Entity: "ad", ID: ad.ID}
	}

	stored.Name = ad.Name
	stored.TargetURL = ad.TargetURL
	stored.FolderID = ad.FolderID
	stored.UpdatedAt = time.Now()
	ad.UpdatedAt = stored.UpdatedAt

	r.s.ads[ad.ID] = stored
	return nil
}

func (r *adRepo) SetActive(ctx context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	ad, ok := r.s.ads[id]
	if !ok {
		return &domain.NotFoundError{Entity: "ad", ID: id}
	}

	ad.IsActive = active
	ad.UpdatedAt = time.Now()
	r.s.ads[id] = ad
	return nil
}

func (r *adRepo) ListActive(ctx context.Context) ([]models.Ad, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ads []models.Ad
	for _, ad := range r.s.ads {
		if ad.IsActive {
			ads = append(ads, ad)
		}
	}
	sortAds(ads)
	return ads, nil
}

func (r *adRepo) ListActiveByFolder(ctx context.Context, folderID string) ([]models.Ad, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ads []models.Ad
	for _, ad := range r.s.ads {
		if ad.IsActive && ad.FolderID == folderID {
			ads = append(ads, ad)
		}
	}
	sortAds(ads)
	return ads, nil
}

func (r *adRepo) SetInactiveByFolderIDs(ctx context.Context, folderIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	members := make(map[string]struct{}, len(folderIDs))
	for _, id := range folderIDs {
		members[id] = struct{}{}
	}

	now := time.Now()
	for id, ad := range r.s.ads {
		if !ad.IsActive {
			continue
		}
		if _, ok := members[ad.FolderID]; !ok {
			continue
		}
		ad.IsActive = false
		ad.UpdatedAt = now
		r.s.ads[id] = ad
	}
	return nil
}
