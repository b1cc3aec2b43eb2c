package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"adboard/internal/domain"
	"adboard/internal/domain/models"
)

type folderRepo struct {
	s *Store
}

func (r *folderRepo) Create(ctx context.Context, folder *models.Folder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if folder.ParentID != nil {
		if _, ok := r.s.folders[*folder.ParentID]; !ok {
			// Mirrors the database foreign key on parent_id
			return &domain.NotFoundError{Entity: "folder", ID: *folder.ParentID}
		}
	}

	if folder.ID == "" {
		folder.ID = uuid.New().String()
	}
	now := time.Now()
	folder.CreatedAt = now
	folder.UpdatedAt = now

	r.s.folders[folder.ID] = *copyFolder(*folder)
	return nil
}

func (r *folderRepo) GetByID(ctx context.Context, id string) (*models.Folder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	folder, ok := r.s.folders[id]
	if !ok {
		return nil, &domain.NotFoundError{Entity: "folder", ID: id}
	}
	return copyFolder(folder), nil
}

func (r *folderRepo) GetActive(ctx context.Context, id string) (*models.Folder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	folder, ok := r.s.folders[id]
	if !ok || !folder.IsActive {
		return nil, &domain.NotFoundError{Entity: "folder", ID: id}
	}
	return copyFolder(folder), nil
}

func (r *folderRepo) Update(ctx context.Context, folder *models.Folder) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.folders[folder.ID]
	if !ok {
		return &domain.NotFoundError{Entity: "folder", ID: folder.ID}
	}

	stored.Name = folder.Name
	stored.ParentID = nil
	if folder.ParentID != nil {
		parent := *folder.ParentID
		stored.ParentID = &parent
	}
	stored.UpdatedAt = time.Now()
	folder.UpdatedAt = stored.UpdatedAt

	r.s.folders[folder.ID] = stored
	return nil
}

func (r *folderRepo) SetActive(ctx context.Context, id string, active bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	folder, ok := r.s.folders[id]
	if !ok {
		return &domain.NotFoundError{Entity: "folder", ID: id}
	}

	folder.IsActive = active
	folder.UpdatedAt = time.Now()
	r.s.folders[id] = folder
	return nil
}

func (r *folderRepo) ListActive(ctx context.Context) ([]models.Folder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var folders []models.Folder
	for _, folder := range r.s.folders {
		if folder.IsActive {
			folders = append(folders, *copyFolder(folder))
		}
	}
	sortFolders(folders)
	return folders, nil
}

func (r *folderRepo) ListActiveChildren(ctx context.Context, parentID string) ([]models.Folder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var folders []models.Folder
	for _, folder := range r.s.folders {
		if folder.IsActive && folder.ParentID != nil && *folder.ParentID == parentID {
			folders = append(folders, *copyFolder(folder))
		}
	}
	sortFolders(folders)
	return folders, nil
}

func (r *folderRepo) ActiveRootExcept(ctx context.Context, excludeID string) (*models.Folder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, folder := range r.s.folders {
		if folder.IsActiveRoot() && folder.ID != excludeID {
			return copyFolder(folder), nil
		}
	}
	return nil, nil
}

func (r *folderRepo) HasActiveFolders(ctx context.Context) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, folder := range r.s.folders {
		if folder.IsActive {
			return true, nil
		}
	}
	return false, nil
}

func (r *folderRepo) SetInactiveByIDs(ctx context.Context, ids []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := time.Now()
	for _, id := range ids {
		folder, ok := r.s.folders[id]
		if !ok || !folder.IsActive {
			continue
		}
		folder.IsActive = false
		folder.UpdatedAt = now
		r.s.folders[id] = folder
	}
	return nil
}
