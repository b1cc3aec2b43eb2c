package ads

import (
	"context"
	"log/slog"

	"adboard/internal/domain"
	"adboard/internal/domain/models"
	"adboard/internal/domain/repositories"
	"adboard/internal/domain/services"
)

type viewService struct {
	folderRepo repositories.FolderRepository
	adRepo     repositories.AdRepository
	logger     *slog.Logger
}

// NewViewService creates the active-only read projections
func NewViewService(
	folderRepo repositories.FolderRepository,
	adRepo repositories.AdRepository,
	logger *slog.Logger,
) services.ViewService {
	return &viewService{
		folderRepo: folderRepo,
		adRepo:     adRepo,
		logger:     logger,
	}
}

// ListActiveFolders lists active folders ordered by name, then id
func (s *viewService) ListActiveFolders(ctx context.Context) ([]models.Folder, error) {
	folders, err := s.folderRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if folders == nil {
		folders = []models.Folder{}
	}
	return folders, nil
}

// ListActiveAds lists active ads ordered by name, then id
func (s *viewService) ListActiveAds(ctx context.Context) ([]models.Ad, error) {
	ads, err := s.adRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if ads == nil {
		ads = []models.Ad{}
	}
	return ads, nil
}

// FolderView assembles one folder with its immediate active children and
// active ads. The parent reference is included even when the parent itself is
// inactive; the folder itself must be active or it is reported as absent.
func (s *viewService) FolderView(ctx context.Context, id string) (*services.FolderContents, error) {
	folder, err := s.folderRepo.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}

	contents := &services.FolderContents{
		Folder:  *folder,
		Folders: []models.Folder{},
		Ads:     []models.Ad{},
	}

	if folder.ParentID != nil {
		parent, err := s.folderRepo.GetByID(ctx, *folder.ParentID)
		if err != nil {
			return nil, err
		}
		contents.Parent = &services.FolderRef{ID: parent.ID, Name: parent.Name}
	}

	children, err := s.folderRepo.ListActiveChildren(ctx, folder.ID)
	if err != nil {
		return nil, err
	}
	if children != nil {
		contents.Folders = children
	}

	ads, err := s.adRepo.ListActiveByFolder(ctx, folder.ID)
	if err != nil {
		return nil, err
	}
	if ads != nil {
		contents.Ads = ads
	}

	return contents, nil
}

// DefaultRootID resolves the id of the single active root folder
func (s *viewService) DefaultRootID(ctx context.Context) (string, error) {
	root, err := s.folderRepo.ActiveRootExcept(ctx, "")
	if err != nil {
		return "", err
	}
	if root == nil {
		return "", &domain.NotFoundError{Entity: "root folder"}
	}
	return root.ID, nil
}
