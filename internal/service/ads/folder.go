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

type folderService struct {
	folderRepo repositories.FolderRepository
	adRepo     repositories.AdRepository
	txManager  repositories.TransactionManager
	validator  *TreeValidator
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo repositories.FolderRepository,
	adRepo repositories.AdRepository,
	txManager repositories.TransactionManager,
	validator *TreeValidator,
	logger *slog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		adRepo:     adRepo,
		txManager:  txManager,
		validator:  validator,
		logger:     logger,
	}
}

// CreateFolder creates a new folder. Validation and persistence share one
// transaction so a concurrent create cannot slip past the single-active-root
// check.
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	folder := &models.Folder{
		Name:     strings.TrimSpace(req.Name),
		ParentID: req.Parent,
		IsActive: true,
	}

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.validator.ValidateFolder(ctx, folder); err != nil {
			return err
		}
		return s.folderRepo.Create(ctx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"parent", folder.ParentID,
	)

	return folder, nil
}

// GetFolder retrieves an active folder
func (s *folderService) GetFolder(ctx context.Context, id string) (*models.Folder, error) {
	return s.folderRepo.GetActive(ctx, id)
}

// UpdateFolder applies a partial update (rename or move) to an active folder.
// The post-mutation state is validated before anything is persisted.
func (s *folderService) UpdateFolder(ctx context.Context, id string, req *services.UpdateFolderRequest) (*models.Folder, error) {
	if req.Name == nil && !req.Parent.Present {
		verr := domain.NewValidationError()
		verr.Add(domain.NonFieldErrors, "at least one field must be provided")
		return nil, verr
	}

	var folder *models.Folder
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		folder, err = s.folderRepo.GetActive(ctx, id)
		if err != nil {
			return err
		}

		if req.Name != nil {
			folder.Name = strings.TrimSpace(*req.Name)
		}

		// Tri-state: only touch the parent if the field was present in the request
		if req.Parent.Present {
			if req.Parent.Value != nil {
				parent := *req.Parent.Value
				folder.ParentID = &parent
			} else {
				// null = make this the root folder
				folder.ParentID = nil
			}
		}

		if err := s.validator.ValidateFolder(ctx, folder); err != nil {
			return err
		}
		return s.folderRepo.Update(ctx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent", folder.ParentID,
	)

	return folder, nil
}

// DeactivateFolder soft-deletes a folder and cascades the deactivation to all
// descendant folders and every ad in that subtree, atomically. The active root
// is protected: validation rejects the transition before anything changes.
func (s *folderService) DeactivateFolder(ctx context.Context, id string) error {
	var deactivated []string

	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		folder, err := s.folderRepo.GetActive(ctx, id)
		if err != nil {
			return err
		}

		proposed := *folder
		proposed.IsActive = false
		if err := s.validator.ValidateFolder(ctx, &proposed); err != nil {
			return err
		}

		deactivated, err = s.collectActiveSubtree(ctx, folder.ID)
		if err != nil {
			return err
		}

		if err := s.folderRepo.SetInactiveByIDs(ctx, deactivated); err != nil {
			return err
		}
		return s.adRepo.SetInactiveByFolderIDs(ctx, deactivated)
	})
	if err != nil {
		return err
	}

	s.logger.Info("folder deactivated",
		"id", id,
		"subtree_size", len(deactivated),
	)

	return nil
}

// collectActiveSubtree gathers the folder plus every currently active
// descendant via an explicit worklist, keeping stack depth bounded on deep
// trees. Inactive subtrees are never entered, which makes the cascade
// idempotent. Each folder is visited at most once, so the walk terminates
// even if the stored tree somehow contains a cycle.
func (s *folderService) collectActiveSubtree(ctx context.Context, rootID string) ([]string, error) {
	visited := map[string]bool{rootID: true}
	ids := []string{rootID}
	queue := []string{rootID}

	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		children, err := s.folderRepo.ListActiveChildren(ctx, next)
		if err != nil {
			return nil, err
		}
		for _, child := range children {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			ids = append(ids, child.ID)
			queue = append(queue, child.ID)
		}
	}

	return ids, nil
}
