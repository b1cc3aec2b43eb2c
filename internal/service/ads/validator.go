package ads

import (
	"context"
	"errors"
	"net/url"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"adboard/internal/config"
	"adboard/internal/domain"
	"adboard/internal/domain/models"
	"adboard/internal/domain/repositories"
)

// TreeValidator checks the tree invariants against the proposed entity state
// and the current store snapshot. It never mutates anything; a failed
// validation therefore always leaves the store untouched.
type TreeValidator struct {
	folderRepo repositories.FolderRepository
}

// NewTreeValidator creates a new tree validator
func NewTreeValidator(folderRepo repositories.FolderRepository) *TreeValidator {
	return &TreeValidator{folderRepo: folderRepo}
}

// ValidateFolder validates the proposed state of a folder before any write.
// On create the folder has no id yet; on update the folder itself is excluded
// from the single-active-root check.
func (v *TreeValidator) ValidateFolder(ctx context.Context, proposed *models.Folder) error {
	verr := domain.NewValidationError()

	if fieldErr := validation.Validate(strings.TrimSpace(proposed.Name),
		validation.Required,
		validation.RuneLength(1, config.MaxNameLength),
	); fieldErr != nil {
		verr.Add("name", MsgNameRequired)
	}

	if proposed.ParentID != nil {
		v.validateParent(ctx, proposed, verr)
	} else {
		if err := v.validateRoot(ctx, proposed, verr); err != nil {
			return err
		}
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}

// validateParent checks the self-parent rule, that the referenced parent
// folder is active at the time the reference is set, and that the move does
// not create a cycle.
func (v *TreeValidator) validateParent(ctx context.Context, proposed *models.Folder, verr *domain.ValidationError) {
	if proposed.ID != "" && *proposed.ParentID == proposed.ID {
		verr.Add("parent", MsgFolderSelfParent)
		return
	}

	if _, err := v.folderRepo.GetActive(ctx, *proposed.ParentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			verr.Add("parent", MsgParentMustBeActive)
		}
		// Storage faults surface later, on persist; validation stays side-effect-free
		return
	}

	// Only moves need the cycle check: a deactivation keeps the stored parent,
	// which was validated when it was set.
	if proposed.ID != "" && proposed.IsActive {
		cyclic, err := v.wouldCycle(ctx, proposed.ID, *proposed.ParentID)
		if err != nil {
			return
		}
		if cyclic {
			verr.Add("parent", MsgFolderCycle)
		}
	}
}

// wouldCycle walks the proposed parent's ancestor chain and reports whether it
// passes through the folder being moved.
func (v *TreeValidator) wouldCycle(ctx context.Context, folderID, parentID string) (bool, error) {
	seen := map[string]bool{}
	current := parentID

	for {
		if current == folderID {
			return true, nil
		}
		if seen[current] {
			// The stored tree is already cyclic; treat the move as cyclic too
			return true, nil
		}
		seen[current] = true

		ancestor, err := v.folderRepo.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		if ancestor.ParentID == nil {
			return false, nil
		}
		current = *ancestor.ParentID
	}
}

// validateRoot enforces the single-active-root invariant and protects the
// last active root from deactivation. The folder being validated still counts
// as active in the store snapshot, so deactivating the sole active root is
// rejected even when nothing else exists.
func (v *TreeValidator) validateRoot(ctx context.Context, proposed *models.Folder, verr *domain.ValidationError) error {
	otherRoot, err := v.folderRepo.ActiveRootExcept(ctx, proposed.ID)
	if err != nil {
		return err
	}

	switch {
	case proposed.IsActive && otherRoot != nil:
		verr.Add(domain.NonFieldErrors, MsgOnlyOneRootFolder)
	case !proposed.IsActive && otherRoot == nil:
		anyActive, err := v.folderRepo.HasActiveFolders(ctx)
		if err != nil {
			return err
		}
		if anyActive {
			verr.Add(domain.NonFieldErrors, MsgRootFolderCantDelete)
		}
	}

	return nil
}

// ValidateAd validates the proposed state of an ad before any write.
func (v *TreeValidator) ValidateAd(ctx context.Context, proposed *models.Ad) error {
	verr := domain.NewValidationError()

	if fieldErr := validation.Validate(strings.TrimSpace(proposed.Name),
		validation.Required,
		validation.RuneLength(1, config.MaxNameLength),
	); fieldErr != nil {
		verr.Add("name", MsgNameRequired)
	}

	if fieldErr := validation.Validate(proposed.TargetURL,
		validation.Required,
		validation.By(absoluteURL),
	); fieldErr != nil {
		verr.Add("target_url", MsgTargetURLInvalid)
	}

	if _, err := v.folderRepo.GetActive(ctx, proposed.FolderID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			verr.Add("folder", MsgAdFolderMustBeActive)
		}
	}

	if verr.HasViolations() {
		return verr
	}
	return nil
}

// absoluteURL is an ozzo-validation rule requiring a scheme and host.
func absoluteURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return err
	}
	if !u.IsAbs() || u.Host == "" {
		return errors.New("must be an absolute URL")
	}
	return nil
}
