package ads

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"adboard/internal/domain"
	"adboard/internal/domain/repositories"
	"adboard/internal/domain/services"
	"adboard/internal/httputil"
)

func TestCreateRootFolder(t *testing.T) {
	env := newTestEnv(t)

	root := env.mustCreateFolder(t, "Root", nil)

	if !root.IsActiveRoot() {
		t.Errorf("expected new folder to be the active root")
	}
	if root.ID == "" {
		t.Errorf("expected an id to be assigned")
	}
	if !root.IsActive {
		t.Errorf("expected is_active to default to true")
	}
}

func TestCreateSecondActiveRootFails(t *testing.T) {
	env := newTestEnv(t)
	env.mustCreateFolder(t, "Root", nil)

	_, err := env.folders.CreateFolder(context.Background(), &services.CreateFolderRequest{Name: "Another root"})

	v := violations(t, err)
	if !containsReason(v[domain.NonFieldErrors], MsgOnlyOneRootFolder) {
		t.Errorf("expected %q in %v", MsgOnlyOneRootFolder, v)
	}

	// Nothing may have been persisted
	folders, err := env.views.ListActiveFolders(context.Background())
	if err != nil {
		t.Fatalf("ListActiveFolders: %v", err)
	}
	if len(folders) != 1 {
		t.Errorf("expected 1 active folder, got %d", len(folders))
	}
}

func TestCreateRootAllowedWhenExistingRootInactive(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustCreateFolder(t, "Old root", nil)
	child := env.mustCreateFolder(t, "Child", &root.ID)

	// Deactivate the child first, then the tree is root-only; the root itself
	// stays protected, so flip it directly through the store to simulate an
	// inactive historical root.
	if err := env.folders.DeactivateFolder(context.Background(), child.ID); err != nil {
		t.Fatalf("DeactivateFolder: %v", err)
	}
	if err := env.store.Folders().SetActive(context.Background(), root.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	env.mustCreateFolder(t, "New root", nil)
}

func TestFolderNameValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name       string
		folderName string
	}{
		{"empty name", ""},
		{"blank name", "   "},
		{"name too long", strings.Repeat("x", 101)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.folders.CreateFolder(context.Background(), &services.CreateFolderRequest{Name: tt.folderName})

			v := violations(t, err)
			if !containsReason(v["name"], MsgNameRequired) {
				t.Errorf("expected %q in %v", MsgNameRequired, v)
			}
		})
	}
}

func TestSelfParentRejected(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustCreateFolder(t, "Root", nil)
	child := env.mustCreateFolder(t, "Child", &root.ID)

	_, err := env.folders.UpdateFolder(context.Background(), child.ID, &services.UpdateFolderRequest{
		Parent: httputil.OptionalString{Present: true, Value: &child.ID},
	})

	v := violations(t, err)
	if !containsReason(v["parent"], MsgFolderSelfParent) {
		t.Errorf("expected %q in %v", MsgFolderSelfParent, v)
	}
}

func TestMoveUnderOwnDescendantRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateFolder(t, "Root", nil)
	a := env.mustCreateFolder(t, "A", &root.ID)
	b := env.mustCreateFolder(t, "B", &a.ID)
	c := env.mustCreateFolder(t, "C", &b.ID)

	// Re-parenting under a direct child and under a deeper descendant both
	// close a cycle
	for _, target := range []string{b.ID, c.ID} {
		_, err := env.folders.UpdateFolder(ctx, a.ID, &services.UpdateFolderRequest{
			Parent: httputil.OptionalString{Present: true, Value: &target},
		})

		v := violations(t, err)
		if !containsReason(v["parent"], MsgFolderCycle) {
			t.Errorf("move under %s: expected %q in %v", target, MsgFolderCycle, v)
		}
	}

	// A sibling subtree is still a legal destination
	if _, err := env.folders.UpdateFolder(ctx, c.ID, &services.UpdateFolderRequest{
		Parent: httputil.OptionalString{Present: true, Value: &root.ID},
	}); err != nil {
		t.Fatalf("UpdateFolder to sibling: %v", err)
	}
}

func TestDeactivateTerminatesOnCorruptCycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateFolder(t, "Root", nil)
	a := env.mustCreateFolder(t, "A", &root.ID)
	b := env.mustCreateFolder(t, "B", &a.ID)

	// Force A under B at the store level, bypassing validation, so the stored
	// tree contains the cycle A<->B
	corrupt := *a
	corrupt.ParentID = &b.ID
	if err := env.store.Folders().Update(ctx, &corrupt); err != nil {
		t.Fatalf("Update: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- env.folders.DeactivateFolder(ctx, a.ID) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("DeactivateFolder: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("DeactivateFolder did not terminate on a cyclic tree")
	}

	for _, id := range []string{a.ID, b.ID} {
		if _, err := env.folders.GetFolder(ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("folder %s: expected inactive, got %v", id, err)
		}
	}
	if _, err := env.folders.GetFolder(ctx, root.ID); err != nil {
		t.Errorf("root: expected still active, got %v", err)
	}
}

func TestUpdateChildToRootRejected(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustCreateFolder(t, "Root", nil)
	child := env.mustCreateFolder(t, "Child", &root.ID)

	_, err := env.folders.UpdateFolder(context.Background(), child.ID, &services.UpdateFolderRequest{
		Parent: httputil.OptionalString{Present: true, Value: nil},
	})

	v := violations(t, err)
	if !containsReason(v[domain.NonFieldErrors], MsgOnlyOneRootFolder) {
		t.Errorf("expected %q in %v", MsgOnlyOneRootFolder, v)
	}
}

func TestParentMustBeActive(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustCreateFolder(t, "Root", nil)
	child := env.mustCreateFolder(t, "Child", &root.ID)
	if err := env.folders.DeactivateFolder(context.Background(), child.ID); err != nil {
		t.Fatalf("DeactivateFolder: %v", err)
	}

	tests := []struct {
		name   string
		parent string
	}{
		{"inactive parent", child.ID},
		{"missing parent", "no-such-folder"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.folders.CreateFolder(context.Background(), &services.CreateFolderRequest{
				Name:   "Orphan",
				Parent: strPtr(tt.parent),
			})

			v := violations(t, err)
			if !containsReason(v["parent"], MsgParentMustBeActive) {
				t.Errorf("expected %q in %v", MsgParentMustBeActive, v)
			}
		})
	}
}

func TestDeactivateRootRejected(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustCreateFolder(t, "Root", nil)

	// Even with nothing else in the store the sole active root is protected
	err := env.folders.DeactivateFolder(context.Background(), root.ID)
	v := violations(t, err)
	if !containsReason(v[domain.NonFieldErrors], MsgRootFolderCantDelete) {
		t.Errorf("expected %q in %v", MsgRootFolderCantDelete, v)
	}

	// Still protected once it has descendants
	env.mustCreateFolder(t, "Child", &root.ID)
	err = env.folders.DeactivateFolder(context.Background(), root.ID)
	v = violations(t, err)
	if !containsReason(v[domain.NonFieldErrors], MsgRootFolderCantDelete) {
		t.Errorf("expected %q in %v", MsgRootFolderCantDelete, v)
	}
}

func TestCascadeDeactivation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateFolder(t, "Root", nil)
	branch := env.mustCreateFolder(t, "Branch", &root.ID)
	leaf := env.mustCreateFolder(t, "Leaf", &branch.ID)
	sibling := env.mustCreateFolder(t, "Sibling", &root.ID)

	rootAd := env.mustCreateAd(t, "Root ad", "http://example.com/root", root.ID)
	branchAd := env.mustCreateAd(t, "Branch ad", "http://example.com/branch", branch.ID)
	leafAd := env.mustCreateAd(t, "Leaf ad", "http://example.com/leaf", leaf.ID)

	if err := env.folders.DeactivateFolder(ctx, branch.ID); err != nil {
		t.Fatalf("DeactivateFolder: %v", err)
	}

	// Exactly the subtree and its ads went inactive
	for _, id := range []string{branch.ID, leaf.ID} {
		if _, err := env.folders.GetFolder(ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("folder %s: expected not found, got %v", id, err)
		}
	}
	for _, id := range []string{branchAd.ID, leafAd.ID} {
		if _, err := env.ads.GetAd(ctx, id); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("ad %s: expected not found, got %v", id, err)
		}
	}

	// Nothing else changed state
	for _, id := range []string{root.ID, sibling.ID} {
		if _, err := env.folders.GetFolder(ctx, id); err != nil {
			t.Errorf("folder %s: expected active, got %v", id, err)
		}
	}
	if _, err := env.ads.GetAd(ctx, rootAd.ID); err != nil {
		t.Errorf("root ad: expected active, got %v", err)
	}
}

func TestCascadeConvergesOnPartiallyInactiveSubtree(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateFolder(t, "Root", nil)
	branch := env.mustCreateFolder(t, "Branch", &root.ID)
	leaf := env.mustCreateFolder(t, "Leaf", &branch.ID)
	env.mustCreateAd(t, "Leaf ad", "http://example.com/leaf", leaf.ID)

	// Deactivate the leaf first, then the whole branch
	if err := env.folders.DeactivateFolder(ctx, leaf.ID); err != nil {
		t.Fatalf("DeactivateFolder(leaf): %v", err)
	}
	if err := env.folders.DeactivateFolder(ctx, branch.ID); err != nil {
		t.Fatalf("DeactivateFolder(branch): %v", err)
	}

	// An already-inactive folder is indistinguishable from an absent one
	err := env.folders.DeactivateFolder(ctx, branch.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found for repeated deactivation, got %v", err)
	}
}

func TestUpdateFolderRenameAndMove(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateFolder(t, "Root", nil)
	a := env.mustCreateFolder(t, "A", &root.ID)
	b := env.mustCreateFolder(t, "B", &root.ID)

	updated, err := env.folders.UpdateFolder(ctx, b.ID, &services.UpdateFolderRequest{
		Name:   strPtr("B renamed"),
		Parent: httputil.OptionalString{Present: true, Value: &a.ID},
	})
	if err != nil {
		t.Fatalf("UpdateFolder: %v", err)
	}

	if updated.Name != "B renamed" {
		t.Errorf("name = %q, want %q", updated.Name, "B renamed")
	}
	if updated.ParentID == nil || *updated.ParentID != a.ID {
		t.Errorf("parent = %v, want %s", updated.ParentID, a.ID)
	}
}

func TestUpdateFolderRequiresAField(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustCreateFolder(t, "Root", nil)

	_, err := env.folders.UpdateFolder(context.Background(), root.ID, &services.UpdateFolderRequest{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdateInactiveFolderNotFound(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateFolder(t, "Root", nil)
	child := env.mustCreateFolder(t, "Child", &root.ID)
	if err := env.folders.DeactivateFolder(ctx, child.ID); err != nil {
		t.Fatalf("DeactivateFolder: %v", err)
	}

	_, err := env.folders.UpdateFolder(ctx, child.ID, &services.UpdateFolderRequest{Name: strPtr("Renamed")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

// failingAdRepo forces a storage fault inside the cascade transaction.
type failingAdRepo struct {
	repositories.AdRepository
}

func (r *failingAdRepo) SetInactiveByFolderIDs(ctx context.Context, folderIDs []string) error {
	return errors.New("disk on fire")
}

func TestCascadeRollsBackOnStorageFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateFolder(t, "Root", nil)
	branch := env.mustCreateFolder(t, "Branch", &root.ID)
	leaf := env.mustCreateFolder(t, "Leaf", &branch.ID)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := NewTreeValidator(env.store.Folders())
	broken := NewFolderService(env.store.Folders(), &failingAdRepo{env.store.Ads()}, env.store, validator, logger)

	if err := broken.DeactivateFolder(ctx, branch.ID); err == nil {
		t.Fatalf("expected storage failure to propagate")
	}

	// Nothing may be left half-deactivated
	for _, id := range []string{branch.ID, leaf.ID} {
		if _, err := env.folders.GetFolder(ctx, id); err != nil {
			t.Errorf("folder %s: expected still active after rollback, got %v", id, err)
		}
	}
}
