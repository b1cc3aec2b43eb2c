package ads

import (
	"context"
	"errors"
	"testing"

	"adboard/internal/domain"
)

func TestListActiveFoldersOrdering(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateFolder(t, "Root", nil)
	env.mustCreateFolder(t, "Zebra", &root.ID)
	env.mustCreateFolder(t, "Apple", &root.ID)
	env.mustCreateFolder(t, "Mango", &root.ID)

	folders, err := env.views.ListActiveFolders(ctx)
	if err != nil {
		t.Fatalf("ListActiveFolders: %v", err)
	}

	want := []string{"Apple", "Mango", "Root", "Zebra"}
	if len(folders) != len(want) {
		t.Fatalf("got %d folders, want %d", len(folders), len(want))
	}
	for i, name := range want {
		if folders[i].Name != name {
			t.Errorf("folders[%d].Name = %q, want %q", i, folders[i].Name, name)
		}
	}
}

func TestListOrderingBreaksNameTiesByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateFolder(t, "Root", nil)
	a := env.mustCreateFolder(t, "Twin", &root.ID)
	b := env.mustCreateFolder(t, "Twin", &root.ID)

	folders, err := env.views.ListActiveFolders(ctx)
	if err != nil {
		t.Fatalf("ListActiveFolders: %v", err)
	}

	if len(folders) != 3 {
		t.Fatalf("got %d folders, want 3", len(folders))
	}

	first, second := a.ID, b.ID
	if second < first {
		first, second = second, first
	}
	// "Root" sorts before "Twin", the two Twins follow in id order
	if folders[0].ID != root.ID {
		t.Errorf("folders[0] = %s, want root %s", folders[0].ID, root.ID)
	}
	if folders[1].ID != first || folders[2].ID != second {
		t.Errorf("tie not broken by id: got [%s %s], want [%s %s]",
			folders[1].ID, folders[2].ID, first, second)
	}
}

func TestListsExcludeInactive(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateFolder(t, "Root", nil)
	branch := env.mustCreateFolder(t, "Branch", &root.ID)
	env.mustCreateAd(t, "Kept", "http://example.com/kept", root.ID)
	env.mustCreateAd(t, "Dropped", "http://example.com/dropped", branch.ID)

	if err := env.folders.DeactivateFolder(ctx, branch.ID); err != nil {
		t.Fatalf("DeactivateFolder: %v", err)
	}

	folders, err := env.views.ListActiveFolders(ctx)
	if err != nil {
		t.Fatalf("ListActiveFolders: %v", err)
	}
	if len(folders) != 1 || folders[0].ID != root.ID {
		t.Errorf("expected only the root to remain, got %v", folders)
	}

	adsList, err := env.views.ListActiveAds(ctx)
	if err != nil {
		t.Fatalf("ListActiveAds: %v", err)
	}
	if len(adsList) != 1 || adsList[0].Name != "Kept" {
		t.Errorf("expected only the root ad to remain, got %v", adsList)
	}
}

func TestFolderView(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateFolder(t, "Root", nil)
	branch := env.mustCreateFolder(t, "Branch", &root.ID)
	env.mustCreateFolder(t, "Leaf", &branch.ID)
	hidden := env.mustCreateFolder(t, "Hidden", &branch.ID)
	env.mustCreateAd(t, "Branch ad", "http://example.com/branch", branch.ID)
	env.mustCreateAd(t, "Elsewhere", "http://example.com/elsewhere", root.ID)

	if err := env.folders.DeactivateFolder(ctx, hidden.ID); err != nil {
		t.Fatalf("DeactivateFolder: %v", err)
	}

	view, err := env.views.FolderView(ctx, branch.ID)
	if err != nil {
		t.Fatalf("FolderView: %v", err)
	}

	if view.Folder.ID != branch.ID {
		t.Errorf("folder id = %s, want %s", view.Folder.ID, branch.ID)
	}
	if view.Parent == nil || view.Parent.ID != root.ID || view.Parent.Name != "Root" {
		t.Errorf("parent = %+v, want ref to root", view.Parent)
	}
	if len(view.Folders) != 1 || view.Folders[0].Name != "Leaf" {
		t.Errorf("children = %v, want just Leaf", view.Folders)
	}
	if len(view.Ads) != 1 || view.Ads[0].Name != "Branch ad" {
		t.Errorf("ads = %v, want just the branch ad", view.Ads)
	}
}

func TestFolderViewRootHasNoParent(t *testing.T) {
	env := newTestEnv(t)
	root := env.mustCreateFolder(t, "Root", nil)

	view, err := env.views.FolderView(context.Background(), root.ID)
	if err != nil {
		t.Fatalf("FolderView: %v", err)
	}

	if view.Parent != nil {
		t.Errorf("parent = %+v, want nil", view.Parent)
	}
	if view.Folders == nil || view.Ads == nil {
		t.Errorf("empty collections must be non-nil slices")
	}
}

func TestFolderViewInactiveFolderAbsent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root := env.mustCreateFolder(t, "Root", nil)
	branch := env.mustCreateFolder(t, "Branch", &root.ID)
	if err := env.folders.DeactivateFolder(ctx, branch.ID); err != nil {
		t.Fatalf("DeactivateFolder: %v", err)
	}

	_, err := env.views.FolderView(ctx, branch.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestDefaultRootID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.views.DefaultRootID(ctx)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected not found on empty store, got %v", err)
	}

	root := env.mustCreateFolder(t, "Root", nil)

	id, err := env.views.DefaultRootID(ctx)
	if err != nil {
		t.Fatalf("DefaultRootID: %v", err)
	}
	if id != root.ID {
		t.Errorf("id = %s, want %s", id, root.ID)
	}
}
