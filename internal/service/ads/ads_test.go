package ads

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"adboard/internal/domain"
	"adboard/internal/domain/models"
	"adboard/internal/domain/services"
	"adboard/internal/repository/memory"
)

// testEnv wires the engine against the in-memory store.
type testEnv struct {
	store   *memory.Store
	folders services.FolderService
	ads     services.AdService
	views   services.ViewService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := memory.NewStore()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	validator := NewTreeValidator(store.Folders())

	return &testEnv{
		store:   store,
		folders: NewFolderService(store.Folders(), store.Ads(), store, validator, logger),
		ads:     NewAdService(store.Ads(), store, validator, logger),
		views:   NewViewService(store.Folders(), store.Ads(), logger),
	}
}

func (e *testEnv) mustCreateFolder(t *testing.T, name string, parent *string) *models.Folder {
	t.Helper()

	folder, err := e.folders.CreateFolder(context.Background(), &services.CreateFolderRequest{
		Name:   name,
		Parent: parent,
	})
	if err != nil {
		t.Fatalf("CreateFolder(%q) unexpected error: %v", name, err)
	}
	return folder
}

func (e *testEnv) mustCreateAd(t *testing.T, name, targetURL, folderID string) *models.Ad {
	t.Helper()

	ad, err := e.ads.CreateAd(context.Background(), &services.CreateAdRequest{
		Name:      name,
		TargetURL: targetURL,
		Folder:    folderID,
	})
	if err != nil {
		t.Fatalf("CreateAd(%q) unexpected error: %v", name, err)
	}
	return ad
}

// violations unwraps a ValidationError or fails the test.
func violations(t *testing.T, err error) map[string][]string {
	t.Helper()

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	return verr.Violations
}

func containsReason(reasons []string, want string) bool {
	for _, reason := range reasons {
		if reason == want {
			return true
		}
	}
	return false
}

func strPtr(s string) *string { return &s }
