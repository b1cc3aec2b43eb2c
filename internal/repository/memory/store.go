// Package memory provides an in-memory, transactional implementation of the
// entity store. It backs the engine tests and the seed dry-run mode; the
// behavior mirrors the postgres repositories, including soft-delete
// invisibility and rollback on transaction failure.
package memory

import (
	"context"
	"sort"
	"sync"

	"adboard/internal/domain/models"
	"adboard/internal/domain/repositories"
)

// Store holds all records behind a single lock. Transactions are serialized
// and rolled back from a deep-copy snapshot on failure, which gives the
// cascade the same all-or-nothing guarantee the database provides.
type Store struct {
	mu      sync.RWMutex
	txMu    sync.Mutex
	folders map[string]models.Folder
	ads     map[string]models.Ad
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{
		folders: make(map[string]models.Folder),
		ads:     make(map[string]models.Ad),
	}
}

// Folders returns the folder repository view of the store
func (s *Store) Folders() repositories.FolderRepository { return &folderRepo{s} }

// Ads returns the ad repository view of the store
func (s *Store) Ads() repositories.AdRepository { return &adRepo{s} }

// ExecTx implements repositories.TransactionManager. Transactions run one at
// a time; on error the pre-transaction snapshot is restored.
func (s *Store) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	folders, ads := s.snapshot()

	if err := fn(ctx); err != nil {
		s.restore(folders, ads)
		return err
	}

	return nil
}

func (s *Store) snapshot() (map[string]models.Folder, map[string]models.Ad) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	folders := make(map[string]models.Folder, len(s.folders))
	for id, folder := range s.folders {
		if folder.ParentID != nil {
			parent := *folder.ParentID
			folder.ParentID = &parent
		}
		folders[id] = folder
	}

	ads := make(map[string]models.Ad, len(s.ads))
	for id, ad := range s.ads {
		ads[id] = ad
	}

	return folders, ads
}

func (s *Store) restore(folders map[string]models.Folder, ads map[string]models.Ad) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.folders = folders
	s.ads = ads
}

// copyFolder returns a detached copy so callers cannot mutate stored state.
func copyFolder(f models.Folder) *models.Folder {
	if f.ParentID != nil {
		parent := *f.ParentID
		f.ParentID = &parent
	}
	return &f
}

func sortFolders(folders []models.Folder) {
	sort.Slice(folders, func(i, j int) bool {
		if folders[i].Name != folders[j].Name {
			return folders[i].Name < folders[j].Name
		}
		return folders[i].ID < folders[j].ID
	})
}

func sortAds(ads []models.Ad) {
	sort.Slice(ads, func(i, j int) bool {
		if ads[i].Name != ads[j].Name {
			return ads[i].Name < ads[j].Name
		}
		return ads[i].ID < ads[j].ID
	})
}
