// Package catalog implements the reconciler on top of the repositories: it
// combines stored lists and collections with the live installed-app registry,
// and executes the multi-row mutations (merge, bulk add/remove, collection
// deletion) transactionally.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/applists/internal/dbx"
	"github.com/dmitrijs2005/applists/internal/logging"
	"github.com/dmitrijs2005/applists/internal/models"
	"github.com/dmitrijs2005/applists/internal/registry"
	"github.com/dmitrijs2005/applists/internal/repositories/collections"
	"github.com/dmitrijs2005/applists/internal/repositories/lists"
	"github.com/google/uuid"
)

// Service is the catalog reconciler. All mutating operations run inside one
// store transaction and signal change subscribers on success.
type Service struct {
	db     *sql.DB
	cache  *registry.Cache
	log    logging.Logger
	notify *notifier
}

func New(db *sql.DB, cache *registry.Cache, log logging.Logger) *Service {
	return &Service{db: db, cache: cache, log: log, notify: newNotifier()}
}

// Subscribe returns a channel that receives a signal after every successful
// mutation, and a cancel function releasing the subscription. Signals
// coalesce; subscribers re-read whatever state they render.
func (s *Service) Subscribe() (<-chan struct{}, func()) {
	return s.notify.subscribe()
}

func (s *Service) listRepo() lists.Repository {
	return lists.NewSQLiteRepository(s.db)
}

func (s *Service) collectionRepo() collections.Repository {
	return collections.NewSQLiteRepository(s.db)
}

// ==================== Lists ====================

// CreateList creates a list, optionally already parented to a collection.
func (s *Service) CreateList(ctx context.Context, title, collectionID string) (*models.List, error) {
	now := time.Now().UTC()
	l := &models.List{
		ID:           uuid.NewString(),
		Title:        title,
		CreatedAt:    now,
		UpdatedAt:    now,
		CollectionID: collectionID,
	}
	if err := s.listRepo().Create(ctx, l); err != nil {
		return nil, err
	}
	s.log.Debug(ctx, "list created", "list_id", l.ID, "title", title)
	s.notify.notify()
	return l, nil
}

func (s *Service) RenameList(ctx context.Context, listID, title string) error {
	if err := s.listRepo().Rename(ctx, listID, title); err != nil {
		return err
	}
	s.notify.notify()
	return nil
}

func (s *Service) DeleteList(ctx context.Context, listID string) error {
	if err := s.listRepo().Delete(ctx, listID); err != nil {
		return err
	}
	s.notify.notify()
	return nil
}

func (s *Service) GetList(ctx context.Context, listID string) (*models.List, error) {
	return s.listRepo().GetByID(ctx, listID)
}

func (s *Service) Lists(ctx context.Context) ([]models.List, error) {
	return s.listRepo().GetAll(ctx)
}

func (s *Service) UnassignedLists(ctx context.Context) ([]models.List, error) {
	return s.listRepo().GetUnassigned(ctx)
}

func (s *Service) SearchLists(ctx context.Context, query string) ([]models.List, error) {
	return s.listRepo().Search(ctx, query)
}

func (s *Service) ListWithApps(ctx context.Context, listID string) (*models.ListWithApps, error) {
	return s.listRepo().GetWithApps(ctx, listID)
}

func (s *Service) ListsWithApps(ctx context.Context) ([]models.ListWithApps, error) {
	return s.listRepo().GetAllWithApps(ctx)
}

// AssignListToCollection re-parents a list and touches both sides.
func (s *Service) AssignListToCollection(ctx context.Context, listID, collectionID string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := lists.NewSQLiteRepository(tx).AssignToCollection(ctx, listID, collectionID); err != nil {
			return err
		}
		if collectionID != "" {
			return collections.NewSQLiteRepository(tx).Touch(ctx, collectionID)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.notify.notify()
	return nil
}

// RemoveListFromCollection detaches a list from its collection.
func (s *Service) RemoveListFromCollection(ctx context.Context, listID string) error {
	return s.AssignListToCollection(ctx, listID, "")
}

// ==================== Memberships ====================

// AddApps upserts the given packages into a list, applying the same tag set
// to each. The owning list's updated timestamp moves with the change.
func (s *Service) AddApps(ctx context.Context, listID string, packageNames []string, tags []string) error {
	if len(packageNames) == 0 {
		return nil
	}
	now := time.Now().UTC()
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := lists.NewSQLiteRepository(tx)
		for _, pkg := range packageNames {
			if pkg == "" {
				continue
			}
			m := models.Membership{ListID: listID, PackageName: pkg, AddedAt: now, Tags: tags}
			if err := repo.AddApp(ctx, m); err != nil {
				return err
			}
		}
		return repo.Touch(ctx, listID)
	})
	if err != nil {
		return fmt.Errorf("failed to add apps: %w", err)
	}
	s.notify.notify()
	return nil
}

// RemoveApps deletes the given package set from a list.
func (s *Service) RemoveApps(ctx context.Context, listID string, packageNames []string) error {
	if len(packageNames) == 0 {
		return nil
	}
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := lists.NewSQLiteRepository(tx)
		if err := repo.RemoveApps(ctx, listID, packageNames); err != nil {
			return err
		}
		return repo.Touch(ctx, listID)
	})
	if err != nil {
		return fmt.Errorf("failed to remove apps: %w", err)
	}
	s.notify.notify()
	return nil
}

// UpdateTags replaces the tag set of one membership.
func (s *Service) UpdateTags(ctx context.Context, listID, packageName string, tags []string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := lists.NewSQLiteRepository(tx)
		if err := repo.UpdateTags(ctx, listID, packageName, tags); err != nil {
			return err
		}
		return repo.Touch(ctx, listID)
	})
	if err != nil {
		return err
	}
	s.notify.notify()
	return nil
}

// ==================== Collections ====================

func (s *Service) CreateCollection(ctx context.Context, name, description string) (*models.Collection, error) {
	now := time.Now().UTC()
	c := &models.Collection{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.collectionRepo().Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Debug(ctx, "collection created", "collection_id", c.ID, "name", name)
	s.notify.notify()
	return c, nil
}

func (s *Service) RenameCollection(ctx context.Context, collectionID, name string) error {
	if err := s.collectionRepo().Rename(ctx, collectionID, name); err != nil {
		return err
	}
	s.notify.notify()
	return nil
}

func (s *Service) UpdateCollection(ctx context.Context, collectionID, name, description string) error {
	if err := s.collectionRepo().Update(ctx, collectionID, name, description); err != nil {
		return err
	}
	s.notify.notify()
	return nil
}

func (s *Service) GetCollection(ctx context.Context, collectionID string) (*models.Collection, error) {
	return s.collectionRepo().GetByID(ctx, collectionID)
}

func (s *Service) Collections(ctx context.Context) ([]models.Collection, error) {
	return s.collectionRepo().GetAll(ctx)
}

func (s *Service) SearchCollections(ctx context.Context, query string) ([]models.Collection, error) {
	return s.collectionRepo().Search(ctx, query)
}

func (s *Service) CollectionWithLists(ctx context.Context, collectionID string) (*models.CollectionWithLists, error) {
	return s.collectionRepo().GetWithLists(ctx, collectionID)
}

// DeleteCollection removes a collection. When deleteContainedLists is true
// the owned lists go with it (their memberships cascade); otherwise they are
// re-parented to no collection first. Either way runs in one transaction.
func (s *Service) DeleteCollection(ctx context.Context, collectionID string, deleteContainedLists bool) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		listRepo := lists.NewSQLiteRepository(tx)
		colRepo := collections.NewSQLiteRepository(tx)

		owned, err := listRepo.GetByCollection(ctx, collectionID)
		if err != nil {
			return err
		}
		for _, l := range owned {
			if deleteContainedLists {
				err = listRepo.Delete(ctx, l.ID)
			} else {
				err = listRepo.AssignToCollection(ctx, l.ID, "")
			}
			if err != nil {
				return err
			}
		}
		return colRepo.Delete(ctx, collectionID)
	})
	if err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	s.log.Info(ctx, "collection deleted",
		"collection_id", collectionID, "lists_deleted", deleteContainedLists)
	s.notify.notify()
	return nil
}

// ==================== Merge & duplicates ====================

// MergeLists folds the source lists into the target: every membership whose
// package the target does not yet hold is copied over with its tags and
// added timestamp, then the source list is deleted. Sources are processed in
// the caller's order, so when two sources carry the same package the first
// one wins and later tag sets are ignored. The target's own entry in the
// source slice is skipped. The whole merge is one transaction: it either
// applies for every source or for none.
func (s *Service) MergeLists(ctx context.Context, sourceIDs []string, targetID string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := lists.NewSQLiteRepository(tx)

		if _, err := repo.GetByID(ctx, targetID); err != nil {
			return err
		}

		for _, sourceID := range sourceIDs {
			if sourceID == targetID {
				continue
			}
			entries, err := repo.Memberships(ctx, sourceID)
			if err != nil {
				return err
			}
			for _, m := range entries {
				exists, err := repo.Contains(ctx, targetID, m.PackageName)
				if err != nil {
					return err
				}
				if exists {
					continue
				}
				m.ListID = targetID
				if err := repo.AddApp(ctx, m); err != nil {
					return err
				}
			}
			if err := repo.Delete(ctx, sourceID); err != nil {
				return err
			}
		}
		return repo.Touch(ctx, targetID)
	})
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}
	s.log.Info(ctx, "lists merged", "sources", len(sourceIDs), "target_id", targetID)
	s.notify.notify()
	return nil
}

// DuplicatesInList reports which of the candidate packages a list already
// holds. The result is an unordered set.
func (s *Service) DuplicatesInList(ctx context.Context, listID string, candidates []string) ([]string, error) {
	return s.listRepo().DuplicatesInList(ctx, listID, candidates)
}

// DuplicatesInCollection reports which candidates appear in any list owned by
// the collection.
func (s *Service) DuplicatesInCollection(ctx context.Context, collectionID string, candidates []string) ([]string, error) {
	return s.listRepo().DuplicatesInCollection(ctx, collectionID, candidates)
}

// ==================== Resolution & index ====================

// ResolveList joins a list's memberships with the live registry snapshot.
// Entries whose package is not installed come back with the Missing marker;
// nothing is written.
func (s *Service) ResolveList(ctx context.Context, listID string) (*models.List, []models.ResolvedEntry, error) {
	withApps, err := s.listRepo().GetWithApps(ctx, listID)
	if err != nil {
		return nil, nil, err
	}

	// Fill the cache on first use; afterwards resolution is a map lookup.
	if _, err := s.cache.Apps(ctx); err != nil {
		return nil, nil, err
	}

	entries := make([]models.ResolvedEntry, 0, len(withApps.Entries))
	for _, m := range withApps.Entries {
		app, ok := s.cache.Lookup(m.PackageName)
		entry := models.ResolvedEntry{Membership: m, Missing: !ok}
		if ok {
			entry.App = &app
		}
		entries = append(entries, entry)
	}
	return &withApps.List, entries, nil
}

// BuildIndex derives the aggregate views from the current store state.
func (s *Service) BuildIndex(ctx context.Context) (Index, error) {
	repo := s.listRepo()
	allLists, err := repo.GetAll(ctx)
	if err != nil {
		return Index{}, err
	}
	memberships, err := repo.AllMemberships(ctx)
	if err != nil {
		return Index{}, err
	}
	return BuildIndex(allLists, memberships), nil
}
