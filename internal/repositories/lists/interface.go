package lists

import (
	"context"

	"github.com/dmitrijs2005/applists/internal/models"
)

// Repository describes storage operations for lists and their membership
// rows. Implementations are backed by the local SQLite database; binding one
// to a *sql.Tx makes every call part of that transaction.
type Repository interface {
	// Create inserts a new list record.
	Create(ctx context.Context, list *models.List) error

	// Rename changes the title and bumps the updated timestamp.
	Rename(ctx context.Context, listID, title string) error

	// AssignToCollection re-parents the list; collectionID == "" detaches it.
	AssignToCollection(ctx context.Context, listID, collectionID string) error

	// Touch bumps the updated timestamp only.
	Touch(ctx context.Context, listID string) error

	// Delete removes the list; membership rows cascade. Deleting an unknown
	// identifier is a no-op.
	Delete(ctx context.Context, listID string) error

	// GetByID returns the list or common.ErrNotFound.
	GetByID(ctx context.Context, listID string) (*models.List, error)

	// GetAll returns every list ordered by most-recently-updated.
	GetAll(ctx context.Context) ([]models.List, error)

	// GetUnassigned returns lists that belong to no collection.
	GetUnassigned(ctx context.Context) ([]models.List, error)

	// GetByCollection returns the lists owned by one collection.
	GetByCollection(ctx context.Context, collectionID string) ([]models.List, error)

	// Search matches a substring of the title, case-sensitive per SQLite LIKE.
	Search(ctx context.Context, query string) ([]models.List, error)

	// GetWithApps returns the list together with its membership rows.
	GetWithApps(ctx context.Context, listID string) (*models.ListWithApps, error)

	// GetAllWithApps returns every list with its membership rows, ordered by
	// most-recently-updated.
	GetAllWithApps(ctx context.Context) ([]models.ListWithApps, error)

	// AddApp upserts one membership row keyed by (list, package). A second
	// add replaces the stored tags and added timestamp.
	AddApp(ctx context.Context, m models.Membership) error

	// AddApps upserts a batch of membership rows.
	AddApps(ctx context.Context, ms []models.Membership) error

	// RemoveApp deletes one membership row; unknown pairs are a no-op.
	RemoveApp(ctx context.Context, listID, packageName string) error

	// RemoveApps deletes the membership rows for the given package set.
	RemoveApps(ctx context.Context, listID string, packageNames []string) error

	// RemoveAllApps empties the list.
	RemoveAllApps(ctx context.Context, listID string) error

	// Memberships returns the rows of one list.
	Memberships(ctx context.Context, listID string) ([]models.Membership, error)

	// AllMemberships returns every membership row in the store.
	AllMemberships(ctx context.Context) ([]models.Membership, error)

	// ListsContaining returns the membership rows referencing a package
	// across all lists (the reverse lookup).
	ListsContaining(ctx context.Context, packageName string) ([]models.Membership, error)

	// AssignedPackages returns the distinct package names present in at
	// least one list.
	AssignedPackages(ctx context.Context) ([]string, error)

	// Contains reports whether the list already holds the package.
	Contains(ctx context.Context, listID, packageName string) (bool, error)

	// UpdateTags replaces the tag set of one membership row.
	UpdateTags(ctx context.Context, listID, packageName string, tags []string) error

	// DuplicatesInList returns the subset of candidates already present in
	// the list. Order is unspecified.
	DuplicatesInList(ctx context.Context, listID string, candidates []string) ([]string, error)

	// DuplicatesInCollection returns the subset of candidates present in any
	// list owned by the collection. Order is unspecified.
	DuplicatesInCollection(ctx context.Context, collectionID string, candidates []string) ([]string, error)
}
