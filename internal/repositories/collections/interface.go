package collections

import (
	"context"

	"github.com/dmitrijs2005/applists/internal/models"
)

// Repository describes storage operations for collections. The cascade-or-
// detach choice on deletion is decided one level up, in the catalog service;
// here Delete removes only the collection row (owned lists are re-parented to
// NULL by the schema's foreign key).
type Repository interface {
	Create(ctx context.Context, c *models.Collection) error

	// Rename changes the name and bumps the updated timestamp.
	Rename(ctx context.Context, collectionID, name string) error

	// Update replaces name and description.
	Update(ctx context.Context, collectionID, name, description string) error

	// Touch bumps the updated timestamp only.
	Touch(ctx context.Context, collectionID string) error

	// Delete removes the collection row; unknown identifiers are a no-op.
	Delete(ctx context.Context, collectionID string) error

	// GetByID returns the collection or common.ErrNotFound.
	GetByID(ctx context.Context, collectionID string) (*models.Collection, error)

	// GetAll returns every collection ordered by most-recently-updated.
	GetAll(ctx context.Context) ([]models.Collection, error)

	// Search matches a substring of the name.
	Search(ctx context.Context, query string) ([]models.Collection, error)

	// GetWithLists returns the collection together with its member lists.
	GetWithLists(ctx context.Context, collectionID string) (*models.CollectionWithLists, error)

	// ListCount reports how many lists the collection owns.
	ListCount(ctx context.Context, collectionID string) (int, error)
}
