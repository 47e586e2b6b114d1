package collections

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/applists/internal/common"
	"github.com/dmitrijs2005/applists/internal/dbx"
	"github.com/dmitrijs2005/applists/internal/models"
)

// SQLiteRepository implements Repository using a DBTX (either *sql.DB or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

// NewSQLiteRepository returns a new SQLiteRepository bound to the given DBTX.
func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const collectionColumns = `id, name, description, created_at, updated_at`

func scanCollection(row interface{ Scan(...any) error }) (*models.Collection, error) {
	var (
		c       models.Collection
		created int64
		updated int64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &created, &updated); err != nil {
		return nil, err
	}
	c.CreatedAt = time.UnixMilli(created).UTC()
	c.UpdatedAt = time.UnixMilli(updated).UTC()
	return &c, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, c *models.Collection) error {
	query := `INSERT INTO collections (id, name, description, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		c.ID, c.Name, c.Description, c.CreatedAt.UnixMilli(), c.UpdatedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert collection: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Rename(ctx context.Context, collectionID, name string) error {
	query := `UPDATE collections SET name = ?, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, name, time.Now().UnixMilli(), collectionID); err != nil {
		return fmt.Errorf("failed to rename collection: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Update(ctx context.Context, collectionID, name, description string) error {
	query := `UPDATE collections SET name = ?, description = ?, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, name, description, time.Now().UnixMilli(), collectionID); err != nil {
		return fmt.Errorf("failed to update collection: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Touch(ctx context.Context, collectionID string) error {
	query := `UPDATE collections SET updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, time.Now().UnixMilli(), collectionID); err != nil {
		return fmt.Errorf("failed to touch collection: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, collectionID string) error {
	// Owned lists are re-parented to NULL by the foreign key.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE id = ?`, collectionID); err != nil {
		return fmt.Errorf("failed to delete collection: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, collectionID string) (*models.Collection, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE id = ?`, collectionID)
	c, err := scanCollection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select collection: %w", err)
	}
	return c, nil
}

func (r *SQLiteRepository) queryCollections(ctx context.Context, query string, args ...any) ([]models.Collection, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select collections: %w", err)
	}
	defer rows.Close()

	var result []models.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.Collection, error) {
	return r.queryCollections(ctx,
		`SELECT `+collectionColumns+` FROM collections ORDER BY updated_at DESC`)
}

func (r *SQLiteRepository) Search(ctx context.Context, query string) ([]models.Collection, error) {
	return r.queryCollections(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE name LIKE '%' || ? || '%' ORDER BY updated_at DESC`,
		query)
}

func (r *SQLiteRepository) GetWithLists(ctx context.Context, collectionID string) (*models.CollectionWithLists, error) {
	c, err := r.GetByID(ctx, collectionID)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, created_at, updated_at, collection_id FROM lists
		WHERE collection_id = ? ORDER BY updated_at DESC`, collectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to select member lists: %w", err)
	}
	defer rows.Close()

	var lists []models.List
	for rows.Next() {
		var (
			l          models.List
			created    int64
			updated    int64
			collection sql.NullString
		)
		if err := rows.Scan(&l.ID, &l.Title, &created, &updated, &collection); err != nil {
			return nil, err
		}
		l.CreatedAt = time.UnixMilli(created).UTC()
		l.UpdatedAt = time.UnixMilli(updated).UTC()
		l.CollectionID = collection.String
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &models.CollectionWithLists{Collection: *c, Lists: lists}, nil
}

func (r *SQLiteRepository) ListCount(ctx context.Context, collectionID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM lists WHERE collection_id = ?`, collectionID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count lists: %w", err)
	}
	return n, nil
}
