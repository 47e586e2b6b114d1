package lists

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
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

const listColumns = `id, title, created_at, updated_at, collection_id`

func scanList(row interface{ Scan(...any) error }) (*models.List, error) {
	var (
		l          models.List
		created    int64
		updated    int64
		collection sql.NullString
	)
	if err := row.Scan(&l.ID, &l.Title, &created, &updated, &collection); err != nil {
		return nil, err
	}
	l.CreatedAt = fromMillis(created)
	l.UpdatedAt = fromMillis(updated)
	l.CollectionID = collection.String
	return &l, nil
}

func (r *SQLiteRepository) Create(ctx context.Context, list *models.List) error {
	query := `INSERT INTO lists (id, title, created_at, updated_at, collection_id)
			VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		list.ID, list.Title, toMillis(list.CreatedAt), toMillis(list.UpdatedAt),
		nullable(list.CollectionID))
	if err != nil {
		return fmt.Errorf("failed to insert list: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Rename(ctx context.Context, listID, title string) error {
	query := `UPDATE lists SET title = ?, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, title, nowMillis(), listID); err != nil {
		return fmt.Errorf("failed to rename list: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) AssignToCollection(ctx context.Context, listID, collectionID string) error {
	query := `UPDATE lists SET collection_id = ?, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, nullable(collectionID), nowMillis(), listID); err != nil {
		return fmt.Errorf("failed to assign list to collection: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Touch(ctx context.Context, listID string) error {
	query := `UPDATE lists SET updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, nowMillis(), listID); err != nil {
		return fmt.Errorf("failed to touch list: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, listID string) error {
	// Membership rows cascade via the foreign key; unknown ids affect 0 rows.
	if _, err := r.db.ExecContext(ctx, `DELETE FROM lists WHERE id = ?`, listID); err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, listID string) (*models.List, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+listColumns+` FROM lists WHERE id = ?`, listID)
	l, err := scanList(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to select list: %w", err)
	}
	return l, nil
}

func (r *SQLiteRepository) queryLists(ctx context.Context, query string, args ...any) ([]models.List, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select lists: %w", err)
	}
	defer rows.Close()

	var result []models.List
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) GetAll(ctx context.Context) ([]models.List, error) {
	return r.queryLists(ctx,
		`SELECT `+listColumns+` FROM lists ORDER BY updated_at DESC`)
}

func (r *SQLiteRepository) GetUnassigned(ctx context.Context) ([]models.List, error) {
	return r.queryLists(ctx,
		`SELECT `+listColumns+` FROM lists WHERE collection_id IS NULL ORDER BY updated_at DESC`)
}

func (r *SQLiteRepository) GetByCollection(ctx context.Context, collectionID string) ([]models.List, error) {
	return r.queryLists(ctx,
		`SELECT `+listColumns+` FROM lists WHERE collection_id = ? ORDER BY updated_at DESC`,
		collectionID)
}

func (r *SQLiteRepository) Search(ctx context.Context, query string) ([]models.List, error) {
	return r.queryLists(ctx,
		`SELECT `+listColumns+` FROM lists WHERE title LIKE '%' || ? || '%' ORDER BY updated_at DESC`,
		query)
}

func (r *SQLiteRepository) GetWithApps(ctx context.Context, listID string) (*models.ListWithApps, error) {
	l, err := r.GetByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	entries, err := r.Memberships(ctx, listID)
	if err != nil {
		return nil, err
	}
	return &models.ListWithApps{List: *l, Entries: entries}, nil
}

func (r *SQLiteRepository) GetAllWithApps(ctx context.Context) ([]models.ListWithApps, error) {
	all, err := r.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	memberships, err := r.AllMemberships(ctx)
	if err != nil {
		return nil, err
	}

	byList := make(map[string][]models.Membership, len(all))
	for _, m := range memberships {
		byList[m.ListID] = append(byList[m.ListID], m)
	}

	result := make([]models.ListWithApps, 0, len(all))
	for _, l := range all {
		result = append(result, models.ListWithApps{List: l, Entries: byList[l.ID]})
	}
	return result, nil
}

func (r *SQLiteRepository) AddApp(ctx context.Context, m models.Membership) error {
	query := `INSERT INTO list_apps (list_id, package_name, added_at, tags)
			VALUES (?, ?, ?, ?)
			ON CONFLICT(list_id, package_name) DO UPDATE SET
				added_at = excluded.added_at,
				tags = excluded.tags`
	_, err := r.db.ExecContext(ctx, query,
		m.ListID, m.PackageName, toMillis(m.AddedAt), joinTags(m.Tags))
	if err != nil {
		return fmt.Errorf("failed to upsert membership: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) AddApps(ctx context.Context, ms []models.Membership) error {
	for _, m := range ms {
		if err := r.AddApp(ctx, m); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRepository) RemoveApp(ctx context.Context, listID, packageName string) error {
	query := `DELETE FROM list_apps WHERE list_id = ? AND package_name = ?`
	if _, err := r.db.ExecContext(ctx, query, listID, packageName); err != nil {
		return fmt.Errorf("failed to remove membership: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) RemoveApps(ctx context.Context, listID string, packageNames []string) error {
	if len(packageNames) == 0 {
		return nil
	}
	query := `DELETE FROM list_apps WHERE list_id = ? AND package_name IN (` +
		placeholders(len(packageNames)) + `)`
	args := make([]any, 0, len(packageNames)+1)
	args = append(args, listID)
	for _, p := range packageNames {
		args = append(args, p)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to remove memberships: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) RemoveAllApps(ctx context.Context, listID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM list_apps WHERE list_id = ?`, listID); err != nil {
		return fmt.Errorf("failed to empty list: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) queryMemberships(ctx context.Context, query string, args ...any) ([]models.Membership, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select memberships: %w", err)
	}
	defer rows.Close()

	var result []models.Membership
	for rows.Next() {
		var (
			m     models.Membership
			added int64
			tags  string
		)
		if err := rows.Scan(&m.ListID, &m.PackageName, &added, &tags); err != nil {
			return nil, err
		}
		m.AddedAt = fromMillis(added)
		m.Tags = splitTags(tags)
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) Memberships(ctx context.Context, listID string) ([]models.Membership, error) {
	return r.queryMemberships(ctx,
		`SELECT list_id, package_name, added_at, tags FROM list_apps WHERE list_id = ?`,
		listID)
}

func (r *SQLiteRepository) AllMemberships(ctx context.Context) ([]models.Membership, error) {
	return r.queryMemberships(ctx,
		`SELECT list_id, package_name, added_at, tags FROM list_apps`)
}

func (r *SQLiteRepository) ListsContaining(ctx context.Context, packageName string) ([]models.Membership, error) {
	return r.queryMemberships(ctx,
		`SELECT list_id, package_name, added_at, tags FROM list_apps WHERE package_name = ?`,
		packageName)
}

func (r *SQLiteRepository) AssignedPackages(ctx context.Context) ([]string, error) {
	return r.queryStrings(ctx, `SELECT DISTINCT package_name FROM list_apps`)
}

func (r *SQLiteRepository) Contains(ctx context.Context, listID, packageName string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) > 0 FROM list_apps WHERE list_id = ? AND package_name = ?`,
		listID, packageName).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return exists, nil
}

func (r *SQLiteRepository) UpdateTags(ctx context.Context, listID, packageName string, tags []string) error {
	query := `UPDATE list_apps SET tags = ? WHERE list_id = ? AND package_name = ?`
	if _, err := r.db.ExecContext(ctx, query, joinTags(tags), listID, packageName); err != nil {
		return fmt.Errorf("failed to update tags: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DuplicatesInList(ctx context.Context, listID string, candidates []string) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	query := `SELECT package_name FROM list_apps
			WHERE list_id = ? AND package_name IN (` + placeholders(len(candidates)) + `)`
	args := make([]any, 0, len(candidates)+1)
	args = append(args, listID)
	for _, p := range candidates {
		args = append(args, p)
	}
	return r.queryStrings(ctx, query, args...)
}

func (r *SQLiteRepository) DuplicatesInCollection(ctx context.Context, collectionID string, candidates []string) ([]string, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	query := `SELECT DISTINCT la.package_name FROM list_apps la
			INNER JOIN lists l ON la.list_id = l.id
			WHERE l.collection_id = ? AND la.package_name IN (` + placeholders(len(candidates)) + `)`
	args := make([]any, 0, len(candidates)+1)
	args = append(args, collectionID)
	for _, p := range candidates {
		args = append(args, p)
	}
	return r.queryStrings(ctx, query, args...)
}

func (r *SQLiteRepository) queryStrings(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var result []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func fromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
