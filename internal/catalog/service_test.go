package catalog

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/dmitrijs2005/applists/internal/common"
	"github.com/dmitrijs2005/applists/internal/logging"
	"github.com/dmitrijs2005/applists/internal/models"
	"github.com/dmitrijs2005/applists/internal/registry"
	"github.com/dmitrijs2005/applists/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

type fixedProvider struct {
	apps []models.ResolvedApp
}

func (f *fixedProvider) Scan(ctx context.Context) ([]models.ResolvedApp, error) {
	return f.apps, nil
}

func setupService(t *testing.T, installed ...models.ResolvedApp) *Service {
	t.Helper()
	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	cache := registry.NewCache(&fixedProvider{apps: installed})
	log := logging.NewText(io.Discard, slog.LevelDebug)
	return New(db, cache, log)
}

func packageSet(t *testing.T, s *Service, listID string) []string {
	t.Helper()
	withApps, err := s.ListWithApps(context.Background(), listID)
	require.NoError(t, err)
	pkgs := make([]string, 0, len(withApps.Entries))
	for _, m := range withApps.Entries {
		pkgs = append(pkgs, m.PackageName)
	}
	return pkgs
}

func TestAddApps_UpsertAndTouch(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	l, err := s.CreateList(ctx, "Tools", "")
	require.NoError(t, err)

	require.NoError(t, s.AddApps(ctx, l.ID, []string{"com.a", "com.b"}, nil))
	require.NoError(t, s.AddApps(ctx, l.ID, []string{"com.a"}, []string{"again"}))

	withApps, err := s.ListWithApps(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, withApps.Entries, 2, "second add must upsert, not duplicate")

	for _, m := range withApps.Entries {
		if m.PackageName == "com.a" {
			assert.Equal(t, []string{"again"}, m.Tags, "second add's tags replace the first's")
		}
	}

	assert.False(t, withApps.List.UpdatedAt.Before(l.UpdatedAt),
		"membership mutations move the list's updated timestamp")
}

func TestMergeLists(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	a, err := s.CreateList(ctx, "A", "")
	require.NoError(t, err)
	b, err := s.CreateList(ctx, "B", "")
	require.NoError(t, err)
	target, err := s.CreateList(ctx, "T", "")
	require.NoError(t, err)

	require.NoError(t, s.AddApps(ctx, a.ID, []string{"p1", "p2"}, []string{"from-a"}))
	require.NoError(t, s.AddApps(ctx, b.ID, []string{"p2", "p3"}, []string{"from-b"}))

	require.NoError(t, s.MergeLists(ctx, []string{a.ID, b.ID}, target.ID))

	assert.ElementsMatch(t, []string{"p1", "p2", "p3"}, packageSet(t, s, target.ID),
		"duplicates collapse")

	// First source processed wins the tag collision on p2.
	withApps, err := s.ListWithApps(ctx, target.ID)
	require.NoError(t, err)
	for _, m := range withApps.Entries {
		if m.PackageName == "p2" {
			assert.Equal(t, []string{"from-a"}, m.Tags)
		}
	}

	_, err = s.GetList(ctx, a.ID)
	assert.ErrorIs(t, err, common.ErrNotFound, "source lists are deleted")
	_, err = s.GetList(ctx, b.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMergeLists_TargetInSourceSetIsSkipped(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	a, err := s.CreateList(ctx, "A", "")
	require.NoError(t, err)
	target, err := s.CreateList(ctx, "T", "")
	require.NoError(t, err)
	require.NoError(t, s.AddApps(ctx, a.ID, []string{"p1"}, nil))
	require.NoError(t, s.AddApps(ctx, target.ID, []string{"p0"}, nil))

	require.NoError(t, s.MergeLists(ctx, []string{target.ID, a.ID}, target.ID))

	assert.ElementsMatch(t, []string{"p0", "p1"}, packageSet(t, s, target.ID))
	_, err = s.GetList(ctx, target.ID)
	assert.NoError(t, err, "the target must survive even when listed as a source")
}

func TestMergeLists_UnknownTargetRollsBack(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	a, err := s.CreateList(ctx, "A", "")
	require.NoError(t, err)
	require.NoError(t, s.AddApps(ctx, a.ID, []string{"p1"}, nil))

	err = s.MergeLists(ctx, []string{a.ID}, "no-such-list")
	require.Error(t, err)

	// The source is untouched: the merge is all-or-nothing.
	assert.ElementsMatch(t, []string{"p1"}, packageSet(t, s, a.ID))
}

func TestDuplicatesAfterMerge(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	a, err := s.CreateList(ctx, "A", "")
	require.NoError(t, err)
	b, err := s.CreateList(ctx, "B", "")
	require.NoError(t, err)
	target, err := s.CreateList(ctx, "T", "")
	require.NoError(t, err)
	require.NoError(t, s.AddApps(ctx, a.ID, []string{"p1", "p2"}, nil))
	require.NoError(t, s.AddApps(ctx, b.ID, []string{"p2", "p3"}, nil))
	require.NoError(t, s.MergeLists(ctx, []string{a.ID, b.ID}, target.ID))

	dups, err := s.DuplicatesInList(ctx, target.ID, []string{"p1", "p2", "p3"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"p1", "p2", "p3"}, dups)
}

func TestDeleteCollection_KeepLists(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	c, err := s.CreateCollection(ctx, "Work", "")
	require.NoError(t, err)
	l, err := s.CreateList(ctx, "Tools", c.ID)
	require.NoError(t, err)
	require.NoError(t, s.AddApps(ctx, l.ID, []string{"com.a", "com.b"}, nil))

	require.NoError(t, s.DeleteCollection(ctx, c.ID, false))

	_, err = s.GetCollection(ctx, c.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)

	got, err := s.GetList(ctx, l.ID)
	require.NoError(t, err)
	assert.Empty(t, got.CollectionID, "list is detached, not deleted")
	assert.ElementsMatch(t, []string{"com.a", "com.b"}, packageSet(t, s, l.ID),
		"memberships survive the detach")
}

func TestDeleteCollection_DeleteContainedLists(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	c, err := s.CreateCollection(ctx, "Work", "")
	require.NoError(t, err)
	l, err := s.CreateList(ctx, "Tools", c.ID)
	require.NoError(t, err)
	require.NoError(t, s.AddApps(ctx, l.ID, []string{"com.a"}, nil))

	require.NoError(t, s.DeleteCollection(ctx, c.ID, true))

	_, err = s.GetList(ctx, l.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestResolveList_MarksMissing(t *testing.T) {
	s := setupService(t,
		models.ResolvedApp{Label: "A", PackageName: "com.a", VersionName: "1.0"})
	ctx := context.Background()

	l, err := s.CreateList(ctx, "Tools", "")
	require.NoError(t, err)
	require.NoError(t, s.AddApps(ctx, l.ID, []string{"com.a", "com.gone"}, nil))

	_, entries, err := s.ResolveList(ctx, l.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	byPkg := map[string]models.ResolvedEntry{}
	for _, e := range entries {
		byPkg[e.Membership.PackageName] = e
	}

	resolved := byPkg["com.a"]
	require.NotNil(t, resolved.App)
	assert.False(t, resolved.Missing)
	assert.Equal(t, "A", resolved.App.Label)

	missing := byPkg["com.gone"]
	assert.True(t, missing.Missing)
	assert.Nil(t, missing.App)
}

func TestSubscribe_SignalsOnMutation(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	ch, cancel := s.Subscribe()
	defer cancel()

	_, err := s.CreateList(ctx, "Tools", "")
	require.NoError(t, err)

	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatal("expected a change signal after a mutation")
	}
}

func TestBuildIndex_FromStore(t *testing.T) {
	s := setupService(t)
	ctx := context.Background()

	c, err := s.CreateCollection(ctx, "Work", "")
	require.NoError(t, err)
	l1, err := s.CreateList(ctx, "Tools", c.ID)
	require.NoError(t, err)
	l2, err := s.CreateList(ctx, "Free", "")
	require.NoError(t, err)
	require.NoError(t, s.AddApps(ctx, l1.ID, []string{"com.a", "com.b"}, nil))
	require.NoError(t, s.AddApps(ctx, l2.ID, []string{"com.a"}, nil))

	idx, err := s.BuildIndex(ctx)
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{l1.ID, l2.ID}, idx.ListsByPackage["com.a"])
	assert.Equal(t, CollectionStats{Lists: 1, Apps: 2}, idx.Collections[c.ID])
	assert.Len(t, idx.Assigned, 2)
}
