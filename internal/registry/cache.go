package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/applists/internal/models"
)

// Cache holds the most recent scan result. It is pull-based: the snapshot
// only changes on Refresh, there is no subscription to install/uninstall
// events. One writer (Refresh), any number of concurrent readers.
type Cache struct {
	provider Provider

	mu        sync.RWMutex
	apps      []models.ResolvedApp
	byPackage map[string]models.ResolvedApp
}

// NewCache wraps a provider. The cache starts empty; call Refresh (or Apps,
// which refreshes lazily) before reading.
func NewCache(p Provider) *Cache {
	return &Cache{provider: p}
}

// Refresh re-scans the provider and replaces the snapshot. On scan failure
// the previous snapshot is kept.
func (c *Cache) Refresh(ctx context.Context) error {
	apps, err := c.provider.Scan(ctx)
	if err != nil {
		return fmt.Errorf("registry scan failed: %w", err)
	}

	sort.Slice(apps, func(i, j int) bool {
		return strings.ToLower(apps[i].Label) < strings.ToLower(apps[j].Label)
	})

	byPackage := make(map[string]models.ResolvedApp, len(apps))
	for _, a := range apps {
		byPackage[a.PackageName] = a
	}

	c.mu.Lock()
	c.apps = apps
	c.byPackage = byPackage
	c.mu.Unlock()
	return nil
}

// Apps returns the snapshot, refreshing first if the cache has never been
// filled.
func (c *Cache) Apps(ctx context.Context) ([]models.ResolvedApp, error) {
	c.mu.RLock()
	filled := c.byPackage != nil
	c.mu.RUnlock()

	if !filled {
		if err := c.Refresh(ctx); err != nil {
			return nil, err
		}
	}
	return c.Snapshot(), nil
}

// Snapshot returns a copy of the current application set, sorted by label.
func (c *Cache) Snapshot() []models.ResolvedApp {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.ResolvedApp, len(c.apps))
	copy(out, c.apps)
	return out
}

// Lookup resolves one package name against the snapshot.
func (c *Cache) Lookup(packageName string) (models.ResolvedApp, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	a, ok := c.byPackage[packageName]
	return a, ok
}

// InstalledSet returns the package names currently in the snapshot.
func (c *Cache) InstalledSet() map[string]struct{} {
	c.mu.RLock()
	defer c.mu.RUnlock()
	set := make(map[string]struct{}, len(c.byPackage))
	for pkg := range c.byPackage {
		set[pkg] = struct{}{}
	}
	return set
}
