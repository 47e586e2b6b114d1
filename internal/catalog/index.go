package catalog

import "github.com/dmitrijs2005/applists/internal/models"

// CollectionStats aggregates one collection's membership numbers.
type CollectionStats struct {
	// Lists is the number of lists owned by the collection.
	Lists int
	// Apps is the transitive membership count across those lists.
	Apps int
}

// Index holds the derived views over the current store state: the reverse
// package-to-lists lookup, per-list and per-collection counts, and the set of
// packages assigned anywhere. It is recomputed from scratch on demand, never
// persisted.
type Index struct {
	// ListsByPackage maps a package name to the ids of the lists holding it.
	ListsByPackage map[string][]string

	// AppCounts maps a list id to its membership count.
	AppCounts map[string]int

	// Collections maps a collection id to its aggregate counts.
	Collections map[string]CollectionStats

	// Assigned is the set of package names present in at least one list.
	Assigned map[string]struct{}
}

// BuildIndex derives an Index from a consistent snapshot of lists and
// membership rows. It is a pure function of its inputs.
func BuildIndex(lists []models.List, memberships []models.Membership) Index {
	idx := Index{
		ListsByPackage: make(map[string][]string),
		AppCounts:      make(map[string]int, len(lists)),
		Collections:    make(map[string]CollectionStats),
		Assigned:       make(map[string]struct{}),
	}

	collectionOf := make(map[string]string, len(lists))
	for _, l := range lists {
		idx.AppCounts[l.ID] = 0
		collectionOf[l.ID] = l.CollectionID
		if l.CollectionID != "" {
			stats := idx.Collections[l.CollectionID]
			stats.Lists++
			idx.Collections[l.CollectionID] = stats
		}
	}

	for _, m := range memberships {
		idx.ListsByPackage[m.PackageName] = append(idx.ListsByPackage[m.PackageName], m.ListID)
		idx.AppCounts[m.ListID]++
		idx.Assigned[m.PackageName] = struct{}{}
		if col := collectionOf[m.ListID]; col != "" {
			stats := idx.Collections[col]
			stats.Apps++
			idx.Collections[col] = stats
		}
	}

	return idx
}
