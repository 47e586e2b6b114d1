package export

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/dmitrijs2005/applists/internal/catalog"
	"github.com/dmitrijs2005/applists/internal/common"
	"github.com/dmitrijs2005/applists/internal/filex"
	"github.com/dmitrijs2005/applists/internal/logging"
	"github.com/dmitrijs2005/applists/internal/registry"
)

// ValidationResult partitions a document's entries against the live
// installed-app set.
type ValidationResult struct {
	Installed []Entry
	Missing   []Entry
}

// Total is the number of entries examined.
func (r ValidationResult) Total() int { return len(r.Installed) + len(r.Missing) }

// Validate splits entries into those whose package is currently installed and
// those that are not.
func Validate(entries []Entry, installed map[string]struct{}) ValidationResult {
	var r ValidationResult
	for _, e := range entries {
		if _, ok := installed[e.Identity.PackageName]; ok {
			r.Installed = append(r.Installed, e)
		} else {
			r.Missing = append(r.Missing, e)
		}
	}
	return r
}

// ImportSummary reports what a confirmed import created.
type ImportSummary struct {
	ListName       string
	CollectionName string
	Lists          int
	TotalApps      int
	ImportedApps   int
}

// Service produces export documents from catalog state and applies parsed
// documents back onto it. Exports only ever include apps the registry can
// still resolve; imports never reuse identifiers from the document.
type Service struct {
	catalog *catalog.Service
	cache   *registry.Cache
	log     logging.Logger
}

func NewService(cat *catalog.Service, cache *registry.Cache, log logging.Logger) *Service {
	return &Service{catalog: cat, cache: cache, log: log.With("component", "export")}
}

func (s *Service) newMeta(description string, totalApps int) Meta {
	device, err := os.Hostname()
	if err != nil {
		device = "unknown"
	}
	return Meta{
		SchemaVersion:  SchemaVersion,
		Generator:      Generator,
		Device:         device,
		AndroidVersion: runtime.GOOS,
		GeneratedAt:    time.Now().UnixMilli(),
		Description:    description,
		TotalApps:      totalApps,
	}
}

// ExportList builds a v2 document for one list. Memberships whose package the
// registry no longer resolves are left out of the export.
func (s *Service) ExportList(ctx context.Context, listID string) (*ListDocument, error) {
	list, entries, err := s.catalog.ResolveList(ctx, listID)
	if err != nil {
		return nil, err
	}
	apps := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Missing || e.App == nil {
			continue
		}
		apps = append(apps, entryFromApp(*e.App))
	}
	return &ListDocument{
		Meta: s.newMeta(listTitlePrefix+list.Title, len(apps)),
		Apps: apps,
	}, nil
}

// ExportCollection builds a v2 document for a collection and all its lists.
func (s *Service) ExportCollection(ctx context.Context, collectionID string) (*CollectionDocument, error) {
	cwl, err := s.catalog.CollectionWithLists(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	sections := make([]ListSection, 0, len(cwl.Lists))
	total := 0
	for _, l := range cwl.Lists {
		_, entries, err := s.catalog.ResolveList(ctx, l.ID)
		if err != nil {
			return nil, err
		}
		apps := make([]Entry, 0, len(entries))
		for _, e := range entries {
			if e.Missing || e.App == nil {
				continue
			}
			apps = append(apps, entryFromApp(*e.App))
		}
		total += len(apps)
		sections = append(sections, ListSection{ListName: l.Title, Apps: apps})
	}
	description := cwl.Collection.Description
	if description == "" {
		description = collectionTitlePrefix + cwl.Collection.Name
	}
	return &CollectionDocument{
		Meta: s.newMeta(description, total),
		CollectionInfo: CollectionInfo{
			Name:        cwl.Collection.Name,
			Description: cwl.Collection.Description,
			TotalLists:  len(sections),
		},
		Lists: sections,
	}, nil
}

// ExportListToFile writes the list's v2 document to path as indented JSON.
func (s *Service) ExportListToFile(ctx context.Context, listID, path string) error {
	doc, err := s.ExportList(ctx, listID)
	if err != nil {
		return err
	}
	data, err := EncodeList(doc)
	if err != nil {
		return err
	}
	if _, err := filex.EnsureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	s.log.Info(ctx, "exported list", "list_id", listID, "path", path, "apps", doc.Meta.TotalApps)
	return nil
}

// ExportCollectionToFile writes the collection's v2 document to path.
func (s *Service) ExportCollectionToFile(ctx context.Context, collectionID, path string) error {
	doc, err := s.ExportCollection(ctx, collectionID)
	if err != nil {
		return err
	}
	data, err := EncodeCollection(doc)
	if err != nil {
		return err
	}
	if _, err := filex.EnsureParentDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	s.log.Info(ctx, "exported collection", "collection_id", collectionID, "path", path,
		"lists", doc.CollectionInfo.TotalLists, "apps", doc.Meta.TotalApps)
	return nil
}

// ImportFile reads and parses an export file and validates its entries
// against the current registry snapshot. Nothing is written to the catalog;
// the caller inspects the result and then confirms with ConfirmImportList or
// ConfirmImportCollection.
func (s *Service) ImportFile(ctx context.Context, path string) (*Document, ValidationResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, ValidationResult{}, fmt.Errorf("reading import: %w", err)
	}
	doc, err := Parse(raw)
	if err != nil {
		return nil, ValidationResult{}, err
	}
	if _, err := s.cache.Apps(ctx); err != nil {
		return nil, ValidationResult{}, err
	}
	result := Validate(doc.Entries(), s.cache.InstalledSet())
	s.log.Info(ctx, "parsed import", "kind", doc.Kind.String(), "schema", doc.SchemaVersion,
		"installed", len(result.Installed), "missing", len(result.Missing))
	return doc, result, nil
}

// ConfirmImportList creates a new list named after the document and adds its
// package names to it. With includeMissing false, only packages the registry
// currently resolves are added.
func (s *Service) ConfirmImportList(ctx context.Context, doc *Document, includeMissing bool) (*ImportSummary, error) {
	if doc.Kind != KindList {
		return nil, fmt.Errorf("%w: expected a list document, got %s", common.ErrInvalidDocument, doc.Kind)
	}
	list, err := s.catalog.CreateList(ctx, doc.Title, "")
	if err != nil {
		return nil, err
	}
	packages, err := s.selectPackages(ctx, doc.Apps, includeMissing)
	if err != nil {
		return nil, err
	}
	if len(packages) > 0 {
		if err := s.catalog.AddApps(ctx, list.ID, packages, nil); err != nil {
			return nil, err
		}
	}
	return &ImportSummary{
		ListName:     list.Title,
		Lists:        1,
		TotalApps:    len(doc.Apps),
		ImportedApps: len(packages),
	}, nil
}

// ConfirmImportCollection creates a new collection and one list per document
// section. The missing-inclusion choice applies uniformly to every list.
func (s *Service) ConfirmImportCollection(ctx context.Context, doc *Document, includeMissing bool) (*ImportSummary, error) {
	if doc.Kind != KindCollection {
		return nil, fmt.Errorf("%w: expected a collection document, got %s", common.ErrInvalidDocument, doc.Kind)
	}
	coll, err := s.catalog.CreateCollection(ctx, doc.Collection.Name, doc.Collection.Description)
	if err != nil {
		return nil, err
	}
	summary := &ImportSummary{CollectionName: coll.Name}
	for _, section := range doc.Lists {
		list, err := s.catalog.CreateList(ctx, section.ListName, coll.ID)
		if err != nil {
			return nil, err
		}
		packages, err := s.selectPackages(ctx, section.Apps, includeMissing)
		if err != nil {
			return nil, err
		}
		if len(packages) > 0 {
			if err := s.catalog.AddApps(ctx, list.ID, packages, nil); err != nil {
				return nil, err
			}
		}
		summary.Lists++
		summary.TotalApps += len(section.Apps)
		summary.ImportedApps += len(packages)
	}
	return summary, nil
}

func (s *Service) selectPackages(ctx context.Context, entries []Entry, includeMissing bool) ([]string, error) {
	if includeMissing {
		packages := make([]string, 0, len(entries))
		for _, e := range entries {
			packages = append(packages, e.Identity.PackageName)
		}
		return packages, nil
	}
	if _, err := s.cache.Apps(ctx); err != nil {
		return nil, err
	}
	result := Validate(entries, s.cache.InstalledSet())
	packages := make([]string, 0, len(result.Installed))
	for _, e := range result.Installed {
		packages = append(packages, e.Identity.PackageName)
	}
	return packages, nil
}

// SuggestFileName turns a list or collection name into a portable JSON file
// name.
func SuggestFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "export"
	}
	return strings.ReplaceAll(name, " ", "_") + ".json"
}
