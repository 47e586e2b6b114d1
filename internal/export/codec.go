package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/applists/internal/common"
	"github.com/dmitrijs2005/applists/internal/models"
)

// Kind distinguishes the two document shapes.
type Kind int

const (
	KindList Kind = iota
	KindCollection
)

func (k Kind) String() string {
	if k == KindCollection {
		return "collection"
	}
	return "list"
}

// Document is the schema-independent result of parsing an export file. Both
// v1 and v2 inputs normalize into it; app entries from legacy documents are
// upgraded to the nested shape on the way in.
type Document struct {
	Kind          Kind
	SchemaVersion int

	// Title is the suggested name for an imported list (KindList only).
	Title string

	// Collection describes the exported collection (KindCollection only).
	Collection CollectionInfo

	Apps  []Entry       // KindList
	Lists []ListSection // KindCollection
}

// Entries returns every app entry in the document regardless of kind.
func (d *Document) Entries() []Entry {
	if d.Kind == KindList {
		return d.Apps
	}
	var all []Entry
	for _, s := range d.Lists {
		all = append(all, s.Apps...)
	}
	return all
}

// listTitlePrefix is what v2 list exports put in front of the list title in
// the meta description.
const listTitlePrefix = "List: "

// collectionTitlePrefix is the default meta description for collection
// exports that carry no description of their own.
const collectionTitlePrefix = "Collection: "

const fallbackListTitle = "Imported list"

// Parse detects the schema version and shape of raw and normalizes it into a
// Document. Unknown top-level fields are ignored; a payload matching neither
// schema yields ErrUnknownSchema.
func Parse(raw []byte) (*Document, error) {
	var probe struct {
		Meta *struct {
			SchemaVersion int `json:"schemaVersion"`
		} `json:"meta"`
		Version        int             `json:"version"`
		CollectionInfo json.RawMessage `json:"collectionInfo"`
		Lists          json.RawMessage `json:"lists"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidDocument, err)
	}

	switch {
	case probe.Meta != nil && probe.Meta.SchemaVersion == SchemaVersion:
		if len(probe.CollectionInfo) > 0 {
			return parseCollectionV2(raw)
		}
		return parseListV2(raw)
	case probe.Version == 1:
		if len(probe.Lists) > 0 {
			return parseCollectionV1(raw)
		}
		return parseListV1(raw)
	case probe.Meta != nil:
		return nil, fmt.Errorf("%w: schemaVersion %d", common.ErrUnknownSchema, probe.Meta.SchemaVersion)
	default:
		return nil, common.ErrUnknownSchema
	}
}

func parseListV2(raw []byte) (*Document, error) {
	var doc ListDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidDocument, err)
	}
	return &Document{
		Kind:          KindList,
		SchemaVersion: SchemaVersion,
		Title:         titleFromDescription(doc.Meta.Description),
		Apps:          doc.Apps,
	}, nil
}

func parseCollectionV2(raw []byte) (*Document, error) {
	var doc CollectionDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidDocument, err)
	}
	return &Document{
		Kind:          KindCollection,
		SchemaVersion: SchemaVersion,
		Collection:    doc.CollectionInfo,
		Lists:         doc.Lists,
	}, nil
}

func parseListV1(raw []byte) (*Document, error) {
	var doc listDocumentV1
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidDocument, err)
	}
	title := doc.Title
	if title == "" {
		title = fallbackListTitle
	}
	return &Document{
		Kind:          KindList,
		SchemaVersion: 1,
		Title:         title,
		Apps:          upgradeEntries(doc.Apps),
	}, nil
}

func parseCollectionV1(raw []byte) (*Document, error) {
	var doc collectionDocumentV1
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidDocument, err)
	}
	sections := make([]ListSection, 0, len(doc.Lists))
	for _, l := range doc.Lists {
		sections = append(sections, ListSection{ListName: l.Title, Apps: upgradeEntries(l.Apps)})
	}
	return &Document{
		Kind:          KindCollection,
		SchemaVersion: 1,
		Collection: CollectionInfo{
			Name:        doc.Name,
			Description: doc.Description,
			TotalLists:  len(doc.Lists),
		},
		Lists: sections,
	}, nil
}

func titleFromDescription(description string) string {
	title := strings.TrimPrefix(description, listTitlePrefix)
	title = strings.TrimSpace(title)
	if title == "" {
		return fallbackListTitle
	}
	return title
}

// EncodeList renders a v2 list document as indented JSON.
func EncodeList(doc *ListDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// EncodeCollection renders a v2 collection document as indented JSON.
func EncodeCollection(doc *CollectionDocument) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// entryFromApp snapshots a resolved app into the document shape.
func entryFromApp(app models.ResolvedApp) Entry {
	return Entry{
		Identity: Identity{
			Label:       app.Label,
			PackageName: app.PackageName,
			VersionName: app.VersionName,
			VersionCode: app.VersionCode,
		},
		Status: Status{
			IsSystem:        app.System,
			IsEnabled:       app.Enabled,
			InstallerSource: nullable(app.InstallerSource),
		},
		Specs: Specs{
			MinSdk:           app.MinSDK,
			TargetSdk:        app.TargetSDK,
			NativeLibraryDir: nullable(app.NativeLibraryDir),
		},
		Storage: Storage{
			BaseApkSize:    app.BaseApkSize,
			SplitApksSize:  app.SplitApksSize,
			TotalDiskSpace: app.TotalDiskSpace(),
			DataSize:       app.DataSize,
			CacheSize:      app.CacheSize,
		},
		Timestamps: Timestamps{
			FirstInstall: toMillis(app.InstalledAt),
			LastUpdate:   toMillis(app.UpdatedAt),
		},
	}
}

func toMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
