// Package export implements the versioned JSON document format for sharing
// lists and collections, and the import path that rebuilds catalog state from
// such documents. Schema v2 (nested meta/identity/specs/storage groups) is
// canonical for writing; the flat legacy v1 shape is still accepted on read.
package export

// SchemaVersion is the version written into every produced document.
const SchemaVersion = 2

// Generator identifies documents produced by this tool.
const Generator = "applists"

// Meta is the header block of every v2 document.
type Meta struct {
	SchemaVersion  int    `json:"schemaVersion"`
	Generator      string `json:"generator"`
	Device         string `json:"device"`
	AndroidVersion string `json:"androidVersion"`
	GeneratedAt    int64  `json:"generatedAt"`
	Description    string `json:"description"`
	TotalApps      int    `json:"totalApps"`
}

// Identity names one application and its version.
type Identity struct {
	Label       string `json:"label"`
	PackageName string `json:"packageName"`
	VersionName string `json:"versionName"`
	VersionCode int64  `json:"versionCode"`
}

// Status captures install-state flags.
type Status struct {
	IsSystem        bool    `json:"isSystem"`
	IsEnabled       bool    `json:"isEnabled"`
	InstallerSource *string `json:"installerSource"`
}

// Specs captures platform requirements.
type Specs struct {
	MinSdk           int     `json:"minSdk"`
	TargetSdk        int     `json:"targetSdk"`
	NativeLibraryDir *string `json:"nativeLibraryDir"`
}

// Storage captures on-disk sizes in bytes.
type Storage struct {
	BaseApkSize    int64 `json:"baseApkSize"`
	SplitApksSize  int64 `json:"splitApksSize"`
	TotalDiskSpace int64 `json:"totalDiskSpace"`
	DataSize       int64 `json:"dataSize"`
	CacheSize      int64 `json:"cacheSize"`
}

// Timestamps are epoch milliseconds.
type Timestamps struct {
	FirstInstall int64 `json:"firstInstall"`
	LastUpdate   int64 `json:"lastUpdate"`
}

// Entry is one application snapshot inside a document.
type Entry struct {
	Identity   Identity   `json:"identity"`
	Status     Status     `json:"status"`
	Specs      Specs      `json:"specs"`
	Storage    Storage    `json:"storage"`
	Timestamps Timestamps `json:"timestamps"`
}

// ListDocument is the v2 export of a single list.
type ListDocument struct {
	Meta Meta    `json:"meta"`
	Apps []Entry `json:"apps"`
}

// CollectionInfo describes the exported collection itself.
type CollectionInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TotalLists  int    `json:"totalLists"`
}

// ListSection is one named list inside a collection export. It has no meta
// block of its own.
type ListSection struct {
	ListName string  `json:"listName"`
	Apps     []Entry `json:"apps"`
}

// CollectionDocument is the v2 export of a collection with its lists.
type CollectionDocument struct {
	Meta           Meta           `json:"meta"`
	CollectionInfo CollectionInfo `json:"collectionInfo"`
	Lists          []ListSection  `json:"lists"`
}
