package export

import "encoding/json"

// Legacy v1 documents use a flat shape with camel-cased SDK fields. They are
// accepted on read only; writing always produces schema v2.

type entryV1 struct {
	Title          string `json:"title"`
	PackageName    string `json:"packageName"`
	IsSystem       bool   `json:"isSystem"`
	Version        string `json:"version"`
	VersionCode    int64  `json:"versionCode"`
	ApkSize        int64  `json:"apkSize"`
	CacheSize      int64  `json:"cacheSize"`
	DataSize       int64  `json:"dataSize"`
	LastUpdateTime int64  `json:"lastUpdateTime"`
	MinSDK         int    `json:"minSDK"`
	TargetSDK      int    `json:"targetSDK"`
	InstallTime    int64  `json:"installTime"`
}

type listDocumentV1 struct {
	Version int             `json:"version"`
	Title   string          `json:"title"`
	Date    json.RawMessage `json:"date"`
	Apps    []entryV1       `json:"apps"`
}

type collectionDocumentV1 struct {
	Version     int              `json:"version"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Date        json.RawMessage  `json:"date"`
	Lists       []listDocumentV1 `json:"lists"`
}

// upgrade converts a v1 app entry into the canonical nested shape. Fields v1
// never carried (split APK size, enabled flag, installer source, native
// library dir) take their zero defaults; isEnabled defaults to true because
// v1 exporters only wrote installed, enabled apps.
func (e entryV1) upgrade() Entry {
	return Entry{
		Identity: Identity{
			Label:       e.Title,
			PackageName: e.PackageName,
			VersionName: e.Version,
			VersionCode: e.VersionCode,
		},
		Status: Status{
			IsSystem:  e.IsSystem,
			IsEnabled: true,
		},
		Specs: Specs{
			MinSdk:    e.MinSDK,
			TargetSdk: e.TargetSDK,
		},
		Storage: Storage{
			BaseApkSize: e.ApkSize,
			// Total is base plus split APKs, which v1 never carried.
			TotalDiskSpace: e.ApkSize,
			DataSize:       e.DataSize,
			CacheSize:      e.CacheSize,
		},
		Timestamps: Timestamps{
			FirstInstall: e.InstallTime,
			LastUpdate:   e.LastUpdateTime,
		},
	}
}

func upgradeEntries(apps []entryV1) []Entry {
	entries := make([]Entry, 0, len(apps))
	for _, a := range apps {
		entries = append(entries, a.upgrade())
	}
	return entries
}
