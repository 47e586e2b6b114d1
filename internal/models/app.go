package models

import "time"

// ResolvedApp is live metadata about an installed application, produced by
// querying the package registry at lookup time. It is never persisted; a
// membership whose package has no ResolvedApp is reported as missing.
type ResolvedApp struct {
	Label       string
	PackageName string

	System  bool
	Enabled bool
	// InstallerSource names the origin of the package ("dpkg", a store, ...),
	// "" when unknown.
	InstallerSource string

	VersionName string
	VersionCode int64

	BaseApkSize   int64
	SplitApksSize int64
	DataSize      int64
	CacheSize     int64

	MinSDK           int
	TargetSDK        int
	NativeLibraryDir string

	InstalledAt time.Time
	UpdatedAt   time.Time
}

// TotalDiskSpace is the base package plus any split artifacts.
func (a ResolvedApp) TotalDiskSpace() int64 {
	return a.BaseApkSize + a.SplitApksSize
}

// ResolvedEntry is the presentation-time join of a membership row with the
// live registry: either a resolved app or a missing marker. Missing status is
// computed on every resolution, never stored.
type ResolvedEntry struct {
	Membership Membership
	App        *ResolvedApp
	Missing    bool
}
