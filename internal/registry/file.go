package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/applists/internal/common"
	"github.com/dmitrijs2005/applists/internal/models"
)

// FileProvider reads an inventory JSON file: an array of application
// records. It serves hosts without a supported package manager and makes
// scans reproducible in tests.
type FileProvider struct {
	Path string
}

type inventoryRecord struct {
	Label           string `json:"label"`
	PackageName     string `json:"packageName"`
	IsSystem        bool   `json:"isSystem"`
	IsEnabled       *bool  `json:"isEnabled"`
	InstallerSource string `json:"installerSource"`
	VersionName     string `json:"versionName"`
	VersionCode     int64  `json:"versionCode"`
	BaseApkSize     int64  `json:"baseApkSize"`
	SplitApksSize   int64  `json:"splitApksSize"`
	DataSize        int64  `json:"dataSize"`
	CacheSize       int64  `json:"cacheSize"`
	MinSdk          int    `json:"minSdk"`
	TargetSdk       int    `json:"targetSdk"`
	NativeLibDir    string `json:"nativeLibraryDir"`
	FirstInstall    int64  `json:"firstInstall"`
	LastUpdate      int64  `json:"lastUpdate"`
}

func (p *FileProvider) Scan(ctx context.Context) ([]models.ResolvedApp, error) {
	data, err := os.ReadFile(p.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRegistryUnavailable, err)
	}

	var records []inventoryRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRegistryUnavailable, err)
	}

	apps := make([]models.ResolvedApp, 0, len(records))
	for _, rec := range records {
		if rec.PackageName == "" {
			continue
		}
		label := rec.Label
		if label == "" {
			label = rec.PackageName
		}
		enabled := true
		if rec.IsEnabled != nil {
			enabled = *rec.IsEnabled
		}
		apps = append(apps, models.ResolvedApp{
			Label:            label,
			PackageName:      rec.PackageName,
			System:           rec.IsSystem,
			Enabled:          enabled,
			InstallerSource:  rec.InstallerSource,
			VersionName:      rec.VersionName,
			VersionCode:      rec.VersionCode,
			BaseApkSize:      rec.BaseApkSize,
			SplitApksSize:    rec.SplitApksSize,
			DataSize:         rec.DataSize,
			CacheSize:        rec.CacheSize,
			MinSDK:           rec.MinSdk,
			TargetSDK:        rec.TargetSdk,
			NativeLibraryDir: rec.NativeLibDir,
			InstalledAt:      time.UnixMilli(rec.FirstInstall).UTC(),
			UpdatedAt:        time.UnixMilli(rec.LastUpdate).UTC(),
		})
	}
	return apps, nil
}
