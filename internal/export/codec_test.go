package export

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/applists/internal/common"
	"github.com/dmitrijs2005/applists/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const v2ListDoc = `{
  "meta": {
    "schemaVersion": 2,
    "generator": "applists",
    "device": "pixel",
    "androidVersion": "14",
    "generatedAt": 1700000000000,
    "description": "List: Daily tools",
    "totalApps": 2
  },
  "apps": [
    {
      "identity": {"label": "Firefox", "packageName": "org.mozilla.firefox", "versionName": "121.0", "versionCode": 2016031339},
      "status": {"isSystem": false, "isEnabled": true, "installerSource": "com.android.vending"},
      "specs": {"minSdk": 21, "targetSdk": 34, "nativeLibraryDir": null},
      "storage": {"baseApkSize": 80000000, "splitApksSize": 5000000, "totalDiskSpace": 85000000, "dataSize": 12000000, "cacheSize": 300000},
      "timestamps": {"firstInstall": 1690000000000, "lastUpdate": 1699000000000}
    },
    {
      "identity": {"label": "Signal", "packageName": "org.thoughtcrime.securesms", "versionName": "6.44", "versionCode": 130044},
      "status": {"isSystem": false, "isEnabled": true, "installerSource": null},
      "specs": {"minSdk": 23, "targetSdk": 33, "nativeLibraryDir": "arm64"},
      "storage": {"baseApkSize": 60000000, "splitApksSize": 0, "totalDiskSpace": 60000000, "dataSize": 90000000, "cacheSize": 100000},
      "timestamps": {"firstInstall": 1680000000000, "lastUpdate": 1698000000000}
    }
  ]
}`

const v2CollectionDoc = `{
  "meta": {"schemaVersion": 2, "generator": "applists", "device": "pixel", "androidVersion": "14", "generatedAt": 1700000000000, "description": "Stuff", "totalApps": 1},
  "collectionInfo": {"name": "Essentials", "description": "Stuff", "totalLists": 1},
  "lists": [
    {"listName": "Comms", "apps": [
      {"identity": {"label": "Signal", "packageName": "org.thoughtcrime.securesms", "versionName": "6.44", "versionCode": 130044},
       "status": {"isSystem": false, "isEnabled": true, "installerSource": null},
       "specs": {"minSdk": 23, "targetSdk": 33, "nativeLibraryDir": null},
       "storage": {"baseApkSize": 60000000, "splitApksSize": 0, "totalDiskSpace": 60000000, "dataSize": 0, "cacheSize": 0},
       "timestamps": {"firstInstall": 0, "lastUpdate": 0}}
    ]}
  ]
}`

const v1ListDoc = `{
  "version": 1,
  "title": "Old backup",
  "date": "2021-03-14",
  "apps": [
    {"title": "Firefox", "packageName": "org.mozilla.firefox", "isSystem": false,
     "version": "87.0", "versionCode": 87, "apkSize": 70000000, "cacheSize": 1000,
     "dataSize": 2000, "lastUpdateTime": 1610000000000, "minSDK": 21, "targetSDK": 30,
     "installTime": 1600000000000}
  ]
}`

const v1CollectionDoc = `{
  "version": 1,
  "name": "Archive",
  "description": "Pre-migration backup",
  "date": 1610000000000,
  "lists": [
    {"version": 1, "title": "Games", "apps": [
      {"title": "2048", "packageName": "com.example.game", "isSystem": false,
       "version": "1.0", "versionCode": 1, "apkSize": 100, "cacheSize": 0, "dataSize": 0,
       "lastUpdateTime": 0, "minSDK": 16, "targetSDK": 28, "installTime": 0}
    ]}
  ]
}`

func TestParse_V2List(t *testing.T) {
	doc, err := Parse([]byte(v2ListDoc))
	require.NoError(t, err)

	assert.Equal(t, KindList, doc.Kind)
	assert.Equal(t, 2, doc.SchemaVersion)
	assert.Equal(t, "Daily tools", doc.Title, "title comes from the description minus the prefix")
	require.Len(t, doc.Apps, 2)

	fx := doc.Apps[0]
	assert.Equal(t, "org.mozilla.firefox", fx.Identity.PackageName)
	require.NotNil(t, fx.Status.InstallerSource)
	assert.Equal(t, "com.android.vending", *fx.Status.InstallerSource)
	assert.Nil(t, fx.Specs.NativeLibraryDir)
	assert.Equal(t, int64(85000000), fx.Storage.TotalDiskSpace)
}

func TestParse_V2Collection(t *testing.T) {
	doc, err := Parse([]byte(v2CollectionDoc))
	require.NoError(t, err)

	assert.Equal(t, KindCollection, doc.Kind)
	assert.Equal(t, "Essentials", doc.Collection.Name)
	assert.Equal(t, 1, doc.Collection.TotalLists)
	require.Len(t, doc.Lists, 1)
	assert.Equal(t, "Comms", doc.Lists[0].ListName)
	assert.Len(t, doc.Entries(), 1)
}

func TestParse_V1List(t *testing.T) {
	doc, err := Parse([]byte(v1ListDoc))
	require.NoError(t, err)

	assert.Equal(t, KindList, doc.Kind)
	assert.Equal(t, 1, doc.SchemaVersion)
	assert.Equal(t, "Old backup", doc.Title)
	require.Len(t, doc.Apps, 1)

	e := doc.Apps[0]
	assert.Equal(t, "Firefox", e.Identity.Label)
	assert.Equal(t, "87.0", e.Identity.VersionName)
	assert.Equal(t, 21, e.Specs.MinSdk)
	assert.Equal(t, 30, e.Specs.TargetSdk)
	assert.Equal(t, int64(70000000), e.Storage.BaseApkSize)
	assert.Equal(t, int64(70000000), e.Storage.TotalDiskSpace,
		"total is base plus split APKs, and v1 never carried splits")
	assert.True(t, e.Status.IsEnabled, "v1 entries default to enabled")
	assert.Equal(t, int64(1600000000000), e.Timestamps.FirstInstall)
}

func TestParse_V1Collection(t *testing.T) {
	doc, err := Parse([]byte(v1CollectionDoc))
	require.NoError(t, err)

	assert.Equal(t, KindCollection, doc.Kind)
	assert.Equal(t, "Archive", doc.Collection.Name)
	assert.Equal(t, "Pre-migration backup", doc.Collection.Description)
	assert.Equal(t, 1, doc.Collection.TotalLists)
	require.Len(t, doc.Lists, 1)
	assert.Equal(t, "Games", doc.Lists[0].ListName)
	assert.Equal(t, "com.example.game", doc.Lists[0].Apps[0].Identity.PackageName)
}

func TestParse_UnknownSchema(t *testing.T) {
	cases := map[string]string{
		"empty object":          `{}`,
		"future meta version":   `{"meta": {"schemaVersion": 3}, "apps": []}`,
		"unrelated payload":     `{"hello": "world"}`,
		"unsupported v1 bumped": `{"version": 7, "title": "x", "apps": []}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			assert.ErrorIs(t, err, common.ErrUnknownSchema)
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse([]byte(`{"meta": {"schemaVersion": 2}, "apps": "nope"}`))
	assert.ErrorIs(t, err, common.ErrInvalidDocument)

	_, err = Parse([]byte(`not json`))
	assert.ErrorIs(t, err, common.ErrInvalidDocument)
}

func TestParse_IgnoresUnknownFields(t *testing.T) {
	raw := `{"version": 1, "title": "T", "apps": [], "exportedBy": "someone", "extra": {"x": 1}}`
	doc, err := Parse([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "T", doc.Title)
}

func TestTitleFromDescription(t *testing.T) {
	assert.Equal(t, "Daily", titleFromDescription("List: Daily"))
	assert.Equal(t, "no prefix here", titleFromDescription("no prefix here"))
	assert.Equal(t, fallbackListTitle, titleFromDescription(""))
	assert.Equal(t, fallbackListTitle, titleFromDescription("List: "))
}

func TestEncodeList_RoundTrip(t *testing.T) {
	app := models.ResolvedApp{
		Label:           "Firefox",
		PackageName:     "org.mozilla.firefox",
		Enabled:         true,
		InstallerSource: "dpkg",
		VersionName:     "121.0",
		VersionCode:     42,
		BaseApkSize:     100,
		SplitApksSize:   10,
		DataSize:        5,
		CacheSize:       1,
		MinSDK:          21,
		TargetSDK:       34,
		InstalledAt:     time.UnixMilli(1690000000000),
		UpdatedAt:       time.UnixMilli(1699000000000),
	}
	doc := &ListDocument{
		Meta: Meta{SchemaVersion: SchemaVersion, Generator: Generator,
			Description: listTitlePrefix + "Tools", TotalApps: 1},
		Apps: []Entry{entryFromApp(app)},
	}

	data, err := EncodeList(doc)
	require.NoError(t, err)

	parsed, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, KindList, parsed.Kind)
	assert.Equal(t, "Tools", parsed.Title)
	require.Len(t, parsed.Apps, 1)
	assert.Equal(t, doc.Apps[0], parsed.Apps[0])
	assert.Equal(t, int64(110), parsed.Apps[0].Storage.TotalDiskSpace)
	assert.Equal(t, int64(1690000000000), parsed.Apps[0].Timestamps.FirstInstall)
}

func TestEntryFromApp_ZeroTime(t *testing.T) {
	e := entryFromApp(models.ResolvedApp{PackageName: "com.x"})
	assert.Zero(t, e.Timestamps.FirstInstall)
	assert.Zero(t, e.Timestamps.LastUpdate)
	assert.Nil(t, e.Status.InstallerSource)
}
