package registry

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/applists/internal/common"
	"github.com/dmitrijs2005/applists/internal/models"
)

// DefaultDpkgStatusPath is where Debian-family systems keep the package
// database.
const DefaultDpkgStatusPath = "/var/lib/dpkg/status"

// DpkgProvider reads the dpkg status file. Only packages whose Status line
// ends in "installed" are reported.
type DpkgProvider struct {
	// Path of the status file; DefaultDpkgStatusPath when empty.
	Path string
}

func (p *DpkgProvider) path() string {
	if p.Path != "" {
		return p.Path
	}
	return DefaultDpkgStatusPath
}

func (p *DpkgProvider) Scan(ctx context.Context) ([]models.ResolvedApp, error) {
	f, err := os.Open(p.path())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRegistryUnavailable, err)
	}
	defer f.Close()

	var (
		apps   []models.ResolvedApp
		stanza = map[string]string{}
	)

	flush := func() {
		if app, ok := stanzaToApp(stanza); ok {
			apps = append(apps, app)
		}
		stanza = map[string]string{}
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := scanner.Text()
		switch {
		case line == "":
			flush()
		case strings.HasPrefix(line, " "):
			// Continuation line of a multi-line field; only the Description
			// summary (its first line) matters here.
		default:
			key, value, found := strings.Cut(line, ":")
			if found {
				stanza[key] = strings.TrimSpace(value)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrRegistryUnavailable, err)
	}
	flush()

	return apps, nil
}

// statusInstalled reports whether a dpkg status line ("want flag status")
// describes an installed package. Only an exact "installed" third field
// counts: "not-installed" and "half-installed" must not match.
func statusInstalled(status string) bool {
	fields := strings.Fields(status)
	return len(fields) == 3 && fields[2] == "installed"
}

func stanzaToApp(stanza map[string]string) (models.ResolvedApp, bool) {
	name := stanza["Package"]
	if name == "" || !statusInstalled(stanza["Status"]) {
		return models.ResolvedApp{}, false
	}

	label := name
	if d := stanza["Description"]; d != "" {
		label = d
	}

	// Installed-Size is in KiB.
	var size int64
	if v, err := strconv.ParseInt(stanza["Installed-Size"], 10, 64); err == nil {
		size = v * 1024
	}

	return models.ResolvedApp{
		Label:           label,
		PackageName:     name,
		System:          stanza["Essential"] == "yes" || strings.HasPrefix(stanza["Priority"], "required"),
		Enabled:         true,
		InstallerSource: "dpkg",
		VersionName:     stanza["Version"],
		BaseApkSize:     size,
		InstalledAt:     time.Time{},
		UpdatedAt:       time.Time{},
	}, true
}
