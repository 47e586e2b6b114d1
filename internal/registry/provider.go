// Package registry resolves the set of applications installed on the host.
// A Provider scans one package source; Cache keeps an in-memory snapshot of
// the last scan that callers can look packages up in without re-scanning.
package registry

import (
	"context"

	"github.com/dmitrijs2005/applists/internal/models"
)

// Provider produces the full installed-application set of one package source.
type Provider interface {
	// Scan reads the source and returns every installed application.
	Scan(ctx context.Context) ([]models.ResolvedApp, error)
}
