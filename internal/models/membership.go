package models

import "time"

// Membership links one list to one package name. The (ListID, PackageName)
// pair is unique: re-adding the same package to a list is an upsert, never a
// second row.
type Membership struct {
	ListID      string
	PackageName string
	AddedAt     time.Time

	// Tags is an ordered set of free-form labels. The storage layer persists
	// it as a single delimited column; everything above it sees a slice.
	Tags []string
}
