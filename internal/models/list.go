// Package models defines the catalog's data model: lists, collections,
// memberships and resolved application records.
package models

import "time"

// List is a named, user-created grouping of application package names.
// Lists are ordered by most-recent update wherever they are enumerated.
type List struct {
	// ID is a globally unique identifier assigned at creation time.
	ID string

	// Title is the user-visible name.
	Title string

	CreatedAt time.Time
	UpdatedAt time.Time

	// CollectionID is the owning collection, or "" when unassigned.
	// A list belongs to at most one collection.
	CollectionID string
}

// ListWithApps pairs a list with its membership rows.
type ListWithApps struct {
	List    List
	Entries []Membership
}

// AppCount reports how many packages the list holds.
func (l ListWithApps) AppCount() int { return len(l.Entries) }
