package models

import "time"

// Collection groups multiple lists under one name.
type Collection struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CollectionWithLists pairs a collection with its member lists.
type CollectionWithLists struct {
	Collection Collection
	Lists      []List
}

// ListCount reports how many lists the collection owns.
func (c CollectionWithLists) ListCount() int { return len(c.Lists) }
