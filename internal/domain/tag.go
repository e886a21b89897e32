package domain

import "time"

// Tag is a label that can be attached to any number of items.
// Name is unique in its normalized form (lowercase, single spaced).
type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
	ItemCount int // number of items carrying the tag, filled by list and get queries
}

// Ref returns the short form embedded in items.
func (t *Tag) Ref() TagRef {
	return TagRef{ID: t.ID, Name: t.Name}
}
