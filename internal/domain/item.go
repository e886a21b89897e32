package domain

import "time"

// Status is the reading state of an item.
type Status string

const (
	// StatusUnread marks an item saved for later.
	StatusUnread Status = "UNREAD"
	// StatusRead marks an item that has been read.
	StatusRead Status = "READ"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusUnread || s == StatusRead
}

// TagRef is the short form of a tag embedded in an item.
type TagRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Item is a saved link on the reading list.
//
// Invariant: ReadAt is non-nil exactly when Status is READ.
type Item struct {
	ID        string
	Title     string
	URL       string
	Status    Status
	Notes     *string
	SavedAt   time.Time
	ReadAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	Tags      []TagRef
}

// NewItem builds an item saved at now. A READ item is considered read at now.
func NewItem(id, title, url string, status Status, notes *string, now time.Time) *Item {
	item := &Item{
		ID:        id,
		Title:     title,
		URL:       url,
		Status:    StatusUnread,
		Notes:     notes,
		SavedAt:   now,
		CreatedAt: now,
		UpdatedAt: now,
		Tags:      []TagRef{},
	}
	item.SetStatus(status, now)
	return item
}

// TransitionStatus applies a status from a full edit.
// UNREAD→READ stamps ReadAt, READ→UNREAD clears it, an unchanged status keeps the prior ReadAt.
func (i *Item) TransitionStatus(next Status, now time.Time) {
	switch {
	case i.Status == next:
		// Keep ReadAt as is.
	case next == StatusRead:
		i.ReadAt = &now
	default:
		i.ReadAt = nil
	}
	i.Status = next
}

// SetStatus applies a status from the dedicated status action.
// READ always restamps ReadAt (also READ→READ); UNREAD always clears it.
func (i *Item) SetStatus(next Status, now time.Time) {
	i.Status = next
	if next == StatusRead {
		i.ReadAt = &now
		return
	}
	i.ReadAt = nil
}
