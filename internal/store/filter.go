package store

import (
	"math"

	"github.com/readingtracker/readingtracker-server/internal/domain"
)

// PageSize is the fixed number of items per listing page.
const PageSize = 20

// ItemSort selects the ordering of an item listing.
type ItemSort string

const (
	// SortSavedAt orders newest saved first.
	SortSavedAt ItemSort = "savedAt"
	// SortStatusFirst puts unread items before read ones, newest saved first within each group.
	SortStatusFirst ItemSort = "statusFirst"
)

// Valid reports whether s is a known ordering.
func (s ItemSort) Valid() bool {
	return s == SortSavedAt || s == SortStatusFirst
}

// ItemFilter narrows an item listing. Zero values mean "no constraint".
type ItemFilter struct {
	Search string        // case-insensitive substring of title, url or notes
	Status domain.Status // empty for any status
	TagID  string        // only items carrying this tag
	Sort   ItemSort
	Page   int // 1-based
}

// Normalize applies defaults: page 1 and saved-at ordering.
func (f *ItemFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if !f.Sort.Valid() {
		f.Sort = SortSavedAt
	}
}

// Offset returns the row offset of the filter's page, saturating at
// math.MaxInt for pages too large to address.
func (f ItemFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	if f.Page-1 > math.MaxInt/PageSize {
		return math.MaxInt
	}
	return (f.Page - 1) * PageSize
}

// ItemPage is one page of a filtered listing.
type ItemPage struct {
	Items      []*domain.Item
	Page       int
	PerPage    int
	Total      int // matching items across all pages
	TotalPages int
}

// NewItemPage assembles a page result for items found at page out of total matches.
func NewItemPage(items []*domain.Item, page, total int) *ItemPage {
	if items == nil {
		items = []*domain.Item{}
	}
	return &ItemPage{
		Items:      items,
		Page:       page,
		PerPage:    PageSize,
		Total:      total,
		TotalPages: TotalPages(total, PageSize),
	}
}

// TotalPages returns ceil(total/perPage), or 0 when there is nothing to show.
func TotalPages(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}
