// Package store defines the persistence contract for the reading tracker.
package store

import (
	"context"
	"time"

	"github.com/readingtracker/readingtracker-server/internal/domain"
)

// ItemUpdate carries the full replacement values of an item edit.
type ItemUpdate struct {
	Title  string
	URL    string
	Status domain.Status
	Notes  *string
	TagIDs []string // replaces the item's tag set
}

// Store is implemented by the SQLite backend.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error
	Close() error

	// Users
	CreateUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdatePasswordHash(ctx context.Context, userID, hash string) error

	// Items
	CreateItem(ctx context.Context, item *domain.Item, tagIDs []string) error
	GetItem(ctx context.Context, id string) (*domain.Item, error)
	UpdateItem(ctx context.Context, id string, upd ItemUpdate, now time.Time) (*domain.Item, error)
	SetItemStatus(ctx context.Context, id string, status domain.Status, now time.Time) (*domain.Item, error)
	DeleteItem(ctx context.Context, id string) error
	ListItems(ctx context.Context, filter ItemFilter) (*ItemPage, error)
	CountItems(ctx context.Context) (int, error)

	// Tags
	CreateTag(ctx context.Context, t *domain.Tag) error
	GetTag(ctx context.Context, id string) (*domain.Tag, error)
	GetTagByName(ctx context.Context, name string) (*domain.Tag, error)
	ListTags(ctx context.Context) ([]*domain.Tag, error)
	RenameTag(ctx context.Context, id, name string) (*domain.Tag, error)
	DeleteTag(ctx context.Context, id string) error

	// Metrics
	Summary(ctx context.Context, monthStart time.Time) (*domain.Summary, error)
}
