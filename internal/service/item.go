package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/readingtracker/readingtracker-server/internal/domain"
	domainerrors "github.com/readingtracker/readingtracker-server/internal/errors"
	"github.com/readingtracker/readingtracker-server/internal/id"
	"github.com/readingtracker/readingtracker-server/internal/normalize"
	"github.com/readingtracker/readingtracker-server/internal/store"
	"github.com/readingtracker/readingtracker-server/internal/validation"
)

const itemNotFound = "Item not found"

// CreateItemRequest holds the fields of a new item. Status defaults to UNREAD.
type CreateItemRequest struct {
	Title  string        `json:"title" validate:"required,max=180"`
	URL    string        `json:"url" validate:"required,url"`
	Status domain.Status `json:"status" validate:"omitempty,itemstatus"`
	Notes  *string       `json:"notes" validate:"omitempty,max=5000"`
	TagIDs []string      `json:"tagIds" validate:"omitempty,dive,uuid"`
}

// UpdateItemRequest replaces every editable field of an item, including its tag set.
type UpdateItemRequest struct {
	Title  string        `json:"title" validate:"required,max=180"`
	URL    string        `json:"url" validate:"required,url"`
	Status domain.Status `json:"status" validate:"required,itemstatus"`
	Notes  *string       `json:"notes" validate:"omitempty,max=5000"`
	TagIDs []string      `json:"tagIds" validate:"omitempty,dive,uuid"`
}

// StatusRequest is the body of the status action.
type StatusRequest struct {
	Status domain.Status `json:"status" validate:"required,itemstatus"`
}

// ListItemsRequest holds listing query parameters. Zero values select defaults.
type ListItemsRequest struct {
	Page   int    `query:"page" validate:"min=1"`
	Q      string `query:"q" validate:"max=200"`
	Status string `query:"status" validate:"omitempty,itemstatus"`
	Tag    string `query:"tag" validate:"omitempty,uuid"`
	Sort   string `query:"sort" validate:"omitempty,itemsort"`
}

// ItemService manages reading list items.
type ItemService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewItemService creates a new item service.
func NewItemService(store store.Store, validator *validation.Validator, logger *slog.Logger) *ItemService {
	return &ItemService{
		store:     store,
		validator: validator,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List returns one page of items matching the query.
func (s *ItemService) List(ctx context.Context, req ListItemsRequest) (*store.ItemPage, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	filter := store.ItemFilter{
		Search: req.Q,
		Status: domain.Status(req.Status),
		TagID:  req.Tag,
		Sort:   store.ItemSort(req.Sort),
		Page:   req.Page,
	}
	filter.Normalize()

	page, err := s.store.ListItems(ctx, filter)
	if err != nil {
		return nil, storeError(err, itemNotFound, "list items")
	}
	return page, nil
}

// Get returns a single item with its tags.
func (s *ItemService) Get(ctx context.Context, itemID string) (*domain.Item, error) {
	if err := checkID(itemID); err != nil {
		return nil, err
	}
	item, err := s.store.GetItem(ctx, itemID)
	if err != nil {
		return nil, storeError(err, itemNotFound, "get item")
	}
	return item, nil
}

// Create saves a new item. A READ item is stamped as read now.
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*domain.Item, error) {
	req.Title = normalize.Title(req.Title)
	req.Notes = normalize.Notes(req.Notes)
	if req.Status == "" {
		req.Status = domain.StatusUnread
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	url, err := normalizeURL(req.URL)
	if err != nil {
		return nil, err
	}

	item := domain.NewItem(id.New(), req.Title, url, req.Status, req.Notes, s.now())
	if err := s.store.CreateItem(ctx, item, dedupe(req.TagIDs)); err != nil {
		return nil, storeError(err, itemNotFound, "create item")
	}

	s.logger.Info("item created",
		"item_id", item.ID,
		"status", item.Status,
		"tags", len(item.Tags),
	)
	return item, nil
}

// Update replaces an item's fields and tags. An unchanged READ status keeps
// its original read time.
func (s *ItemService) Update(ctx context.Context, itemID string, req UpdateItemRequest) (*domain.Item, error) {
	if err := checkID(itemID); err != nil {
		return nil, err
	}
	req.Title = normalize.Title(req.Title)
	req.Notes = normalize.Notes(req.Notes)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	url, err := normalizeURL(req.URL)
	if err != nil {
		return nil, err
	}

	item, err := s.store.UpdateItem(ctx, itemID, store.ItemUpdate{
		Title:  req.Title,
		URL:    url,
		Status: req.Status,
		Notes:  req.Notes,
		TagIDs: dedupe(req.TagIDs),
	}, s.now())
	if err != nil {
		return nil, storeError(err, itemNotFound, "update item")
	}

	s.logger.Info("item updated", "item_id", item.ID, "status", item.Status)
	return item, nil
}

// SetStatus applies the status action. READ always restamps the read time.
func (s *ItemService) SetStatus(ctx context.Context, itemID string, req StatusRequest) (*domain.Item, error) {
	if err := checkID(itemID); err != nil {
		return nil, err
	}
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	item, err := s.store.SetItemStatus(ctx, itemID, req.Status, s.now())
	if err != nil {
		return nil, storeError(err, itemNotFound, "set item status")
	}

	s.logger.Info("item status changed", "item_id", item.ID, "status", item.Status)
	return item, nil
}

// Delete removes an item.
func (s *ItemService) Delete(ctx context.Context, itemID string) error {
	if err := checkID(itemID); err != nil {
		return err
	}
	if err := s.store.DeleteItem(ctx, itemID); err != nil {
		return storeError(err, itemNotFound, "delete item")
	}

	s.logger.Info("item deleted", "item_id", itemID)
	return nil
}

func normalizeURL(raw string) (string, error) {
	url, err := normalize.URL(raw)
	if errors.Is(err, normalize.ErrInvalidURL) {
		return "", domainerrors.ValidationWithDetails("url: Invalid URL format", map[string]string{"url": "Invalid URL format"})
	}
	return url, err
}

// dedupe drops repeated IDs, keeping first occurrence order.
func dedupe(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
