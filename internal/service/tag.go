package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/readingtracker/readingtracker-server/internal/domain"
	domainerrors "github.com/readingtracker/readingtracker-server/internal/errors"
	"github.com/readingtracker/readingtracker-server/internal/id"
	"github.com/readingtracker/readingtracker-server/internal/normalize"
	"github.com/readingtracker/readingtracker-server/internal/store"
	"github.com/readingtracker/readingtracker-server/internal/validation"
)

const tagNotFound = "Tag not found"

// TagRequest carries a tag name. The name is normalized before validation.
type TagRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

// TagService manages the shared tag vocabulary.
type TagService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
	now       func() time.Time
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, validator *validation.Validator, logger *slog.Logger) *TagService {
	return &TagService{
		store:     store,
		validator: validator,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// List returns all tags with item counts, ordered by name.
func (s *TagService) List(ctx context.Context) ([]*domain.Tag, error) {
	tags, err := s.store.ListTags(ctx)
	if err != nil {
		return nil, domainerrors.Internal(fmt.Errorf("list tags: %w", err))
	}
	return tags, nil
}

// Get returns one tag with its item count.
func (s *TagService) Get(ctx context.Context, tagID string) (*domain.Tag, error) {
	if err := checkID(tagID); err != nil {
		return nil, err
	}
	tag, err := s.store.GetTag(ctx, tagID)
	if err != nil {
		return nil, storeError(err, tagNotFound, "get tag")
	}
	return tag, nil
}

// Create adds a tag. Names are unique after normalization.
func (s *TagService) Create(ctx context.Context, req TagRequest) (*domain.Tag, error) {
	req.Name = normalize.TagName(req.Name)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tag := &domain.Tag{
		ID:        id.New(),
		Name:      req.Name,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.DuplicateTag("Tag already exists")
		}
		return nil, domainerrors.Internal(fmt.Errorf("create tag: %w", err))
	}

	s.logger.Info("tag created", "tag_id", tag.ID, "name", tag.Name)
	return tag, nil
}

// EnsureTag returns the tag with the normalized name, creating it if needed.
// Used by provisioning.
func (s *TagService) EnsureTag(ctx context.Context, name string) (*domain.Tag, bool, error) {
	tag, err := s.Create(ctx, TagRequest{Name: name})
	if err == nil {
		return tag, true, nil
	}
	if !errors.Is(err, domainerrors.ErrDuplicateTag) {
		return nil, false, err
	}

	existing, err := s.store.GetTagByName(ctx, normalize.TagName(name))
	if err != nil {
		return nil, false, fmt.Errorf("get tag %q: %w", name, err)
	}
	return existing, false, nil
}

// Rename changes a tag's name. Keeping the current name is allowed.
func (s *TagService) Rename(ctx context.Context, tagID string, req TagRequest) (*domain.Tag, error) {
	if err := checkID(tagID); err != nil {
		return nil, err
	}
	req.Name = normalize.TagName(req.Name)
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	tag, err := s.store.RenameTag(ctx, tagID, req.Name)
	if err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.DuplicateTag("Tag name already exists")
		}
		return nil, storeError(err, tagNotFound, "rename tag")
	}

	s.logger.Info("tag renamed", "tag_id", tag.ID, "name", tag.Name)
	return tag, nil
}

// Delete removes a tag from the vocabulary and from every item carrying it.
func (s *TagService) Delete(ctx context.Context, tagID string) error {
	if err := checkID(tagID); err != nil {
		return err
	}
	if err := s.store.DeleteTag(ctx, tagID); err != nil {
		return storeError(err, tagNotFound, "delete tag")
	}

	s.logger.Info("tag deleted", "tag_id", tagID)
	return nil
}
