package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readingtracker/readingtracker-server/internal/domain"
	"github.com/readingtracker/readingtracker-server/internal/service"
)

func (s *Server) registerTagRoutes() {
	register(s, huma.Operation{
		OperationID: "listTags",
		Method:      http.MethodGet,
		Path:        "/api/tags",
		Summary:     "List tags",
		Description: "Returns all tags ordered by name, with the number of items carrying each",
		Tags:        []string{"Tags"},
		Security:    sessionSecurity,
	}, s.handleListTags)

	register(s, huma.Operation{
		OperationID:   "createTag",
		Method:        http.MethodPost,
		Path:          "/api/tags",
		Summary:       "Create tag",
		Description:   "Creates a new tag. Names are lowercased and must be unique.",
		Tags:          []string{"Tags"},
		DefaultStatus: http.StatusCreated,
		Security:      sessionSecurity,
	}, s.handleCreateTag)

	register(s, huma.Operation{
		OperationID: "getTag",
		Method:      http.MethodGet,
		Path:        "/api/tags/{id}",
		Summary:     "Get tag",
		Description: "Returns a tag by ID",
		Tags:        []string{"Tags"},
		Security:    sessionSecurity,
	}, s.handleGetTag)

	register(s, huma.Operation{
		OperationID: "updateTag",
		Method:      http.MethodPut,
		Path:        "/api/tags/{id}",
		Summary:     "Rename tag",
		Description: "Renames a tag",
		Tags:        []string{"Tags"},
		Security:    sessionSecurity,
	}, s.handleUpdateTag)

	register(s, huma.Operation{
		OperationID: "deleteTag",
		Method:      http.MethodDelete,
		Path:        "/api/tags/{id}",
		Summary:     "Delete tag",
		Description: "Deletes a tag and detaches it from all items. Items are kept.",
		Tags:        []string{"Tags"},
		Security:    sessionSecurity,
	}, s.handleDeleteTag)
}

// === DTOs ===

// TagResponse contains tag data in API responses.
type TagResponse struct {
	ID        string    `json:"id" doc:"Tag ID"`
	Name      string    `json:"name" doc:"Tag name"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
	ItemCount int       `json:"item_count" doc:"Number of items carrying the tag"`
}

// ListTagsResponse contains a list of tags.
type ListTagsResponse struct {
	Tags []TagResponse `json:"tags" doc:"List of tags"`
}

// ListTagsOutput wraps the list tags response for Huma.
type ListTagsOutput struct {
	Body ListTagsResponse
}

// TagEnvelope wraps a single tag in API responses.
type TagEnvelope struct {
	Tag TagResponse `json:"tag"`
}

// TagOutput wraps the tag response for Huma.
type TagOutput struct {
	Body TagEnvelope
}

// TagRequest is the request body for creating or renaming a tag.
type TagRequest struct {
	_    struct{} `json:"-" additionalProperties:"true"`
	Name string   `json:"name" required:"false" doc:"Tag name, at most 50 characters"`
}

// CreateTagInput wraps the create tag request for Huma.
type CreateTagInput struct {
	Body TagRequest
}

// TagIDInput contains the tag ID path parameter.
type TagIDInput struct {
	ID string `path:"id" doc:"Tag ID"`
}

// UpdateTagInput wraps the rename request for Huma.
type UpdateTagInput struct {
	ID   string `path:"id" doc:"Tag ID"`
	Body TagRequest
}

// === Handlers ===

func (s *Server) handleListTags(ctx context.Context, _ *struct{}) (*ListTagsOutput, error) {
	tags, err := s.services.Tag.List(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]TagResponse, len(tags))
	for i, t := range tags {
		resp[i] = tagResponse(t)
	}
	return &ListTagsOutput{Body: ListTagsResponse{Tags: resp}}, nil
}

func (s *Server) handleCreateTag(ctx context.Context, input *CreateTagInput) (*TagOutput, error) {
	tag, err := s.services.Tag.Create(ctx, service.TagRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return tagOutput(tag), nil
}

func (s *Server) handleGetTag(ctx context.Context, input *TagIDInput) (*TagOutput, error) {
	tag, err := s.services.Tag.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return tagOutput(tag), nil
}

func (s *Server) handleUpdateTag(ctx context.Context, input *UpdateTagInput) (*TagOutput, error) {
	tag, err := s.services.Tag.Rename(ctx, input.ID, service.TagRequest{Name: input.Body.Name})
	if err != nil {
		return nil, err
	}
	return tagOutput(tag), nil
}

func (s *Server) handleDeleteTag(ctx context.Context, input *TagIDInput) (*SuccessOutput, error) {
	if err := s.services.Tag.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return successOutput(), nil
}

func tagOutput(tag *domain.Tag) *TagOutput {
	return &TagOutput{Body: TagEnvelope{Tag: tagResponse(tag)}}
}

func tagResponse(tag *domain.Tag) TagResponse {
	return TagResponse{
		ID:        tag.ID,
		Name:      tag.Name,
		CreatedAt: tag.CreatedAt,
		ItemCount: tag.ItemCount,
	}
}
