package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/readingtracker/readingtracker-server/internal/domain"
	"github.com/readingtracker/readingtracker-server/internal/service"
)

func (s *Server) registerItemRoutes() {
	register(s, huma.Operation{
		OperationID: "listItems",
		Method:      http.MethodGet,
		Path:        "/api/items",
		Summary:     "List items",
		Description: "Returns one page of 20 items, filtered by search text, status and tag",
		Tags:        []string{"Items"},
		Security:    sessionSecurity,
	}, s.handleListItems)

	register(s, huma.Operation{
		OperationID: "getItem",
		Method:      http.MethodGet,
		Path:        "/api/items/{id}",
		Summary:     "Get item",
		Description: "Returns an item with its tags",
		Tags:        []string{"Items"},
		Security:    sessionSecurity,
	}, s.handleGetItem)

	register(s, huma.Operation{
		OperationID:   "createItem",
		Method:        http.MethodPost,
		Path:          "/api/items",
		Summary:       "Create item",
		Description:   "Saves a link to the reading list",
		Tags:          []string{"Items"},
		DefaultStatus: http.StatusCreated,
		Security:      sessionSecurity,
	}, s.handleCreateItem)

	register(s, huma.Operation{
		OperationID: "updateItem",
		Method:      http.MethodPut,
		Path:        "/api/items/{id}",
		Summary:     "Update item",
		Description: "Replaces every editable field of an item, including its tags",
		Tags:        []string{"Items"},
		Security:    sessionSecurity,
	}, s.handleUpdateItem)

	register(s, huma.Operation{
		OperationID: "deleteItem",
		Method:      http.MethodDelete,
		Path:        "/api/items/{id}",
		Summary:     "Delete item",
		Description: "Deletes an item and its tag associations",
		Tags:        []string{"Items"},
		Security:    sessionSecurity,
	}, s.handleDeleteItem)

	register(s, huma.Operation{
		OperationID: "setItemStatus",
		Method:      http.MethodPost,
		Path:        "/api/items/{id}/status",
		Summary:     "Set item status",
		Description: "Marks an item READ (stamping the read time) or UNREAD (clearing it)",
		Tags:        []string{"Items"},
		Security:    sessionSecurity,
	}, s.handleSetItemStatus)
}

// === DTOs ===

// TagRefResponse is the short tag form embedded in items.
type TagRefResponse struct {
	ID   string `json:"id" doc:"Tag ID"`
	Name string `json:"name" doc:"Tag name"`
}

// ItemResponse contains item data in API responses.
type ItemResponse struct {
	ID        string           `json:"id" doc:"Item ID"`
	Title     string           `json:"title" doc:"Title"`
	URL       string           `json:"url" doc:"Link to the content"`
	Status    string           `json:"status" enum:"UNREAD,READ" doc:"Reading status"`
	Notes     *string          `json:"notes" nullable:"true" doc:"Free-form notes"`
	SavedAt   time.Time        `json:"saved_at" doc:"When the item was saved"`
	ReadAt    *time.Time       `json:"read_at" nullable:"true" doc:"When the item was marked read, null while unread"`
	CreatedAt time.Time        `json:"created_at" doc:"Creation time"`
	UpdatedAt time.Time        `json:"updated_at" doc:"Last update time"`
	Tags      []TagRefResponse `json:"tags" doc:"Tags attached to the item"`
}

// ItemEnvelope wraps a single item in API responses.
type ItemEnvelope struct {
	Item ItemResponse `json:"item"`
}

// ItemOutput wraps the item response for Huma.
type ItemOutput struct {
	Body ItemEnvelope
}

// PaginationResponse describes the returned page.
type PaginationResponse struct {
	Page       int `json:"page" doc:"Current page, starting at 1"`
	PerPage    int `json:"perPage" doc:"Page size"`
	Total      int `json:"total" doc:"Number of items matching the filters"`
	TotalPages int `json:"totalPages" doc:"Number of pages"`
}

// ListItemsResponse contains one page of items.
type ListItemsResponse struct {
	Items      []ItemResponse     `json:"items" doc:"Items on this page"`
	Pagination PaginationResponse `json:"pagination"`
}

// ListItemsOutput wraps the list items response for Huma.
type ListItemsOutput struct {
	Body ListItemsResponse
}

// ListItemsInput contains parameters for listing items.
type ListItemsInput struct {
	Page   int    `query:"page" minimum:"1" doc:"Page number (default 1)"`
	Q      string `query:"q" doc:"Case-insensitive search in title, URL and notes"`
	Status string `query:"status" doc:"UNREAD or READ"`
	Tag    string `query:"tag" doc:"Only items carrying this tag ID"`
	Sort   string `query:"sort" doc:"savedAt (default) or statusFirst"`
}

// ItemIDInput contains the item ID path parameter.
type ItemIDInput struct {
	ID string `path:"id" doc:"Item ID"`
}

// CreateItemRequest is the request body for creating an item.
type CreateItemRequest struct {
	_      struct{} `json:"-" additionalProperties:"true"`
	Title  string   `json:"title" required:"false" doc:"Title, at most 180 characters"`
	URL    string   `json:"url" required:"false" doc:"Absolute http(s) URL"`
	Status string   `json:"status,omitempty" required:"false" doc:"UNREAD (default) or READ"`
	Notes  *string  `json:"notes,omitempty" required:"false" nullable:"true" doc:"Notes, at most 5000 characters"`
	TagIDs []string `json:"tagIds,omitempty" required:"false" doc:"IDs of existing tags"`
}

// CreateItemInput wraps the create item request for Huma.
type CreateItemInput struct {
	Body CreateItemRequest
}

// UpdateItemRequest is the request body for replacing an item.
type UpdateItemRequest struct {
	_      struct{} `json:"-" additionalProperties:"true"`
	Title  string   `json:"title" required:"false" doc:"Title, at most 180 characters"`
	URL    string   `json:"url" required:"false" doc:"Absolute http(s) URL"`
	Status string   `json:"status" required:"false" doc:"UNREAD or READ"`
	Notes  *string  `json:"notes,omitempty" required:"false" nullable:"true" doc:"Notes, at most 5000 characters"`
	TagIDs []string `json:"tagIds,omitempty" required:"false" doc:"Complete tag set; omitted means none"`
}

// UpdateItemInput wraps the update item request for Huma.
type UpdateItemInput struct {
	ID   string `path:"id" doc:"Item ID"`
	Body UpdateItemRequest
}

// StatusRequest is the request body for the status action.
type StatusRequest struct {
	_      struct{} `json:"-" additionalProperties:"true"`
	Status string   `json:"status" required:"false" doc:"UNREAD or READ"`
}

// SetItemStatusInput wraps the status request for Huma.
type SetItemStatusInput struct {
	ID   string `path:"id" doc:"Item ID"`
	Body StatusRequest
}

// === Handlers ===

func (s *Server) handleListItems(ctx context.Context, input *ListItemsInput) (*ListItemsOutput, error) {
	page, err := s.services.Item.List(ctx, service.ListItemsRequest{
		Page:   input.Page,
		Q:      input.Q,
		Status: input.Status,
		Tag:    input.Tag,
		Sort:   input.Sort,
	})
	if err != nil {
		return nil, err
	}

	items := make([]ItemResponse, len(page.Items))
	for i, item := range page.Items {
		items[i] = itemResponse(item)
	}

	return &ListItemsOutput{
		Body: ListItemsResponse{
			Items: items,
			Pagination: PaginationResponse{
				Page:       page.Page,
				PerPage:    page.PerPage,
				Total:      page.Total,
				TotalPages: page.TotalPages,
			},
		},
	}, nil
}

func (s *Server) handleGetItem(ctx context.Context, input *ItemIDInput) (*ItemOutput, error) {
	item, err := s.services.Item.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	return itemOutput(item), nil
}

func (s *Server) handleCreateItem(ctx context.Context, input *CreateItemInput) (*ItemOutput, error) {
	item, err := s.services.Item.Create(ctx, service.CreateItemRequest{
		Title:  input.Body.Title,
		URL:    input.Body.URL,
		Status: domain.Status(input.Body.Status),
		Notes:  input.Body.Notes,
		TagIDs: input.Body.TagIDs,
	})
	if err != nil {
		return nil, err
	}
	return itemOutput(item), nil
}

func (s *Server) handleUpdateItem(ctx context.Context, input *UpdateItemInput) (*ItemOutput, error) {
	item, err := s.services.Item.Update(ctx, input.ID, service.UpdateItemRequest{
		Title:  input.Body.Title,
		URL:    input.Body.URL,
		Status: domain.Status(input.Body.Status),
		Notes:  input.Body.Notes,
		TagIDs: input.Body.TagIDs,
	})
	if err != nil {
		return nil, err
	}
	return itemOutput(item), nil
}

func (s *Server) handleDeleteItem(ctx context.Context, input *ItemIDInput) (*SuccessOutput, error) {
	if err := s.services.Item.Delete(ctx, input.ID); err != nil {
		return nil, err
	}
	return successOutput(), nil
}

func (s *Server) handleSetItemStatus(ctx context.Context, input *SetItemStatusInput) (*ItemOutput, error) {
	item, err := s.services.Item.SetStatus(ctx, input.ID, service.StatusRequest{
		Status: domain.Status(input.Body.Status),
	})
	if err != nil {
		return nil, err
	}
	return itemOutput(item), nil
}

// === Converters ===

func itemOutput(item *domain.Item) *ItemOutput {
	return &ItemOutput{Body: ItemEnvelope{Item: itemResponse(item)}}
}

func itemResponse(item *domain.Item) ItemResponse {
	tags := make([]TagRefResponse, len(item.Tags))
	for i, t := range item.Tags {
		tags[i] = TagRefResponse{ID: t.ID, Name: t.Name}
	}
	return ItemResponse{
		ID:        item.ID,
		Title:     item.Title,
		URL:       item.URL,
		Status:    string(item.Status),
		Notes:     item.Notes,
		SavedAt:   item.SavedAt,
		ReadAt:    item.ReadAt,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
		Tags:      tags,
	}
}
