package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/readingtracker/readingtracker-server/internal/errors"
	"github.com/readingtracker/readingtracker-server/internal/validation"
)

type testItemRequest struct {
	Title  string   `json:"title" validate:"required,max=180"`
	URL    string   `json:"url" validate:"required,url"`
	Status string   `json:"status" validate:"omitempty,itemstatus"`
	TagIDs []string `json:"tagIds" validate:"omitempty,dive,uuid"`
}

type testQuery struct {
	Page int    `query:"page" validate:"min=1"`
	Sort string `query:"sort" validate:"omitempty,itemsort"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(testItemRequest{
		Title:  "Effective Go",
		URL:    "https://go.dev/doc/effective_go",
		Status: "READ",
		TagIDs: []string{"6f1c1b3e-8f4e-4a57-9a39-6d4b6f7f0c11"},
	})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		req       testItemRequest
		wantField string
		wantMsg   string
	}{
		{
			name:      "missing title",
			req:       testItemRequest{URL: "https://a.example"},
			wantField: "title",
			wantMsg:   "is required",
		},
		{
			name:      "title too long",
			req:       testItemRequest{Title: strings.Repeat("x", 181), URL: "https://a.example"},
			wantField: "title",
			wantMsg:   "must not exceed 180 characters",
		},
		{
			name:      "bad url",
			req:       testItemRequest{Title: "T", URL: "not a url"},
			wantField: "url",
			wantMsg:   "must be a valid URL",
		},
		{
			name:      "unknown status",
			req:       testItemRequest{Title: "T", URL: "https://a.example", Status: "ARCHIVED"},
			wantField: "status",
			wantMsg:   "must be one of: UNREAD READ",
		},
		{
			name:      "non-uuid tag id",
			req:       testItemRequest{Title: "T", URL: "https://a.example", TagIDs: []string{"nope"}},
			wantField: "tagIds[0]",
			wantMsg:   "must be a valid UUID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.req)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
			assert.Equal(t, tt.wantField+": "+tt.wantMsg, domainErr.Message)

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, details[tt.wantField])
		})
	}
}

func TestValidator_MultipleFieldsJoined(t *testing.T) {
	v := validation.New()

	err := v.Validate(testItemRequest{})
	require.Error(t, err)
	assert.Equal(t, "title: is required, url: is required", err.Error())
}

func TestValidator_QueryTagNames(t *testing.T) {
	v := validation.New()

	err := v.Validate(testQuery{Page: 0, Sort: "title"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "page: must be at least 1")
	assert.Contains(t, err.Error(), "sort: must be one of: savedAt statusFirst")
	assert.NotContains(t, err.Error(), "Page")
}

func TestValidator_Var(t *testing.T) {
	v := validation.New()

	assert.NoError(t, v.Var("id", "6f1c1b3e-8f4e-4a57-9a39-6d4b6f7f0c11", "uuid"))

	err := v.Var("id", "123", "uuid")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
	assert.Equal(t, "id: must be a valid UUID", err.Error())
}
