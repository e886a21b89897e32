package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unknownID = "00000000-0000-4000-8000-000000000000"

// createItem posts an item and returns the created item.
func (ts *testServer) createItem(t *testing.T, session string, body map[string]any) ItemResponse {
	t.Helper()
	resp := ts.api.Post("/api/items", session, xhr, body)
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[ItemEnvelope](t, resp).Item
}

// createTag posts a tag and returns it.
func (ts *testServer) createTag(t *testing.T, session, name string) TagResponse {
	t.Helper()
	resp := ts.api.Post("/api/tags", session, xhr, map[string]any{"name": name})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())
	return decode[TagEnvelope](t, resp).Tag
}

func TestCreateItem(t *testing.T) {
	ts := setupTestServer(t, Options{})
	session := ts.login(t)
	tag := ts.createTag(t, session, "Go")

	item := ts.createItem(t, session, map[string]any{
		"title":  "  Effective Go  ",
		"url":    "https://go.dev/doc/effective_go",
		"notes":  "classic",
		"tagIds": []string{tag.ID, tag.ID},
	})

	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Effective Go", item.Title)
	assert.Equal(t, "UNREAD", item.Status)
	assert.Nil(t, item.ReadAt)
	require.NotNil(t, item.Notes)
	assert.Equal(t, "classic", *item.Notes)
	assert.Equal(t, []TagRefResponse{{ID: tag.ID, Name: "go"}}, item.Tags)
	assert.Equal(t, item.SavedAt, item.CreatedAt)
}

func TestCreateItem_ReadStampsReadAt(t *testing.T) {
	ts := setupTestServer(t, Options{})
	session := ts.login(t)

	item := ts.createItem(t, session, map[string]any{
		"title":  "Read already",
		"url":    "https://example.com/a",
		"status": "READ",
	})
	assert.Equal(t, "READ", item.Status)
	require.NotNil(t, item.ReadAt)
	assert.Empty(t, item.Tags)
	assert.Nil(t, item.Notes)
}

func TestCreateItem_ValidationErrors(t *testing.T) {
	ts := setupTestServer(t, Options{})
	session := ts.login(t)

	tests := []struct {
		name      string
		body      map[string]any
		wantField string
	}{
		{name: "missing title", body: map[string]any{"url": "https://example.com"}, wantField: "title"},
		{name: "blank title", body: map[string]any{"title": "   ", "url": "https://example.com"}, wantField: "title"},
		{name: "bad url", body: map[string]any{"title": "x", "url": "not a url"}, wantField: "url"},
		{name: "bad status", body: map[string]any{"title": "x", "url": "https://example.com", "status": "DONE"}, wantField: "status"},
		{name: "bad tag id", body: map[string]any{"title": "x", "url": "https://example.com", "tagIds": []string{"nope"}}, wantField: "tagIds[0]"},
		{name: "unknown tag", body: map[string]any{"title": "x", "url": "https://example.com", "tagIds": []string{unknownID}}, wantField: "tagIds"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.api.Post("/api/items", session, xhr, tt.body)
			require.Equal(t, http.StatusBadRequest, resp.Code, resp.Body.String())

			body := decode[map[string]map[string]any](t, resp)
			assert.Equal(t, "VALIDATION_ERROR", body["error"]["code"])
			details, ok := body["error"]["details"].(map[string]any)
			require.True(t, ok, resp.Body.String())
			assert.Contains(t, details, tt.wantField)
		})
	}

	// No partial writes.
	list := decode[ListItemsResponse](t, ts.api.Get("/api/items", session))
	assert.Equal(t, 0, list.Pagination.Total)
}

func TestCreateItem_WrongJSONType(t *testing.T) {
	ts := setupTestServer(t, Options{})
	session := ts.login(t)

	resp := ts.api.Post("/api/items", session, xhr, map[string]any{"title": 42, "url": "https://example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, resp))
}

func TestGetItem(t *testing.T) {
	ts := setupTestServer(t, Options{})
	session := ts.login(t)
	created := ts.createItem(t, session, map[string]any{"title": "A", "url": "https://example.com/a"})

	resp := ts.api.Get("/api/items/"+created.ID, session)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, created, decode[ItemEnvelope](t, resp).Item)

	resp = ts.api.Get("/api/items/"+unknownID, session)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))

	resp = ts.api.Get("/api/items/not-a-uuid", session)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, resp))
}

func TestSetItemStatus_RoundTrip(t *testing.T) {
	ts := setupTestServer(t, Options{})
	session := ts.login(t)
	created := ts.createItem(t, session, map[string]any{"title": "A", "url": "https://example.com/a"})
	path := "/api/items/" + created.ID + "/status"

	resp := ts.api.Post(path, session, xhr, map[string]any{"status": "READ"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	read := decode[ItemEnvelope](t, resp).Item
	assert.Equal(t, "READ", read.Status)
	require.NotNil(t, read.ReadAt)

	// GET returns exactly what the status action returned.
	got := decode[ItemEnvelope](t, ts.api.Get("/api/items/"+created.ID, session)).Item
	assert.Equal(t, read, got)

	resp = ts.api.Post(path, session, xhr, map[string]any{"status": "UNREAD"})
	require.Equal(t, http.StatusOK, resp.Code)
	unread := decode[ItemEnvelope](t, resp).Item
	assert.Equal(t, "UNREAD", unread.Status)
	assert.Nil(t, unread.ReadAt)
	assert.Contains(t, resp.Body.String(), `"read_at":null`)
}

func TestSetItemStatus_Invalid(t *testing.T) {
	ts := setupTestServer(t, Options{})
	session := ts.login(t)
	created := ts.createItem(t, session, map[string]any{"title": "A", "url": "https://example.com/a"})

	resp := ts.api.Post("/api/items/"+created.ID+"/status", session, xhr, map[string]any{"status": "ARCHIVED"})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, resp))

	resp = ts.api.Post("/api/items/"+unknownID+"/status", session, xhr, map[string]any{"status": "READ"})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateItem(t *testing.T) {
	ts := setupTestServer(t, Options{})
	session := ts.login(t)
	goTag := ts.createTag(t, session, "go")
	dbTag := ts.createTag(t, session, "database")
	created := ts.createItem(t, session, map[string]any{
		"title":  "A",
		"url":    "https://example.com/a",
		"tagIds": []string{goTag.ID},
	})

	resp := ts.api.Put("/api/items/"+created.ID, session, xhr, map[string]any{
		"title":  "A, revised",
		"url":    "https://example.com/a2",
		"status": "READ",
		"notes":  "done",
		"tagIds": []string{dbTag.ID},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	updated := decode[ItemEnvelope](t, resp).Item
	assert.Equal(t, "A, revised", updated.Title)
	assert.Equal(t, "https://example.com/a2", updated.URL)
	assert.Equal(t, "READ", updated.Status)
	require.NotNil(t, updated.ReadAt)
	assert.Equal(t, []TagRefResponse{{ID: dbTag.ID, Name: "database"}}, updated.Tags)

	// Unchanged READ status keeps the original read time.
	resp = ts.api.Put("/api/items/"+created.ID, session, xhr, map[string]any{
		"title":  "A, again",
		"url":    "https://example.com/a2",
		"status": "READ",
	})
	require.Equal(t, http.StatusOK, resp.Code)
	again := decode[ItemEnvelope](t, resp).Item
	require.NotNil(t, again.ReadAt)
	assert.True(t, updated.ReadAt.Equal(*again.ReadAt))
	assert.Empty(t, again.Tags)
	assert.Nil(t, again.Notes)

	resp = ts.api.Put("/api/items/"+created.ID, session, xhr, map[string]any{"title": "x", "url": "https://example.com"})
	assert.Equal(t, http.StatusBadRequest, resp.Code, "status is required on full update")
}

func TestDeleteItem(t *testing.T) {
	ts := setupTestServer(t, Options{})
	session := ts.login(t)
	created := ts.createItem(t, session, map[string]any{"title": "A", "url": "https://example.com/a"})

	resp := ts.api.Delete("/api/items/"+created.ID, session, xhr)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"success":true}`, resp.Body.String())

	resp = ts.api.Delete("/api/items/"+created.ID, session, xhr)
	assert.Equal(t, http.StatusNotFound, resp.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestListItems_StatusFilterAndPagination(t *testing.T) {
	ts := setupTestServer(t, Options{})
	session := ts.login(t)

	for i := range 25 {
		status := "UNREAD"
		if i%2 == 0 {
			status = "READ"
		}
		ts.createItem(t, session, map[string]any{
			"title":  fmt.Sprintf("Item %02d", i),
			"url":    fmt.Sprintf("https://example.com/%d", i),
			"status": status,
		})
	}

	resp := ts.api.Get("/api/items?status=READ", session)
	require.Equal(t, http.StatusOK, resp.Code)
	read := decode[ListItemsResponse](t, resp)
	assert.Equal(t, PaginationResponse{Page: 1, PerPage: 20, Total: 13, TotalPages: 1}, read.Pagination)
	for _, item := range read.Items {
		assert.Equal(t, "READ", item.Status)
	}

	first := decode[ListItemsResponse](t, ts.api.Get("/api/items", session))
	second := decode[ListItemsResponse](t, ts.api.Get("/api/items?page=2", session))
	assert.Len(t, first.Items, 20)
	assert.Len(t, second.Items, 5)
	assert.Equal(t, 2, first.Pagination.TotalPages)

	seen := map[string]bool{}
	for _, item := range append(first.Items, second.Items...) {
		assert.False(t, seen[item.ID], "duplicate %s", item.ID)
		seen[item.ID] = true
	}
	assert.Len(t, seen, 25)

	beyond := decode[ListItemsResponse](t, ts.api.Get("/api/items?page=3", session))
	assert.NotNil(t, beyond.Items)
	assert.Empty(t, beyond.Items)
	assert.Equal(t, 25, beyond.Pagination.Total)

	resp = ts.api.Get("/api/items?page=461168601842738792", session)
	require.Equal(t, http.StatusOK, resp.Code)
	huge := decode[ListItemsResponse](t, resp)
	assert.Empty(t, huge.Items)
	assert.Equal(t, 461168601842738792, huge.Pagination.Page)
	assert.Equal(t, 25, huge.Pagination.Total)
}

func TestListItems_StatusFirstAndSearch(t *testing.T) {
	ts := setupTestServer(t, Options{})
	session := ts.login(t)
	tag := ts.createTag(t, session, "go")

	ts.createItem(t, session, map[string]any{"title": "Go Memory Model", "url": "https://go.dev/ref/mem", "status": "READ", "tagIds": []string{tag.ID}})
	ts.createItem(t, session, map[string]any{"title": "Rust Book", "url": "https://doc.rust-lang.org/book"})
	ts.createItem(t, session, map[string]any{"title": "Other", "url": "https://example.com", "notes": "mentions GO in notes"})

	byStatus := decode[ListItemsResponse](t, ts.api.Get("/api/items?sort=statusFirst", session))
	require.Len(t, byStatus.Items, 3)
	assert.Equal(t, "UNREAD", byStatus.Items[0].Status)
	assert.Equal(t, "UNREAD", byStatus.Items[1].Status)
	assert.Equal(t, "READ", byStatus.Items[2].Status)

	search := decode[ListItemsResponse](t, ts.api.Get("/api/items?q=go", session))
	assert.Equal(t, 2, search.Pagination.Total)

	byTag := decode[ListItemsResponse](t, ts.api.Get("/api/items?tag="+tag.ID, session))
	require.Len(t, byTag.Items, 1)
	assert.Equal(t, "Go Memory Model", byTag.Items[0].Title)
}

func TestListItems_QueryValidation(t *testing.T) {
	ts := setupTestServer(t, Options{})
	session := ts.login(t)

	for _, query := range []string{
		"page=0",
		"page=abc",
		"status=DONE",
		"tag=not-a-uuid",
		"sort=title",
	} {
		resp := ts.api.Get("/api/items?"+query, session)
		assert.Equal(t, http.StatusBadRequest, resp.Code, query)
		assert.Equal(t, "VALIDATION_ERROR", errorCode(t, resp), query)
	}
}
