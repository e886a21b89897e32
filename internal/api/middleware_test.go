package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readingtracker/readingtracker-server/internal/auth"
)

func TestRequireMutationHeader(t *testing.T) {
	ts := setupTestServer(t, Options{})
	session := ts.login(t)

	tests := []struct {
		name    string
		headers []any
	}{
		{name: "missing header", headers: []any{session}},
		{name: "wrong value", headers: []any{session, "X-Requested-With: fetch"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append(tt.headers, map[string]any{"name": "golang"})
			resp := ts.api.Post("/api/tags", args...)
			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.Equal(t, "MISSING_HEADER", errorCode(t, resp))
		})
	}

	// Nothing was written.
	resp := ts.api.Get("/api/tags", session)
	assert.Empty(t, decode[ListTagsResponse](t, resp).Tags)
}

func TestRequireMutationHeader_CheckedBeforeSession(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp := ts.api.Delete("/api/items/00000000-0000-4000-8000-000000000000")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "MISSING_HEADER", errorCode(t, resp))
}

func TestRequireMutationHeader_LoginToo(t *testing.T) {
	ts := setupTestServer(t, Options{})

	resp := ts.api.Post("/api/auth/login", map[string]any{
		"email":    testEmail,
		"password": testPassword,
	})
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Equal(t, "MISSING_HEADER", errorCode(t, resp))
}

func TestRequireSession(t *testing.T) {
	ts := setupTestServer(t, Options{})

	otherKey := make([]byte, 32)
	otherKey[0] = 0xff
	foreignIssuer, err := auth.NewSessionIssuer(otherKey, time.Hour)
	require.NoError(t, err)
	foreign, _, err := foreignIssuer.Issue("user-1", testEmail)
	require.NoError(t, err)

	tests := []struct {
		name     string
		headers  []any
		wantCode string
	}{
		{name: "no cookie", wantCode: "AUTH_REQUIRED"},
		{name: "empty cookie", headers: []any{"Cookie: " + SessionCookieName + "="}, wantCode: "AUTH_REQUIRED"},
		{name: "garbage token", headers: []any{"Cookie: " + SessionCookieName + "=garbage"}, wantCode: "INVALID_TOKEN"},
		{name: "foreign key", headers: []any{"Cookie: " + SessionCookieName + "=" + foreign}, wantCode: "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, path := range []string{"/api/items", "/api/tags", "/api/metrics/summary"} {
				resp := ts.api.Get(path, tt.headers...)
				assert.Equal(t, http.StatusUnauthorized, resp.Code, path)
				assert.Equal(t, tt.wantCode, errorCode(t, resp), path)
			}
		})
	}
}

func TestRequireSession_ExpiredToken(t *testing.T) {
	ts := setupTestServer(t, Options{})

	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	past := time.Now().Add(-8 * 24 * time.Hour)
	oldIssuer, err := auth.NewSessionIssuer(key, 7*24*time.Hour, auth.WithClock(func() time.Time { return past }))
	require.NoError(t, err)
	expired, _, err := oldIssuer.Issue("user-1", testEmail)
	require.NoError(t, err)

	resp := ts.api.Get("/api/items", "Cookie: "+SessionCookieName+"="+expired)
	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Equal(t, "INVALID_TOKEN", errorCode(t, resp))
}

func TestIsPublicPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"/api/auth/login", true},
		{"/api/auth/logout", true},
		{"/health", true},
		{"/api/health", true},
		{"/docs", true},
		{"/openapi.json", true},
		{"/openapi.yaml", true},
		{"/schemas/ItemResponse.json", true},
		{"/api/auth/me", false},
		{"/api/items", false},
		{"/api/auth/login/extra", false},
		{"/openapiX", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, isPublicPath(tt.path), tt.path)
	}
}

func TestClientIP_IgnoresForwardingHeaders(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "forwarded chain", headers: map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, remote: "10.0.0.1:1234", want: "10.0.0.1"},
		{name: "real ip", headers: map[string]string{"X-Real-IP": "198.51.100.2"}, remote: "10.0.0.1:1234", want: "10.0.0.1"},
		{name: "remote addr", remote: "192.0.2.9:5555", want: "192.0.2.9"},
		{name: "remote without port", remote: "192.0.2.9", want: "192.0.2.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				r.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, clientIP(r))
		})
	}
}
