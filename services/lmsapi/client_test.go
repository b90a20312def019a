package lmsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListQuery(t *testing.T) {
	tests := []struct {
		name    string
		page    int
		size    int
		filters map[string]string
		want    string
	}{
		{name: "first page is omitted", page: 0, size: 10, want: "size=10"},
		{name: "later pages appear", page: 3, size: 10, want: "page=3&size=10"},
		{name: "zero size falls back to 10", page: 0, size: 0, want: "size=10"},
		{
			name:    "blank filters are dropped",
			page:    1,
			size:    5,
			filters: map[string]string{"role": "TUTOR", "search": ""},
			want:    "page=1&role=TUTOR&size=5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, listQuery(tt.page, tt.size, tt.filters).Encode())
		})
	}
}

func TestClientErrorMapping(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{name: "message field surfaces", status: 404, body: `{"message":"course not found"}`, wantMessage: "course not found"},
		{name: "empty body falls back", status: 500, body: ``, wantMessage: "API Error"},
		{name: "non-json body falls back", status: 502, body: `<html>bad gateway</html>`, wantMessage: "API Error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL)
			var out User
			err := c.get(context.Background(), "/whatever", nil, &out)
			require.Error(t, err)

			apiErr, ok := err.(*APIError)
			require.True(t, ok, "expected *APIError, got %T", err)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
		})
	}
}

func TestClientSendsCredentials(t *testing.T) {
	var gotCookie, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{"id":1,"name":"Ada"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	ctx := WithCredentials(context.Background(), "JSESSIONID=abc123")
	var out User
	require.NoError(t, c.get(ctx, "/auth/me", nil, &out))

	assert.Equal(t, "JSESSIONID=abc123", gotCookie)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "Ada", out.Name)
}

func TestAuthLoginCapturesCookie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		http.SetCookie(w, &http.Cookie{Name: "JSESSIONID", Value: "xyz"})
		_, _ = w.Write([]byte(`{"user":{"id":7,"name":"Ada","email":"ada@example.com","role":"MENTEE"}}`))
	}))
	defer srv.Close()

	api := New(srv.URL)
	usr, cookie, err := api.Auth.Login(context.Background(), "ada@example.com", "pwd")
	require.NoError(t, err)
	require.NotNil(t, usr)
	assert.Equal(t, "Ada", usr.Name)
	assert.Equal(t, "MENTEE", usr.Role)
	assert.Equal(t, "JSESSIONID=xyz", cookie)
}

func TestAuthLoginBareUserBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":7,"name":"Ada","email":"ada@example.com","role":"TUTOR"}`))
	}))
	defer srv.Close()

	api := New(srv.URL)
	usr, _, err := api.Auth.Login(context.Background(), "ada@example.com", "pwd")
	require.NoError(t, err)
	require.NotNil(t, usr)
	assert.Equal(t, "TUTOR", usr.Role)
}

func TestIsAuthError(t *testing.T) {
	assert.True(t, IsAuthError(&APIError{StatusCode: http.StatusUnauthorized}))
	assert.True(t, IsAuthError(&APIError{StatusCode: http.StatusForbidden}))
	assert.False(t, IsAuthError(&APIError{StatusCode: http.StatusNotFound}))
	assert.False(t, IsAuthError(context.Canceled))
}
