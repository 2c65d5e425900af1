package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	msgdomain "github.com/portfolio-hub/portfolio-backend/internal/messages/domain"
	projdomain "github.com/portfolio-hub/portfolio-backend/internal/projects/domain"
)

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL + "/")
}

func TestLogin_StoresToken(t *testing.T) {
	var gotAuth string
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/login":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "admin@example.com", body["email"])
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "token": "tok-1"})
		case "/api/messages":
			gotAuth = r.Header.Get("Authorization")
			_, _ = w.Write([]byte(`[]`))
		default:
			http.NotFound(w, r)
		}
	})

	tok, err := c.Login(context.Background(), "admin@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", tok)
	assert.Equal(t, "tok-1", c.Token())

	_, err = c.Messages().List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestLogin_WrongPassword(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Invalid email or password."}`))
	})

	_, err := c.Login(context.Background(), "admin@example.com", "nope")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "Invalid email or password.", apiErr.Message)
	assert.Empty(t, c.Token())
}

func TestMessagesList_Decodes(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(`[{"id":"m1","name":"Ann","email":"ann@example.com","message":"hi","read":false,"createdAt":"2024-01-01T00:00:00.000Z"}]`))
	})

	items, err := c.Messages().List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, msgdomain.Message{
		ID: "m1", Name: "Ann", Email: "ann@example.com", Message: "hi",
		CreatedAt: "2024-01-01T00:00:00.000Z",
	}, items[0])
}

func TestList_DegradedIsError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Store-Degraded", "unavailable")
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.Projects().List(context.Background())
	require.ErrorIs(t, err, ErrDegraded)
	assert.Contains(t, err.Error(), "unavailable")
}

func TestList_NullBodyIsEmpty(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	})

	items, err := c.Projects().List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestProjectsListByCategory_Query(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects", r.URL.Path)
		assert.Equal(t, "Web Apps", r.URL.Query().Get("category"))
		_, _ = w.Write([]byte(`[]`))
	})

	_, err := c.Projects().ListByCategory(context.Background(), "Web Apps")
	require.NoError(t, err)
}

func TestProjectsCreate_ReturnsID(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Foo", body["title"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"id":"p-9"}`))
	})

	id, err := c.Projects().Create(context.Background(), projdomain.CreateRequest{Title: "Foo", Category: "Web"})
	require.NoError(t, err)
	assert.Equal(t, "p-9", id)
}

func TestUpdate_SendsPatch(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/messages/m%201", r.URL.EscapedPath())
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, true, body["read"])
		_, _ = w.Write([]byte(`{"success":true,"message":"ok"}`))
	})

	require.NoError(t, c.Messages().Update(context.Background(), "m 1", map[string]any{"read": true}))
}

func TestUpdate_ServerError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Failed to update message"}`))
	})

	err := c.Messages().Update(context.Background(), "m1", map[string]any{"read": true})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Failed to update message", apiErr.Message)
}

func TestDelete(t *testing.T) {
	var calls int
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/projects/p1", r.URL.Path)
		_, _ = w.Write([]byte(`{"success":true}`))
	})

	require.NoError(t, c.Projects().Delete(context.Background(), "p1"))
	assert.Equal(t, 1, calls)
}

func TestTimeout_IsNetworkError(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := New(srv.URL, WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	_, err := c.Messages().List(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
}

func TestNetworkError_KeepsCause(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := New(srv.URL).Projects().List(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStats(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/dashboard/stats", r.URL.Path)
		_, _ = w.Write([]byte(`{"projects":3,"messages":5,"unread":2,"degraded":false}`))
	})

	s, err := c.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Stats{Projects: 3, Messages: 5, Unread: 2}, s)
}
