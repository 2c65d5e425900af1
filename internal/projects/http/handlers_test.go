package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/portfolio-hub/portfolio-backend/internal/api/http/response"
	"github.com/portfolio-hub/portfolio-backend/internal/apperr"
	"github.com/portfolio-hub/portfolio-backend/internal/docstore"
	"github.com/portfolio-hub/portfolio-backend/internal/projects/domain"
	projecthttp "github.com/portfolio-hub/portfolio-backend/internal/projects/http"
	"github.com/portfolio-hub/portfolio-backend/internal/projects/service"
)

type mockProjectService struct {
	mock.Mock
}

func (m *mockProjectService) List(ctx context.Context, category string) ([]domain.Project, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Project), args.Error(1)
}

func (m *mockProjectService) Categories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *mockProjectService) Get(ctx context.Context, id string) (domain.Project, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Project), args.Error(1)
}

func (m *mockProjectService) Create(ctx context.Context, req domain.CreateRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *mockProjectService) Update(ctx context.Context, id string, patch domain.Patch) error {
	return m.Called(ctx, id, patch).Error(0)
}

func (m *mockProjectService) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func allow(c *gin.Context) { c.Next() }

func deny(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
}

func newRouter(svc projecthttp.ProjectService, admin gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	projecthttp.New(svc).Register(r.Group("/api"), admin)
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListProjects_CategoryQuery(t *testing.T) {
	svc := new(mockProjectService)
	svc.On("List", mock.Anything, "Web").Return([]domain.Project{{ID: "p1", Category: "Web"}}, nil)
	r := newRouter(svc, deny)

	rec := do(r, http.MethodGet, "/api/projects?category=Web", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []domain.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ID)
	svc.AssertExpectations(t)
}

func TestListProjects_Degraded(t *testing.T) {
	svc := new(mockProjectService)
	svc.On("List", mock.Anything, "").Return(nil, apperr.Store("list projects", errors.New("timeout")))
	r := newRouter(svc, deny)

	rec := do(r, http.MethodGet, "/api/projects", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "unavailable", rec.Header().Get(response.DegradedHeader))
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCategories(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := new(mockProjectService)
		svc.On("Categories", mock.Anything).Return([]string{"All", "Web"}, nil)

		rec := do(newRouter(svc, deny), http.MethodGet, "/api/projects/categories", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `["All","Web"]`, rec.Body.String())
	})

	t.Run("degraded keeps All", func(t *testing.T) {
		svc := new(mockProjectService)
		svc.On("Categories", mock.Anything).Return(nil, apperr.ErrNotConfigured)

		rec := do(newRouter(svc, deny), http.MethodGet, "/api/projects/categories", nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "not_configured", rec.Header().Get(response.DegradedHeader))
		assert.JSONEq(t, `["All"]`, rec.Body.String())
	})
}

func TestGetProject(t *testing.T) {
	svc := new(mockProjectService)
	svc.On("Get", mock.Anything, "p1").Return(domain.Project{ID: "p1", Title: "Foo"}, nil)
	svc.On("Get", mock.Anything, "ghost").Return(domain.Project{}, apperr.ErrNotFound)
	r := newRouter(svc, deny)

	rec := do(r, http.MethodGet, "/api/projects/p1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodGet, "/api/projects/ghost", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWritesRequireAdmin(t *testing.T) {
	svc := new(mockProjectService)
	r := newRouter(svc, deny)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/api/projects"},
		{http.MethodPatch, "/api/projects/p1"},
		{http.MethodDelete, "/api/projects/p1"},
	} {
		rec := do(r, tc.method, tc.path, map[string]string{"title": "x"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code, tc.method)
	}
	svc.AssertExpectations(t)
}

func TestCreateProject_AnswersOK(t *testing.T) {
	svc := new(mockProjectService)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(req domain.CreateRequest) bool {
		return req.Title == "Foo" && req.Category == "Web"
	})).Return("p-1", nil)

	rec := do(newRouter(svc, allow), http.MethodPost, "/api/projects", map[string]string{"title": "Foo", "category": "Web"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true,"id":"p-1"}`, rec.Body.String())
	svc.AssertExpectations(t)
}

func TestCreateProject_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"missing fields", apperr.Invalid("", "Title and category are required"), http.StatusBadRequest, "Title and category are required"},
		{"not configured", apperr.ErrNotConfigured, http.StatusServiceUnavailable, "Document store is not configured"},
		{"store failure", apperr.Store("create projects", errors.New("boom")), http.StatusInternalServerError, "Failed to save project"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockProjectService)
			svc.On("Create", mock.Anything, mock.Anything).Return("", tt.err)

			rec := do(newRouter(svc, allow), http.MethodPost, "/api/projects", map[string]string{"title": "x"})
			assert.Equal(t, tt.status, rec.Code)

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.msg, body["error"])
		})
	}
}

func TestUpdateProject_BadType(t *testing.T) {
	svc := new(mockProjectService)
	rec := do(newRouter(svc, allow), http.MethodPatch, "/api/projects/p1", map[string]any{"tags": "a,b"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

// Exercises the whole stack over the in-memory store.
func TestProjects_EndToEnd(t *testing.T) {
	r := newRouter(service.NewFromStore(docstore.NewMemoryStore()), allow)

	rec := do(r, http.MethodPost, "/api/projects", map[string]string{"title": "Foo", "category": "Web"})
	require.Equal(t, http.StatusOK, rec.Code)

	var created struct {
		Success bool   `json:"success"`
		ID      string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.True(t, created.Success)
	require.NotEmpty(t, created.ID)

	rec = do(r, http.MethodGet, "/api/projects", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var raw []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, created.ID, raw[0]["id"])
	assert.Equal(t, "Foo", raw[0]["title"])
	assert.Equal(t, "Web", raw[0]["category"])
	assert.Equal(t, []any{}, raw[0]["technologies"])
	assert.Equal(t, []any{}, raw[0]["tags"])
	assert.Nil(t, raw[0]["githubLink"])
	assert.NotEmpty(t, raw[0]["createdAt"])

	rec = do(r, http.MethodPatch, "/api/projects/"+created.ID, map[string]any{"title": "Bar"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(r, http.MethodGet, "/api/projects/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var p domain.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Bar", p.Title)

	for i := 0; i < 2; i++ {
		rec = do(r, http.MethodDelete, "/api/projects/"+created.ID, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec = do(r, http.MethodPatch, "/api/projects/"+created.ID, map[string]any{"title": "Baz"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
