package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpapi "github.com/portfolio-hub/portfolio-backend/internal/api/http"
	"github.com/portfolio-hub/portfolio-backend/internal/api/http/response"
	"github.com/portfolio-hub/portfolio-backend/internal/apperr"
	msgdomain "github.com/portfolio-hub/portfolio-backend/internal/messages/domain"
	projdomain "github.com/portfolio-hub/portfolio-backend/internal/projects/domain"
)

type stubMessages struct {
	items []msgdomain.Message
	err   error
}

func (s stubMessages) List(context.Context) ([]msgdomain.Message, error) { return s.items, s.err }

type stubProjects struct {
	items []projdomain.Project
	err   error
}

func (s stubProjects) List(context.Context, string) ([]projdomain.Project, error) {
	return s.items, s.err
}

func getStats(t *testing.T, h *httpapi.StatsHandler) (*httptest.ResponseRecorder, httpapi.StatsResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.Register(r.Group("/api"), func(c *gin.Context) { c.Next() })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard/stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var out httpapi.StatsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

func TestStats(t *testing.T) {
	h := httpapi.NewStatsHandler(
		stubMessages{items: []msgdomain.Message{{Read: true}, {}, {}}},
		stubProjects{items: []projdomain.Project{{}, {}}},
	)

	rec, out := getStats(t, h)
	assert.Equal(t, httpapi.StatsResponse{Projects: 2, Messages: 3, Unread: 2}, out)
	assert.Empty(t, rec.Header().Get(response.DegradedHeader))
}

func TestStats_Degraded(t *testing.T) {
	h := httpapi.NewStatsHandler(
		stubMessages{err: apperr.ErrNotConfigured},
		stubProjects{items: []projdomain.Project{{}}},
	)

	rec, out := getStats(t, h)
	assert.Equal(t, httpapi.StatsResponse{Projects: 1, Degraded: true}, out)
	assert.Equal(t, "not_configured", rec.Header().Get(response.DegradedHeader))
}
