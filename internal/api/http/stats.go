package http

import (
	"context"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-hub/portfolio-backend/internal/api/http/response"
	msgdomain "github.com/portfolio-hub/portfolio-backend/internal/messages/domain"
	projdomain "github.com/portfolio-hub/portfolio-backend/internal/projects/domain"
)

// MessageLister and ProjectLister are the reads the dashboard summary needs.
type MessageLister interface {
	List(ctx context.Context) ([]msgdomain.Message, error)
}

type ProjectLister interface {
	List(ctx context.Context, category string) ([]projdomain.Project, error)
}

type StatsResponse struct {
	Projects int  `json:"projects"`
	Messages int  `json:"messages"`
	Unread   int  `json:"unread"`
	Degraded bool `json:"degraded"`
}

// StatsHandler serves the counters on the dashboard home screen.
type StatsHandler struct {
	messages MessageLister
	projects ProjectLister
}

func NewStatsHandler(messages MessageLister, projects ProjectLister) *StatsHandler {
	return &StatsHandler{messages: messages, projects: projects}
}

// Stats loads both collections concurrently. A failed read counts as zero and
// marks the response degraded.
func (h *StatsHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		wg       sync.WaitGroup
		msgs     []msgdomain.Message
		projects []projdomain.Project
		msgErr   error
		projErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		msgs, msgErr = h.messages.List(ctx)
	}()
	go func() {
		defer wg.Done()
		projects, projErr = h.projects.List(ctx, "")
	}()
	wg.Wait()

	out := StatsResponse{
		Projects: len(projects),
		Messages: len(msgs),
		Unread:   msgdomain.Unread(msgs),
	}
	if msgErr != nil {
		out.Degraded = true
		response.Degrade(c, "dashboard.stats.messages", msgErr)
	}
	if projErr != nil {
		out.Degraded = true
		response.Degrade(c, "dashboard.stats.projects", projErr)
	}

	c.JSON(http.StatusOK, out)
}

func (h *StatsHandler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.GET("/dashboard/stats", admin, h.Stats)
}
