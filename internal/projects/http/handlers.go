package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-hub/portfolio-backend/internal/api/http/response"
	"github.com/portfolio-hub/portfolio-backend/internal/projects/domain"
)

func (h *Handler) list(c *gin.Context) {
	category := strings.TrimSpace(c.Query("category"))
	items, err := h.svc.List(c.Request.Context(), category)
	response.List(c, "projects.list", items, err)
}

func (h *Handler) categories(c *gin.Context) {
	cats, err := h.svc.Categories(c.Request.Context())
	if err != nil {
		response.Degrade(c, "projects.categories", err)
		cats = []string{domain.AllCategories}
	}
	c.JSON(http.StatusOK, cats)
}

func (h *Handler) get(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	p, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, "projects.get", err, "Failed to load project")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *Handler) create(c *gin.Context) {
	var req domain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	id, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, "projects.create", err, "Failed to save project")
		return
	}
	response.Audit(c, "projects.create", "created project %s", id)
	response.Saved(c, id)
}

func (h *Handler) update(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	patch, err := domain.ParsePatch(raw)
	if err != nil {
		response.Error(c, "projects.update", err, "Failed to update project")
		return
	}

	if err := h.svc.Update(c.Request.Context(), id, patch); err != nil {
		response.Error(c, "projects.update", err, "Failed to update project")
		return
	}
	response.Audit(c, "projects.update", "updated project %s", id)
	response.Updated(c, fmt.Sprintf("Project %s updated successfully.", id))
}

func (h *Handler) delete(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A project id is required."})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, "projects.delete", err, "Failed to delete project")
		return
	}
	response.Audit(c, "projects.delete", "deleted project %s", id)
	response.Deleted(c)
}
