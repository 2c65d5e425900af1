package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-hub/portfolio-backend/internal/api/http/response"
	"github.com/portfolio-hub/portfolio-backend/internal/messages/domain"
)

func (h *Handler) list(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	response.List(c, "messages.list", items, err)
}

func (h *Handler) create(c *gin.Context) {
	var req domain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	id, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, "messages.create", err, "Failed to send message.")
		return
	}
	response.Created(c, id)
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
		response.Error(c, "messages.update", err, "Failed to update message.")
		return
	}

	if err := h.svc.Update(c.Request.Context(), id, patch); err != nil {
		response.Error(c, "messages.update", err, "Failed to update message.")
		return
	}
	response.Audit(c, "messages.update", "updated message %s", id)
	response.Updated(c, fmt.Sprintf("Message %s updated successfully.", id))
}

// deleteByParam serves DELETE /messages/:id.
func (h *Handler) deleteByParam(c *gin.Context) {
	h.delete(c, strings.TrimSpace(c.Param("id")))
}

// deleteByBody serves DELETE /messages with {"id": ...}.
func (h *Handler) deleteByBody(c *gin.Context) {
	var req deleteReq
	_ = c.ShouldBindJSON(&req)
	h.delete(c, strings.TrimSpace(req.ID))
}

func (h *Handler) delete(c *gin.Context, id string) {
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A message id is required."})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, "messages.delete", err, "Failed to delete message.")
		return
	}
	response.Audit(c, "messages.delete", "deleted message %s", id)
	response.Deleted(c)
}
