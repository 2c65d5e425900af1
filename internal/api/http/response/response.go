// Package response holds the JSON envelopes shared by every resource handler.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-hub/portfolio-backend/internal/apperr"
	"github.com/portfolio-hub/portfolio-backend/internal/auth"
	"github.com/portfolio-hub/portfolio-backend/internal/logging"
)

// DegradedHeader is set on list responses served empty because the store failed.
const DegradedHeader = "X-Store-Degraded"

// Error writes {"error": msg} with the status apperr.Status assigns to err.
// Validation, not-configured and not-found errors carry their own message;
// everything else is reported with fallback so backend details stay in the logs.
func Error(c *gin.Context, op string, err error, fallback string) {
	status := apperr.Status(err)
	msg := fallback

	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		msg = ve.Message
	case errors.Is(err, apperr.ErrNotConfigured):
		msg = "Document store is not configured"
	case errors.Is(err, apperr.ErrNotFound):
		msg = "Not found"
	}

	logger := logging.NewLogger(c.Request.Context())
	if status >= http.StatusInternalServerError {
		logger.LogError(op, err)
	} else {
		logger.LogWarnf(op, "request rejected: %v", err)
	}

	c.JSON(status, gin.H{"error": msg})
}

// List writes items as a JSON array. A failed read degrades to an empty array
// flagged with DegradedHeader instead of an error status.
func List[T any](c *gin.Context, op string, items []T, err error) {
	if err != nil {
		Degrade(c, op, err)
		c.JSON(http.StatusOK, []T{})
		return
	}
	if items == nil {
		items = []T{}
	}
	c.JSON(http.StatusOK, items)
}

// Degrade logs a failed read and flags the response with DegradedHeader. The
// caller still writes a 200 body.
func Degrade(c *gin.Context, op string, err error) {
	reason := "unavailable"
	if errors.Is(err, apperr.ErrNotConfigured) {
		reason = "not_configured"
	}
	logging.NewLogger(c.Request.Context()).LogWarnf(op, "serving fallback: %v", err)
	c.Header(DegradedHeader, reason)
}

// Created answers a successful create with the new id.
func Created(c *gin.Context, id string) {
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}

// Saved answers a successful create with the new id and a plain 200.
func Saved(c *gin.Context, id string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "id": id})
}

// Updated answers a successful partial update.
func Updated(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": message})
}

// Deleted answers a delete, including a delete of an unknown id.
func Deleted(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Audit records an admin write with the caller set by the admin middleware.
func Audit(c *gin.Context, op, format string, args ...any) {
	who := "unknown"
	if p, ok := auth.CurrentPrincipal(c); ok && p.Email != "" {
		who = p.Email
	}
	logging.NewLogger(c.Request.Context()).LogInfof(op, format+" by %s", append(args, who)...)
}
