package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-hub/portfolio-backend/internal/apperr"
	"github.com/portfolio-hub/portfolio-backend/internal/auth/domain"
	"github.com/portfolio-hub/portfolio-backend/internal/auth/service"
	"github.com/portfolio-hub/portfolio-backend/internal/logging"
)

// Login exchanges the admin email and password for a session token.
func (h *Handler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid body")
		return
	}

	session, err := h.authService.Login(req)
	if err != nil {
		logger := logging.NewLogger(c.Request.Context())

		var ve *apperr.ValidationError
		switch {
		case errors.Is(err, service.ErrAdminNotConfigured):
			logger.LogWarn("auth.login", "login attempted without admin credentials configured")
			fail(c, http.StatusServiceUnavailable, "Admin credentials are not configured.")
		case errors.As(err, &ve):
			fail(c, http.StatusBadRequest, ve.Message)
		case errors.Is(err, apperr.ErrUnauthorized):
			logger.LogWarn("auth.login", "invalid admin credentials")
			fail(c, http.StatusUnauthorized, "Invalid email or password.")
		default:
			logger.LogErrorf("auth.login", "issuing session: %v", err)
			fail(c, http.StatusInternalServerError, "An error occurred during login.")
		}
		return
	}

	logging.NewLogger(c.Request.Context()).LogInfo("auth.login", "admin logged in")
	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "Login successful!",
		"token":     session.Token,
		"expiresAt": session.ExpiresAt,
	})
}

// fail answers in the login envelope; "error" mirrors "message" for clients
// that only read the common error key.
func fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "message": msg, "error": msg})
}
