package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/portfolio-hub/portfolio-backend/internal/auth"
	"github.com/portfolio-hub/portfolio-backend/internal/auth/domain"
	"github.com/portfolio-hub/portfolio-backend/internal/logging"
)

// AdminOptions configures RequireAdmin. Tokens may be nil when session login
// is disabled; Firebase may be nil when Firebase ID tokens are not accepted.
type AdminOptions struct {
	Tokens     *auth.TokenService
	Firebase   auth.IDTokenVerifier
	AdminEmail string
}

// RequireAdmin lets a request through only with a bearer token naming the
// admin. A session token is tried first, then a Firebase ID token whose email
// is the admin email. No usable token is 401; a valid non-admin token is 403.
func RequireAdmin(opt AdminOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization token"})
			return
		}

		if opt.Tokens != nil {
			if claims, err := opt.Tokens.Validate(token); err == nil {
				if claims.Role != domain.RoleAdmin {
					c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
					return
				}
				c.Set(auth.CtxPrincipal, domain.Principal{Email: claims.Email, Role: claims.Role, Source: "session"})
				c.Next()
				return
			}
		}

		if opt.Firebase != nil {
			decoded, err := opt.Firebase.VerifyIDToken(c.Request.Context(), token)
			if err == nil {
				email, _ := decoded.Claims["email"].(string)
				if opt.AdminEmail == "" || email != opt.AdminEmail {
					logging.NewLogger(c.Request.Context()).LogWarnf("auth.admin", "firebase user %s is not the admin", decoded.UID)
					c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin privileges required"})
					return
				}
				c.Set(auth.CtxPrincipal, domain.Principal{Email: email, Role: domain.RoleAdmin, Source: "firebase"})
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
	}
}

// extractToken extracts the Bearer token from the Authorization header
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.EqualFold(bearerToken[:7], "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	return ""
}
