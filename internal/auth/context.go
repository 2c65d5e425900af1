package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/portfolio-hub/portfolio-backend/internal/auth/domain"
)

const CtxPrincipal = "auth_principal"

// CurrentPrincipal returns the caller set by the admin middleware, if any.
func CurrentPrincipal(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(CtxPrincipal)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}
