package http

import "github.com/gin-gonic/gin"

// Register attaches message routes. Submitting a message is public; reading
// and managing them goes through admin.
func (h *Handler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	rg.POST("/messages", h.create)
	rg.POST("/contact", h.create)

	manage := rg.Group("/messages", admin)
	manage.GET("", h.list)
	manage.PATCH("/:id", h.update)
	manage.DELETE("/:id", h.deleteByParam)
	manage.DELETE("", h.deleteByBody)
}
