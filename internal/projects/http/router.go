package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group. Reads are
// public; writes go through admin.
func (h *Handler) Register(rg *gin.RouterGroup, admin gin.HandlerFunc) {
	g := rg.Group("/projects")
	g.GET("", h.list)
	g.GET("/categories", h.categories)
	g.GET("/:id", h.get)

	g.POST("", admin, h.create)
	g.PATCH("/:id", admin, h.update)
	g.DELETE("/:id", admin, h.delete)
}
