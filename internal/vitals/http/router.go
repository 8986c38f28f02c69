package http

import "github.com/gin-gonic/gin"

// Register attaches vitals routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/trends", h.trends)
	rg.GET("/latest", h.latest)
	rg.DELETE("/:id", h.delete)
}
