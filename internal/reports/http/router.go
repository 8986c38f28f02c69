package http

import "github.com/gin-gonic/gin"

// Register attaches report routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.upload)
	rg.GET("", h.list)
	rg.GET("/:id", h.get)
	rg.GET("/:id/download", h.download)
	rg.DELETE("/:id", h.delete)
}
