package http

import "github.com/gin-gonic/gin"

// Register attaches sharing routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("", h.share)
	rg.GET("/shared-with-me", h.sharedWithMe)
	rg.GET("/my-shares", h.myShares)
	rg.DELETE("/:id", h.revoke)
}
