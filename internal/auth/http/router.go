package http

import "github.com/gin-gonic/gin"

// Register attaches auth routes. The credential endpoints are expected to be
// wrapped by the rate-limit middleware; profile and search require the JWT
// middleware.
func (h *Handler) Register(public, protected *gin.RouterGroup) {
	public.POST("/register", h.register)
	public.POST("/login", h.login)

	protected.GET("/profile", h.profile)
	protected.GET("/search", h.search)
}
