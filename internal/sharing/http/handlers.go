package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/health-wallet/go-wallet-backend/internal/httpx"
	"github.com/health-wallet/go-wallet-backend/internal/sharing/service"
)

// Handler bundles the dependencies for sharing HTTP endpoints.
type Handler struct {
	svc *service.ShareService
}

func New(svc *service.ShareService) *Handler {
	return &Handler{svc: svc}
}

type shareReq struct {
	ReportID   string `json:"report_id"`
	Email      string `json:"shared_with_email"`
	AccessType string `json:"access_type"`
}

func (h *Handler) share(c *gin.Context) {
	var req shareReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	share, err := h.svc.Share(c.Request.Context(), c.GetString("user_id"), req.ReportID, req.Email, req.AccessType)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Report shared successfully", "share": share})
}

func (h *Handler) sharedWithMe(c *gin.Context) {
	shares, err := h.svc.SharedWithMe(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, shares)
}

func (h *Handler) myShares(c *gin.Context) {
	shares, err := h.svc.MyShares(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, shares)
}

func (h *Handler) revoke(c *gin.Context) {
	if err := h.svc.Revoke(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Access revoked successfully"})
}
