package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/health-wallet/go-wallet-backend/internal/httpx"
	"github.com/health-wallet/go-wallet-backend/internal/vitals/domain"
)

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	var recordedAt time.Time
	if req.RecordedAt != "" {
		t, err := parseWhen(req.RecordedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "recorded_at must be RFC 3339 or YYYY-MM-DD"})
			return
		}
		recordedAt = t
	}

	reading := &domain.VitalReading{
		VitalType:  req.VitalType,
		Unit:       req.Unit,
		RecordedAt: recordedAt,
		Notes:      req.Notes,
		ReportID:   req.ReportID,
	}
	if req.Value != nil {
		reading.Value = *req.Value
	}

	created, err := h.svc.Create(c.Request.Context(), c.GetString("user_id"), reading, req.Value != nil)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Vital recorded successfully", "vital": created})
}

func (h *Handler) list(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be RFC 3339 or YYYY-MM-DD"})
		return
	}

	vitals, err := h.svc.List(c.Request.Context(), c.GetString("user_id"), f)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, vitals)
}

func (h *Handler) trends(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be RFC 3339 or YYYY-MM-DD"})
		return
	}

	series, err := h.svc.Trends(c.Request.Context(), c.GetString("user_id"), f)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, series)
}

func (h *Handler) latest(c *gin.Context) {
	vitals, err := h.svc.Latest(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, vitals)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vital deleted successfully"})
}
