package http

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/health-wallet/go-wallet-backend/internal/httpx"
	"github.com/health-wallet/go-wallet-backend/internal/reports/domain"
)

func (h *Handler) upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds the 10MB limit"})
		return
	}
	if !allowedContentTypes[fileHeader.Header.Get("Content-Type")] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type. Only PDF and images are allowed."})
		return
	}

	title := c.PostForm("title")
	reportType := c.PostForm("report_type")
	rawDate := c.PostForm("report_date")
	if title == "" || reportType == "" || rawDate == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, report type, and date are required"})
		return
	}

	reportDate, err := time.Parse(dateLayout, rawDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report_date must be YYYY-MM-DD"})
		return
	}

	var notes *string
	if v := c.PostForm("notes"); v != "" {
		notes = &v
	}

	f, err := fileHeader.Open()
	if err != nil {
		httpx.Error(c, err)
		return
	}
	defer f.Close()

	rep, err := h.svc.Upload(c.Request.Context(), c.GetString("user_id"), domain.CreateInput{
		Title:      title,
		ReportType: reportType,
		FileName:   fileHeader.Filename,
		ReportDate: reportDate,
		Notes:      notes,
	}, f)
	if err != nil {
		httpx.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Report uploaded successfully", "report": rep})
}

func (h *Handler) list(c *gin.Context) {
	f, err := parseFilter(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dates must be YYYY-MM-DD"})
		return
	}

	reports, err := h.svc.List(c.Request.Context(), c.GetString("user_id"), f)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, reports)
}

func (h *Handler) get(c *gin.Context) {
	rep, err := h.svc.Get(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *Handler) download(c *gin.Context) {
	rc, rep, err := h.svc.Download(c.Request.Context(), c.GetString("user_id"), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Disposition", `attachment; filename="`+rep.FileName+`"`)
	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *Handler) delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.GetString("user_id"), c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Report deleted successfully"})
}
