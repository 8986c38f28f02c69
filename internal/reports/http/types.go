package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/health-wallet/go-wallet-backend/internal/reports/domain"
	"github.com/health-wallet/go-wallet-backend/internal/reports/service"
)

// Handler bundles the dependencies for report HTTP endpoints.
type Handler struct {
	svc *service.ReportService
}

func New(svc *service.ReportService) *Handler {
	return &Handler{svc: svc}
}

const (
	maxUploadBytes = 10 << 20 // 10 MiB
	dateLayout     = "2006-01-02"
)

var allowedContentTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/jpg":       true,
	"image/png":       true,
}

func parseFilter(c *gin.Context) (domain.Filter, error) {
	f := domain.Filter{
		ReportType: c.Query("report_type"),
		Search:     c.Query("search"),
	}

	if v := c.Query("start_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, err
		}
		f.StartDate = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := time.Parse(dateLayout, v)
		if err != nil {
			return f, err
		}
		f.EndDate = &t
	}
	return f, nil
}
