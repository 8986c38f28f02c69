package http

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/health-wallet/go-wallet-backend/internal/vitals/domain"
	"github.com/health-wallet/go-wallet-backend/internal/vitals/service"
)

// Handler bundles the dependencies for vitals HTTP endpoints.
type Handler struct {
	svc *service.VitalService
}

func New(svc *service.VitalService) *Handler {
	return &Handler{svc: svc}
}

type createReq struct {
	VitalType  string   `json:"vital_type"`
	Value      *float64 `json:"value"`
	Unit       string   `json:"unit"`
	RecordedAt string   `json:"recorded_at"`
	Notes      *string  `json:"notes"`
	ReportID   *string  `json:"report_id"`
}

// parseWhen accepts the timestamps clients send: RFC 3339 or a bare date.
func parseWhen(v string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", v)
}

func parseFilter(c *gin.Context) (domain.Filter, error) {
	f := domain.Filter{VitalType: c.Query("vital_type")}

	if v := c.Query("start_date"); v != "" {
		t, err := parseWhen(v)
		if err != nil {
			return f, err
		}
		f.Start = &t
	}
	if v := c.Query("end_date"); v != "" {
		t, err := parseWhen(v)
		if err != nil {
			return f, err
		}
		f.End = &t
	}
	return f, nil
}
