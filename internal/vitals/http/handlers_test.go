package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/health-wallet/go-wallet-backend/internal/apperr"
	"github.com/health-wallet/go-wallet-backend/internal/vitals/domain"
	"github.com/health-wallet/go-wallet-backend/internal/vitals/service"
)

// memVitalStore is an in-memory VitalStore backing the handler tests.
type memVitalStore struct {
	readings map[string]*domain.VitalReading
}

func newMemVitalStore() *memVitalStore {
	return &memVitalStore{readings: map[string]*domain.VitalReading{}}
}

func (m *memVitalStore) Create(_ context.Context, v *domain.VitalReading) error {
	cp := *v
	m.readings[v.ID] = &cp
	return nil
}

func (m *memVitalStore) List(_ context.Context, ownerID string, f domain.Filter) ([]domain.VitalReading, error) {
	out := m.owned(ownerID, f)
	sort.Slice(out, func(i, j int) bool { return out[i].RecordedAt.After(out[j].RecordedAt) })
	return out, nil
}

func (m *memVitalStore) Delete(_ context.Context, callerID, vitalID string) error {
	v, ok := m.readings[vitalID]
	if !ok || v.OwnerID != callerID {
		return apperr.ErrNotFoundOrForbidden
	}
	delete(m.readings, vitalID)
	return nil
}

func (m *memVitalStore) Trends(_ context.Context, ownerID string, f domain.Filter) ([]domain.TrendSeries, error) {
	readings := m.owned(ownerID, f)
	sort.Slice(readings, func(i, j int) bool {
		if readings[i].VitalType != readings[j].VitalType {
			return readings[i].VitalType < readings[j].VitalType
		}
		return readings[i].RecordedAt.Before(readings[j].RecordedAt)
	})

	var series []domain.TrendSeries
	for _, r := range readings {
		if len(series) == 0 || series[len(series)-1].Type != r.VitalType {
			series = append(series, domain.TrendSeries{Type: r.VitalType, Unit: r.Unit})
		}
		last := &series[len(series)-1]
		last.Points = append(last.Points, domain.TrendPoint{Value: r.Value, RecordedAt: r.RecordedAt})
	}
	return series, nil
}

func (m *memVitalStore) Latest(_ context.Context, ownerID string) ([]domain.VitalReading, error) {
	latest := map[string]domain.VitalReading{}
	for _, r := range m.owned(ownerID, domain.Filter{}) {
		cur, ok := latest[r.VitalType]
		if !ok || r.RecordedAt.After(cur.RecordedAt) {
			latest[r.VitalType] = r
		}
	}
	out := make([]domain.VitalReading, 0, len(latest))
	for _, r := range latest {
		out = append(out, r)
	}
	return out, nil
}

func (m *memVitalStore) owned(ownerID string, f domain.Filter) []domain.VitalReading {
	var out []domain.VitalReading
	for _, r := range m.readings {
		if r.OwnerID != ownerID {
			continue
		}
		if f.VitalType != "" && r.VitalType != f.VitalType {
			continue
		}
		if f.Start != nil && r.RecordedAt.Before(*f.Start) {
			continue
		}
		if f.End != nil && r.RecordedAt.After(*f.End) {
			continue
		}
		out = append(out, *r)
	}
	return out
}

func newTestRouter(store *memVitalStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := New(service.NewVitalService(store, nil))

	// Stand-in for the auth middleware.
	rg := r.Group("/api/vitals", func(c *gin.Context) {
		c.Set("user_id", "u-1")
	})
	h.Register(rg)
	return r
}

func postVital(t *testing.T, r *gin.Engine, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/vitals", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateVital(t *testing.T) {
	store := newMemVitalStore()
	r := newTestRouter(store)

	w := postVital(t, r, map[string]any{
		"vital_type":  "heart_rate",
		"value":       72,
		"unit":        "bpm",
		"recorded_at": "2026-03-01T08:00:00Z",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, store.readings, 1)
}

func TestCreateVital_MissingValue(t *testing.T) {
	r := newTestRouter(newMemVitalStore())

	w := postVital(t, r, map[string]any{
		"vital_type":  "heart_rate",
		"unit":        "bpm",
		"recorded_at": "2026-03-01",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateVital_BadTimestamp(t *testing.T) {
	r := newTestRouter(newMemVitalStore())

	w := postVital(t, r, map[string]any{
		"vital_type":  "heart_rate",
		"value":       72,
		"unit":        "bpm",
		"recorded_at": "01/03/2026",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// A week of heart-rate readings comes back as one ascending series, and
// the latest endpoint returns only the newest reading per type.
func TestHeartRateTrendAndLatest(t *testing.T) {
	store := newMemVitalStore()
	r := newTestRouter(store)

	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i, v := range []float64{70, 74, 68, 72} {
		w := postVital(t, r, map[string]any{
			"vital_type":  "heart_rate",
			"value":       v,
			"unit":        "bpm",
			"recorded_at": base.AddDate(0, 0, i).Format(time.RFC3339),
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}
	w := postVital(t, r, map[string]any{
		"vital_type":  "weight",
		"value":       71.5,
		"unit":        "kg",
		"recorded_at": base.Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/vitals/trends?vital_type=heart_rate", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var series []domain.TrendSeries
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &series))
	require.Len(t, series, 1)
	assert.Equal(t, "heart_rate", series[0].Type)
	require.Len(t, series[0].Points, 4)
	assert.Equal(t, 70.0, series[0].Points[0].Value)
	assert.Equal(t, 72.0, series[0].Points[3].Value)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/vitals/latest", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var latest []domain.VitalReading
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &latest))
	require.Len(t, latest, 2)

	byType := map[string]float64{}
	for _, v := range latest {
		byType[v.VitalType] = v.Value
	}
	assert.Equal(t, 72.0, byType["heart_rate"])
	assert.Equal(t, 71.5, byType["weight"])
}

func TestDeleteVital_NotOwned(t *testing.T) {
	store := newMemVitalStore()
	other := uuid.New().String()
	store.readings[other] = &domain.VitalReading{ID: other, OwnerID: "u-2", VitalType: "weight"}
	r := newTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/api/vitals/"+other, nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, store.readings, 1)
}
