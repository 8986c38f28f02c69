package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/health-wallet/go-wallet-backend/internal/apperr"
	"github.com/health-wallet/go-wallet-backend/internal/vitals/cache"
	"github.com/health-wallet/go-wallet-backend/internal/vitals/domain"
)

type fakeVitalStore struct {
	created    []*domain.VitalReading
	latest     []domain.VitalReading
	latestHits int
	deleteErr  error
}

func (f *fakeVitalStore) Create(_ context.Context, v *domain.VitalReading) error {
	f.created = append(f.created, v)
	return nil
}

func (f *fakeVitalStore) List(_ context.Context, _ string, _ domain.Filter) ([]domain.VitalReading, error) {
	return nil, nil
}

func (f *fakeVitalStore) Delete(_ context.Context, _, _ string) error {
	return f.deleteErr
}

func (f *fakeVitalStore) Trends(_ context.Context, _ string, _ domain.Filter) ([]domain.TrendSeries, error) {
	return nil, nil
}

func (f *fakeVitalStore) Latest(_ context.Context, _ string) ([]domain.VitalReading, error) {
	f.latestHits++
	return f.latest, nil
}

type fakeCache struct {
	data        map[string][]domain.VitalReading
	invalidated []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]domain.VitalReading{}}
}

func (f *fakeCache) Get(_ context.Context, userID string) ([]domain.VitalReading, error) {
	r, ok := f.data[userID]
	if !ok {
		return nil, cache.ErrMiss
	}
	return r, nil
}

func (f *fakeCache) Set(_ context.Context, userID string, readings []domain.VitalReading) error {
	f.data[userID] = readings
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, userID string) error {
	delete(f.data, userID)
	f.invalidated = append(f.invalidated, userID)
	return nil
}

func validReading() *domain.VitalReading {
	return &domain.VitalReading{
		VitalType:  "heart_rate",
		Value:      72,
		Unit:       "bpm",
		RecordedAt: time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
	}
}

func TestCreate(t *testing.T) {
	store := &fakeVitalStore{}
	svc := NewVitalService(store, nil)

	got, err := svc.Create(context.Background(), "u-1", validReading(), true)
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, "u-1", got.OwnerID)
	require.Len(t, store.created, 1)
}

func TestCreate_Validation(t *testing.T) {
	svc := NewVitalService(&fakeVitalStore{}, nil)

	v := validReading()
	v.VitalType = ""
	_, err := svc.Create(context.Background(), "u-1", v, true)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	// A missing value is rejected even though the zero value itself is legal.
	_, err = svc.Create(context.Background(), "u-1", validReading(), false)
	assert.ErrorIs(t, err, apperr.ErrValidation)

	v = validReading()
	v.RecordedAt = time.Time{}
	_, err = svc.Create(context.Background(), "u-1", v, true)
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreate_ZeroValueAccepted(t *testing.T) {
	store := &fakeVitalStore{}
	svc := NewVitalService(store, nil)

	v := validReading()
	v.Value = 0
	_, err := svc.Create(context.Background(), "u-1", v, true)
	require.NoError(t, err)
}

func TestLatest_CacheMissThenFill(t *testing.T) {
	store := &fakeVitalStore{latest: []domain.VitalReading{*validReading()}}
	c := newFakeCache()
	svc := NewVitalService(store, c)

	got, err := svc.Latest(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, store.latestHits)

	// Second call is served from cache.
	_, err = svc.Latest(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, 1, store.latestHits)
}

func TestCreate_InvalidatesCache(t *testing.T) {
	store := &fakeVitalStore{}
	c := newFakeCache()
	c.data["u-1"] = []domain.VitalReading{}
	svc := NewVitalService(store, c)

	_, err := svc.Create(context.Background(), "u-1", validReading(), true)
	require.NoError(t, err)
	assert.Equal(t, []string{"u-1"}, c.invalidated)
}

func TestDelete_InvalidatesCache(t *testing.T) {
	store := &fakeVitalStore{}
	c := newFakeCache()
	svc := NewVitalService(store, c)

	require.NoError(t, svc.Delete(context.Background(), "u-1", "v-1"))
	assert.Equal(t, []string{"u-1"}, c.invalidated)
}

func TestDelete_FailureSkipsInvalidate(t *testing.T) {
	store := &fakeVitalStore{deleteErr: apperr.ErrNotFoundOrForbidden}
	c := newFakeCache()
	svc := NewVitalService(store, c)

	err := svc.Delete(context.Background(), "u-2", "v-1")
	assert.ErrorIs(t, err, apperr.ErrNotFoundOrForbidden)
	assert.Empty(t, c.invalidated)
}

func TestLatest_NoCacheConfigured(t *testing.T) {
	store := &fakeVitalStore{latest: []domain.VitalReading{*validReading()}}
	svc := NewVitalService(store, nil)

	got, err := svc.Latest(context.Background(), "u-1")
	require.NoError(t, err)
	require.Len(t, got, 1)
}
