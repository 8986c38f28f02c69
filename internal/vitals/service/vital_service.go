package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/health-wallet/go-wallet-backend/internal/apperr"
	"github.com/health-wallet/go-wallet-backend/internal/vitals/cache"
	"github.com/health-wallet/go-wallet-backend/internal/vitals/domain"
)

// VitalStore is the persistence surface the vitals service needs.
type VitalStore interface {
	Create(ctx context.Context, v *domain.VitalReading) error
	List(ctx context.Context, ownerID string, f domain.Filter) ([]domain.VitalReading, error)
	Delete(ctx context.Context, callerID, vitalID string) error
	Trends(ctx context.Context, ownerID string, f domain.Filter) ([]domain.TrendSeries, error)
	Latest(ctx context.Context, ownerID string) ([]domain.VitalReading, error)
}

// LatestCache is the optional Redis snapshot of Latest results.
type LatestCache interface {
	Get(ctx context.Context, userID string) ([]domain.VitalReading, error)
	Set(ctx context.Context, userID string, readings []domain.VitalReading) error
	Invalidate(ctx context.Context, userID string) error
}

type VitalService struct {
	repo  VitalStore
	cache LatestCache // nil when Redis is disabled
}

func NewVitalService(repo VitalStore, latestCache LatestCache) *VitalService {
	return &VitalService{repo: repo, cache: latestCache}
}

// Create validates presence of the required fields and stores the reading.
// No range validation is applied: domain plausibility is not this layer's
// job, so a negative heart rate is accepted.
func (s *VitalService) Create(ctx context.Context, ownerID string, v *domain.VitalReading, hasValue bool) (*domain.VitalReading, error) {
	if v.VitalType == "" || !hasValue || v.Unit == "" || v.RecordedAt.IsZero() {
		return nil, fmt.Errorf("vital type, value, unit, and recorded date are required: %w", apperr.ErrValidation)
	}

	v.ID = uuid.New().String()
	v.OwnerID = ownerID

	if err := s.repo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID)
	return v, nil
}

func (s *VitalService) List(ctx context.Context, ownerID string, f domain.Filter) ([]domain.VitalReading, error) {
	return s.repo.List(ctx, ownerID, f)
}

func (s *VitalService) Delete(ctx context.Context, callerID, vitalID string) error {
	if err := s.repo.Delete(ctx, callerID, vitalID); err != nil {
		return err
	}
	s.invalidate(ctx, callerID)
	return nil
}

func (s *VitalService) Trends(ctx context.Context, ownerID string, f domain.Filter) ([]domain.TrendSeries, error) {
	return s.repo.Trends(ctx, ownerID, f)
}

// Latest serves the per-type snapshot from cache when possible.
func (s *VitalService) Latest(ctx context.Context, ownerID string) ([]domain.VitalReading, error) {
	if s.cache != nil {
		readings, err := s.cache.Get(ctx, ownerID)
		if err == nil {
			return readings, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			log.Printf("[warn] op=vitals_latest cache_get user=%s err=%v", ownerID, err)
		}
	}

	readings, err := s.repo.Latest(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, ownerID, readings); err != nil {
			log.Printf("[warn] op=vitals_latest cache_set user=%s err=%v", ownerID, err)
		}
	}
	return readings, nil
}

func (s *VitalService) invalidate(ctx context.Context, ownerID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		log.Printf("[warn] op=vitals_invalidate user=%s err=%v", ownerID, err)
	}
}
