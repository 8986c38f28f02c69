package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/health-wallet/go-wallet-backend/internal/apperr"
	"github.com/health-wallet/go-wallet-backend/internal/sharing/domain"
)

// GrantStore is the persistence surface the sharing service needs.
type GrantStore interface {
	Create(ctx context.Context, ownerID, reportID, granteeEmail, accessType string) (*domain.OwnedShare, error)
	Revoke(ctx context.Context, callerID, grantID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.OwnedShare, error)
	ListByGrantee(ctx context.Context, granteeID string) ([]domain.SharedReport, error)
}

type ShareService struct {
	grants GrantStore
}

func NewShareService(grants GrantStore) *ShareService {
	return &ShareService{grants: grants}
}

// Share grants read access on an owned report to the user behind the given
// email. The access type defaults to read; other values are stored as-is
// but carry no extra capability.
func (s *ShareService) Share(ctx context.Context, ownerID, reportID, granteeEmail, accessType string) (*domain.OwnedShare, error) {
	granteeEmail = strings.TrimSpace(strings.ToLower(granteeEmail))
	if reportID == "" || granteeEmail == "" {
		return nil, fmt.Errorf("report ID and email are required: %w", apperr.ErrValidation)
	}
	if accessType == "" {
		accessType = domain.AccessTypeRead
	}

	return s.grants.Create(ctx, ownerID, reportID, granteeEmail, accessType)
}

func (s *ShareService) Revoke(ctx context.Context, callerID, grantID string) error {
	return s.grants.Revoke(ctx, callerID, grantID)
}

func (s *ShareService) MyShares(ctx context.Context, ownerID string) ([]domain.OwnedShare, error) {
	return s.grants.ListByOwner(ctx, ownerID)
}

func (s *ShareService) SharedWithMe(ctx context.Context, granteeID string) ([]domain.SharedReport, error) {
	return s.grants.ListByGrantee(ctx, granteeID)
}
