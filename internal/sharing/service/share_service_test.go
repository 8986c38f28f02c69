package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/health-wallet/go-wallet-backend/internal/apperr"
	"github.com/health-wallet/go-wallet-backend/internal/sharing/domain"
)

type fakeGrantStore struct {
	lastEmail      string
	lastAccessType string
	revoked        []string
}

func (f *fakeGrantStore) Create(_ context.Context, ownerID, reportID, granteeEmail, accessType string) (*domain.OwnedShare, error) {
	f.lastEmail = granteeEmail
	f.lastAccessType = accessType
	return &domain.OwnedShare{
		AccessGrant: domain.AccessGrant{
			ID: "s-1", ReportID: reportID, OwnerID: ownerID, GranteeID: "u-2", AccessType: accessType,
		},
	}, nil
}

func (f *fakeGrantStore) Revoke(_ context.Context, _, grantID string) error {
	f.revoked = append(f.revoked, grantID)
	return nil
}

func (f *fakeGrantStore) ListByOwner(_ context.Context, _ string) ([]domain.OwnedShare, error) {
	return nil, nil
}

func (f *fakeGrantStore) ListByGrantee(_ context.Context, _ string) ([]domain.SharedReport, error) {
	return nil, nil
}

func TestShare(t *testing.T) {
	store := &fakeGrantStore{}
	svc := NewShareService(store)

	share, err := svc.Share(context.Background(), "u-1", "r-1", "  Bob@Example.COM ", "")
	require.NoError(t, err)

	assert.Equal(t, "bob@example.com", store.lastEmail)
	assert.Equal(t, domain.AccessTypeRead, store.lastAccessType)
	assert.Equal(t, "r-1", share.ReportID)
}

func TestShare_Validation(t *testing.T) {
	svc := NewShareService(&fakeGrantStore{})

	_, err := svc.Share(context.Background(), "u-1", "", "bob@example.com", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.Share(context.Background(), "u-1", "r-1", "   ", "")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestRevoke(t *testing.T) {
	store := &fakeGrantStore{}
	svc := NewShareService(store)

	require.NoError(t, svc.Revoke(context.Background(), "u-1", "s-1"))
	assert.Equal(t, []string{"s-1"}, store.revoked)
}
