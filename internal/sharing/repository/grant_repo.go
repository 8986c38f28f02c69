package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/health-wallet/go-wallet-backend/internal/apperr"
	"github.com/health-wallet/go-wallet-backend/internal/dbx"
	"github.com/health-wallet/go-wallet-backend/internal/sharing/domain"
)

// GrantRepository owns the shared_access ledger.
type GrantRepository struct {
	db *sql.DB
}

func NewGrantRepository(db *sql.DB) *GrantRepository {
	return &GrantRepository{db: db}
}

// Create resolves and inserts a grant in one transaction, in this order:
// the report must exist and belong to the owner, the grantee email must
// resolve to a user, the grantee must not be the owner, and no grant may
// already exist for the pair. The unique index on (report_id,
// shared_with_id) backs the last check, so concurrent duplicate shares
// cannot both commit.
func (r *GrantRepository) Create(ctx context.Context, ownerID, reportID, granteeEmail, accessType string) (*domain.OwnedShare, error) {
	var share domain.OwnedShare

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		var reportTitle, reportType string
		err := tx.QueryRowContext(ctx,
			`SELECT title, report_type FROM reports WHERE id = $1 AND user_id = $2;`,
			reportID, ownerID,
		).Scan(&reportTitle, &reportType)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("report not found or you do not own it: %w", apperr.ErrNotFoundOrForbidden)
			}
			return fmt.Errorf("check report ownership: %w", err)
		}

		var grantee struct{ id, email, name string }
		err = tx.QueryRowContext(ctx,
			`SELECT id, email, name FROM users WHERE email = $1;`, granteeEmail,
		).Scan(&grantee.id, &grantee.email, &grantee.name)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("user not found with that email: %w", apperr.ErrNotFound)
			}
			return fmt.Errorf("resolve grantee: %w", err)
		}

		if grantee.id == ownerID {
			return fmt.Errorf("cannot share with yourself: %w", apperr.ErrInvalidOperation)
		}

		grant := domain.AccessGrant{
			ID:         uuid.New().String(),
			ReportID:   reportID,
			OwnerID:    ownerID,
			GranteeID:  grantee.id,
			AccessType: accessType,
		}

		err = tx.QueryRowContext(ctx, `
INSERT INTO shared_access (id, report_id, owner_id, shared_with_id, access_type)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at;
`, grant.ID, grant.ReportID, grant.OwnerID, grant.GranteeID, grant.AccessType).
			Scan(&grant.CreatedAt)
		if err != nil {
			var pgErr *pq.Error
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("report already shared with this user: %w", apperr.ErrConflict)
			}
			return fmt.Errorf("insert grant: %w", err)
		}

		share = domain.OwnedShare{
			AccessGrant: grant,
			ReportTitle: reportTitle,
			ReportType:  reportType,
		}
		share.Grantee.ID = grantee.id
		share.Grantee.Email = grantee.email
		share.Grantee.Name = grantee.name
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &share, nil
}

// Revoke deletes a grant the caller owns. Absent grant and foreign grant
// are reported identically.
func (r *GrantRepository) Revoke(ctx context.Context, callerID, grantID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM shared_access WHERE id = $1 AND owner_id = $2;`, grantID, callerID)
	if err != nil {
		return fmt.Errorf("revoke grant: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("revoke grant: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("share not found or you are not the owner: %w", apperr.ErrNotFoundOrForbidden)
	}
	return nil
}

// ListByOwner returns every grant on the caller's reports, newest first.
func (r *GrantRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.OwnedShare, error) {
	const q = `
SELECT sa.id, sa.report_id, sa.owner_id, sa.shared_with_id, sa.access_type, sa.created_at,
       r.title, r.report_type,
       u.id, u.email, u.name
FROM shared_access sa
INNER JOIN reports r ON sa.report_id = r.id
INNER JOIN users u ON sa.shared_with_id = u.id
WHERE sa.owner_id = $1
ORDER BY sa.created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list shares by owner: %w", err)
	}
	defer rows.Close()

	out := make([]domain.OwnedShare, 0, 8)
	for rows.Next() {
		var s domain.OwnedShare
		if err := rows.Scan(&s.ID, &s.ReportID, &s.OwnerID, &s.GranteeID, &s.AccessType, &s.CreatedAt,
			&s.ReportTitle, &s.ReportType,
			&s.Grantee.ID, &s.Grantee.Email, &s.Grantee.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListByGrantee returns the reports shared with the caller, newest grant
// first.
func (r *GrantRepository) ListByGrantee(ctx context.Context, granteeID string) ([]domain.SharedReport, error) {
	const q = `
SELECT r.id, r.user_id, r.title, r.report_type, r.file_name, r.report_date, r.notes, r.created_at,
       sa.access_type, sa.created_at,
       u.id, u.email, u.name
FROM reports r
INNER JOIN shared_access sa ON r.id = sa.report_id
INNER JOIN users u ON r.user_id = u.id
WHERE sa.shared_with_id = $1
ORDER BY sa.created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q, granteeID)
	if err != nil {
		return nil, fmt.Errorf("list shares by grantee: %w", err)
	}
	defer rows.Close()

	out := make([]domain.SharedReport, 0, 8)
	for rows.Next() {
		var s domain.SharedReport
		if err := rows.Scan(&s.Report.ID, &s.Report.OwnerID, &s.Report.Title, &s.Report.ReportType,
			&s.Report.FileName, &s.Report.ReportDate, &s.Report.Notes, &s.Report.CreatedAt,
			&s.AccessType, &s.SharedAt,
			&s.Owner.ID, &s.Owner.Email, &s.Owner.Name); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
