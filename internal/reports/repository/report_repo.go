package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/health-wallet/go-wallet-backend/internal/apperr"
	"github.com/health-wallet/go-wallet-backend/internal/dbx"
	"github.com/health-wallet/go-wallet-backend/internal/reports/domain"
)

// ReportRepository provides persistence operations for reports and enforces
// per-record ownership on every mutating path.
type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Create inserts a new report for the given owner.
func (r *ReportRepository) Create(ctx context.Context, ownerID string, rep *domain.Report) error {
	const q = `
INSERT INTO reports (id, user_id, title, report_type, storage_ref, file_name, report_date, notes)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING created_at;
`
	err := r.db.QueryRowContext(ctx, q,
		rep.ID, ownerID, rep.Title, rep.ReportType, rep.StorageRef,
		rep.FileName, rep.ReportDate, rep.Notes,
	).Scan(&rep.CreatedAt)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	rep.OwnerID = ownerID
	return nil
}

// GetForUser returns the report only when the caller owns it or holds a
// grant for it. Ownership and grant are evaluated in a single statement so
// there is no window between the two checks, and a miss is indistinguishable
// from a missing row.
func (r *ReportRepository) GetForUser(ctx context.Context, callerID, reportID string) (*domain.Report, error) {
	const q = `
SELECT r.id, r.user_id, r.title, r.report_type, r.storage_ref, r.file_name, r.report_date, r.notes, r.created_at
FROM reports r
LEFT JOIN shared_access sa ON r.id = sa.report_id AND sa.shared_with_id = $1
WHERE r.id = $2 AND (r.user_id = $1 OR sa.id IS NOT NULL);
`
	rep, err := scanReport(r.db.QueryRowContext(ctx, q, callerID, reportID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("report not found or access denied: %w", apperr.ErrNotFoundOrForbidden)
		}
		return nil, err
	}
	return rep, nil
}

// List returns the caller's own reports, newest report date first.
func (r *ReportRepository) List(ctx context.Context, ownerID string, f domain.Filter) ([]domain.Report, error) {
	var b strings.Builder
	b.WriteString(`
SELECT id, user_id, title, report_type, storage_ref, file_name, report_date, notes, created_at
FROM reports
WHERE user_id = $1`)
	args := []any{ownerID}

	if f.ReportType != "" {
		args = append(args, f.ReportType)
		b.WriteString(" AND report_type = $" + strconv.Itoa(len(args)))
	}
	if f.StartDate != nil {
		args = append(args, *f.StartDate)
		b.WriteString(" AND report_date >= $" + strconv.Itoa(len(args)))
	}
	if f.EndDate != nil {
		args = append(args, *f.EndDate)
		b.WriteString(" AND report_date <= $" + strconv.Itoa(len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := strconv.Itoa(len(args))
		b.WriteString(" AND (title ILIKE $" + n + " OR notes ILIKE $" + n + ")")
	}

	b.WriteString(" ORDER BY report_date DESC;")

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Report, 0, 16)
	for rows.Next() {
		var rep domain.Report
		if err := rows.Scan(&rep.ID, &rep.OwnerID, &rep.Title, &rep.ReportType, &rep.StorageRef,
			&rep.FileName, &rep.ReportDate, &rep.Notes, &rep.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

// Delete removes the caller's report and every grant referencing it in one
// transaction, so a racing share either commits before the cascade (and dies
// with it) or observes the report gone. It returns the storage reference of
// the deleted report so the caller can release the file bytes.
func (r *ReportRepository) Delete(ctx context.Context, callerID, reportID string) (string, error) {
	var storageRef string

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		const sel = `
SELECT storage_ref FROM reports
WHERE id = $1 AND user_id = $2
FOR UPDATE;
`
		err := tx.QueryRowContext(ctx, sel, reportID, callerID).Scan(&storageRef)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("report not found or access denied: %w", apperr.ErrNotFoundOrForbidden)
			}
			return fmt.Errorf("select report for delete: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM shared_access WHERE report_id = $1;`, reportID); err != nil {
			return fmt.Errorf("delete grants: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM reports WHERE id = $1;`, reportID); err != nil {
			return fmt.Errorf("delete report: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return storageRef, nil
}

// ListStorageRefs returns every storage reference still referenced by a
// report row. Used by the orphan sweep.
func (r *ReportRepository) ListStorageRefs(ctx context.Context) (map[string]struct{}, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT storage_ref FROM reports;`)
	if err != nil {
		return nil, fmt.Errorf("list storage refs: %w", err)
	}
	defer rows.Close()

	refs := make(map[string]struct{})
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, err
		}
		refs[ref] = struct{}{}
	}
	return refs, rows.Err()
}

func scanReport(row *sql.Row) (*domain.Report, error) {
	var rep domain.Report
	err := row.Scan(&rep.ID, &rep.OwnerID, &rep.Title, &rep.ReportType, &rep.StorageRef,
		&rep.FileName, &rep.ReportDate, &rep.Notes, &rep.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rep, nil
}
