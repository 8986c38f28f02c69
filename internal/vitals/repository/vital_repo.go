package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/health-wallet/go-wallet-backend/internal/apperr"
	"github.com/health-wallet/go-wallet-backend/internal/vitals/domain"
)

// VitalRepository provides persistence and aggregation queries for vital
// readings. Readings belong to exactly one owner and are never shared.
type VitalRepository struct {
	db *sql.DB
}

func NewVitalRepository(db *sql.DB) *VitalRepository {
	return &VitalRepository{db: db}
}

func (r *VitalRepository) Create(ctx context.Context, v *domain.VitalReading) error {
	const q = `
INSERT INTO vitals (id, user_id, vital_type, value, unit, recorded_at, notes, report_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
`
	_, err := r.db.ExecContext(ctx, q,
		v.ID, v.OwnerID, v.VitalType, v.Value, v.Unit, v.RecordedAt, v.Notes, v.ReportID)
	if err != nil {
		return fmt.Errorf("create vital: %w", err)
	}
	return nil
}

// List returns the caller's readings, newest first.
func (r *VitalRepository) List(ctx context.Context, ownerID string, f domain.Filter) ([]domain.VitalReading, error) {
	var b strings.Builder
	b.WriteString(`
SELECT id, user_id, vital_type, value, unit, recorded_at, notes, report_id
FROM vitals
WHERE user_id = $1`)
	args := []any{ownerID}

	if f.VitalType != "" {
		args = append(args, f.VitalType)
		b.WriteString(" AND vital_type = $" + strconv.Itoa(len(args)))
	}
	if f.Start != nil {
		args = append(args, *f.Start)
		b.WriteString(" AND recorded_at >= $" + strconv.Itoa(len(args)))
	}
	if f.End != nil {
		args = append(args, *f.End)
		b.WriteString(" AND recorded_at <= $" + strconv.Itoa(len(args)))
	}

	b.WriteString(" ORDER BY recorded_at DESC;")

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list vitals: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

// Delete removes an owned reading. Zero affected rows means either the
// reading is absent or the caller does not own it; both are reported the
// same way.
func (r *VitalRepository) Delete(ctx context.Context, callerID, vitalID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM vitals WHERE id = $1 AND user_id = $2;`, vitalID, callerID)
	if err != nil {
		return fmt.Errorf("delete vital: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete vital: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("vital not found or access denied: %w", apperr.ErrNotFoundOrForbidden)
	}
	return nil
}

// Trends returns the caller's readings in range grouped into one series per
// vital type, each sorted ascending by time. The query orders rows by
// (vital_type, recorded_at) so grouping is a single pass.
func (r *VitalRepository) Trends(ctx context.Context, ownerID string, f domain.Filter) ([]domain.TrendSeries, error) {
	var b strings.Builder
	b.WriteString(`
SELECT vital_type, value, unit, recorded_at
FROM vitals
WHERE user_id = $1`)
	args := []any{ownerID}

	if f.Start != nil {
		args = append(args, *f.Start)
		b.WriteString(" AND recorded_at >= $" + strconv.Itoa(len(args)))
	}
	if f.End != nil {
		args = append(args, *f.End)
		b.WriteString(" AND recorded_at <= $" + strconv.Itoa(len(args)))
	}

	b.WriteString(" ORDER BY vital_type, recorded_at ASC;")

	rows, err := r.db.QueryContext(ctx, b.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("trend vitals: %w", err)
	}
	defer rows.Close()

	series := make([]domain.TrendSeries, 0, 8)
	for rows.Next() {
		var (
			vitalType, unit string
			value           float64
			recordedAt      sql.NullTime
		)
		if err := rows.Scan(&vitalType, &value, &unit, &recordedAt); err != nil {
			return nil, err
		}

		if len(series) == 0 || series[len(series)-1].Type != vitalType {
			series = append(series, domain.TrendSeries{Type: vitalType, Unit: unit})
		}
		last := &series[len(series)-1]
		last.Points = append(last.Points, domain.TrendPoint{Value: value, RecordedAt: recordedAt.Time})
	}
	return series, rows.Err()
}

// Latest returns the newest reading per vital type. Exact recorded_at ties
// are broken by the highest id, so the result is deterministic.
func (r *VitalRepository) Latest(ctx context.Context, ownerID string) ([]domain.VitalReading, error) {
	const q = `
SELECT DISTINCT ON (vital_type)
       id, user_id, vital_type, value, unit, recorded_at, notes, report_id
FROM vitals
WHERE user_id = $1
ORDER BY vital_type, recorded_at DESC, id DESC;
`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, fmt.Errorf("latest vitals: %w", err)
	}
	defer rows.Close()

	return collect(rows)
}

func collect(rows *sql.Rows) ([]domain.VitalReading, error) {
	out := make([]domain.VitalReading, 0, 16)
	for rows.Next() {
		var v domain.VitalReading
		if err := rows.Scan(&v.ID, &v.OwnerID, &v.VitalType, &v.Value, &v.Unit,
			&v.RecordedAt, &v.Notes, &v.ReportID); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
