package postgres

import (
	"context"
	"time"

	"github.com/fastech/equiptrack/internal/model"
)

// ReportRepo implements ReportRepository using PostgreSQL.
type ReportRepo struct{ db *DB }

// NewReportRepo constructs a report repository.
func NewReportRepo(db *DB) *ReportRepo { return &ReportRepo{db: db} }

// Totals returns the number of clients and of equipment.
func (r *ReportRepo) Totals(ctx context.Context) (clients, equipment int64, err error) {
	const q = `SELECT (SELECT COUNT(*) FROM clients), (SELECT COUNT(*) FROM equipment)`
	if err = r.db.Pool.QueryRow(ctx, q).Scan(&clients, &equipment); err != nil {
		return 0, 0, err
	}
	return clients, equipment, nil
}

// CountByStatus groups equipment counts by current status.
func (r *ReportRepo) CountByStatus(ctx context.Context) (map[model.Status]int64, error) {
	const q = `SELECT status, COUNT(*) FROM equipment GROUP BY status`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.Status]int64)
	for rows.Next() {
		var (
			s string
			n int64
		)
		if err = rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[model.Status(s)] = n
	}
	return out, rows.Err()
}

// CountByCategory groups equipment counts by category.
func (r *ReportRepo) CountByCategory(ctx context.Context) (map[string]int64, error) {
	const q = `SELECT category, COUNT(*) FROM equipment GROUP BY category`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]int64)
	for rows.Next() {
		var (
			c string
			n int64
		)
		if err = rows.Scan(&c, &n); err != nil {
			return nil, err
		}
		out[c] = n
	}
	return out, rows.Err()
}

// MovementsSince counts history records started at or after t.
func (r *ReportRepo) MovementsSince(ctx context.Context, t time.Time) (int64, error) {
	const q = `SELECT COUNT(*) FROM history WHERE started_at >= $1`
	var n int64
	if err := r.db.Pool.QueryRow(ctx, q, t).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
