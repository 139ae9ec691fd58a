package repository

import (
	"context"
	"time"

	"github.com/fastech/equiptrack/internal/model"
)

// ReportRepository provides read-only aggregation over the three tables.
// It has no invariants of its own.
type ReportRepository interface {
	// Totals returns the number of clients and of equipment.
	Totals(ctx context.Context) (clients, equipment int64, err error)
	// CountByStatus groups equipment counts by current status.
	CountByStatus(ctx context.Context) (map[model.Status]int64, error)
	// CountByCategory groups equipment counts by category.
	CountByCategory(ctx context.Context) (map[string]int64, error)
	// MovementsSince counts history records started at or after t.
	MovementsSince(ctx context.Context, t time.Time) (int64, error)
}
