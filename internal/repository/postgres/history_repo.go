package postgres

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/fastech/equiptrack/internal/model"
)

// HistoryRepo implements HistoryRepository using PostgreSQL.
type HistoryRepo struct{ db *DB }

// NewHistoryRepo constructs a history repository.
func NewHistoryRepo(db *DB) *HistoryRepo { return &HistoryRepo{db: db} }

const entryWithClientCols = `
h.id, h.equipment_id, h.client_id, h.started_at, h.ended_at, h.action,
h.recorded_by, COALESCE(h.notes,''), COALESCE(c.name,''), COALESCE(c.phone,'')`

// OpenForEquipment returns the equipment's open record, or nil when none is open.
func (r *HistoryRepo) OpenForEquipment(ctx context.Context, equipmentID uuid.UUID) (*model.HistoryEntry, error) {
	const q = `
SELECT ` + entryWithClientCols + `
FROM history h
LEFT JOIN clients c ON h.client_id = c.id
WHERE h.equipment_id=$1 AND h.ended_at IS NULL`
	var e model.HistoryEntry
	err := r.db.Pool.QueryRow(ctx, q, equipmentID).Scan(
		&e.ID, &e.EquipmentID, &e.ClientID, &e.StartedAt, &e.EndedAt, &e.Action,
		&e.RecordedBy, &e.Notes, &e.ClientName, &e.ClientPhone)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListByEquipment returns the custody trail of one equipment, newest first.
func (r *HistoryRepo) ListByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]model.HistoryEntry, error) {
	const q = `
SELECT ` + entryWithClientCols + `
FROM history h
LEFT JOIN clients c ON h.client_id = c.id
WHERE h.equipment_id=$1
ORDER BY h.started_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, equipmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err = rows.Scan(&e.ID, &e.EquipmentID, &e.ClientID, &e.StartedAt, &e.EndedAt,
			&e.Action, &e.RecordedBy, &e.Notes, &e.ClientName, &e.ClientPhone); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ListByClient returns every custody period a client appears in, newest
// first, with the equipment's serial and category joined in.
func (r *HistoryRepo) ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.HistoryEntry, error) {
	const q = `
SELECT h.id, h.equipment_id, h.client_id, h.started_at, h.ended_at, h.action,
       h.recorded_by, COALESCE(h.notes,''), e.serial, e.category
FROM history h
JOIN equipment e ON h.equipment_id = e.id
WHERE h.client_id=$1
ORDER BY h.started_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.HistoryEntry
	for rows.Next() {
		var e model.HistoryEntry
		if err = rows.Scan(&e.ID, &e.EquipmentID, &e.ClientID, &e.StartedAt, &e.EndedAt,
			&e.Action, &e.RecordedBy, &e.Notes, &e.Serial, &e.Category); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// EquipmentWithClient returns the equipment currently held by the client.
func (r *HistoryRepo) EquipmentWithClient(ctx context.Context, clientID uuid.UUID) ([]model.EquipmentWithClient, error) {
	const q = `
SELECT e.id, e.serial, e.category, COALESCE(e.brand,''), COALESCE(e.model,''),
       e.status, e.warranty_date, e.value, COALESCE(e.notes,''), e.registered_at,
       h.started_at, h.action
FROM equipment e
JOIN history h ON h.equipment_id = e.id
WHERE h.client_id=$1 AND h.ended_at IS NULL
ORDER BY h.started_at DESC`
	rows, err := r.db.Pool.Query(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.EquipmentWithClient
	for rows.Next() {
		var w model.EquipmentWithClient
		if err = rows.Scan(&w.ID, &w.Serial, &w.Category, &w.Brand, &w.Model,
			&w.Status, &w.WarrantyDate, &w.Value, &w.Notes, &w.RegisteredAt,
			&w.Since, &w.Action); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}
