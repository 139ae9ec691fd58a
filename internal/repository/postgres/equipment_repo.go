package postgres

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"

	"github.com/fastech/equiptrack/internal/errs"
	"github.com/fastech/equiptrack/internal/model"
	"github.com/fastech/equiptrack/internal/repository"
)

// EquipmentRepo implements EquipmentRepository using PostgreSQL.
type EquipmentRepo struct{ db *DB }

// NewEquipmentRepo constructs an equipment repository.
func NewEquipmentRepo(db *DB) *EquipmentRepo { return &EquipmentRepo{db: db} }

const equipmentCols = `id, serial, category, COALESCE(brand,''), COALESCE(model,''),
       status, warranty_date, value, COALESCE(notes,''), registered_at`

const insertHistory = `
INSERT INTO history (id, equipment_id, client_id, started_at, ended_at, action, recorded_by, notes)
VALUES ($1,$2,$3,$4,NULL,$5,$6,$7)`

// Create inserts the equipment and its initial history record in one transaction.
func (r *EquipmentRepo) Create(ctx context.Context, e *model.Equipment, initial *model.HistoryRecord) (err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if cerr := tx.Commit(ctx); cerr != nil {
			err = cerr
		}
	}()

	const ins = `
INSERT INTO equipment (id, serial, category, brand, model, status, warranty_date, value, notes, registered_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`
	if _, err = tx.Exec(ctx, ins,
		e.ID, e.Serial, e.Category, nullStr(e.Brand), nullStr(e.Model),
		string(e.Status), e.WarrantyDate, e.Value, nullStr(e.Notes), e.RegisteredAt); err != nil {
		if isUniqueViolation(err) {
			err = fmt.Errorf("serial %q already registered: %w", e.Serial, errs.ErrConflict)
		}
		return err
	}

	_, err = tx.Exec(ctx, insertHistory,
		initial.ID, initial.EquipmentID, initial.ClientID, initial.StartedAt,
		string(initial.Action), initial.RecordedBy, nullStr(initial.Notes))
	return err
}

// GetByID loads an equipment by id.
func (r *EquipmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Equipment, error) {
	return r.getOne(ctx, `SELECT `+equipmentCols+` FROM equipment WHERE id=$1`, id)
}

// GetBySerial loads an equipment by serial number.
func (r *EquipmentRepo) GetBySerial(ctx context.Context, serial string) (*model.Equipment, error) {
	return r.getOne(ctx, `SELECT `+equipmentCols+` FROM equipment WHERE serial=$1`, serial)
}

func (r *EquipmentRepo) getOne(ctx context.Context, q string, arg any) (*model.Equipment, error) {
	var e model.Equipment
	err := r.db.Pool.QueryRow(ctx, q, arg).Scan(
		&e.ID, &e.Serial, &e.Category, &e.Brand, &e.Model,
		&e.Status, &e.WarrantyDate, &e.Value, &e.Notes, &e.RegisteredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// Search returns equipment matching the filter, newest registrations first.
func (r *EquipmentRepo) Search(ctx context.Context, f repository.EquipmentFilter) ([]model.Equipment, error) {
	b := psql.Select(
		"id", "serial", "category", "COALESCE(brand,'')", "COALESCE(model,'')",
		"status", "warranty_date", "value", "COALESCE(notes,'')", "registered_at").
		From("equipment").
		OrderBy("registered_at DESC")
	if f.Term != "" {
		like := "%" + f.Term + "%"
		b = b.Where(sq.Or{
			sq.ILike{"serial": like},
			sq.ILike{"category": like},
			sq.ILike{"brand": like},
			sq.ILike{"model": like},
		})
	}
	if f.Status != "" {
		b = b.Where(sq.Eq{"status": string(f.Status)})
	}
	if f.Limit > 0 {
		b = b.Limit(f.Limit).Offset(f.Offset)
	}
	q, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Equipment
	for rows.Next() {
		var e model.Equipment
		if err = rows.Scan(&e.ID, &e.Serial, &e.Category, &e.Brand, &e.Model,
			&e.Status, &e.WarrantyDate, &e.Value, &e.Notes, &e.RegisteredAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Update rewrites the mutable equipment fields. Status stays untouched:
// only RecordTransition may move it.
func (r *EquipmentRepo) Update(ctx context.Context, e *model.Equipment) error {
	const q = `
UPDATE equipment SET serial=$2, category=$3, brand=$4, model=$5, warranty_date=$6, value=$7, notes=$8
WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q,
		e.ID, e.Serial, e.Category, nullStr(e.Brand), nullStr(e.Model),
		e.WarrantyDate, e.Value, nullStr(e.Notes))
	if isUniqueViolation(err) {
		return fmt.Errorf("serial %q already registered: %w", e.Serial, errs.ErrConflict)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes an equipment; history rows cascade away in the store.
func (r *EquipmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM equipment WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// RecordTransition runs the ledger write as one transaction: lock the
// equipment row, close the open history record, insert the new open record,
// set the new status. The row lock keeps two transitions on the same
// equipment from both observing "no open record".
func (r *EquipmentRepo) RecordTransition(ctx context.Context, t model.Transition) (id uuid.UUID, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return uuid.Nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		if e := tx.Commit(ctx); e != nil {
			err = e
		}
	}()

	const lock = `SELECT status FROM equipment WHERE id=$1 FOR UPDATE`
	var cur string
	if err = tx.QueryRow(ctx, lock, t.EquipmentID).Scan(&cur); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, fmt.Errorf("equipment %s: %w", t.EquipmentID, errs.ErrNotFound)
		}
		return uuid.Nil, err
	}

	const closeOpen = `UPDATE history SET ended_at=$2 WHERE equipment_id=$1 AND ended_at IS NULL`
	if _, err = tx.Exec(ctx, closeOpen, t.EquipmentID, t.At); err != nil {
		return uuid.Nil, err
	}

	recID, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	if _, err = tx.Exec(ctx, insertHistory,
		recID, t.EquipmentID, t.ClientID, t.At,
		string(t.Action), t.RecordedBy, nullStr(t.Notes)); err != nil {
		return uuid.Nil, err
	}

	const setStatus = `UPDATE equipment SET status=$2 WHERE id=$1`
	if _, err = tx.Exec(ctx, setStatus, t.EquipmentID, string(t.Status)); err != nil {
		return uuid.Nil, err
	}
	return recID, nil
}
