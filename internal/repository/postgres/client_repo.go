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
)

// ClientRepo implements ClientRepository using PostgreSQL.
type ClientRepo struct{ db *DB }

// NewClientRepo constructs a client repository.
func NewClientRepo(db *DB) *ClientRepo { return &ClientRepo{db: db} }

// Create inserts a new client row.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
	const q = `
INSERT INTO clients (id, name, phone, email, document, department, address, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.db.Pool.Exec(ctx, q,
		c.ID, c.Name, c.Phone, nullStr(c.Email), nullStr(c.Document),
		nullStr(c.Department), nullStr(c.Address), c.CreatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("client phone/document: %w", errs.ErrConflict)
	}
	return err
}

// GetByID loads a client by id.
func (r *ClientRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error) {
	const q = `
SELECT id, name, phone, COALESCE(email,''), COALESCE(document,''),
       COALESCE(department,''), COALESCE(address,''), created_at
FROM clients WHERE id=$1`
	var c model.Client
	err := r.db.Pool.QueryRow(ctx, q, id).Scan(
		&c.ID, &c.Name, &c.Phone, &c.Email, &c.Document,
		&c.Department, &c.Address, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, errs.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Search returns clients whose name, phone or document contains term, by name.
func (r *ClientRepo) Search(ctx context.Context, term string) ([]model.Client, error) {
	b := psql.Select(
		"id", "name", "phone", "COALESCE(email,'')", "COALESCE(document,'')",
		"COALESCE(department,'')", "COALESCE(address,'')", "created_at").
		From("clients").
		OrderBy("name ASC")
	if term != "" {
		like := "%" + term + "%"
		b = b.Where(sq.Or{
			sq.ILike{"name": like},
			sq.Like{"phone": like},
			sq.Like{"document": like},
		})
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

	var out []model.Client
	for rows.Next() {
		var c model.Client
		if err = rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Document,
			&c.Department, &c.Address, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update rewrites the mutable client fields.
func (r *ClientRepo) Update(ctx context.Context, c *model.Client) error {
	const q = `
UPDATE clients SET name=$2, phone=$3, email=$4, document=$5, department=$6, address=$7
WHERE id=$1`
	tag, err := r.db.Pool.Exec(ctx, q,
		c.ID, c.Name, c.Phone, nullStr(c.Email), nullStr(c.Document),
		nullStr(c.Department), nullStr(c.Address))
	if isUniqueViolation(err) {
		return fmt.Errorf("client phone/document: %w", errs.ErrConflict)
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a client unless an open history record still references it.
// The check and the delete run in one transaction so a concurrent delivery
// cannot slip between them.
func (r *ClientRepo) Delete(ctx context.Context, id uuid.UUID) (deleted bool, err error) {
	tx, err := r.db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return false, err
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

	const openCount = `SELECT COUNT(*) FROM history WHERE client_id=$1 AND ended_at IS NULL`
	var n int64
	if err = tx.QueryRow(ctx, openCount, id).Scan(&n); err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	tag, err := tx.Exec(ctx, `DELETE FROM clients WHERE id=$1`, id)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, errs.ErrNotFound
	}
	return true, nil
}

// nullStr maps an empty string to SQL NULL so partial unique indexes on
// optional columns behave.
func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}
