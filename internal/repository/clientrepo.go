// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/fastech/equiptrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// ClientRepository provides CRUD access for clients. The store owns the
// uniqueness of phone and document.
type ClientRepository interface {
	// Create inserts a new client. Duplicate phone/document yields ErrConflict.
	Create(ctx context.Context, c *model.Client) error
	// GetByID loads a client by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Client, error)
	// Search returns clients whose name, phone or document contains term,
	// ordered by name. An empty term returns everything.
	Search(ctx context.Context, term string) ([]model.Client, error)
	// Update rewrites the mutable fields of an existing client.
	Update(ctx context.Context, c *model.Client) error
	// Delete removes a client unless an open history record references it.
	// Returns false with a nil error when the deletion is refused.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
