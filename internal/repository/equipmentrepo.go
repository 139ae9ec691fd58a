package repository

import (
	"context"

	"github.com/fastech/equiptrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// EquipmentFilter narrows equipment searches. Zero values mean "no filter";
// Limit 0 means unlimited.
type EquipmentFilter struct {
	Term   string       // substring over serial, category, brand, model
	Status model.Status // exact status match when non-empty
	Limit  uint64
	Offset uint64
}

// EquipmentRepository provides access to equipment and the atomic custody
// transition that keeps status and history consistent.
type EquipmentRepository interface {
	// Create inserts the equipment together with its initial history record
	// in one transaction. Duplicate serial yields ErrConflict.
	Create(ctx context.Context, e *model.Equipment, initial *model.HistoryRecord) error
	// GetByID loads an equipment by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Equipment, error)
	// GetBySerial loads an equipment by its serial number.
	GetBySerial(ctx context.Context, serial string) (*model.Equipment, error)
	// Search returns equipment matching the filter, newest registrations first.
	Search(ctx context.Context, f EquipmentFilter) ([]model.Equipment, error)
	// Update rewrites the mutable fields of an existing equipment.
	// Status is deliberately not among them; use RecordTransition.
	Update(ctx context.Context, e *model.Equipment) error
	// Delete removes an equipment; its history cascades away with it.
	Delete(ctx context.Context, id uuid.UUID) error
	// RecordTransition atomically closes the equipment's open history record
	// (if any), opens a new one and updates the status. Returns the new
	// record's ID. A missing equipment yields ErrNotFound and no writes.
	RecordTransition(ctx context.Context, t model.Transition) (uuid.UUID, error)
}
