package repository

import (
	"context"

	"github.com/fastech/equiptrack/internal/model"
	"github.com/gofrs/uuid/v5"
)

// HistoryRepository provides read access to the custody ledger. Client and
// equipment display fields are joined at read time; records whose client was
// deleted come back with empty client fields.
type HistoryRepository interface {
	// OpenForEquipment returns the equipment's open record, or nil when the
	// equipment has no open custody period.
	OpenForEquipment(ctx context.Context, equipmentID uuid.UUID) (*model.HistoryEntry, error)
	// ListByEquipment returns the full trail of one equipment, newest first.
	ListByEquipment(ctx context.Context, equipmentID uuid.UUID) ([]model.HistoryEntry, error)
	// ListByClient returns every custody period a client appears in, newest first.
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]model.HistoryEntry, error)
	// EquipmentWithClient returns the equipment currently held by the client.
	EquipmentWithClient(ctx context.Context, clientID uuid.UUID) ([]model.EquipmentWithClient, error)
}
