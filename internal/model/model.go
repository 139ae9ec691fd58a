// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Client is a custodian: the person or unit that can hold equipment.
type Client struct {
	ID         uuid.UUID // PK
	Name       string    // required
	Phone      string    // required, unique
	Email      string    // optional, validated format
	Document   string    // optional CPF/CNPJ, unique when set
	Department string    // department/company label
	Address    string    // free text
	CreatedAt  time.Time // assigned at insert
}

// Equipment is a trackable physical asset. Status is never written directly;
// it is mutated only through the ledger transition.
type Equipment struct {
	ID           uuid.UUID  // PK
	Serial       string     // required, unique
	Category     string     // required device kind (notebook, printer, ...)
	Brand        string     // optional
	Model        string     // optional
	Status       Status     // implied by the latest history record's action
	WarrantyDate *time.Time // optional
	Value        *float64   // optional estimated value
	Notes        string     // free text
	RegisteredAt time.Time  // assigned at insert
}

// HistoryRecord is one continuous custody period of an equipment.
// A nil EndedAt marks the record as open: the equipment's current period.
type HistoryRecord struct {
	ID          uuid.UUID
	EquipmentID uuid.UUID  // owner, cascade-deleted with the equipment
	ClientID    *uuid.UUID // nil when no client holds it (stock, maintenance)
	StartedAt   time.Time
	EndedAt     *time.Time // nil = open; once set, never changed
	Action      Action
	RecordedBy  string // responsible user, free text
	Notes       string
}

// IsOpen reports whether the record denotes the equipment's current period.
func (h HistoryRecord) IsOpen() bool { return h.EndedAt == nil }

// Transition is the atomic ledger write applied to one equipment: close the
// open history record if any, open a new one, set the equipment status.
// At is used both to end the old record and to start the new one, so the
// periods abut exactly.
type Transition struct {
	EquipmentID uuid.UUID
	ClientID    *uuid.UUID
	Action      Action
	Status      Status
	RecordedBy  string
	Notes       string
	At          time.Time
}

// HistoryEntry is a HistoryRecord with display fields joined at read time.
// Joined fields are empty when the referenced row no longer exists.
type HistoryEntry struct {
	HistoryRecord
	ClientName  string
	ClientPhone string
	Serial      string
	Category    string
}

// EquipmentWithClient pairs an equipment with the open custody period
// that places it with a client.
type EquipmentWithClient struct {
	Equipment
	Since  time.Time
	Action Action
}

// Stats aggregates inventory counters for reporting.
type Stats struct {
	TotalClients   int64
	TotalEquipment int64
	ByStatus       map[Status]int64
	ByCategory     map[string]int64
	MovementsMonth int64
}
