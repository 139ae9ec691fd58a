package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/fastech/equiptrack/internal/errs"
	"github.com/fastech/equiptrack/internal/model"
	"github.com/fastech/equiptrack/internal/repository"
	"github.com/fastech/equiptrack/internal/validate"
)

// RegisterEquipmentParams carries the fields of a new equipment. When
// ClientID is set, registration also records an immediate delivery.
type RegisterEquipmentParams struct {
	Serial       string
	Category     string
	Brand        string
	Model        string
	WarrantyDate *time.Time
	Value        *float64
	Notes        string
	RecordedBy   string
	ClientID     *uuid.UUID
}

// UpdateEquipmentParams carries the editable equipment fields. Status is
// absent on purpose: it only moves through the ledger.
type UpdateEquipmentParams struct {
	Serial       string
	Category     string
	Brand        string
	Model        string
	WarrantyDate *time.Time
	Value        *float64
	Notes        string
}

// EquipmentService manages the equipment inventory.
type EquipmentService interface {
	// Register creates an equipment with its initial Register record. With a
	// client it is register-then-deliver: status ends up WithClient and the
	// open record reflects the delivery.
	Register(ctx context.Context, p RegisterEquipmentParams) (uuid.UUID, error)
	// Get loads an equipment by ID.
	Get(ctx context.Context, id uuid.UUID) (*model.Equipment, error)
	// GetBySerial loads an equipment by serial number.
	GetBySerial(ctx context.Context, serial string) (*model.Equipment, error)
	// Search lists equipment by substring and optional status filter.
	Search(ctx context.Context, f repository.EquipmentFilter) ([]model.Equipment, error)
	// Update rewrites the descriptive fields of an equipment.
	Update(ctx context.Context, id uuid.UUID, p UpdateEquipmentParams) error
	// Delete removes an equipment and, through the store, its history.
	Delete(ctx context.Context, id uuid.UUID) error
}

type EquipmentServiceImpl struct {
	repo    repository.EquipmentRepository
	clients repository.ClientRepository
	ledger  Ledger
	log     *zap.Logger
	now     func() time.Time
}

// NewEquipmentService constructs EquipmentService.
func NewEquipmentService(repo repository.EquipmentRepository, clients repository.ClientRepository, ledger Ledger, log *zap.Logger) *EquipmentServiceImpl {
	return &EquipmentServiceImpl{repo: repo, clients: clients, ledger: ledger, log: log, now: time.Now}
}

// Register creates the equipment in stock and, when a client is supplied,
// immediately records a delivery through the ledger.
func (s *EquipmentServiceImpl) Register(ctx context.Context, p RegisterEquipmentParams) (uuid.UUID, error) {
	if ok, msg := validate.SerialNumber(p.Serial); !ok {
		return uuid.Nil, fmt.Errorf("%s: %w", msg, errs.ErrValidation)
	}
	if p.Category == "" {
		return uuid.Nil, fmt.Errorf("category is required: %w", errs.ErrValidation)
	}
	if p.RecordedBy == "" {
		return uuid.Nil, fmt.Errorf("responsible user is required: %w", errs.ErrValidation)
	}
	// resolve the destination client before any write, so a bad client id
	// cannot leave a half-registered equipment behind
	if p.ClientID != nil {
		if _, err := s.clients.GetByID(ctx, *p.ClientID); err != nil {
			return uuid.Nil, fmt.Errorf("client %s: %w", *p.ClientID, err)
		}
	}

	id, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	recID, err := uuid.NewV4()
	if err != nil {
		return uuid.Nil, err
	}
	now := s.now().UTC()

	e := &model.Equipment{
		ID:           id,
		Serial:       p.Serial,
		Category:     p.Category,
		Brand:        p.Brand,
		Model:        p.Model,
		Status:       model.StatusInStock,
		WarrantyDate: p.WarrantyDate,
		Value:        p.Value,
		Notes:        p.Notes,
		RegisteredAt: now,
	}
	initial := &model.HistoryRecord{
		ID:          recID,
		EquipmentID: id,
		StartedAt:   now,
		Action:      model.ActionRegister,
		RecordedBy:  p.RecordedBy,
	}
	if err := s.repo.Create(ctx, e, initial); err != nil {
		return uuid.Nil, err
	}
	s.log.Info("equipment registered",
		zap.String("equipment_id", id.String()),
		zap.String("serial", p.Serial),
	)

	if p.ClientID != nil {
		if _, err := s.ledger.RecordMovement(ctx, RecordMovementParams{
			EquipmentID: id,
			Action:      model.ActionDelivery,
			RecordedBy:  p.RecordedBy,
			ClientID:    p.ClientID,
			Notes:       p.Notes,
		}); err != nil {
			return uuid.Nil, fmt.Errorf("deliver on register: %w", err)
		}
	}
	return id, nil
}

// Get loads one equipment.
func (s *EquipmentServiceImpl) Get(ctx context.Context, id uuid.UUID) (*model.Equipment, error) {
	return s.repo.GetByID(ctx, id)
}

// GetBySerial loads one equipment by serial number.
func (s *EquipmentServiceImpl) GetBySerial(ctx context.Context, serial string) (*model.Equipment, error) {
	return s.repo.GetBySerial(ctx, serial)
}

// Search lists equipment matching the filter.
func (s *EquipmentServiceImpl) Search(ctx context.Context, f repository.EquipmentFilter) ([]model.Equipment, error) {
	return s.repo.Search(ctx, f)
}

// Update rewrites the descriptive fields after validation.
func (s *EquipmentServiceImpl) Update(ctx context.Context, id uuid.UUID, p UpdateEquipmentParams) error {
	if id == uuid.Nil {
		return fmt.Errorf("equipment id is required: %w", errs.ErrValidation)
	}
	if ok, msg := validate.SerialNumber(p.Serial); !ok {
		return fmt.Errorf("%s: %w", msg, errs.ErrValidation)
	}
	if p.Category == "" {
		return fmt.Errorf("category is required: %w", errs.ErrValidation)
	}
	return s.repo.Update(ctx, &model.Equipment{
		ID:           id,
		Serial:       p.Serial,
		Category:     p.Category,
		Brand:        p.Brand,
		Model:        p.Model,
		WarrantyDate: p.WarrantyDate,
		Value:        p.Value,
		Notes:        p.Notes,
	})
}

// Delete removes an equipment.
func (s *EquipmentServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("equipment deleted", zap.String("equipment_id", id.String()))
	return nil
}
