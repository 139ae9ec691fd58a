// Package service contains application services: the custody ledger, client
// and equipment management, and reporting.
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
)

// RecordMovementParams describes one requested custody change.
type RecordMovementParams struct {
	EquipmentID uuid.UUID
	Action      model.Action
	RecordedBy  string     // responsible user, required
	ClientID    *uuid.UUID // required for Delivery/Transfer, optional for Return
	Notes       string
}

// MovementResult reports the outcome of a recorded movement.
type MovementResult struct {
	Status   model.Status
	RecordID uuid.UUID
}

// Ledger records custody changes, keeping equipment status and the history
// trail consistent.
type Ledger interface {
	// RecordMovement validates the request and applies the transition
	// atomically: close the open record, open a new one, update the status.
	RecordMovement(ctx context.Context, p RecordMovementParams) (MovementResult, error)
}

type LedgerImpl struct {
	equipment repository.EquipmentRepository
	clients   repository.ClientRepository
	log       *zap.Logger
	now       func() time.Time
}

// NewLedger constructs the custody ledger service.
func NewLedger(equipment repository.EquipmentRepository, clients repository.ClientRepository, log *zap.Logger) *LedgerImpl {
	return &LedgerImpl{equipment: equipment, clients: clients, log: log, now: time.Now}
}

// RecordMovement implements the transition contract. All validation happens
// before any write; the write itself is one repository transaction, so a
// storage failure never leaves two open records or a stale status.
//
// The operation is deliberately not idempotent: repeating the same call
// produces a second history record, as every invocation is a real movement.
func (s *LedgerImpl) RecordMovement(ctx context.Context, p RecordMovementParams) (MovementResult, error) {
	if err := s.validate(ctx, p); err != nil {
		return MovementResult{}, err
	}

	status, err := p.Action.Status(p.ClientID != nil)
	if err != nil {
		return MovementResult{}, err
	}

	recID, err := s.equipment.RecordTransition(ctx, model.Transition{
		EquipmentID: p.EquipmentID,
		ClientID:    p.ClientID,
		Action:      p.Action,
		Status:      status,
		RecordedBy:  p.RecordedBy,
		Notes:       p.Notes,
		At:          s.now().UTC(),
	})
	if err != nil {
		return MovementResult{}, err
	}

	s.log.Info("movement recorded",
		zap.String("equipment_id", p.EquipmentID.String()),
		zap.String("action", string(p.Action)),
		zap.String("status", string(status)),
	)
	return MovementResult{Status: status, RecordID: recID}, nil
}

func (s *LedgerImpl) validate(ctx context.Context, p RecordMovementParams) error {
	if !p.Action.Valid() {
		return fmt.Errorf("action %q: %w", string(p.Action), errs.ErrInvalidArgument)
	}
	if p.EquipmentID == uuid.Nil {
		return fmt.Errorf("equipment id is required: %w", errs.ErrValidation)
	}
	if p.RecordedBy == "" {
		return fmt.Errorf("responsible user is required: %w", errs.ErrValidation)
	}
	if p.Action.RequiresClient() && p.ClientID == nil {
		return fmt.Errorf("action %s requires a client: %w", p.Action, errs.ErrValidation)
	}
	if !p.Action.AllowsClient() && p.ClientID != nil {
		return fmt.Errorf("action %s does not take a client: %w", p.Action, errs.ErrValidation)
	}
	if p.ClientID != nil {
		if _, err := s.clients.GetByID(ctx, *p.ClientID); err != nil {
			return fmt.Errorf("client %s: %w", *p.ClientID, err)
		}
	}
	return nil
}
