package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/fastech/equiptrack/internal/model"
	"github.com/fastech/equiptrack/internal/repository"
)

// ReportService is a read-only consumer of the ledger's data model.
type ReportService interface {
	// Stats returns inventory totals, breakdowns by status and category,
	// and the number of movements recorded in the current month.
	Stats(ctx context.Context) (model.Stats, error)
	// EquipmentTrail returns the full custody trail of one equipment.
	EquipmentTrail(ctx context.Context, equipmentID uuid.UUID) ([]model.HistoryEntry, error)
	// CurrentCustody returns the equipment's open custody period, or nil
	// when nothing is open.
	CurrentCustody(ctx context.Context, equipmentID uuid.UUID) (*model.HistoryEntry, error)
	// ClientTrail returns every custody period a client appears in.
	ClientTrail(ctx context.Context, clientID uuid.UUID) ([]model.HistoryEntry, error)
	// CurrentlyWith returns the equipment a client holds right now.
	CurrentlyWith(ctx context.Context, clientID uuid.UUID) ([]model.EquipmentWithClient, error)
}

type ReportServiceImpl struct {
	history repository.HistoryRepository
	reports repository.ReportRepository
	now     func() time.Time
}

// NewReportService constructs ReportService.
func NewReportService(history repository.HistoryRepository, reports repository.ReportRepository) *ReportServiceImpl {
	return &ReportServiceImpl{history: history, reports: reports, now: time.Now}
}

// Stats aggregates the dashboard counters.
func (s *ReportServiceImpl) Stats(ctx context.Context) (model.Stats, error) {
	clients, equipment, err := s.reports.Totals(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	byStatus, err := s.reports.CountByStatus(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	byCategory, err := s.reports.CountByCategory(ctx)
	if err != nil {
		return model.Stats{}, err
	}
	now := s.now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	month, err := s.reports.MovementsSince(ctx, monthStart)
	if err != nil {
		return model.Stats{}, err
	}
	return model.Stats{
		TotalClients:   clients,
		TotalEquipment: equipment,
		ByStatus:       byStatus,
		ByCategory:     byCategory,
		MovementsMonth: month,
	}, nil
}

// EquipmentTrail returns the audit trail of one equipment, newest first.
func (s *ReportServiceImpl) EquipmentTrail(ctx context.Context, equipmentID uuid.UUID) ([]model.HistoryEntry, error) {
	return s.history.ListByEquipment(ctx, equipmentID)
}

// CurrentCustody returns the equipment's open custody period, or nil when
// nothing is open.
func (s *ReportServiceImpl) CurrentCustody(ctx context.Context, equipmentID uuid.UUID) (*model.HistoryEntry, error) {
	return s.history.OpenForEquipment(ctx, equipmentID)
}

// ClientTrail returns all custody periods of one client, newest first.
func (s *ReportServiceImpl) ClientTrail(ctx context.Context, clientID uuid.UUID) ([]model.HistoryEntry, error) {
	return s.history.ListByClient(ctx, clientID)
}

// CurrentlyWith returns the equipment currently held by the client.
func (s *ReportServiceImpl) CurrentlyWith(ctx context.Context, clientID uuid.UUID) ([]model.EquipmentWithClient, error) {
	return s.history.EquipmentWithClient(ctx, clientID)
}
