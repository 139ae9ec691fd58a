package service

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/fastech/equiptrack/internal/model"
	"github.com/fastech/equiptrack/internal/repository"
)

type fakeHistoryRepo struct {
	open        *model.HistoryEntry
	byEquipment []model.HistoryEntry
	byClient    []model.HistoryEntry
	withClient  []model.EquipmentWithClient
}

var _ repository.HistoryRepository = (*fakeHistoryRepo)(nil)

func (f *fakeHistoryRepo) OpenForEquipment(context.Context, uuid.UUID) (*model.HistoryEntry, error) {
	return f.open, nil
}
func (f *fakeHistoryRepo) ListByEquipment(context.Context, uuid.UUID) ([]model.HistoryEntry, error) {
	return f.byEquipment, nil
}
func (f *fakeHistoryRepo) ListByClient(context.Context, uuid.UUID) ([]model.HistoryEntry, error) {
	return f.byClient, nil
}
func (f *fakeHistoryRepo) EquipmentWithClient(context.Context, uuid.UUID) ([]model.EquipmentWithClient, error) {
	return f.withClient, nil
}
type fakeReportRepo struct {
	clients    int64
	equipment  int64
	byStatus   map[model.Status]int64
	byCategory map[string]int64

	sinceIn time.Time
	month   int64
}

var _ repository.ReportRepository = (*fakeReportRepo)(nil)

func (f *fakeReportRepo) Totals(context.Context) (int64, int64, error) {
	return f.clients, f.equipment, nil
}
func (f *fakeReportRepo) CountByStatus(context.Context) (map[model.Status]int64, error) {
	return f.byStatus, nil
}
func (f *fakeReportRepo) CountByCategory(context.Context) (map[string]int64, error) {
	return f.byCategory, nil
}
func (f *fakeReportRepo) MovementsSince(_ context.Context, t time.Time) (int64, error) {
	f.sinceIn = t
	return f.month, nil
}

func TestReportService_Stats(t *testing.T) {
	t.Parallel()

	reports := &fakeReportRepo{
		clients:   3,
		equipment: 7,
		byStatus: map[model.Status]int64{
			model.StatusInStock:    4,
			model.StatusWithClient: 3,
		},
		byCategory: map[string]int64{"Notebook": 5, "Printer": 2},
		month:      12,
	}
	s := NewReportService(&fakeHistoryRepo{}, reports)
	s.now = func() time.Time { return time.Date(2025, 6, 15, 12, 30, 0, 0, time.UTC) }

	st, err := s.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalClients != 3 || st.TotalEquipment != 7 || st.MovementsMonth != 12 {
		t.Errorf("totals: %+v", st)
	}
	if st.ByStatus[model.StatusInStock] != 4 || st.ByCategory["Notebook"] != 5 {
		t.Errorf("breakdowns: %+v", st)
	}
	wantSince := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	if !reports.sinceIn.Equal(wantSince) {
		t.Errorf("movements counted since %v, want month start %v", reports.sinceIn, wantSince)
	}
}

func TestReportService_Trails(t *testing.T) {
	t.Parallel()

	hist := &fakeHistoryRepo{
		byEquipment: []model.HistoryEntry{{ClientName: "Acme"}},
		byClient:    []model.HistoryEntry{{Serial: "NB-001"}, {Serial: "NB-002"}},
	}
	s := NewReportService(hist, &fakeReportRepo{})

	eq, err := s.EquipmentTrail(context.Background(), uuid.Must(uuid.NewV4()))
	if err != nil || len(eq) != 1 {
		t.Fatalf("EquipmentTrail = (%d, %v)", len(eq), err)
	}
	cl, err := s.ClientTrail(context.Background(), uuid.Must(uuid.NewV4()))
	if err != nil || len(cl) != 2 {
		t.Fatalf("ClientTrail = (%d, %v)", len(cl), err)
	}
}

func TestReportService_CurrentCustody(t *testing.T) {
	t.Parallel()

	s := NewReportService(&fakeHistoryRepo{}, &fakeReportRepo{})
	open, err := s.CurrentCustody(context.Background(), uuid.Must(uuid.NewV4()))
	if err != nil {
		t.Fatalf("CurrentCustody: %v", err)
	}
	if open != nil {
		t.Fatalf("expected no open custody, got %+v", open)
	}

	want := &model.HistoryEntry{ClientName: "Acme"}
	s = NewReportService(&fakeHistoryRepo{open: want}, &fakeReportRepo{})
	open, err = s.CurrentCustody(context.Background(), uuid.Must(uuid.NewV4()))
	if err != nil {
		t.Fatalf("CurrentCustody: %v", err)
	}
	if open == nil || open.ClientName != "Acme" {
		t.Fatalf("open custody = %+v, want Acme", open)
	}
}
