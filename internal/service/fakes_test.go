package service

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"go.uber.org/zap"

	"github.com/fastech/equiptrack/internal/errs"
	"github.com/fastech/equiptrack/internal/model"
	"github.com/fastech/equiptrack/internal/repository"
)

type fakeClientRepo struct {
	clients map[uuid.UUID]*model.Client

	created   []*model.Client
	createErr error

	updated   []*model.Client
	updateErr error

	deleteIn  uuid.UUID
	deleteOut bool
	deleteErr error
}

var _ repository.ClientRepository = (*fakeClientRepo)(nil)

func (f *fakeClientRepo) Create(_ context.Context, c *model.Client) error {
	f.created = append(f.created, c)
	return f.createErr
}

func (f *fakeClientRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Client, error) {
	if c, ok := f.clients[id]; ok {
		return c, nil
	}
	return nil, errs.ErrNotFound
}

func (f *fakeClientRepo) Search(_ context.Context, _ string) ([]model.Client, error) {
	var out []model.Client
	for _, c := range f.clients {
		out = append(out, *c)
	}
	return out, nil
}

func (f *fakeClientRepo) Update(_ context.Context, c *model.Client) error {
	f.updated = append(f.updated, c)
	return f.updateErr
}

func (f *fakeClientRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	f.deleteIn = id
	return f.deleteOut, f.deleteErr
}

type fakeEquipmentRepo struct {
	equipment map[uuid.UUID]*model.Equipment

	createdEquip   []*model.Equipment
	createdInitial []*model.HistoryRecord
	createErr      error

	transitions   []model.Transition
	transitionID  uuid.UUID
	transitionErr error

	updated   []*model.Equipment
	updateErr error
	deleteErr error
}

var _ repository.EquipmentRepository = (*fakeEquipmentRepo)(nil)

func (f *fakeEquipmentRepo) Create(_ context.Context, e *model.Equipment, initial *model.HistoryRecord) error {
	f.createdEquip = append(f.createdEquip, e)
	f.createdInitial = append(f.createdInitial, initial)
	return f.createErr
}

func (f *fakeEquipmentRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Equipment, error) {
	if e, ok := f.equipment[id]; ok {
		return e, nil
	}
	return nil, errs.ErrNotFound
}

func (f *fakeEquipmentRepo) GetBySerial(_ context.Context, serial string) (*model.Equipment, error) {
	for _, e := range f.equipment {
		if e.Serial == serial {
			return e, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeEquipmentRepo) Search(_ context.Context, _ repository.EquipmentFilter) ([]model.Equipment, error) {
	var out []model.Equipment
	for _, e := range f.equipment {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEquipmentRepo) Update(_ context.Context, e *model.Equipment) error {
	f.updated = append(f.updated, e)
	return f.updateErr
}

func (f *fakeEquipmentRepo) Delete(_ context.Context, _ uuid.UUID) error { return f.deleteErr }

func (f *fakeEquipmentRepo) RecordTransition(_ context.Context, t model.Transition) (uuid.UUID, error) {
	if f.transitionErr != nil {
		return uuid.Nil, f.transitionErr
	}
	f.transitions = append(f.transitions, t)
	return f.transitionID, nil
}

// newTestLedger wires a ledger over fakes with a fixed clock.
func newTestLedger(equip *fakeEquipmentRepo, clients *fakeClientRepo, at time.Time) *LedgerImpl {
	l := NewLedger(equip, clients, zap.NewNop())
	l.now = func() time.Time { return at }
	return l
}
