package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"

	"github.com/fastech/equiptrack/internal/model"
)

var historyEntryCols = []string{
	"id", "equipment_id", "client_id", "started_at", "ended_at", "action",
	"recorded_by", "notes", "client_name", "client_phone",
}

func TestHistoryRepo_OpenForEquipment_None(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewHistoryRepo(db)

	equipID := uuid.Must(uuid.NewV4())
	mock.ExpectQuery(`WHERE h\.equipment_id=\$1 AND h\.ended_at IS NULL`).
		WithArgs(equipID).
		WillReturnError(pgx.ErrNoRows)

	entry, err := r.OpenForEquipment(context.Background(), equipID)
	require.NoError(t, err)
	require.Nil(t, entry)
}

func TestHistoryRepo_OpenForEquipment_Found(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewHistoryRepo(db)

	equipID := uuid.Must(uuid.NewV4())
	clientID := uuid.Must(uuid.NewV4())
	recID := uuid.Must(uuid.NewV4())
	at := time.Now().UTC()

	rows := pgxmock.NewRows(historyEntryCols).AddRow(
		recID, equipID, &clientID, at, (*time.Time)(nil), model.ActionDelivery,
		"tech1", "", "Maria Silva", "(11) 98765-4321")

	mock.ExpectQuery(`WHERE h\.equipment_id=\$1 AND h\.ended_at IS NULL`).
		WithArgs(equipID).
		WillReturnRows(rows)

	entry, err := r.OpenForEquipment(context.Background(), equipID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	require.True(t, entry.IsOpen())
	require.Equal(t, model.ActionDelivery, entry.Action)
	require.Equal(t, "Maria Silva", entry.ClientName)
}

func TestHistoryRepo_ListByEquipment(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewHistoryRepo(db)

	equipID := uuid.Must(uuid.NewV4())
	clientID := uuid.Must(uuid.NewV4())
	now := time.Now().UTC()
	earlier := now.Add(-24 * time.Hour)

	rows := pgxmock.NewRows(historyEntryCols).
		AddRow(uuid.Must(uuid.NewV4()), equipID, &clientID, now, (*time.Time)(nil),
			model.ActionDelivery, "tech1", "", "Maria Silva", "(11) 98765-4321").
		AddRow(uuid.Must(uuid.NewV4()), equipID, (*uuid.UUID)(nil), earlier, &now,
			model.ActionRegister, "tech1", "", "", "")

	mock.ExpectQuery(`WHERE h\.equipment_id=\$1\s+ORDER BY h\.started_at DESC`).
		WithArgs(equipID).
		WillReturnRows(rows)

	trail, err := r.ListByEquipment(context.Background(), equipID)
	require.NoError(t, err)
	require.Len(t, trail, 2)

	// newest first: the open delivery, then the closed registration
	require.True(t, trail[0].IsOpen())
	require.Equal(t, model.ActionDelivery, trail[0].Action)
	require.False(t, trail[1].IsOpen())
	require.Equal(t, model.ActionRegister, trail[1].Action)
	require.Empty(t, trail[1].ClientName)
}

func TestHistoryRepo_EquipmentWithClient(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewHistoryRepo(db)

	clientID := uuid.Must(uuid.NewV4())
	at := time.Now().UTC()

	rows := pgxmock.NewRows([]string{
		"id", "serial", "category", "brand", "model", "status",
		"warranty_date", "value", "notes", "registered_at", "started_at", "action",
	}).AddRow(uuid.Must(uuid.NewV4()), "NB-001", "Notebook", "", "", model.StatusWithClient,
		(*time.Time)(nil), (*float64)(nil), "", at, at, model.ActionDelivery)

	mock.ExpectQuery(`WHERE h\.client_id=\$1 AND h\.ended_at IS NULL`).
		WithArgs(clientID).
		WillReturnRows(rows)

	held, err := r.EquipmentWithClient(context.Background(), clientID)
	require.NoError(t, err)
	require.Len(t, held, 1)
	require.Equal(t, "NB-001", held[0].Serial)
	require.Equal(t, model.StatusWithClient, held[0].Status)
}
