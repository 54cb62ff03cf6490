package rooms

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ferxas/chris-hotel-web-app/internal/apperr"
	"github.com/Ferxas/chris-hotel-web-app/internal/model"
	"github.com/Ferxas/chris-hotel-web-app/internal/store"
	"github.com/Ferxas/chris-hotel-web-app/internal/store/storetest"
)

var fixedNow = time.Date(2025, 9, 2, 8, 5, 0, 0, time.UTC)

func newManager(t *testing.T) (*Manager, store.Store) {
	t.Helper()
	s := storetest.New(t, nil)
	return NewManager(s, s).WithClock(func() time.Time { return fixedNow }), s
}

func TestCreateRoom(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t)

	for _, blank := range []string{"", "   "} {
		_, err := m.CreateRoom(ctx, blank, model.RoomStateService)
		assert.True(t, apperr.IsValidation(err), "blank number %q must be rejected", blank)
	}
	rooms, err := s.ListRooms(ctx)
	require.NoError(t, err)
	assert.Empty(t, rooms, "validation failures must not write")

	room, err := m.CreateRoom(ctx, " 204 ", model.RoomStateCheckout)
	require.NoError(t, err)
	assert.NotEmpty(t, room.ID)
	assert.Equal(t, "204", room.Number)
	assert.Equal(t, model.RoomStateCheckout, room.State)
	assert.Nil(t, room.LastCleaned)
	assert.Nil(t, room.LastMaintenance)

	stored, err := s.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, "204", stored.Number)
	assert.True(t, stored.CreatedAt.Equal(fixedNow))

	room, err = m.CreateRoom(ctx, "205", "")
	require.NoError(t, err)
	assert.Equal(t, model.RoomStateService, room.State)

	_, err = m.CreateRoom(ctx, "206", "DIRTY")
	assert.True(t, apperr.IsValidation(err))
}

func TestSetState_AnyTransitionIsAllowed(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t)
	room, err := m.CreateRoom(ctx, "101", model.RoomStateClean)
	require.NoError(t, err)

	for _, state := range []model.RoomState{
		model.RoomStateService,
		model.RoomStateClean,
		model.RoomStateCheckout,
		model.RoomStateCheckout,
		model.RoomStateService,
	} {
		require.NoError(t, m.SetState(ctx, room.ID, state))
		got, err := s.GetRoom(ctx, room.ID)
		require.NoError(t, err)
		assert.Equal(t, state, got.State)
		assert.Nil(t, got.LastCleaned, "setting the state does not touch history")
	}

	assert.True(t, apperr.IsValidation(m.SetState(ctx, room.ID, "BROKEN")))

	err = m.SetState(ctx, "missing", model.RoomStateClean)
	assert.True(t, apperr.IsStoreWrite(err))
	assert.True(t, errors.Is(err, store.ErrNotFound))
}

func TestRenameRoom_AllowsDuplicates(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t)
	a, err := m.CreateRoom(ctx, "101", "")
	require.NoError(t, err)
	b, err := m.CreateRoom(ctx, "102", "")
	require.NoError(t, err)

	require.NoError(t, m.RenameRoom(ctx, b.ID, "101"))

	rooms, err := s.ListRooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	assert.Equal(t, "101", rooms[0].Number)
	assert.Equal(t, "101", rooms[1].Number)
	assert.ElementsMatch(t, []string{a.ID, b.ID}, []string{rooms[0].ID, rooms[1].ID})
}

func TestRegisterManual(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t)
	room, err := m.CreateRoom(ctx, "301", model.RoomStateCheckout)
	require.NoError(t, err)

	at, err := m.RegisterManual(ctx, room.ID, model.ManualClean)
	require.NoError(t, err)
	assert.True(t, at.Equal(fixedNow))

	got, err := s.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastCleaned)
	assert.True(t, got.LastCleaned.Equal(fixedNow))
	assert.Nil(t, got.LastMaintenance)
	assert.Equal(t, model.RoomStateCheckout, got.State, "manual registration keeps the state")

	_, err = m.RegisterManual(ctx, room.ID, model.ManualMaintenance)
	require.NoError(t, err)
	got, err = s.GetRoom(ctx, room.ID)
	require.NoError(t, err)
	require.NotNil(t, got.LastMaintenance)

	logs, err := s.ListCleaningLogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, logs, "manual registration does not create log entries")
	mlogs, err := s.ListMaintenanceLogs(ctx)
	require.NoError(t, err)
	assert.Empty(t, mlogs)

	_, err = m.RegisterManual(ctx, room.ID, "paint")
	assert.True(t, apperr.IsValidation(err))
}

func TestDeleteRoom_KeepsReports(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t)
	room, err := m.CreateRoom(ctx, "204", "")
	require.NoError(t, err)
	require.NoError(t, s.CreateReport(ctx, &model.ProblemReport{RoomNumber: "204", Description: "fuga", ReportedAt: fixedNow}))

	require.NoError(t, m.DeleteRoom(ctx, room.ID))

	_, err = s.GetRoom(ctx, room.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	reports, err := s.ListReports(ctx, store.ReportQuery{})
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "204", reports[0].RoomNumber)

	assert.ErrorIs(t, m.DeleteRoom(ctx, room.ID), store.ErrNotFound)
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	m, s := newManager(t)
	for number, state := range map[string]model.RoomState{
		"101": model.RoomStateClean,
		"102": model.RoomStateClean,
		"103": model.RoomStateService,
		"104": model.RoomStateCheckout,
	} {
		_, err := m.CreateRoom(ctx, number, state)
		require.NoError(t, err)
	}
	require.NoError(t, s.CreateReport(ctx, &model.ProblemReport{RoomNumber: "101", Description: "a", ReportedAt: fixedNow}))
	resolvedAt := fixedNow
	require.NoError(t, s.CreateReport(ctx, &model.ProblemReport{RoomNumber: "102", Description: "b", ReportedAt: fixedNow, Resolved: true, ResolvedAt: &resolvedAt}))

	d, err := m.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, Dashboard{TotalRooms: 4, CleanRooms: 2, InServiceRooms: 2, PendingReports: 1}, d)
}
