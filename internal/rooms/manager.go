// Package rooms owns the operational state of hotel rooms.
//
// Every state transition is allowed: the manager records the state staff
// declare, it does not verify a cleaning workflow. Manual registrations only
// touch the history timestamps of the room.
package rooms

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ferxas/chris-hotel-web-app/internal/apperr"
	"github.com/Ferxas/chris-hotel-web-app/internal/model"
	"github.com/Ferxas/chris-hotel-web-app/internal/store"
)

// Manager implements the room operations on top of the shared store.
type Manager struct {
	rooms   store.RoomStore
	reports store.ReportStore
	now     func() time.Time
}

// NewManager creates a room manager. reports is only read, for the dashboard.
func NewManager(rooms store.RoomStore, reports store.ReportStore) *Manager {
	return &Manager{rooms: rooms, reports: reports, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// CreateRoom inserts a room with empty history. An empty initial state means SE.
func (m *Manager) CreateRoom(ctx context.Context, number string, initial model.RoomState) (model.Room, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return model.Room{}, apperr.NewValidationError("number", "room number is required")
	}
	if initial == "" {
		initial = model.RoomStateService
	}
	if !initial.Valid() {
		return model.Room{}, apperr.NewValidationError("state", fmt.Sprintf("unknown room state %q", initial))
	}

	room := model.Room{
		Number:    number,
		State:     initial,
		CreatedAt: m.now(),
	}
	if err := m.rooms.CreateRoom(ctx, &room); err != nil {
		return model.Room{}, apperr.NewStoreWriteError("create room", err)
	}
	return room, nil
}

// ListRooms returns every room ordered by number.
func (m *Manager) ListRooms(ctx context.Context) ([]model.Room, error) {
	return m.rooms.ListRooms(ctx)
}

// SetState overwrites the state of a room regardless of its current value.
func (m *Manager) SetState(ctx context.Context, id string, state model.RoomState) error {
	if !state.Valid() {
		return apperr.NewValidationError("state", fmt.Sprintf("unknown room state %q", state))
	}
	return apperr.NewStoreWriteError("set room state", m.rooms.UpdateRoom(ctx, id, store.Fields{"state": state}))
}

// RenameRoom overwrites the number of a room. Duplicates are allowed.
func (m *Manager) RenameRoom(ctx context.Context, id, number string) error {
	return apperr.NewStoreWriteError("rename room", m.rooms.UpdateRoom(ctx, id, store.Fields{"number": number}))
}

// RegisterManual stamps lastCleaned or lastMaintenance with the current time.
// No log entry is created and the state is left alone.
func (m *Manager) RegisterManual(ctx context.Context, id string, kind model.ManualKind) (time.Time, error) {
	var column string
	switch kind {
	case model.ManualClean:
		column = "last_cleaned"
	case model.ManualMaintenance:
		column = "last_maintenance"
	default:
		return time.Time{}, apperr.NewValidationError("kind", fmt.Sprintf("unknown registration kind %q", kind))
	}

	at := m.now()
	if err := m.rooms.UpdateRoom(ctx, id, store.Fields{column: at}); err != nil {
		return time.Time{}, apperr.NewStoreWriteError("register "+string(kind), err)
	}
	return at, nil
}

// DeleteRoom removes a room. Reports and logs that carry its number are kept.
func (m *Manager) DeleteRoom(ctx context.Context, id string) error {
	return apperr.NewStoreWriteError("delete room", m.rooms.DeleteRoom(ctx, id))
}

// Dashboard holds the headline counters of the admin home screen.
type Dashboard struct {
	TotalRooms     int `json:"totalRooms"`
	CleanRooms     int `json:"cleanRooms"`
	InServiceRooms int `json:"inServiceRooms"`
	PendingReports int `json:"pendingReports"`
}

// Dashboard counts rooms by state and the unresolved reports.
func (m *Manager) Dashboard(ctx context.Context) (Dashboard, error) {
	rooms, err := m.rooms.ListRooms(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	pending := false
	reports, err := m.reports.ListReports(ctx, store.ReportQuery{Resolved: &pending})
	if err != nil {
		return Dashboard{}, err
	}

	d := Dashboard{TotalRooms: len(rooms), PendingReports: len(reports)}
	for _, r := range rooms {
		switch r.State {
		case model.RoomStateClean:
			d.CleanRooms++
		case model.RoomStateService, model.RoomStateCheckout:
			d.InServiceRooms++
		}
	}
	return d, nil
}
