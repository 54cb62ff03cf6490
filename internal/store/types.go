package store

import (
	"context"
	"errors"

	"github.com/Ferxas/chris-hotel-web-app/internal/model"
)

// ErrNotFound is returned when the targeted document does not exist.
var ErrNotFound = errors.New("record not found")

// ChangeListener is told about every successful write, by collection name.
type ChangeListener interface {
	Changed(collection string)
}

// ChangeListenerFunc adapts a function to ChangeListener.
type ChangeListenerFunc func(collection string)

func (f ChangeListenerFunc) Changed(collection string) { f(collection) }

// Fields is a partial update keyed by column name. A nil value clears the column.
type Fields map[string]any

// ReportQuery filters problem reports. A nil Resolved matches both states.
type ReportQuery struct {
	Resolved *bool
}

// RoomStore persists rooms.
type RoomStore interface {
	CreateRoom(ctx context.Context, room *model.Room) error
	ListRooms(ctx context.Context) ([]model.Room, error)
	GetRoom(ctx context.Context, id string) (model.Room, error)
	UpdateRoom(ctx context.Context, id string, fields Fields) error
	DeleteRoom(ctx context.Context, id string) error
}

// ReportStore persists problem reports.
type ReportStore interface {
	CreateReport(ctx context.Context, report *model.ProblemReport) error
	ListReports(ctx context.Context, q ReportQuery) ([]model.ProblemReport, error)
	GetReport(ctx context.Context, id string) (model.ProblemReport, error)
	UpdateReport(ctx context.Context, id string, fields Fields) error
	DeleteReport(ctx context.Context, id string) error
}

// MaintenanceLogStore persists the resolved-report archive.
type MaintenanceLogStore interface {
	CreateMaintenanceLog(ctx context.Context, entry *model.MaintenanceLog) error
	ListMaintenanceLogs(ctx context.Context) ([]model.MaintenanceLog, error)
}

// CleaningLogStore persists cleaning sessions.
type CleaningLogStore interface {
	CreateCleaningLog(ctx context.Context, entry *model.CleaningLog) error
	ListCleaningLogs(ctx context.Context) ([]model.CleaningLog, error)
	GetCleaningLog(ctx context.Context, id string) (model.CleaningLog, error)
	UpdateCleaningLog(ctx context.Context, id string, fields Fields) error
	DeleteCleaningLog(ctx context.Context, id string) error
}

// DeviceStore persists device registrations.
type DeviceStore interface {
	UpsertDevice(ctx context.Context, device *model.DeviceRegistration) error
	ListDevices(ctx context.Context) ([]model.DeviceRegistration, error)
	GetDevice(ctx context.Context, id string) (model.DeviceRegistration, error)
	// UpdateDevice applies mutate to the stored registration and returns the
	// document as it was before and after the write.
	UpdateDevice(ctx context.Context, id string, mutate func(*model.DeviceRegistration)) (before, after model.DeviceRegistration, err error)
}

// Store defines the interface for all database operations.
type Store interface {
	RoomStore
	ReportStore
	MaintenanceLogStore
	CleaningLogStore
	DeviceStore
}

// ChangeListeners fans a change out to several listeners in order.
type ChangeListeners []ChangeListener

func (l ChangeListeners) Changed(collection string) {
	for _, listener := range l {
		if listener != nil {
			listener.Changed(collection)
		}
	}
}
