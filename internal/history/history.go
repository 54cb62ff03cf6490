// Package history serves the cleaning and maintenance archives.
package history

import (
	"context"
	"strings"
	"time"

	"github.com/Ferxas/chris-hotel-web-app/internal/apperr"
	"github.com/Ferxas/chris-hotel-web-app/internal/model"
	"github.com/Ferxas/chris-hotel-web-app/internal/parse"
	"github.com/Ferxas/chris-hotel-web-app/internal/store"
)

// Store is the subset of the shared store used by the archives.
type Store interface {
	store.CleaningLogStore
	store.MaintenanceLogStore
}

// Service exposes the archive operations.
type Service struct {
	store Store
}

// NewService creates a history service.
func NewService(s Store) *Service {
	return &Service{store: s}
}

// NewCleaningLog is a finished cleaning session reported by the tracker.
type NewCleaningLog struct {
	RoomNumber      string    `json:"roomNumber"`
	EmployeeName    string    `json:"employeeName"`
	StartedAt       time.Time `json:"startedAt"`
	EndedAt         time.Time `json:"endedAt"`
	DurationMinutes int       `json:"durationMinutes"`
}

// CreateCleaningLog records a session. Without an explicit duration it is
// derived from the start and end times.
func (s *Service) CreateCleaningLog(ctx context.Context, in NewCleaningLog) (model.CleaningLog, error) {
	if parse.IsBlank(in.RoomNumber) {
		return model.CleaningLog{}, apperr.NewValidationError("roomNumber", "room number is required")
	}
	if in.StartedAt.IsZero() || in.EndedAt.IsZero() {
		return model.CleaningLog{}, apperr.NewValidationError("startedAt", "start and end times are required")
	}
	if in.EndedAt.Before(in.StartedAt) {
		return model.CleaningLog{}, apperr.NewValidationError("endedAt", "session ends before it starts")
	}

	duration := in.DurationMinutes
	if duration <= 0 {
		duration = int(in.EndedAt.Sub(in.StartedAt).Round(time.Minute) / time.Minute)
	}
	entry := model.CleaningLog{
		RoomNumber:      strings.TrimSpace(in.RoomNumber),
		EmployeeName:    parse.OptionalText(in.EmployeeName),
		StartedAt:       in.StartedAt,
		EndedAt:         in.EndedAt,
		DurationMinutes: duration,
	}
	if err := s.store.CreateCleaningLog(ctx, &entry); err != nil {
		return model.CleaningLog{}, apperr.NewStoreWriteError("create cleaning log", err)
	}
	return entry, nil
}

// CleaningFilter narrows the cleaning listing. Room is a substring of the
// room number; Employee is a case-insensitive substring of the name.
type CleaningFilter struct {
	Room     string
	Employee string
}

// ListCleaningLogs returns sessions, most recent start first.
func (s *Service) ListCleaningLogs(ctx context.Context, f CleaningFilter) ([]model.CleaningLog, error) {
	logs, err := s.store.ListCleaningLogs(ctx)
	if err != nil {
		return nil, err
	}
	room := strings.TrimSpace(f.Room)
	employee := strings.TrimSpace(f.Employee)
	out := make([]model.CleaningLog, 0, len(logs))
	for _, l := range logs {
		if room != "" && !strings.Contains(l.RoomNumber, room) {
			continue
		}
		if employee != "" && !parse.ContainsFold(parse.Deref(l.EmployeeName, ""), employee) {
			continue
		}
		out = append(out, l)
	}
	return out, nil
}

// CleaningEdit is a post-hoc correction. A nil field is left alone.
type CleaningEdit struct {
	EmployeeName    *string `json:"employeeName"`
	DurationMinutes *int    `json:"durationMinutes"`
}

// EditCleaningLog applies a correction. When neither a name nor a positive
// duration is given nothing is written. Otherwise a blank name clears the
// name and a missing or non-positive duration keeps the current one.
func (s *Service) EditCleaningLog(ctx context.Context, id string, edit CleaningEdit) error {
	var name *string
	if edit.EmployeeName != nil {
		name = parse.OptionalText(*edit.EmployeeName)
	}
	hasDuration := edit.DurationMinutes != nil && *edit.DurationMinutes > 0
	if name == nil && !hasDuration {
		return nil
	}

	fields := store.Fields{}
	if edit.EmployeeName != nil {
		if name != nil {
			fields["employee_name"] = *name
		} else {
			fields["employee_name"] = nil
		}
	}
	if hasDuration {
		fields["duration_minutes"] = *edit.DurationMinutes
	}
	return apperr.NewStoreWriteError("edit cleaning log", s.store.UpdateCleaningLog(ctx, id, fields))
}

// DeleteCleaningLog removes a session.
func (s *Service) DeleteCleaningLog(ctx context.Context, id string) error {
	return apperr.NewStoreWriteError("delete cleaning log", s.store.DeleteCleaningLog(ctx, id))
}

// ListMaintenanceLogs returns the archive, most recent resolution first.
func (s *Service) ListMaintenanceLogs(ctx context.Context) ([]model.MaintenanceLog, error) {
	return s.store.ListMaintenanceLogs(ctx)
}
