// Package reports implements the problem report workflow: resolution with
// archiving to the maintenance log, and the maintenance board.
package reports

import (
	"context"
	"strings"
	"time"

	"github.com/Ferxas/chris-hotel-web-app/internal/apperr"
	"github.com/Ferxas/chris-hotel-web-app/internal/model"
	"github.com/Ferxas/chris-hotel-web-app/internal/parse"
	"github.com/Ferxas/chris-hotel-web-app/internal/store"
)

// Store is the subset of the shared store the report workflow needs.
type Store interface {
	store.ReportStore
	store.MaintenanceLogStore
	ListRooms(ctx context.Context) ([]model.Room, error)
}

// Service runs the report operations.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates a report service.
func NewService(s Store) *Service {
	return &Service{store: s, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// NewReport is the input of CreateReport.
type NewReport struct {
	RoomNumber   string `json:"roomNumber"`
	Description  string `json:"description"`
	EmployeeName string `json:"employeeName"`
	ImageURL     string `json:"imageUrl"`
}

// CreateReport stores a new pending report.
func (s *Service) CreateReport(ctx context.Context, in NewReport) (model.ProblemReport, error) {
	if parse.IsBlank(in.RoomNumber) {
		return model.ProblemReport{}, apperr.NewValidationError("roomNumber", "room number is required")
	}
	if parse.IsBlank(in.Description) {
		return model.ProblemReport{}, apperr.NewValidationError("description", "description is required")
	}

	report := model.ProblemReport{
		RoomNumber:   strings.TrimSpace(in.RoomNumber),
		Description:  strings.TrimSpace(in.Description),
		EmployeeName: parse.OptionalText(in.EmployeeName),
		ImageURL:     parse.OptionalText(in.ImageURL),
		ReportedAt:   s.now(),
	}
	if err := s.store.CreateReport(ctx, &report); err != nil {
		return model.ProblemReport{}, apperr.NewStoreWriteError("create report", err)
	}
	return report, nil
}

// Resolve marks a pending report resolved and then appends a maintenance log
// entry copying it. An already resolved report is rejected. The two writes are independent: when the archive write fails
// the report stays resolved and the error is returned.
func (s *Service) Resolve(ctx context.Context, id, resolvedBy, comment string) (model.MaintenanceLog, error) {
	report, err := s.store.GetReport(ctx, id)
	if err != nil {
		return model.MaintenanceLog{}, err
	}
	if report.Resolved {
		return model.MaintenanceLog{}, apperr.NewValidationError("resolved", "report is already resolved")
	}

	by := strings.TrimSpace(resolvedBy)
	if by == "" {
		by = parse.Placeholder
	}
	comment = strings.TrimSpace(comment)
	at := s.now()

	err = s.store.UpdateReport(ctx, id, store.Fields{
		"resolved":           true,
		"resolved_at":        at,
		"resolved_by":        by,
		"resolution_comment": comment,
	})
	if err != nil {
		return model.MaintenanceLog{}, apperr.NewStoreWriteError("resolve report", err)
	}

	entry := model.MaintenanceLog{
		RoomNumber:  report.RoomNumber,
		Description: report.Description,
		ImageURL:    report.ImageURL,
		ResolvedBy:  by,
		Comment:     comment,
		ResolvedAt:  at,
	}
	if err := s.store.CreateMaintenanceLog(ctx, &entry); err != nil {
		return model.MaintenanceLog{}, apperr.NewStoreWriteError("archive resolved report", err)
	}
	return entry, nil
}

// Unresolve reopens a report. resolvedBy and the comment are kept as the
// record of the last resolution.
func (s *Service) Unresolve(ctx context.Context, id string) error {
	return apperr.NewStoreWriteError("unresolve report", s.store.UpdateReport(ctx, id, store.Fields{
		"resolved":    false,
		"resolved_at": nil,
	}))
}

// EditDescription replaces the description with the trimmed text.
func (s *Service) EditDescription(ctx context.Context, id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return apperr.NewValidationError("description", "description cannot be empty")
	}
	return apperr.NewStoreWriteError("edit report", s.store.UpdateReport(ctx, id, store.Fields{"description": text}))
}

// DeleteReport removes a report. Its maintenance log entries are kept.
func (s *Service) DeleteReport(ctx context.Context, id string) error {
	return apperr.NewStoreWriteError("delete report", s.store.DeleteReport(ctx, id))
}
