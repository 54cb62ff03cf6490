package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Ferxas/chris-hotel-web-app/internal/model"
)

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db       *gorm.DB
	listener ChangeListener
}

// NewGormStore creates a new GORM-backed store. listener may be nil.
func NewGormStore(db *gorm.DB, listener ChangeListener) Store {
	return &gormStore{db: db, listener: listener}
}

func (s *gormStore) changed(collection string) {
	if s.listener != nil {
		s.listener.Changed(collection)
	}
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

func (s *gormStore) create(ctx context.Context, collection string, value any) error {
	if err := s.db.WithContext(ctx).Create(value).Error; err != nil {
		return fmt.Errorf("failed to create %s record: %w", collection, err)
	}
	s.changed(collection)
	return nil
}

func (s *gormStore) get(ctx context.Context, collection string, dest any, id string) error {
	err := s.db.WithContext(ctx).Where("id = ?", id).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load %s %s: %w", collection, id, err)
	}
	return nil
}

func (s *gormStore) update(ctx context.Context, collection string, value any, id string, fields Fields) error {
	res := s.db.WithContext(ctx).Model(value).Where("id = ?", id).Updates(map[string]any(fields))
	if res.Error != nil {
		return fmt.Errorf("failed to update %s %s: %w", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.changed(collection)
	return nil
}

func (s *gormStore) delete(ctx context.Context, collection string, value any, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(value)
	if res.Error != nil {
		return fmt.Errorf("failed to delete %s %s: %w", collection, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	s.changed(collection)
	return nil
}

// --- rooms ---

func (s *gormStore) CreateRoom(ctx context.Context, room *model.Room) error {
	room.ID = newID(room.ID)
	return s.create(ctx, model.CollectionRooms, room)
}

func (s *gormStore) ListRooms(ctx context.Context) ([]model.Room, error) {
	var rooms []model.Room
	if err := s.db.WithContext(ctx).Order("number ASC").Order("created_at ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	return rooms, nil
}

func (s *gormStore) GetRoom(ctx context.Context, id string) (model.Room, error) {
	var room model.Room
	err := s.get(ctx, model.CollectionRooms, &room, id)
	return room, err
}

func (s *gormStore) UpdateRoom(ctx context.Context, id string, fields Fields) error {
	return s.update(ctx, model.CollectionRooms, &model.Room{}, id, fields)
}

func (s *gormStore) DeleteRoom(ctx context.Context, id string) error {
	return s.delete(ctx, model.CollectionRooms, &model.Room{}, id)
}

// --- problem reports ---

func (s *gormStore) CreateReport(ctx context.Context, report *model.ProblemReport) error {
	report.ID = newID(report.ID)
	return s.create(ctx, model.CollectionProblemReports, report)
}

// ListReports returns reports newest first.
func (s *gormStore) ListReports(ctx context.Context, q ReportQuery) ([]model.ProblemReport, error) {
	tx := s.db.WithContext(ctx).Model(&model.ProblemReport{})
	if q.Resolved != nil {
		tx = tx.Where("resolved = ?", *q.Resolved)
	}
	var reports []model.ProblemReport
	if err := tx.Order("reported_at DESC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to list problem reports: %w", err)
	}
	return reports, nil
}

func (s *gormStore) GetReport(ctx context.Context, id string) (model.ProblemReport, error) {
	var report model.ProblemReport
	err := s.get(ctx, model.CollectionProblemReports, &report, id)
	return report, err
}

func (s *gormStore) UpdateReport(ctx context.Context, id string, fields Fields) error {
	return s.update(ctx, model.CollectionProblemReports, &model.ProblemReport{}, id, fields)
}

func (s *gormStore) DeleteReport(ctx context.Context, id string) error {
	return s.delete(ctx, model.CollectionProblemReports, &model.ProblemReport{}, id)
}

// --- maintenance logs ---

func (s *gormStore) CreateMaintenanceLog(ctx context.Context, entry *model.MaintenanceLog) error {
	entry.ID = newID(entry.ID)
	return s.create(ctx, model.CollectionMaintenanceLogs, entry)
}

func (s *gormStore) ListMaintenanceLogs(ctx context.Context) ([]model.MaintenanceLog, error) {
	var logs []model.MaintenanceLog
	if err := s.db.WithContext(ctx).Order("resolved_at DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list maintenance logs: %w", err)
	}
	return logs, nil
}

// --- cleaning logs ---

func (s *gormStore) CreateCleaningLog(ctx context.Context, entry *model.CleaningLog) error {
	entry.ID = newID(entry.ID)
	return s.create(ctx, model.CollectionCleaningLogs, entry)
}

func (s *gormStore) ListCleaningLogs(ctx context.Context) ([]model.CleaningLog, error) {
	var logs []model.CleaningLog
	if err := s.db.WithContext(ctx).Order("started_at DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to list cleaning logs: %w", err)
	}
	return logs, nil
}

func (s *gormStore) GetCleaningLog(ctx context.Context, id string) (model.CleaningLog, error) {
	var entry model.CleaningLog
	err := s.get(ctx, model.CollectionCleaningLogs, &entry, id)
	return entry, err
}

func (s *gormStore) UpdateCleaningLog(ctx context.Context, id string, fields Fields) error {
	return s.update(ctx, model.CollectionCleaningLogs, &model.CleaningLog{}, id, fields)
}

func (s *gormStore) DeleteCleaningLog(ctx context.Context, id string) error {
	return s.delete(ctx, model.CollectionCleaningLogs, &model.CleaningLog{}, id)
}

// --- devices ---

// UpsertDevice registers a device, reusing the existing registration (and its
// id) when the token is already known.
func (s *gormStore) UpsertDevice(ctx context.Context, device *model.DeviceRegistration) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.DeviceRegistration
		err := tx.Where("token = ?", device.Token).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Model(&existing).Update("name", device.Name).Error; err != nil {
				return err
			}
			existing.Name = device.Name
			*device = existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			device.ID = newID(device.ID)
			return tx.Create(device).Error
		default:
			return err
		}
	})
	if err != nil {
		return fmt.Errorf("failed to register device: %w", err)
	}
	s.changed(model.CollectionDevices)
	return nil
}

func (s *gormStore) ListDevices(ctx context.Context) ([]model.DeviceRegistration, error) {
	var devices []model.DeviceRegistration
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&devices).Error; err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return devices, nil
}

func (s *gormStore) GetDevice(ctx context.Context, id string) (model.DeviceRegistration, error) {
	var device model.DeviceRegistration
	err := s.get(ctx, model.CollectionDevices, &device, id)
	return device, err
}

func (s *gormStore) UpdateDevice(ctx context.Context, id string, mutate func(*model.DeviceRegistration)) (before, after model.DeviceRegistration, err error) {
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&before).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		after = before
		mutate(&after)
		after.ID = before.ID
		return tx.Save(&after).Error
	})
	if errors.Is(err, ErrNotFound) {
		return before, after, ErrNotFound
	}
	if err != nil {
		return before, after, fmt.Errorf("failed to update device %s: %w", id, err)
	}
	s.changed(model.CollectionDevices)
	return before, after, nil
}
