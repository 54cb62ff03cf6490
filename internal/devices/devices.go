// Package devices administers the staff device registrations and their
// single-slot message outbox.
package devices

import (
	"context"
	"strings"
	"time"

	"github.com/Ferxas/chris-hotel-web-app/internal/apperr"
	"github.com/Ferxas/chris-hotel-web-app/internal/model"
	"github.com/Ferxas/chris-hotel-web-app/internal/parse"
	"github.com/Ferxas/chris-hotel-web-app/internal/store"
)

// Notifier is told about every device write, with the document before and
// after it.
type Notifier interface {
	DeviceUpdated(before, after model.DeviceRegistration) bool
}

// Service runs the device operations.
type Service struct {
	store    store.DeviceStore
	notifier Notifier
	now      func() time.Time
}

// NewService creates a device service. notifier may be nil.
func NewService(s store.DeviceStore, notifier Notifier) *Service {
	return &Service{store: s, notifier: notifier, now: time.Now}
}

// WithClock replaces the time source, for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Register records a device token. A known token keeps its registration and
// only has its name refreshed.
func (s *Service) Register(ctx context.Context, name, token string) (model.DeviceRegistration, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return model.DeviceRegistration{}, apperr.NewValidationError("token", "token is required")
	}
	device := model.DeviceRegistration{
		Name:      strings.TrimSpace(name),
		Token:     token,
		Available: true,
		CreatedAt: s.now(),
	}
	if err := s.store.UpsertDevice(ctx, &device); err != nil {
		return model.DeviceRegistration{}, apperr.NewStoreWriteError("register device", err)
	}
	return device, nil
}

// List returns the registrations, newest first.
func (s *Service) List(ctx context.Context) ([]model.DeviceRegistration, error) {
	return s.store.ListDevices(ctx)
}

// Update is a partial edit of a registration. A nil field is left alone.
type Update struct {
	Name      *string `json:"name"`
	Available *bool   `json:"available"`
}

// Update edits the name or availability. The outbox is not touched, so no
// push can result from it.
func (s *Service) Update(ctx context.Context, id string, u Update) (model.DeviceRegistration, error) {
	before, after, err := s.store.UpdateDevice(ctx, id, func(d *model.DeviceRegistration) {
		if u.Name != nil {
			d.Name = strings.TrimSpace(*u.Name)
		}
		if u.Available != nil {
			d.Available = *u.Available
		}
	})
	if err != nil {
		return model.DeviceRegistration{}, apperr.NewStoreWriteError("update device", err)
	}
	s.notify(before, after)
	return after, nil
}

// SendMessage overwrites the outbox with text stamped with the current time.
// Delivery happens asynchronously and its failure is never returned here.
func (s *Service) SendMessage(ctx context.Context, id, text string) (model.DeviceRegistration, error) {
	if parse.IsBlank(text) {
		return model.DeviceRegistration{}, apperr.NewValidationError("text", "message cannot be empty")
	}
	msg := model.CustomMessage{Text: strings.TrimSpace(text), SentAt: s.now()}

	before, after, err := s.store.UpdateDevice(ctx, id, func(d *model.DeviceRegistration) {
		d.SetCustomMessage(msg)
	})
	if err != nil {
		return model.DeviceRegistration{}, apperr.NewStoreWriteError("send message", err)
	}
	s.notify(before, after)
	return after, nil
}

func (s *Service) notify(before, after model.DeviceRegistration) {
	if s.notifier != nil {
		s.notifier.DeviceUpdated(before, after)
	}
}
