package model

import (
	"encoding/json"
	"time"
)

// CustomMessage is the single-slot outbox of a device. A new SentAt is what
// marks a message as new.
type CustomMessage struct {
	Text   string    `json:"text"`
	SentAt time.Time `json:"sentAt"`
}

// DeviceRegistration is a staff mobile device (or browser) able to receive pushes.
type DeviceRegistration struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Name          string     `gorm:"size:128" json:"name"`
	Token         string     `gorm:"type:text;not null;uniqueIndex" json:"token"`
	Available     bool       `gorm:"not null" json:"available"`
	CreatedAt     time.Time  `gorm:"not null;index" json:"createdAt"`
	MessageText   *string    `gorm:"column:custom_message_text;type:text" json:"-"`
	MessageSentAt *time.Time `gorm:"column:custom_message_sent_at" json:"-"`
}

func (DeviceRegistration) TableName() string { return CollectionDevices }

// CustomMessage returns the outbox content, or nil when nothing was ever sent.
func (d DeviceRegistration) CustomMessage() *CustomMessage {
	if d.MessageSentAt == nil {
		return nil
	}
	m := &CustomMessage{SentAt: *d.MessageSentAt}
	if d.MessageText != nil {
		m.Text = *d.MessageText
	}
	return m
}

// SetCustomMessage overwrites the outbox.
func (d *DeviceRegistration) SetCustomMessage(m CustomMessage) {
	text := m.Text
	sentAt := m.SentAt
	d.MessageText = &text
	d.MessageSentAt = &sentAt
}

func (d DeviceRegistration) MarshalJSON() ([]byte, error) {
	type alias DeviceRegistration
	return json.Marshal(struct {
		alias
		CustomMessage *CustomMessage `json:"customMessage"`
	}{alias(d), d.CustomMessage()})
}
