package notification

import (
	"log"

	"github.com/Ferxas/chris-hotel-web-app/internal/model"
)

// Dispatcher accepts messages for asynchronous delivery.
type Dispatcher interface {
	Dispatch(msg PushMessage)
}

// Trigger reacts to device registration updates and issues at most one push
// per distinct customMessage.sentAt.
type Trigger struct {
	dispatcher Dispatcher
	title      string
	sound      string
}

// NewTrigger creates a trigger sending with a fixed title and sound.
func NewTrigger(dispatcher Dispatcher, title, sound string) *Trigger {
	return &Trigger{dispatcher: dispatcher, title: title, sound: sound}
}

// DeviceUpdated compares the outbox before and after a write and dispatches a
// push when sentAt changed. It reports whether a push was dispatched.
func (t *Trigger) DeviceUpdated(before, after model.DeviceRegistration) bool {
	msg := after.CustomMessage()
	if msg == nil {
		return false
	}
	if prev := before.CustomMessage(); prev != nil && prev.SentAt.Equal(msg.SentAt) {
		return false
	}
	if after.Token == "" || msg.Text == "" {
		pushSkipped.Inc()
		log.Printf("Device %s has a new message but no token or text; not sending", after.ID)
		return false
	}

	t.dispatcher.Dispatch(PushMessage{
		DeviceID: after.ID,
		Token:    after.Token,
		Title:    t.title,
		Body:     msg.Text,
		Sound:    t.sound,
	})
	return true
}
