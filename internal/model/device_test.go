package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceRegistration_CustomMessage(t *testing.T) {
	var d DeviceRegistration
	assert.Nil(t, d.CustomMessage())

	sentAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	d.SetCustomMessage(CustomMessage{Text: "sube a la 204", SentAt: sentAt})

	msg := d.CustomMessage()
	require.NotNil(t, msg)
	assert.Equal(t, "sube a la 204", msg.Text)
	assert.True(t, msg.SentAt.Equal(sentAt))
}

func TestDeviceRegistration_MarshalJSON(t *testing.T) {
	sentAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	d := DeviceRegistration{ID: "d1", Name: "Ana", Token: "ExponentPushToken[x]", Available: true}
	d.SetCustomMessage(CustomMessage{Text: "hola", SentAt: sentAt})

	raw, err := json.Marshal(d)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "d1", out["id"])
	assert.NotContains(t, out, "MessageText")
	msg, ok := out["customMessage"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "hola", msg["text"])

	raw, err = json.Marshal(DeviceRegistration{ID: "d2"})
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"customMessage":null`)
}

func TestRoomState_Valid(t *testing.T) {
	assert.True(t, RoomStateService.Valid())
	assert.True(t, RoomStateCheckout.Valid())
	assert.True(t, RoomStateClean.Valid())
	assert.False(t, RoomState("DIRTY").Valid())
	assert.False(t, RoomState("").Valid())
}
