package internal

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ferxas/chris-hotel-web-app/config"
	"github.com/Ferxas/chris-hotel-web-app/internal/api"
	"github.com/Ferxas/chris-hotel-web-app/internal/feed"
	"github.com/Ferxas/chris-hotel-web-app/internal/model"
	"github.com/Ferxas/chris-hotel-web-app/internal/notification"
	"github.com/Ferxas/chris-hotel-web-app/internal/parse"
	"github.com/Ferxas/chris-hotel-web-app/internal/reports"
	"github.com/Ferxas/chris-hotel-web-app/internal/store"
	"github.com/Ferxas/chris-hotel-web-app/internal/store/storetest"
)

// fakeGateway is an Expo-compatible endpoint recording every push it receives.
type fakeGateway struct {
	mu       sync.Mutex
	bodies   []map[string]string
	received chan struct{}
	status   int
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{received: make(chan struct{}, 16), status: http.StatusOK}
}

func (g *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]string
	_ = json.NewDecoder(r.Body).Decode(&body)
	g.mu.Lock()
	g.bodies = append(g.bodies, body)
	status := g.status
	g.mu.Unlock()
	w.WriteHeader(status)
	g.received <- struct{}{}
}

func (g *fakeGateway) waitFor(t *testing.T, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-g.received:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for push %d", i+1)
		}
	}
}

func (g *fakeGateway) count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.bodies)
}

type system struct {
	store    store.Store
	services api.Services
	hub      *feed.Hub
	gateway  *fakeGateway
	clock    *time.Time
}

func newSystem(t *testing.T) *system {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	gw := newFakeGateway()
	server := httptest.NewServer(gw)
	t.Cleanup(server.Close)

	hub := feed.NewHub(nil)
	s := storetest.New(t, hub)

	pool := notification.NewWorkerPool(1, &notification.RoutingGateway{
		Mobile: notification.NewExpoGateway(server.URL, time.Second),
	})
	pool.Start(ctx)

	now := time.Date(2025, 9, 2, 8, 5, 0, 0, time.UTC)
	sys := &system{store: s, hub: hub, gateway: gw, clock: &now}
	clock := func() time.Time { return *sys.clock }

	sys.services = api.NewServices(s, notification.NewTrigger(pool, config.DefaultPushTitle, "default"))
	sys.services.Rooms.WithClock(clock)
	sys.services.Reports.WithClock(clock)
	sys.services.Devices.WithClock(clock)
	for topic, loader := range api.LiveLoaders(sys.services) {
		hub.Handle(topic, loader)
	}
	go hub.Run(ctx)
	return sys
}

func (s *system) advance(d time.Duration) {
	*s.clock = s.clock.Add(d)
}

type boardSnapshot struct {
	Data struct {
		Rooms []struct {
			Room     model.Room `json:"room"`
			Priority *string    `json:"priority"`
		} `json:"rooms"`
		Orphans []model.ProblemReport `json:"orphans"`
	} `json:"data"`
}

func nextBoard(t *testing.T, sub *feed.Subscriber) boardSnapshot {
	t.Helper()
	select {
	case msg, ok := <-sub.C():
		require.True(t, ok)
		var b boardSnapshot
		require.NoError(t, json.Unmarshal(msg, &b))
		return b
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for board snapshot")
	}
	return boardSnapshot{}
}

// TestReportLifecycle walks a room and its report from creation to archive and
// follows the maintenance board over the live feed.
func TestReportLifecycle(t *testing.T) {
	ctx := context.Background()
	sys := newSystem(t)

	sub, err := sys.hub.Subscribe(feed.TopicMaintenanceBoard)
	require.NoError(t, err)
	defer sys.hub.Unsubscribe(sub)
	assert.Empty(t, nextBoard(t, sub).Data.Rooms)

	room, err := sys.services.Rooms.CreateRoom(ctx, "204", model.RoomStateCheckout)
	require.NoError(t, err)
	board := nextBoard(t, sub)
	require.Len(t, board.Data.Rooms, 1)
	assert.Nil(t, board.Data.Rooms[0].Priority)

	image := "https://img.example.com/fuga.jpg"
	report, err := sys.services.Reports.CreateReport(ctx, reportInput("204", "Hay una fuga urgente", image))
	require.NoError(t, err)
	board = nextBoard(t, sub)
	require.NotNil(t, board.Data.Rooms[0].Priority)
	assert.Equal(t, string(parse.PriorityCritical), *board.Data.Rooms[0].Priority)

	sys.advance(time.Hour)
	entry, err := sys.services.Reports.Resolve(ctx, report.ID, "Carlos", "llave cambiada")
	require.NoError(t, err)

	resolved, err := sys.store.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.True(t, resolved.Resolved)
	require.NotNil(t, resolved.ResolvedAt)
	logs, err := sys.services.History.ListMaintenanceLogs(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entry.ID, logs[0].ID)
	assert.Equal(t, resolved.RoomNumber, logs[0].RoomNumber)
	assert.Equal(t, resolved.Description, logs[0].Description)
	assert.Equal(t, *resolved.ImageURL, *logs[0].ImageURL)
	assert.Equal(t, *resolved.ResolvedBy, logs[0].ResolvedBy)
	assert.Equal(t, *resolved.ResolutionComment, logs[0].Comment)
	assert.True(t, resolved.ResolvedAt.Equal(logs[0].ResolvedAt))

	require.NoError(t, sys.services.Reports.Unresolve(ctx, report.ID))
	reopened, err := sys.store.GetReport(ctx, report.ID)
	require.NoError(t, err)
	assert.False(t, reopened.Resolved)
	assert.Nil(t, reopened.ResolvedAt)

	require.NoError(t, sys.services.Rooms.DeleteRoom(ctx, room.ID))
	orphan, err := sys.store.GetReport(ctx, report.ID)
	require.NoError(t, err, "deleting a room keeps its reports")
	assert.Equal(t, "204", orphan.RoomNumber)

	// Snapshots are coalesced, so read until the board reflects the delete.
	deadline := time.After(2 * time.Second)
	for {
		board = nextBoard(t, sub)
		if len(board.Data.Rooms) == 0 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("board never dropped the deleted room")
		default:
		}
	}
	require.Len(t, board.Data.Orphans, 1)
	assert.Equal(t, report.ID, board.Data.Orphans[0].ID)
}

// TestRoomStateIsTotal checks that every state can follow every other state.
func TestRoomStateIsTotal(t *testing.T) {
	ctx := context.Background()
	sys := newSystem(t)
	room, err := sys.services.Rooms.CreateRoom(ctx, "101", model.RoomStateService)
	require.NoError(t, err)

	states := []model.RoomState{model.RoomStateService, model.RoomStateCheckout, model.RoomStateClean}
	for _, from := range states {
		for _, to := range states {
			require.NoError(t, sys.services.Rooms.SetState(ctx, room.ID, from))
			require.NoError(t, sys.services.Rooms.SetState(ctx, room.ID, to))
			got, err := sys.store.GetRoom(ctx, room.ID)
			require.NoError(t, err)
			assert.Equal(t, to, got.State, "%s -> %s", from, to)
		}
	}
}

// TestDeviceMessagePushes checks the outbox contract end to end: one push per
// distinct sentAt, and gateway failures never reach the sender.
func TestDeviceMessagePushes(t *testing.T) {
	ctx := context.Background()
	sys := newSystem(t)

	device, err := sys.services.Devices.Register(ctx, "Piso 2", "ExponentPushToken[abc]")
	require.NoError(t, err)

	_, err = sys.services.Devices.SendMessage(ctx, device.ID, "sube a la 204")
	require.NoError(t, err)
	sys.gateway.waitFor(t, 1)

	// Same clock reading: the write lands but sentAt does not change.
	_, err = sys.services.Devices.SendMessage(ctx, device.ID, "sube a la 204")
	require.NoError(t, err)

	sys.advance(time.Minute)
	sys.gateway.mu.Lock()
	sys.gateway.status = http.StatusInternalServerError
	sys.gateway.mu.Unlock()
	_, err = sys.services.Devices.SendMessage(ctx, device.ID, "baja a recepción")
	require.NoError(t, err, "gateway failures are not surfaced")
	sys.gateway.waitFor(t, 1)

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 2, sys.gateway.count())

	sys.gateway.mu.Lock()
	defer sys.gateway.mu.Unlock()
	assert.Equal(t, map[string]string{
		"to":    "ExponentPushToken[abc]",
		"sound": "default",
		"title": config.DefaultPushTitle,
		"body":  "sube a la 204",
	}, sys.gateway.bodies[0])
	assert.Equal(t, "baja a recepción", sys.gateway.bodies[1]["body"])
}

func reportInput(room, description, image string) reports.NewReport {
	return reports.NewReport{RoomNumber: room, Description: description, ImageURL: image}
}
