package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ferxas/chris-hotel-web-app/internal/feed"
	"github.com/Ferxas/chris-hotel-web-app/internal/history"
	"github.com/Ferxas/chris-hotel-web-app/internal/reports"
)

// LiveLoaders returns the snapshot producers of every live topic.
func LiveLoaders(svc Services) map[string]feed.Loader {
	return map[string]feed.Loader{
		feed.TopicRooms: func(ctx context.Context) (any, error) {
			return svc.Rooms.ListRooms(ctx)
		},
		feed.TopicReports: func(ctx context.Context) (any, error) {
			return svc.Reports.List(ctx, reports.Filter{Status: reports.StatusAll})
		},
		feed.TopicReportsPending: func(ctx context.Context) (any, error) {
			return svc.Reports.List(ctx, reports.Filter{Status: reports.StatusPending})
		},
		feed.TopicMaintenanceBoard: func(ctx context.Context) (any, error) {
			return svc.Reports.Board(ctx, false)
		},
		feed.TopicCleaningLogs: func(ctx context.Context) (any, error) {
			return svc.History.ListCleaningLogs(ctx, history.CleaningFilter{})
		},
		feed.TopicMaintenanceLogs: func(ctx context.Context) (any, error) {
			return svc.History.ListMaintenanceLogs(ctx)
		},
		feed.TopicDevices: func(ctx context.Context) (any, error) {
			return svc.Devices.List(ctx)
		},
		feed.TopicDashboard: func(ctx context.Context) (any, error) {
			return svc.Rooms.Dashboard(ctx)
		},
	}
}

// Live handles GET /api/live/:topic by upgrading to a websocket that carries
// a full snapshot now and after every change.
func (h *Handler) Live(c *gin.Context) {
	if h.hub == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "live updates are disabled"})
		return
	}
	if err := h.hub.ServeWebSocket(c.Writer, c.Request, c.Param("topic")); err != nil {
		respondError(c, err)
	}
}
