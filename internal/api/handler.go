package api

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Ferxas/chris-hotel-web-app/internal/apperr"
	"github.com/Ferxas/chris-hotel-web-app/internal/devices"
	"github.com/Ferxas/chris-hotel-web-app/internal/feed"
	"github.com/Ferxas/chris-hotel-web-app/internal/history"
	"github.com/Ferxas/chris-hotel-web-app/internal/reports"
	"github.com/Ferxas/chris-hotel-web-app/internal/rooms"
	"github.com/Ferxas/chris-hotel-web-app/internal/store"
)

// Services bundles the domain services behind the HTTP surface.
type Services struct {
	Rooms   *rooms.Manager
	Reports *reports.Service
	History *history.Service
	Devices *devices.Service
}

// NewServices builds every service on the shared store. notifier receives
// device writes and may be nil.
func NewServices(s store.Store, notifier devices.Notifier) Services {
	return Services{
		Rooms:   rooms.NewManager(s, s),
		Reports: reports.NewService(s),
		History: history.NewService(s),
		Devices: devices.NewService(s, notifier),
	}
}

// Handler holds shared dependencies for API handlers.
type Handler struct {
	svc            Services
	hub            *feed.Hub
	vapidPublicKey string
	loc            *time.Location
	now            func() time.Time
}

// NewHandler creates a new API handler. hub may be nil, which disables the
// live endpoints.
func NewHandler(svc Services, hub *feed.Hub, vapidPublicKey string) *Handler {
	return &Handler{
		svc:            svc,
		hub:            hub,
		vapidPublicKey: vapidPublicKey,
		loc:            time.Local,
		now:            time.Now,
	}
}

var errConfirmationRequired = errors.New("this action cannot be undone; repeat the request with confirm=true")

// confirmed reports whether an irreversible request carries confirm=true.
// Otherwise it answers 412 and the handler must stop.
func confirmed(c *gin.Context) bool {
	if c.Query("confirm") == "true" {
		return true
	}
	c.JSON(http.StatusPreconditionFailed, gin.H{"error": errConfirmationRequired.Error()})
	return false
}

// respondError maps domain errors to status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case apperr.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, feed.ErrUnknownTopic):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("Request %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// bindError answers a malformed request body.
func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
