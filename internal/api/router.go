package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/Ferxas/chris-hotel-web-app/config"
	"github.com/Ferxas/chris-hotel-web-app/internal/mw"
)

// NewRouter creates and configures a new Gin router. responseCache may be
// nil; when set it must also be registered as a store change listener.
func NewRouter(h *Handler, cfg config.ServerConfig, responseCache *mw.ResponseCache) *gin.Engine {
	r := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) == 0 || (len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*") {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsConfig))

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	var caching gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if responseCache != nil {
		caching = responseCache.Middleware()
	}

	api := r.Group("/api")
	// The live endpoint holds its connection open; it is not rate limited.
	api.GET("/live/:topic", h.Live)

	limited := api.Group("")
	limited.Use(mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst))
	{
		limited.GET("/dashboard", caching, h.GetDashboard)

		limited.GET("/rooms", caching, h.ListRooms)
		limited.POST("/rooms", h.CreateRoom)
		limited.PATCH("/rooms/:id/state", h.SetRoomState)
		limited.PATCH("/rooms/:id/number", h.RenameRoom)
		limited.POST("/rooms/:id/register", h.RegisterManual)
		limited.DELETE("/rooms/:id", h.DeleteRoom)

		limited.GET("/reports", caching, h.ListReports)
		limited.POST("/reports", h.CreateReport)
		limited.POST("/reports/:id/resolve", h.ResolveReport)
		limited.POST("/reports/:id/unresolve", h.UnresolveReport)
		limited.PATCH("/reports/:id/description", h.EditReportDescription)
		limited.DELETE("/reports/:id", h.DeleteReport)

		limited.GET("/maintenance/board", caching, h.GetMaintenanceBoard)
		limited.GET("/maintenance/export", h.ExportActiveReports)
		limited.GET("/maintenance-logs", caching, h.ListMaintenanceLogs)
		limited.GET("/maintenance-logs/export", h.ExportMaintenanceLogs)

		limited.GET("/cleaning-logs", caching, h.ListCleaningLogs)
		limited.POST("/cleaning-logs", h.CreateCleaningLog)
		limited.GET("/cleaning-logs/export", h.ExportCleaningLogs)
		limited.PATCH("/cleaning-logs/:id", h.EditCleaningLog)
		limited.DELETE("/cleaning-logs/:id", h.DeleteCleaningLog)

		limited.GET("/devices", caching, h.ListDevices)
		limited.POST("/devices", h.RegisterDevice)
		limited.PATCH("/devices/:id", h.UpdateDevice)
		limited.POST("/devices/:id/message", h.SendDeviceMessage)

		limited.GET("/vapid_public_key", h.GetVAPIDPublicKey)
	}

	return r
}
