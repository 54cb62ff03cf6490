package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ferxas/chris-hotel-web-app/internal/export"
	"github.com/Ferxas/chris-hotel-web-app/internal/history"
)

func cleaningFilter(c *gin.Context) history.CleaningFilter {
	return history.CleaningFilter{Room: c.Query("room"), Employee: c.Query("employee")}
}

// ListCleaningLogs handles GET /api/cleaning-logs?room=&employee=.
func (h *Handler) ListCleaningLogs(c *gin.Context) {
	logs, err := h.svc.History.ListCleaningLogs(c.Request.Context(), cleaningFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// CreateCleaningLog handles POST /api/cleaning-logs.
func (h *Handler) CreateCleaningLog(c *gin.Context) {
	var req history.NewCleaningLog
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	entry, err := h.svc.History.CreateCleaningLog(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// EditCleaningLog handles PATCH /api/cleaning-logs/:id.
func (h *Handler) EditCleaningLog(c *gin.Context) {
	var req history.CleaningEdit
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.svc.History.EditCleaningLog(c.Request.Context(), c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteCleaningLog handles DELETE /api/cleaning-logs/:id?confirm=true.
func (h *Handler) DeleteCleaningLog(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	if err := h.svc.History.DeleteCleaningLog(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportCleaningLogs handles GET /api/cleaning-logs/export. The listing
// filters apply.
func (h *Handler) ExportCleaningLogs(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, err)
		return
	}
	logs, err := h.svc.History.ListCleaningLogs(c.Request.Context(), cleaningFilter(c))
	if err != nil {
		respondError(c, err)
		return
	}
	table, err := export.CleaningLogs(logs, h.loc)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeTable(c, format, table)
}

// ListMaintenanceLogs handles GET /api/maintenance-logs.
func (h *Handler) ListMaintenanceLogs(c *gin.Context) {
	logs, err := h.svc.History.ListMaintenanceLogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

// ExportMaintenanceLogs handles GET /api/maintenance-logs/export.
func (h *Handler) ExportMaintenanceLogs(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, err)
		return
	}
	logs, err := h.svc.History.ListMaintenanceLogs(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	table, err := export.MaintenanceLogs(logs, h.loc)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeTable(c, format, table)
}
