package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Ferxas/chris-hotel-web-app/internal/export"
	"github.com/Ferxas/chris-hotel-web-app/internal/model"
	"github.com/Ferxas/chris-hotel-web-app/internal/reports"
)

// ListReports handles GET /api/reports?room=&status=all|pending|resolved.
func (h *Handler) ListReports(c *gin.Context) {
	status, err := reports.ParseStatus(c.Query("status"))
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.svc.Reports.List(c.Request.Context(), reports.Filter{Room: c.Query("room"), Status: status})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// CreateReport handles POST /api/reports.
func (h *Handler) CreateReport(c *gin.Context) {
	var req reports.NewReport
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	report, err := h.svc.Reports.CreateReport(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, report)
}

type resolveRequest struct {
	ResolvedBy string `json:"resolvedBy"`
	Comment    string `json:"comment"`
}

// ResolveReport handles POST /api/reports/:id/resolve.
func (h *Handler) ResolveReport(c *gin.Context) {
	var req resolveRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}
	entry, err := h.svc.Reports.Resolve(c.Request.Context(), c.Param("id"), req.ResolvedBy, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// UnresolveReport handles POST /api/reports/:id/unresolve.
func (h *Handler) UnresolveReport(c *gin.Context) {
	if err := h.svc.Reports.Unresolve(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type editDescriptionRequest struct {
	Description string `json:"description"`
}

// EditReportDescription handles PATCH /api/reports/:id/description.
func (h *Handler) EditReportDescription(c *gin.Context) {
	var req editDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.svc.Reports.EditDescription(c.Request.Context(), c.Param("id"), req.Description); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteReport handles DELETE /api/reports/:id?confirm=true.
func (h *Handler) DeleteReport(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	if err := h.svc.Reports.DeleteReport(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMaintenanceBoard handles GET /api/maintenance/board?onlyWithReports=true.
func (h *Handler) GetMaintenanceBoard(c *gin.Context) {
	only, _ := strconv.ParseBool(c.Query("onlyWithReports"))
	board, err := h.svc.Reports.Board(c.Request.Context(), only)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}

// ExportActiveReports handles GET /api/maintenance/export?format=csv|xlsx.
func (h *Handler) ExportActiveReports(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, err)
		return
	}
	list, err := h.svc.Reports.List(c.Request.Context(), reports.Filter{Status: reports.StatusPending})
	if err != nil {
		respondError(c, err)
		return
	}
	table, err := export.ActiveReports(viewsToReports(list), h.loc)
	if err != nil {
		respondError(c, err)
		return
	}
	h.writeTable(c, format, table)
}

func viewsToReports(views []reports.View) []model.ProblemReport {
	out := make([]model.ProblemReport, len(views))
	for i, v := range views {
		out[i] = v.ProblemReport
	}
	return out
}

// writeTable streams table as an attachment.
func (h *Handler) writeTable(c *gin.Context, format export.Format, table export.Table) {
	c.Header("Content-Type", format.ContentType())
	c.Header("Content-Disposition", `attachment; filename="`+table.FileName(format, h.now())+`"`)
	c.Status(http.StatusOK)
	if err := export.Write(c.Writer, format, table); err != nil {
		c.Error(err)
	}
}
