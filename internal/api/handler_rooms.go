package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ferxas/chris-hotel-web-app/internal/apperr"
	"github.com/Ferxas/chris-hotel-web-app/internal/model"
	"github.com/Ferxas/chris-hotel-web-app/internal/parse"
)

// GetDashboard handles GET /api/dashboard.
func (h *Handler) GetDashboard(c *gin.Context) {
	d, err := h.svc.Rooms.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

// ListRooms handles GET /api/rooms.
func (h *Handler) ListRooms(c *gin.Context) {
	list, err := h.svc.Rooms.ListRooms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type createRoomRequest struct {
	Number string `json:"number"`
	State  string `json:"state"`
}

// CreateRoom handles POST /api/rooms.
func (h *Handler) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	var state model.RoomState
	if !parse.IsBlank(req.State) {
		s, err := parse.RoomState(req.State)
		if err != nil {
			respondError(c, apperr.NewValidationError("state", err.Error()))
			return
		}
		state = s
	}

	room, err := h.svc.Rooms.CreateRoom(c.Request.Context(), req.Number, state)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

type setStateRequest struct {
	State string `json:"state" binding:"required"`
}

// SetRoomState handles PATCH /api/rooms/:id/state.
func (h *Handler) SetRoomState(c *gin.Context) {
	var req setStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	state, err := parse.RoomState(req.State)
	if err != nil {
		respondError(c, apperr.NewValidationError("state", err.Error()))
		return
	}
	if err := h.svc.Rooms.SetState(c.Request.Context(), c.Param("id"), state); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "state": state})
}

type renameRoomRequest struct {
	Number string `json:"number"`
}

// RenameRoom handles PATCH /api/rooms/:id/number.
func (h *Handler) RenameRoom(c *gin.Context) {
	var req renameRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	if err := h.svc.Rooms.RenameRoom(c.Request.Context(), c.Param("id"), req.Number); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "number": req.Number})
}

type registerManualRequest struct {
	Kind string `json:"kind" binding:"required"`
}

// RegisterManual handles POST /api/rooms/:id/register.
func (h *Handler) RegisterManual(c *gin.Context) {
	var req registerManualRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	kind, err := parse.ManualKind(req.Kind)
	if err != nil {
		respondError(c, apperr.NewValidationError("kind", err.Error()))
		return
	}
	at, err := h.svc.Rooms.RegisterManual(c.Request.Context(), c.Param("id"), kind)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "kind": kind, "at": at})
}

// DeleteRoom handles DELETE /api/rooms/:id?confirm=true.
func (h *Handler) DeleteRoom(c *gin.Context) {
	if !confirmed(c) {
		return
	}
	if err := h.svc.Rooms.DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
