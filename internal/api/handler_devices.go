package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Ferxas/chris-hotel-web-app/internal/devices"
)

// ListDevices handles GET /api/devices.
func (h *Handler) ListDevices(c *gin.Context) {
	list, err := h.svc.Devices.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

type registerDeviceRequest struct {
	Name  string `json:"name"`
	Token string `json:"token" binding:"required"`
}

// RegisterDevice handles POST /api/devices.
func (h *Handler) RegisterDevice(c *gin.Context) {
	var req registerDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	device, err := h.svc.Devices.Register(c.Request.Context(), req.Name, req.Token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, device)
}

// UpdateDevice handles PATCH /api/devices/:id.
func (h *Handler) UpdateDevice(c *gin.Context) {
	var req devices.Update
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	device, err := h.svc.Devices.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

// SendDeviceMessage handles POST /api/devices/:id/message. The push itself is
// delivered in the background; its outcome never changes this response.
func (h *Handler) SendDeviceMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}
	device, err := h.svc.Devices.SendMessage(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, device)
}
