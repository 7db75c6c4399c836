package handlers

import (
	"net/http"

	"energyhub/internal/api/models"
	"energyhub/internal/gen"
	"energyhub/internal/hub"
	"energyhub/internal/model"

	"github.com/gin-gonic/gin"
)

// RequestHandler implements the device/request adapter contract of spec §6.
type RequestHandler struct {
	Hub *hub.Hub
}

func NewRequestHandler(h *hub.Hub) *RequestHandler {
	return &RequestHandler{Hub: h}
}

// AddRequest handles POST /api/v1/requests.
func (h *RequestHandler) AddRequest(c *gin.Context) {
	var req models.RequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, model.NewError(model.ErrInvalidRequest, err.Error()))
		return
	}

	id := req.RequestID
	if id == 0 {
		id = gen.RequestID()
	}

	r := model.Request{
		RequestID:  id,
		DeviceName: req.DeviceName,
		Profile:    model.Profile(req.Profile),
		Timeout:    req.Timeout,
	}
	if err := h.Hub.AddRequest(r, req.Autosched()); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "ok", "request_id": id})
}
