package handlers

import (
	"net/http"
	"strconv"

	"energyhub/internal/api/models"
	"energyhub/internal/detseed"
	"energyhub/internal/gen"
	"energyhub/internal/hub"
	"energyhub/internal/model"

	"github.com/gin-gonic/gin"
)

// SourceHandler implements the source adapter contract of spec §6.
type SourceHandler struct {
	Hub *hub.Hub
}

func NewSourceHandler(h *hub.Hub) *SourceHandler {
	return &SourceHandler{Hub: h}
}

// UpdateSource handles POST /api/v1/sources/:name.
func (h *SourceHandler) UpdateSource(c *gin.Context) {
	name := c.Param("name")
	var req models.SourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeErr(c, model.NewError(model.ErrInvalidRequest, err.Error()))
		return
	}

	if err := h.Hub.UpdateSourceProfile(name, model.Profile(req.Profile), req.Autosched()); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UpdateSyntheticSource handles POST /api/v1/sources/:name/synthetic: a
// quick manual-testing convenience that seeds the named source from a
// generated solar curve instead of a caller-supplied profile
// (SPEC_FULL.md §4).
func (h *SourceHandler) UpdateSyntheticSource(c *gin.Context) {
	name := c.Param("name")
	ticksPerDay, _ := strconv.Atoi(c.DefaultQuery("ticks_per_day", "24"))
	currentTick, _ := strconv.Atoi(c.DefaultQuery("current_tick", "0"))

	profile := gen.SolarProfile(detseed.Seed0(), ticksPerDay, currentTick, 0)
	if err := h.Hub.UpdateSourceProfile(name, profile, true); err != nil {
		writeErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "profile": []float64(profile)})
}
