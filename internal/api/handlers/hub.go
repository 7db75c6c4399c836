package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"energyhub/internal/api/models"
	"energyhub/internal/clock"
	"energyhub/internal/hub"

	"github.com/gin-gonic/gin"
)

// HubHandler exposes the hub's derived views and a manual tick trigger,
// guarded by the same mutex the background clock adapter uses (spec §5).
type HubHandler struct {
	Mu  *sync.Mutex
	Hub *hub.Hub
	Clk *clock.Adapter
}

func NewHubHandler(mu *sync.Mutex, h *hub.Hub, clk *clock.Adapter) *HubHandler {
	return &HubHandler{Mu: mu, Hub: h, Clk: clk}
}

// GetState handles GET /api/v1/state.
func (h *HubHandler) GetState(c *gin.Context) {
	h.Mu.Lock()
	defer h.Mu.Unlock()

	plan := make(map[string]int, len(h.Hub.Plan()))
	for id, offset := range h.Hub.Plan() {
		plan[strconv.FormatInt(id, 10)] = offset
	}

	c.JSON(http.StatusOK, models.StateResponse{
		SourceEnergy:    []float64(h.Hub.SourceEnergy()),
		AssignedEnergy:  []float64(h.Hub.AssignedEnergy()),
		AvailableEnergy: []float64(h.Hub.AvailableEnergy()),
		PlannedEnergy:   []float64(h.Hub.PlannedEnergy()),
		Score:           h.Hub.Score(),
		Plan:            plan,
		WaitingCount:    len(h.Hub.WaitingRequests()),
		RunningCount:    len(h.Hub.RunningJobs()),
	})
}

// PostTick handles POST /api/v1/tick: an out-of-band tick in addition to
// whatever the background clock adapter is already doing, useful for
// driving a scenario deterministically from cmd/hubctl or a test client.
func (h *HubHandler) PostTick(c *gin.Context) {
	report := h.Clk.Tick()
	c.JSON(http.StatusOK, models.TickResponse{
		AvailableEnergy0: report.AvailableEnergy0,
		AssignedEnergy0:  report.AssignedEnergy0,
		PlannedEnergy0:   report.PlannedEnergy0,
	})
}
