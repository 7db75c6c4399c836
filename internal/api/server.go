// Package api wires the gin router that implements spec §6's adapter
// contracts over HTTP and WebSocket, the way battery-backtest's
// cmd/api/main.go wires its router, but factored into a NewRouter
// constructor so cmd/api stays a thin entry point.
package api

import (
	"net/http"
	"sync"

	"energyhub/internal/api/handlers"
	"energyhub/internal/api/middleware"
	"energyhub/internal/api/ws"
	"energyhub/internal/clock"
	"energyhub/internal/hub"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the full API router for hub h, backed by clk for manual
// ticks and broadcaster for the real-time reporting channel.
func NewRouter(mu *sync.Mutex, h *hub.Hub, clk *clock.Adapter, broadcaster *ws.Broadcaster) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	sourceHandler := handlers.NewSourceHandler(h)
	requestHandler := handlers.NewRequestHandler(h)
	hubHandler := handlers.NewHubHandler(mu, h, clk)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/sources/:name", sourceHandler.UpdateSource)
		v1.POST("/sources/:name/synthetic", sourceHandler.UpdateSyntheticSource)
		v1.POST("/requests", requestHandler.AddRequest)
		v1.POST("/tick", hubHandler.PostTick)
		v1.GET("/state", hubHandler.GetState)
		v1.GET("/stream", func(c *gin.Context) {
			broadcaster.Handle(c.Writer, c.Request)
		})
	}

	return router
}
