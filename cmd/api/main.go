package main

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"energyhub/internal/api"
	"energyhub/internal/api/ws"
	"energyhub/internal/clock"
	"energyhub/internal/config"
	"energyhub/internal/hub"
	"energyhub/internal/obslog"
	"energyhub/internal/scheduler"

	"github.com/gin-gonic/gin"
)

func main() {
	log := obslog.Component("api")

	cfgPath := os.Getenv("HUB_CONFIG")
	if cfgPath == "" {
		cfgPath = "scenario.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfgPath).Msg("failed to load scenario config")
	}

	sched, err := scheduler.New(string(cfg.Scheduler.Type), cfg.Scheduler.Lookahead)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build scheduler")
	}

	h := hub.New(sched)
	for _, s := range cfg.Sources {
		if err := h.UpdateSourceProfile(s.Name, s.Profile, false); err != nil {
			log.Fatal().Err(err).Str("source", s.Name).Msg("failed to seed source profile")
		}
	}

	broadcaster := ws.NewBroadcaster()
	var mu sync.Mutex
	clk := clock.NewAdapter(&mu, h, time.Second, func(r clock.Report) {
		broadcaster.Publish(ws.Report{
			Tick:             r.Tick,
			AvailableEnergy0: r.AvailableEnergy0,
			AssignedEnergy0:  r.AssignedEnergy0,
			PlannedEnergy0:   r.PlannedEnergy0,
		})
	})

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(&mu, h, clk, broadcaster)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go clk.Run(ctx)

	log.Info().Str("addr", cfg.Server.Addr).Msg("starting API server")
	if err := router.Run(cfg.Server.Addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}
