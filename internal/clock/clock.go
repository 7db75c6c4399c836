// Package clock implements the clock adapter of spec §6: a background
// goroutine that periodically calls hub.Tick() and publishes the hub's
// top-of-horizon energy figures to a reporting channel. It is the Go
// analogue of original_source/volttron/HubAgent's routine() thread, which
// called hub.tick() in a loop with time.sleep(1).
package clock

import (
	"context"
	"sync"
	"time"

	"energyhub/internal/hub"
	"energyhub/internal/obs"
	"energyhub/internal/obslog"
)

// Report is what a tick publishes: the zero-guarded top-of-horizon figures
// spec §6 names. internal/api/ws.Report is its wire-format twin.
type Report struct {
	Tick             int
	AvailableEnergy0 float64
	AssignedEnergy0  float64
	PlannedEnergy0   float64
}

// Reporter is called with the result of every tick. Kept as a plain
// function type rather than an interface bound to ws.Broadcaster so this
// package stays independent of the HTTP transport.
type Reporter func(Report)

// Adapter drives hub.Tick() on a fixed interval, serializing every call
// against a mutex per spec §5 ("a mutex guarding the entire hub is
// sufficient and expected").
type Adapter struct {
	mu       *sync.Mutex
	hub      *hub.Hub
	interval time.Duration
	reporter Reporter

	tickCount int
}

// NewAdapter builds a clock adapter for hub h, ticking every interval and
// calling reporter after each tick (nil is valid: no publish happens).
func NewAdapter(mu *sync.Mutex, h *hub.Hub, interval time.Duration, reporter Reporter) *Adapter {
	return &Adapter{mu: mu, hub: h, interval: interval, reporter: reporter}
}

// Run blocks, ticking the hub every interval until ctx is canceled.
func (a *Adapter) Run(ctx context.Context) {
	log := obslog.Component("clock")
	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("clock adapter stopping")
			return
		case <-ticker.C:
			report := a.Tick()
			log.Debug().
				Int("tick", report.Tick).
				Float64("available_energy_0", report.AvailableEnergy0).
				Msg("tick")
		}
	}
}

// Tick advances the hub once and returns the resulting report, publishing
// it to the configured Reporter if any.
func (a *Adapter) Tick() Report {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.hub.Tick()
	a.tickCount++

	report := Report{
		Tick:             a.tickCount,
		AvailableEnergy0: obs.Head0(a.hub.AvailableEnergy()),
		AssignedEnergy0:  obs.Head0(a.hub.AssignedEnergy()),
		PlannedEnergy0:   obs.Head0(a.hub.PlannedEnergy()),
	}
	if a.reporter != nil {
		a.reporter(report)
	}
	return report
}
