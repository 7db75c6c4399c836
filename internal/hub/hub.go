// Package hub implements the state machine of spec §4.6: source profiles,
// waiting requests, running jobs, and the current plan, plus the derived
// energy views and the discrete tick loop that advances them.
package hub

import (
	"sort"

	"energyhub/internal/model"
	"energyhub/internal/scheduler"
)

// bookkeeping is the hub-side per-request state the original source stored
// on the request itself (R1 in SPEC_FULL.md): remaining timeout and planned
// offset. Requests stay immutable; this is what tick() mutates instead.
type bookkeeping struct {
	timeout int
	offset  int
}

// Hub holds everything spec §3 calls "Hub state" and drives it forward one
// tick at a time. Zero value is not usable; build with New.
type Hub struct {
	lookahead int
	sched     scheduler.Scheduler

	sourceProfiles map[string]model.Profile
	waitingOrder   []int64 // request_id, insertion order
	waitingByID    map[int64]model.Request
	book           map[int64]*bookkeeping
	runningJobs    []model.Job
}

// New builds an empty hub driven by sched. lookahead must match
// sched.Lookahead(); the hub does not second-guess the scheduler's horizon.
func New(sched scheduler.Scheduler) *Hub {
	return &Hub{
		lookahead:      sched.Lookahead(),
		sched:          sched,
		sourceProfiles: map[string]model.Profile{},
		waitingByID:    map[int64]model.Request{},
		book:           map[int64]*bookkeeping{},
	}
}

// UpdateSourceProfile inserts or replaces the named source's profile
// (spec §4.6). If autoschedule, it reschedules afterward; if that fails,
// the previous profile (or its absence) is restored.
func (h *Hub) UpdateSourceProfile(name string, profile model.Profile, autoschedule bool) error {
	if !profile.Finite() {
		return model.NewError(model.ErrInvalidRequest, "source profile must contain only finite, non-negative values")
	}
	old, had := h.sourceProfiles[name]
	h.sourceProfiles[name] = profile.Clone()
	if autoschedule {
		if err := h.Schedule(); err != nil {
			if had {
				h.sourceProfiles[name] = old
			} else {
				delete(h.sourceProfiles, name)
			}
			return err
		}
	}
	return nil
}

// AddRequest admits r to the waiting set with plan[r.id]=0 (spec §4.6). It
// errors if r's id is already waiting or running, or if r fails
// Request.Validate. If autoschedule, it reschedules afterward; if that
// fails, r is removed from the waiting set again.
func (h *Hub) AddRequest(r model.Request, autoschedule bool) error {
	if err := r.Validate(); err != nil {
		return err
	}
	if _, exists := h.waitingByID[r.RequestID]; exists {
		return model.NewError(model.ErrInvalidRequest, "request_id already waiting")
	}
	for _, j := range h.runningJobs {
		if j.RequestID == r.RequestID {
			return model.NewError(model.ErrInvalidRequest, "request_id already running")
		}
	}

	h.waitingByID[r.RequestID] = r
	h.waitingOrder = append(h.waitingOrder, r.RequestID)
	h.book[r.RequestID] = &bookkeeping{timeout: r.Timeout, offset: 0}

	if autoschedule {
		if err := h.Schedule(); err != nil {
			delete(h.waitingByID, r.RequestID)
			delete(h.book, r.RequestID)
			h.waitingOrder = h.waitingOrder[:len(h.waitingOrder)-1]
			return err
		}
	}
	return nil
}

// Schedule invokes the configured scheduler against the current
// available-energy view and the waiting set, and replaces the plan with
// the result (spec §4.6). On error, the previous plan is left untouched
// (spec §7: schedule never partially updates).
func (h *Hub) Schedule() error {
	requests := h.waitingSnapshot()
	plan, err := h.sched.Schedule(h.AvailableEnergy(), requests)
	if err != nil {
		return err
	}

	// Validate the plan is complete before writing anything: the old plan
	// must be retained in full if any request is missing, not replaced
	// one offset at a time.
	for _, r := range requests {
		if _, ok := plan[r.RequestID]; !ok {
			return model.NewError(model.ErrInfeasibleSchedule, "scheduler returned a plan missing a waiting request")
		}
	}
	for _, r := range requests {
		h.book[r.RequestID].offset = plan[r.RequestID]
	}
	return nil
}

// waitingSnapshot returns the current waiting requests in insertion order.
func (h *Hub) waitingSnapshot() []model.Request {
	out := make([]model.Request, 0, len(h.waitingOrder))
	for _, id := range h.waitingOrder {
		out = append(out, h.waitingByID[id])
	}
	return out
}

// Tick advances the hub one discrete step, per spec §4.6's three-step
// order: drop source profile heads, then promote-or-decrement waiting
// requests, THEN advance running jobs. A request promoted this tick is
// therefore advanced once by step 3 in the same tick: after the tick,
// assigned_energy holds its profile from the second element on.
func (h *Hub) Tick() {
	// Step 1: drop the head of every source profile. Profiles that reach
	// zero length are garbage collected (R6 in SPEC_FULL.md) rather than
	// kept around as an ever-present empty entry.
	for name, p := range h.sourceProfiles {
		if len(p) == 0 {
			delete(h.sourceProfiles, name)
			continue
		}
		next := p[1:].Clone()
		if len(next) == 0 {
			delete(h.sourceProfiles, name)
		} else {
			h.sourceProfiles[name] = next
		}
	}

	// Step 2: promote or decrement, over a snapshot of waiting order since
	// promotion mutates it.
	snapshot := make([]int64, len(h.waitingOrder))
	copy(snapshot, h.waitingOrder)

	var stillWaiting []int64
	for _, id := range snapshot {
		bk := h.book[id]
		r := h.waitingByID[id]
		if bk.offset == 0 || bk.timeout == 0 {
			h.runningJobs = append(h.runningJobs, model.NewJob(r.RequestID, r.DeviceName, r.Profile))
			delete(h.waitingByID, id)
			delete(h.book, id)
			continue
		}
		bk.timeout--
		bk.offset--
		stillWaiting = append(stillWaiting, id)
	}
	h.waitingOrder = stillWaiting

	// Step 3: advance running jobs, AFTER promotion.
	var stillRunning []model.Job
	for i := range h.runningJobs {
		done := h.runningJobs[i].Advance()
		if !done {
			stillRunning = append(stillRunning, h.runningJobs[i])
		}
	}
	h.runningJobs = stillRunning
}

// SourceEnergy is sum_aligned over every source profile.
func (h *Hub) SourceEnergy() model.Profile {
	profiles := make([]model.Profile, 0, len(h.sourceProfiles))
	for _, p := range h.sourceProfiles {
		profiles = append(profiles, p)
	}
	return model.SumAligned(profiles)
}

// AssignedEnergy is sum_aligned over every running job's remaining profile.
func (h *Hub) AssignedEnergy() model.Profile {
	profiles := make([]model.Profile, 0, len(h.runningJobs))
	for _, j := range h.runningJobs {
		profiles = append(profiles, j.Remaining())
	}
	return model.SumAligned(profiles)
}

// AvailableEnergy is SourceEnergy - AssignedEnergy, zero-extended.
func (h *Hub) AvailableEnergy() model.Profile {
	return model.SubAligned(h.SourceEnergy(), h.AssignedEnergy())
}

// PlannedEnergy lays each waiting request's profile at its planned offset
// and sums them (spec §4.6).
func (h *Hub) PlannedEnergy() model.Profile {
	n := 0
	for _, id := range h.waitingOrder {
		r := h.waitingByID[id]
		offset := h.book[id].offset
		if end := offset + len(r.Profile); end > n {
			n = end
		}
	}
	out := make(model.Profile, n)
	for _, id := range h.waitingOrder {
		r := h.waitingByID[id]
		offset := h.book[id].offset
		for i, v := range r.Profile {
			out[offset+i] += v
		}
	}
	return out
}

// Score evaluates the cost function of spec §4.2 against the hub's current
// available/planned views and the waiting set's planned offsets.
func (h *Hub) Score() float64 {
	requests := h.waitingSnapshot()
	if len(requests) == 0 {
		return 0
	}
	offsets := make([]int, len(requests))
	for i, r := range requests {
		offsets[i] = h.book[r.RequestID].offset
	}
	return scheduler.Score(h.AvailableEnergy(), h.PlannedEnergy(), offsets)
}

// Plan returns a snapshot of request_id -> planned offset for the current
// waiting set.
func (h *Hub) Plan() map[int64]int {
	out := make(map[int64]int, len(h.waitingOrder))
	for _, id := range h.waitingOrder {
		out[id] = h.book[id].offset
	}
	return out
}

// WaitingRequests returns a snapshot of the waiting set in insertion order.
func (h *Hub) WaitingRequests() []model.Request {
	return h.waitingSnapshot()
}

// RunningJobs returns a snapshot of the running set in promotion order.
func (h *Hub) RunningJobs() []model.Job {
	out := make([]model.Job, len(h.runningJobs))
	copy(out, h.runningJobs)
	return out
}

// SourceNames returns the hub's current source names, sorted, for stable
// iteration in adapters and tests.
func (h *Hub) SourceNames() []string {
	names := make([]string, 0, len(h.sourceProfiles))
	for name := range h.sourceProfiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
