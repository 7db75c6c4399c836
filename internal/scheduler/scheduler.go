// Package scheduler implements the three scheduler variants of spec §4:
// brute-force search, a linear-program (MIP) formulation, and a no-delay
// baseline. All three satisfy the same Scheduler capability.
package scheduler

import "energyhub/internal/model"

// Plan maps a request's RequestID to its chosen start offset, in ticks.
type Plan map[int64]int

// Scheduler is the capability every variant implements: given the energy
// still available for deferrable loads and the set of waiting requests,
// produce a plan. Implementations must not retain state between calls
// (spec §5): each call is a fresh computation over its arguments.
type Scheduler interface {
	// Schedule computes a plan for requests against availableEnergy.
	Schedule(availableEnergy model.Profile, requests []model.Request) (Plan, error)
	// Lookahead returns the planning horizon this scheduler was built with.
	Lookahead() int
}

// maxOffset returns the number of feasible offsets for r at the given
// lookahead: min(r.Timeout, lookahead-len(r.Profile)) + 1. A value <= 0
// means r has no feasible offset at this lookahead.
func maxOffset(r model.Request, lookahead int) int {
	limit := lookahead - len(r.Profile)
	if r.Timeout < limit {
		limit = r.Timeout
	}
	return limit + 1
}

// checkFeasible validates that every request has at least one feasible
// offset at the given lookahead, per spec §9's recommended fix to the
// brute-force scheduler's silent-collapse edge case (R4 in SPEC_FULL.md).
func checkFeasible(requests []model.Request, lookahead int) error {
	for _, r := range requests {
		if maxOffset(r, lookahead) <= 0 {
			return model.NewError(model.ErrInfeasibleSchedule,
				"request has no feasible offset at the current lookahead")
		}
	}
	return nil
}
