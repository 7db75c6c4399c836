package hub

import (
	"testing"

	"energyhub/internal/model"
	"energyhub/internal/scheduler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantProfile(v float64, n int) model.Profile {
	p := make(model.Profile, n)
	for i := range p {
		p[i] = v
	}
	return p
}

// P1: AddRequest without autoschedule sets plan[id]=0 and appends to the
// end of the waiting order.
func TestAddRequestWithoutAutoscheduleDefaultsToOffsetZero(t *testing.T) {
	h := New(scheduler.NewNoDelay(10))
	require.NoError(t, h.AddRequest(model.Request{RequestID: 1, Profile: model.Profile{0.1}, Timeout: 5}, false))
	require.NoError(t, h.AddRequest(model.Request{RequestID: 2, Profile: model.Profile{0.2}, Timeout: 5}, false))

	plan := h.Plan()
	assert.Equal(t, 0, plan[1])
	assert.Equal(t, 0, plan[2])

	requests := h.WaitingRequests()
	require.Len(t, requests, 2)
	assert.Equal(t, int64(1), requests[0].RequestID)
	assert.Equal(t, int64(2), requests[1].RequestID)
}

func TestAddRequestRejectsDuplicateID(t *testing.T) {
	h := New(scheduler.NewNoDelay(10))
	require.NoError(t, h.AddRequest(model.Request{RequestID: 1, Profile: model.Profile{0.1}, Timeout: 5}, false))
	err := h.AddRequest(model.Request{RequestID: 1, Profile: model.Profile{0.1}, Timeout: 5}, false)
	require.Error(t, err)
	kind, ok := model.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrInvalidRequest, kind)
}

// P2: after Schedule, every waiting request's offset stays within
// [0, timeout].
func TestSchedulePlanRespectsTimeoutBounds(t *testing.T) {
	h := New(scheduler.NewBruteForce(20))
	require.NoError(t, h.UpdateSourceProfile("solar", constantProfile(1, 20), false))
	require.NoError(t, h.AddRequest(model.Request{RequestID: 1, Profile: constantProfile(0.1, 4), Timeout: 6}, false))
	require.NoError(t, h.AddRequest(model.Request{RequestID: 2, Profile: constantProfile(0.3, 4), Timeout: 3}, false))
	require.NoError(t, h.Schedule())

	plan := h.Plan()
	assert.GreaterOrEqual(t, plan[1], 0)
	assert.LessOrEqual(t, plan[1], 6)
	assert.GreaterOrEqual(t, plan[2], 0)
	assert.LessOrEqual(t, plan[2], 3)
}

// P3: promoting a waiting request moves it into RunningJobs and out of
// WaitingRequests.
func TestTickPromotesOffsetZeroRequestToRunning(t *testing.T) {
	h := New(scheduler.NewNoDelay(10))
	require.NoError(t, h.AddRequest(model.Request{RequestID: 1, DeviceName: "kettle", Profile: model.Profile{0.2, 0.2}, Timeout: 0}, false))

	assert.Len(t, h.WaitingRequests(), 1)
	assert.Len(t, h.RunningJobs(), 0)

	h.Tick()

	assert.Len(t, h.WaitingRequests(), 0)
	jobs := h.RunningJobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, int64(1), jobs[0].RequestID)
}

// P4: derived views stay finite and non-negative-in-source across ticks.
func TestDerivedViewsStayFiniteAcrossTicks(t *testing.T) {
	h := New(scheduler.NewBruteForce(10))
	require.NoError(t, h.UpdateSourceProfile("solar", constantProfile(0.5, 10), false))
	require.NoError(t, h.AddRequest(model.Request{RequestID: 1, Profile: constantProfile(0.2, 3), Timeout: 2}, true))

	for i := 0; i < 5; i++ {
		assert.True(t, h.SourceEnergy().Finite())
		for _, v := range h.AvailableEnergy() {
			assert.False(t, isNaNOrInf(v))
		}
		h.Tick()
	}
}

func isNaNOrInf(v float64) bool {
	return v != v || v > 1e308 || v < -1e308
}

// S5: timeout=0 forces promotion regardless of a nonzero offset.
func TestTickPromotesOnZeroTimeoutEvenWithNonzeroOffset(t *testing.T) {
	h := New(scheduler.NewNoDelay(10))
	require.NoError(t, h.AddRequest(model.Request{RequestID: 1, Profile: model.Profile{0.1, 0.1}, Timeout: 0}, false))

	// NoDelay never plans a nonzero offset, so set one directly in the
	// hub's bookkeeping, then confirm the timeout=0 request is promoted
	// this tick regardless.
	h.book[1].offset = 3
	h.Tick()

	jobs := h.RunningJobs()
	require.Len(t, jobs, 1)
}

// S6: a request promoted this tick is advanced once in the same tick, so
// after the tick AssignedEnergy holds its profile from the second element
// on.
func TestTickAccountingDelaysAssignedEnergyByOneTick(t *testing.T) {
	h := New(scheduler.NewNoDelay(10))
	require.NoError(t, h.AddRequest(model.Request{RequestID: 1, Profile: model.Profile{0.4, 0.4}, Timeout: 0}, false))

	assert.Equal(t, model.Profile{}, h.AssignedEnergy())

	h.Tick() // promotes the request; step 3 then advances the brand-new job once

	assigned := h.AssignedEnergy()
	require.Len(t, assigned, 1)
	assert.InDelta(t, 0.4, assigned[0], 1e-9)
}

// P7: delaying a load toward a high-source window never scores worse than
// NoDelay's immediate-start baseline, on the same inputs.
func TestBruteForceScoreNeverWorseThanNoDelayBaseline(t *testing.T) {
	const lookahead = 20
	source := make(model.Profile, lookahead)
	for i := range source {
		source[i] = float64(i) / float64(lookahead)
	}
	requests := []model.Request{
		{RequestID: 1, Profile: constantProfile(0.6, 5), Timeout: 15},
	}

	bf := scheduler.NewBruteForce(lookahead)
	bfPlan, err := bf.Schedule(source, requests)
	require.NoError(t, err)

	nd := scheduler.NewNoDelay(lookahead)
	ndPlan, err := nd.Schedule(source, requests)
	require.NoError(t, err)

	available := model.Pad(source, lookahead)
	bfOffsets := []int{bfPlan[1]}
	ndOffsets := []int{ndPlan[1]}

	bfScore := scheduler.Score(available, scheduler.LayoutPlanned(requests, bfOffsets, lookahead), bfOffsets)
	ndScore := scheduler.Score(available, scheduler.LayoutPlanned(requests, ndOffsets, lookahead), ndOffsets)

	assert.LessOrEqual(t, bfScore, ndScore+1e-9)
}
