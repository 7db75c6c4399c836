package scheduler

import (
	"testing"

	"energyhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func linspace(lo, hi float64, n int) model.Profile {
	p := make(model.Profile, n)
	for i := range p {
		p[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return p
}

func constant(v float64, n int) model.Profile {
	p := make(model.Profile, n)
	for i := range p {
		p[i] = v
	}
	return p
}

// S1: request2 (the large, 0.8-magnitude load) should be delayed toward
// the high-source tail rather than started at offset 0 alongside request1.
func TestBruteForceComparisonScenario(t *testing.T) {
	const lookahead = 20
	source := linspace(0, 1, lookahead)
	requests := []model.Request{
		{RequestID: 1, DeviceName: "teapot", Profile: constant(0.1, 6), Timeout: 99},
		{RequestID: 2, DeviceName: "oven", Profile: constant(0.8, 6), Timeout: 99},
	}

	bf := NewBruteForce(lookahead)
	plan, err := bf.Schedule(source, requests)
	require.NoError(t, err)

	assert.Greater(t, plan[2], plan[1], "the larger load should be delayed further toward the high-source tail")
}

// S2: two identical-profile requests, timeouts 0 and 2. Brute force should
// prefer offsetting the second request rather than stacking both at 0.
func TestBruteForceComplementaryScenario(t *testing.T) {
	const lookahead = 20
	source := constant(0.5, lookahead)
	profile := model.Profile{0.1, 0.3, 0.1, 0.3, 0.1, 0.3, 0.1, 0.3}
	requests := []model.Request{
		{RequestID: 1, DeviceName: "a", Profile: profile, Timeout: 0},
		{RequestID: 2, DeviceName: "b", Profile: profile, Timeout: 2},
	}

	bf := NewBruteForce(lookahead)
	plan, err := bf.Schedule(source, requests)
	require.NoError(t, err)

	assert.Equal(t, 0, plan[1], "timeout=0 forces request 1 to offset 0")
	assert.GreaterOrEqual(t, plan[2], 0)
	assert.LessOrEqual(t, plan[2], 2)
}

// S3: empty requests -> empty plan.
func TestBruteForceEmptyRequests(t *testing.T) {
	bf := NewBruteForce(10)
	plan, err := bf.Schedule(model.Profile{1, 1}, nil)
	require.NoError(t, err)
	assert.Empty(t, plan)
}

// S4: a profile longer than the lookahead has no feasible offset.
func TestBruteForceInfeasibleScenario(t *testing.T) {
	bf := NewBruteForce(4)
	requests := []model.Request{{RequestID: 1, Profile: constant(0.1, 6), Timeout: 10}}
	_, err := bf.Schedule(model.Profile{1, 1, 1, 1}, requests)
	require.Error(t, err)
	kind, ok := model.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrInfeasibleSchedule, kind)
}

// P2: schedule() keeps every offset within [0, timeout] and within the
// lookahead.
func TestBruteForceOffsetsRespectTimeoutAndLookahead(t *testing.T) {
	const lookahead = 10
	bf := NewBruteForce(lookahead)
	requests := []model.Request{
		{RequestID: 1, Profile: constant(0.2, 3), Timeout: 4},
		{RequestID: 2, Profile: constant(0.2, 2), Timeout: 1},
	}
	plan, err := bf.Schedule(constant(0.4, lookahead), requests)
	require.NoError(t, err)

	for _, r := range requests {
		offset := plan[r.RequestID]
		assert.GreaterOrEqual(t, offset, 0)
		assert.LessOrEqual(t, offset, r.Timeout)
		assert.LessOrEqual(t, offset+len(r.Profile), lookahead)
	}
}
