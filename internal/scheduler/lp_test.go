package scheduler

import (
	"testing"

	"energyhub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// P5: the LP relaxation's objective is constructed to reproduce Score
// exactly, so brute force and the MIP scheduler must agree on the plan's
// score (within floating-point tolerance) on the same inputs.
func TestLinearProgramMatchesBruteForceScoreOnComparisonScenario(t *testing.T) {
	const lookahead = 20
	source := linspace(0, 1, lookahead)
	requests := []model.Request{
		{RequestID: 1, DeviceName: "teapot", Profile: constant(0.1, 6), Timeout: 99},
		{RequestID: 2, DeviceName: "oven", Profile: constant(0.8, 6), Timeout: 99},
	}

	bf := NewBruteForce(lookahead)
	bfPlan, err := bf.Schedule(source, requests)
	require.NoError(t, err)

	lp := NewLinearProgram(lookahead)
	lpPlan, err := lp.Schedule(source, requests)
	require.NoError(t, err)

	bfOffsets := []int{bfPlan[1], bfPlan[2]}
	lpOffsets := []int{lpPlan[1], lpPlan[2]}

	bfAvailable := model.Pad(source, lookahead)
	bfScore := Score(bfAvailable, LayoutPlanned(requests, bfOffsets, lookahead), bfOffsets)
	lpScore := Score(bfAvailable, LayoutPlanned(requests, lpOffsets, lookahead), lpOffsets)

	assert.InDelta(t, bfScore, lpScore, 1e-4)
}

func TestLinearProgramMatchesBruteForceScoreOnComplementaryScenario(t *testing.T) {
	const lookahead = 20
	source := constant(0.5, lookahead)
	profile := model.Profile{0.1, 0.3, 0.1, 0.3, 0.1, 0.3, 0.1, 0.3}
	requests := []model.Request{
		{RequestID: 1, DeviceName: "a", Profile: profile, Timeout: 0},
		{RequestID: 2, DeviceName: "b", Profile: profile, Timeout: 2},
	}

	bf := NewBruteForce(lookahead)
	bfPlan, err := bf.Schedule(source, requests)
	require.NoError(t, err)

	lp := NewLinearProgram(lookahead)
	lpPlan, err := lp.Schedule(source, requests)
	require.NoError(t, err)

	bfOffsets := []int{bfPlan[1], bfPlan[2]}
	lpOffsets := []int{lpPlan[1], lpPlan[2]}

	available := model.Pad(source, lookahead)
	bfScore := Score(available, LayoutPlanned(requests, bfOffsets, lookahead), bfOffsets)
	lpScore := Score(available, LayoutPlanned(requests, lpOffsets, lookahead), lpOffsets)

	assert.InDelta(t, bfScore, lpScore, 1e-4)
}

// Empty input must short-circuit before the solver is ever invoked
// (spec §4.4), so it must not error even though a zero-request model
// would otherwise build a degenerate LP.
func TestLinearProgramEmptyRequestsSkipsSolver(t *testing.T) {
	lp := NewLinearProgram(10)
	plan, err := lp.Schedule(model.Profile{1, 1}, nil)
	require.NoError(t, err)
	assert.Empty(t, plan)
}

func TestLinearProgramInfeasibleScenario(t *testing.T) {
	lp := NewLinearProgram(4)
	requests := []model.Request{{RequestID: 1, Profile: constant(0.1, 6), Timeout: 10}}
	_, err := lp.Schedule(model.Profile{1, 1, 1, 1}, requests)
	require.Error(t, err)
	kind, ok := model.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, model.ErrInfeasibleSchedule, kind)
}
