package scheduler

import "energyhub/internal/model"

// Cost weights, identical across the brute-force evaluator, the LP
// objective, and the hub's score view (spec §4.2). Coefficients are policy
// constants of the core.
const (
	weightImport  = 1.0
	weightSurplus = 0.05
	weightDelay   = 0.1
)

// Score evaluates the cost of a plan: delta = available - planned, split
// into its positive part (importEnergy: generation the plan leaves unused)
// and its negative part (surplusEnergy: planned demand beyond what is
// available), plus an average-delay term over offsets.
//
// surplusEnergy is <= 0 by construction and therefore REDUCES the score.
// importEnergy and surplusEnergy carry the arithmetic of the original
// source's energy_to_buy and energy_lost terms unchanged (SPEC_FULL.md R5);
// their names do not describe the sign of delta they sum.
func Score(available, planned model.Profile, offsets []int) float64 {
	delta := model.SubAligned(available, planned)

	importEnergy := 0.0
	surplusEnergy := 0.0
	for _, d := range delta {
		if d > 0 {
			importEnergy += d
		} else {
			surplusEnergy += d
		}
	}

	averageDelay := 0.0
	if len(offsets) > 0 {
		sum := 0
		for _, o := range offsets {
			sum += o
		}
		averageDelay = float64(sum) / float64(len(offsets))
	}

	return weightImport*importEnergy + weightSurplus*surplusEnergy + weightDelay*averageDelay
}

// LayoutPlanned lays each request's profile into a length-`lookahead` zero
// vector at its chosen offset (truncating any tail beyond lookahead) and
// sums them, matching spec §4.3's tuple-evaluation step. Exported so
// callers outside this package (cmd/demo) can reproduce the same planned
// view a scheduler's internal scoring used.
func LayoutPlanned(requests []model.Request, offsets []int, lookahead int) model.Profile {
	planned := make(model.Profile, lookahead)
	for i, r := range requests {
		offset := offsets[i]
		profile := r.Profile
		if max := lookahead - offset; max < len(profile) {
			if max < 0 {
				max = 0
			}
			profile = profile[:max]
		}
		for j, v := range profile {
			planned[offset+j] += v
		}
	}
	return planned
}
