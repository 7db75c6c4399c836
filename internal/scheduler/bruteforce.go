package scheduler

import "energyhub/internal/model"

// BruteForce enumerates the Cartesian product of feasible offsets for every
// waiting request and keeps the tuple with the lowest score (spec §4.3).
// Only practical for small fleets: complexity is the product of each
// request's offset-count.
type BruteForce struct {
	lookahead int
}

// NewBruteForce builds a brute-force scheduler with the given lookahead.
func NewBruteForce(lookahead int) *BruteForce {
	return &BruteForce{lookahead: lookahead}
}

func (s *BruteForce) Lookahead() int { return s.lookahead }

func (s *BruteForce) Schedule(availableEnergy model.Profile, requests []model.Request) (Plan, error) {
	if len(requests) == 0 {
		return Plan{}, nil
	}
	if err := checkFeasible(requests, s.lookahead); err != nil {
		return nil, err
	}

	counts := make([]int, len(requests))
	for i, r := range requests {
		counts[i] = maxOffset(r, s.lookahead)
	}

	available := model.Pad(availableEnergy, s.lookahead)

	bestOffsets := make([]int, len(requests))
	bestScore := 0.0
	haveBest := false

	offsets := make([]int, len(requests))
	enumerate(counts, offsets, func(offsets []int) {
		planned := LayoutPlanned(requests, offsets, s.lookahead)
		score := Score(available, planned, offsets)
		if !haveBest || score < bestScore {
			haveBest = true
			bestScore = score
			copy(bestOffsets, offsets)
		}
	})

	plan := make(Plan, len(requests))
	for i, r := range requests {
		plan[r.RequestID] = bestOffsets[i]
	}
	return plan, nil
}

// enumerate visits every tuple in the Cartesian product of
// range(counts[0]) x range(counts[1]) x ... in request-insertion order,
// calling visit once per tuple. This mirrors Python's itertools.product
// over the per-request offset ranges in the original source.
func enumerate(counts []int, scratch []int, visit func(offsets []int)) {
	var rec func(i int)
	rec = func(i int) {
		if i == len(counts) {
			visit(scratch)
			return
		}
		for o := 0; o < counts[i]; o++ {
			scratch[i] = o
			rec(i + 1)
		}
	}
	rec(0)
}
