package scheduler

import (
	"fmt"

	"energyhub/internal/model"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/convex/lp"
)

// LinearProgram is the MIP scheduler of spec §4.4. It encodes the same
// offset-assignment problem the brute-force scheduler enumerates as a
// 0/1 linear program and solves it with branch-and-bound over gonum's
// primal simplex: the pack carries no native mixed-integer solver, so each
// node of the search tree fixes a subset of the offset-indicator variables
// and re-solves the continuous relaxation (SPEC_FULL.md §3.1).
type LinearProgram struct {
	lookahead int
	tol       float64
	maxNodes  int
}

// NewLinearProgram builds a branch-and-bound MIP scheduler with the given
// lookahead. maxNodes bounds the search: when it runs out, the best
// integral plan found so far is returned, or ErrSolverFailure if none was.
func NewLinearProgram(lookahead int) *LinearProgram {
	return &LinearProgram{lookahead: lookahead, tol: 1e-7, maxNodes: 20000}
}

func (s *LinearProgram) Lookahead() int { return s.lookahead }

func (s *LinearProgram) Schedule(availableEnergy model.Profile, requests []model.Request) (Plan, error) {
	if len(requests) == 0 {
		return Plan{}, nil
	}
	if err := checkFeasible(requests, s.lookahead); err != nil {
		return nil, err
	}

	available := model.Pad(availableEnergy, s.lookahead)
	idx := newLPIndex(requests, s.lookahead)

	offsets, err := branchAndBound(idx, available, s.tol, s.maxNodes)
	if err != nil {
		return nil, model.Wrap(model.ErrSolverFailure, "linear program did not reach an integral solution", err)
	}

	plan := make(Plan, len(requests))
	for i, r := range requests {
		plan[r.RequestID] = offsets[i]
	}
	return plan, nil
}

// lpIndex records the column layout of the flat decision vector shared by
// every node of the branch-and-bound tree: b[i,o] and v[i,o] per request
// offset, then req/costPos/costNeg per tick. costPos/costNeg are the
// nonnegative halves of a free epigraph variable cost[t] = costPos[t] -
// costNeg[t] (lp.Simplex requires x >= 0 standard form, so a variable that
// can legitimately go negative, as cost[t] can when delta[t] < 0,
// is split into two nonnegative parts rather than represented directly).
// Slack columns used to turn inequalities into the equalities lp.Simplex
// expects are allocated after these fixed columns, per constraint, while
// the model is built.
type lpIndex struct {
	requests   []model.Request
	lookahead  int
	offCount   []int
	bOff       []int
	vOff       []int
	reqOff     int
	costPosOff int
	costNegOff int
	fixedCols  int
}

func newLPIndex(requests []model.Request, lookahead int) *lpIndex {
	idx := &lpIndex{requests: requests, lookahead: lookahead}
	idx.offCount = make([]int, len(requests))
	idx.bOff = make([]int, len(requests))
	idx.vOff = make([]int, len(requests))

	col := 0
	for i, r := range requests {
		idx.offCount[i] = maxOffset(r, lookahead)
		idx.bOff[i] = col
		col += idx.offCount[i]
	}
	for i := range requests {
		idx.vOff[i] = col
		col += idx.offCount[i]
	}
	idx.reqOff = col
	col += lookahead
	idx.costPosOff = col
	col += lookahead
	idx.costNegOff = col
	col += lookahead
	idx.fixedCols = col
	return idx
}

// rowBuilder accumulates the equality rows of the standard-form problem
// A x = b, x >= 0, allocating a fresh slack column for every inequality it
// is asked to record.
type rowBuilder struct {
	rows    []map[int]float64
	rhs     []float64
	nextCol int
}

func newRowBuilder(firstFreeCol int) *rowBuilder {
	return &rowBuilder{nextCol: firstFreeCol}
}

func (rb *rowBuilder) newSlack() int {
	c := rb.nextCol
	rb.nextCol++
	return c
}

func cloneRow(row map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(row)+1)
	for k, v := range row {
		out[k] = v
	}
	return out
}

func (rb *rowBuilder) addEq(row map[int]float64, rhs float64) {
	rb.rows = append(rb.rows, row)
	rb.rhs = append(rb.rhs, rhs)
}

// addLE records lhs(row)·x <= rhs as row·x + slack = rhs.
func (rb *rowBuilder) addLE(row map[int]float64, rhs float64) {
	r := cloneRow(row)
	r[rb.newSlack()] = 1
	rb.addEq(r, rhs)
}

// addGE records lhs(row)·x >= rhs as row·x - slack = rhs.
func (rb *rowBuilder) addGE(row map[int]float64, rhs float64) {
	r := cloneRow(row)
	r[rb.newSlack()] = -1
	rb.addEq(r, rhs)
}

// buildModel constructs the full equality-standard-form LP for idx against
// available, with fixed recording b[i,o] values pinned by prior branching
// decisions (b column index -> 0 or 1). It returns the objective, constraint
// matrix, right-hand side and the total variable count.
func buildModel(idx *lpIndex, available model.Profile, fixed map[int]float64) (c []float64, A *mat.Dense, b []float64, nVars int) {
	requests := idx.requests
	lookahead := idx.lookahead
	rb := newRowBuilder(idx.fixedCols)

	// Exactly one offset per request (R3: a single equality, not a
	// >=1-and-<=1 pair).
	for i := range requests {
		row := map[int]float64{}
		for o := 0; o < idx.offCount[i]; o++ {
			row[idx.bOff[i]+o] = 1
		}
		rb.addEq(row, 1)
	}

	// b[i,o] <= 1 (lower bound of 0 is implicit in standard form).
	for i := range requests {
		for o := 0; o < idx.offCount[i]; o++ {
			rb.addLE(map[int]float64{idx.bOff[i] + o: 1}, 1)
		}
	}

	// v[i,o] <= o and v[i,o] >= o*b[i,o]; together with the objective's
	// positive weight on v this pins v[i,o] to o*b[i,o] at the optimum.
	for i := range requests {
		for o := 0; o < idx.offCount[i]; o++ {
			rb.addLE(map[int]float64{idx.vOff[i] + o: 1}, float64(o))
			rb.addGE(map[int]float64{idx.vOff[i] + o: 1, idx.bOff[i] + o: -float64(o)}, 0)
		}
	}

	// Lower envelope: at every tick a request's profile contributes at
	// most req[t], for whichever offset ends up chosen.
	for i, r := range requests {
		for o := 0; o < idx.offCount[i]; o++ {
			for k, p := range r.Profile {
				t := o + k
				if t >= lookahead {
					continue
				}
				rb.addLE(map[int]float64{idx.bOff[i] + o: p, idx.reqOff + t: -1}, 0)
			}
		}
	}

	// Upper envelope: req[t] cannot exceed the sum of every request's
	// contribution to tick t across its candidate offsets.
	upper := make([]map[int]float64, lookahead)
	for t := range upper {
		upper[t] = map[int]float64{idx.reqOff + t: 1}
	}
	for i, r := range requests {
		for o := 0; o < idx.offCount[i]; o++ {
			for k, p := range r.Profile {
				t := o + k
				if t >= lookahead {
					continue
				}
				upper[t][idx.bOff[i]+o] -= p
			}
		}
	}
	for t := 0; t < lookahead; t++ {
		rb.addLE(upper[t], 0)
	}

	// Per-tick cost is the convex piecewise-linear function of delta[t] =
	// available[t] - req[t] that Score computes directly:
	//   f(delta) = weightImport*max(delta,0) + weightSurplus*min(delta,0)
	//            = max(weightImport*delta, weightSurplus*delta)
	// (the two linear pieces meet at delta=0 with a non-decreasing slope
	// since weightImport > weightSurplus > 0, so the max is the convex
	// envelope of the PWL function, not an approximation of it). This is
	// exactly representable in standard epigraph form: minimize cost[t]
	// subject to cost[t] >= weightImport*delta[t] and
	// cost[t] >= weightSurplus*delta[t]. cost[t] = costPos[t] - costNeg[t]
	// throughout, so substituting gives the two rows below.
	for t := 0; t < lookahead; t++ {
		a := 0.0
		if t < len(available) {
			a = available[t]
		}
		// costPos[t] - costNeg[t] + weightImport*req[t] >= weightImport*available[t]
		rb.addGE(map[int]float64{idx.costPosOff + t: 1, idx.costNegOff + t: -1, idx.reqOff + t: weightImport}, weightImport*a)
		// costPos[t] - costNeg[t] + weightSurplus*req[t] >= weightSurplus*available[t]
		rb.addGE(map[int]float64{idx.costPosOff + t: 1, idx.costNegOff + t: -1, idx.reqOff + t: weightSurplus}, weightSurplus*a)
	}

	// Branch fixings: b[i,o] = 0 or 1.
	for col, val := range fixed {
		rb.addEq(map[int]float64{col: 1}, val)
	}

	nVars = rb.nextCol
	A = mat.NewDense(len(rb.rows), nVars, nil)
	b = make([]float64, len(rb.rows))
	for r, row := range rb.rows {
		for col, val := range row {
			A.Set(r, col, val)
		}
		b[r] = rb.rhs[r]
	}

	c = make([]float64, nVars)
	nReq := float64(len(requests))
	for t := 0; t < lookahead; t++ {
		// Objective coefficient on cost[t] = costPos[t] - costNeg[t] is 1,
		// substituted term by term: +1 on costPos, -1 on costNeg. Both
		// rows above bound costPos[t]-costNeg[t] below, so the minimizer
		// settles it at max(weightImport*delta[t], weightSurplus*delta[t])
		// exactly, never below it, which keeps this bounded regardless of
		// costNeg's negative coefficient (growing costNeg alone without
		// growing costPos to match would violate both GE rows).
		c[idx.costPosOff+t] = 1
		c[idx.costNegOff+t] = -1
	}
	for i := range requests {
		for o := 0; o < idx.offCount[i]; o++ {
			c[idx.vOff[i]+o] = weightDelay / nReq
		}
	}
	return c, A, b, nVars
}

// bbNode is one frontier entry of the branch-and-bound search: a set of
// fixed b[i,o] = 0/1 decisions. lp.Simplex is run on expansion to get the
// node's bound.
type bbNode struct {
	fixed map[int]float64
}

// branchAndBound explores 0/1 fixings of the b[i,o] variables, solving the
// continuous relaxation at each node with lp.Simplex and branching on the
// most fractional variable and pruning nodes whose bound does not improve
// on the incumbent, until the frontier is empty or the node budget is
// exhausted. It returns the best integral incumbent found, or an error if
// there is none.
func branchAndBound(idx *lpIndex, available model.Profile, tol float64, maxNodes int) ([]int, error) {
	frontier := []bbNode{{fixed: map[int]float64{}}}

	var bestOffsets []int
	bestScore := 0.0
	haveBest := false
	nodes := 0

	for len(frontier) > 0 {
		nodes++
		if nodes > maxNodes {
			break
		}

		node := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		c, A, b, _ := buildModel(idx, available, node.fixed)
		optF, x, err := lp.Simplex(c, A, b, tol, nil)
		if err != nil {
			continue // infeasible branch, prune
		}
		if haveBest && optF >= bestScore-tol {
			continue // bound does not improve on the incumbent, prune
		}

		fracCol, fracVal, offsets := mostFractional(idx, x)
		if fracCol < 0 {
			// every b[i,o] is integral: this relaxation IS the plan.
			haveBest = true
			bestScore = optF
			bestOffsets = offsets
			continue
		}
		_ = fracVal

		zero := cloneFixed(node.fixed)
		zero[fracCol] = 0
		one := cloneFixed(node.fixed)
		one[fracCol] = 1
		frontier = append(frontier, bbNode{fixed: zero}, bbNode{fixed: one})
	}

	if !haveBest {
		return nil, fmt.Errorf("no integral solution found within %d nodes", maxNodes)
	}
	return bestOffsets, nil
}

func cloneFixed(fixed map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(fixed)+1)
	for k, v := range fixed {
		out[k] = v
	}
	return out
}

// mostFractional decodes offsets from a relaxation solution x and reports
// the most fractional b[i,o] column, or -1 if every chosen offset is
// already integral (within tol of 0 or 1).
func mostFractional(idx *lpIndex, x []float64) (col int, frac float64, offsets []int) {
	const tol = 1e-6
	col = -1
	offsets = make([]int, len(idx.requests))
	worst := 0.0

	for i := range idx.requests {
		bestO, bestV := 0, -1.0
		for o := 0; o < idx.offCount[i]; o++ {
			v := x[idx.bOff[i]+o]
			d := fractionality(v)
			if d > tol && d > worst {
				worst = d
				col = idx.bOff[i] + o
				frac = v
			}
			if v > bestV {
				bestV = v
				bestO = o
			}
		}
		offsets[i] = bestO
	}
	return col, frac, offsets
}

func fractionality(v float64) float64 {
	d := v - float64(int(v+0.5))
	if d < 0 {
		d = -d
	}
	return d
}
