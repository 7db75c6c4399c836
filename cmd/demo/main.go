// Command demo reproduces the two worked examples of
// original_source/example_comparision.py and example_complementary.py,
// printing the plan and score each scheduler variant produces.
package main

import (
	"fmt"

	"energyhub/internal/model"
	"energyhub/internal/scheduler"
)

func main() {
	comparisonExample()
	fmt.Println()
	complementaryExample()
}

// comparisonExample mirrors example_comparision.py: a linspace(0,1,20)
// source and two requests of very different magnitude, run through both
// the brute-force and LP schedulers to confirm they agree (property P5).
func comparisonExample() {
	fmt.Println("=== comparison ===")

	const lookahead = 20
	source := make(model.Profile, lookahead)
	for i := range source {
		source[i] = float64(i) / float64(lookahead-1)
	}

	requests := []model.Request{
		{RequestID: 1, DeviceName: "teapot", Profile: repeat(0.1, 6), Timeout: 99},
		{RequestID: 2, DeviceName: "oven", Profile: repeat(0.8, 6), Timeout: 99},
	}

	bf := scheduler.NewBruteForce(lookahead)
	lp := scheduler.NewLinearProgram(lookahead)

	runAndPrint("brute force", bf, source, requests)
	runAndPrint("linear program", lp, source, requests)
}

// complementaryExample mirrors example_complementary.py: a flat source and
// two identical-profile requests with different timeouts, expecting the
// brute-force scheduler to offset them so their sums stay under the
// source ceiling where possible.
func complementaryExample() {
	fmt.Println("=== complementary ===")

	const lookahead = 20
	source := repeat(0.5, lookahead)

	profile := model.Profile{0.1, 0.3, 0.1, 0.3, 0.1, 0.3, 0.1, 0.3}
	requests := []model.Request{
		{RequestID: 1, DeviceName: "device-a", Profile: profile, Timeout: 0},
		{RequestID: 2, DeviceName: "device-b", Profile: profile, Timeout: 2},
	}

	bf := scheduler.NewBruteForce(lookahead)
	runAndPrint("brute force", bf, source, requests)
}

func runAndPrint(label string, s scheduler.Scheduler, source model.Profile, requests []model.Request) {
	plan, err := s.Schedule(source, requests)
	if err != nil {
		fmt.Printf("%s: error: %v\n", label, err)
		return
	}

	offsets := make([]int, len(requests))
	for i, r := range requests {
		offsets[i] = plan[r.RequestID]
	}
	planned := scheduler.LayoutPlanned(requests, offsets, s.Lookahead())
	score := scheduler.Score(model.Pad(source, s.Lookahead()), planned, offsets)

	fmt.Printf("%s: plan=%v score=%.4f\n", label, plan, score)
}

func repeat(v float64, n int) model.Profile {
	p := make(model.Profile, n)
	for i := range p {
		p[i] = v
	}
	return p
}
