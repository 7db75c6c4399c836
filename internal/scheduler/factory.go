package scheduler

import "fmt"

// New builds the scheduler variant named by kind ("bruteforce", "lp",
// "nodelay") with the given lookahead. It is the wiring point
// internal/config's SchedulerType feeds into cmd/api and cmd/hubctl.
func New(kind string, lookahead int) (Scheduler, error) {
	switch kind {
	case "bruteforce":
		return NewBruteForce(lookahead), nil
	case "lp":
		return NewLinearProgram(lookahead), nil
	case "nodelay":
		return NewNoDelay(lookahead), nil
	default:
		return nil, fmt.Errorf("unknown scheduler type %q", kind)
	}
}
