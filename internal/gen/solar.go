// Package gen provides synthetic profile generators for demos and manual
// testing; none of it is on the scheduling core's critical path.
package gen

import (
	"math"
	"math/rand"

	"energyhub/internal/model"
)

// SolarProfile simulates one day of solar generation as a noisy, clipped
// sine wave rotated so index 0 is "now" (current tick), grounded on
// original_source/utils.go:simulate_solar_profile. ticksPerDay controls the
// resolution of the 24-hour cycle; currentTick rotates the day so the
// profile starts at the caller's present moment; bias shifts the whole
// curve up or down before clipping to [0, 1].
func SolarProfile(rng *rand.Rand, ticksPerDay, currentTick int, bias float64) model.Profile {
	if ticksPerDay <= 0 {
		return model.Profile{}
	}
	currentTick = ((currentTick % ticksPerDay) + ticksPerDay) % ticksPerDay

	power := make(model.Profile, ticksPerDay)
	for i := 0; i < ticksPerDay; i++ {
		hour := 24 * float64(i) / float64(ticksPerDay-1)
		if ticksPerDay == 1 {
			hour = 0
		}
		noise := -rng.Float64() * 0.1
		v := math.Sin((2*math.Pi/24)*(hour-6)) + bias + noise
		power[i] = clip01(v)
	}

	out := make(model.Profile, ticksPerDay)
	copy(out, power[currentTick:])
	copy(out[ticksPerDay-currentTick:], power[:currentTick])
	return out
}

func clip01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
