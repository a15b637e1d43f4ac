// services/distance.go
package services

import (
	"errors"
	"math"
	"math/rand"
)

// ErrInvalidDistance marks a base distance the calculator refuses to
// work with (zero, negative, NaN, infinite). The batch skips the
// user/bot pairing for the day instead of failing the run.
var ErrInvalidDistance = errors.New("invalid distance value")

// DefaultJitterRatio is applied to challenge and rare targets. Event
// targets are published exact, without jitter.
const DefaultJitterRatio = 0.15

// NormalizeDistance converts a stored base distance into meters.
// Values below 1000 are interpreted as kilometers and scaled ×1000.
// The heuristic misreads a legitimately small meter value; the bot
// seed data relies on it, so it is kept as-is.
func NormalizeDistance(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, ErrInvalidDistance
	}
	if v < 1000 {
		return v * 1000, nil
	}
	return v, nil
}

// JitterDistance perturbs base by one uniform draw in [-ratio, +ratio]
// and rounds the result to the nearest whole meter.
func JitterDistance(rng *rand.Rand, base, ratio float64) (float64, error) {
	if math.IsNaN(base) || math.IsInf(base, 0) || base <= 0 {
		return 0, ErrInvalidDistance
	}
	draw := (rng.Float64()*2 - 1) * ratio
	return math.Round(base * (1 + draw)), nil
}
