// services/picker.go
package services

import (
	"math"
	"math/rand"

	"fitness-challenge-system/models"
)

const (
	seasonBoostFactor   = 1.5
	rarityPenaltyFactor = 0.5
)

// PickWeighted draws one index out of n with probability proportional
// to weight(i). Negative, NaN or infinite weights count as 0. Returns
// -1 when the total weight is not positive — callers treat that as
// "no selection", not an error.
func PickWeighted(rng *rand.Rand, n int, weight func(i int) float64) int {
	total := 0.0
	for i := 0; i < n; i++ {
		total += sanitizeWeight(weight(i))
	}
	if total <= 0 {
		return -1
	}

	roll := rng.Float64() * total
	for i := 0; i < n; i++ {
		roll -= sanitizeWeight(weight(i))
		if roll <= 0 {
			return i
		}
	}
	// Floating-point rounding can leave a sliver behind; once the total
	// is positive the draw always lands somewhere.
	return n - 1
}

func sanitizeWeight(w float64) float64 {
	if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
		return 0
	}
	return w
}

// ChallengeWeight composes a bot's effective draw weight for the
// challenge pool: drop rate × season boost × rarity penalty.
func ChallengeWeight(bot *models.User, season *models.Season) float64 {
	w := bot.EffectiveDropRate()
	if season != nil && bot.SeasonAffinity != nil && *bot.SeasonAffinity == season.Number {
		w *= seasonBoostFactor
	}
	if bot.CardType == models.CardTypeRare {
		w *= rarityPenaltyFactor
	}
	return w
}

// EventWeight is the draw weight for the daily event pool — drop rate
// alone, no boosts.
func EventWeight(bot *models.User) float64 {
	return bot.EffectiveDropRate()
}
