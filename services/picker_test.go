package services

import (
	"math"
	"math/rand"
	"testing"

	"fitness-challenge-system/models"

	"github.com/stretchr/testify/assert"
)

func TestPickWeighted_ProportionalToWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	weights := []float64{3, 1}

	const draws = 10000
	first := 0
	for i := 0; i < draws; i++ {
		idx := PickWeighted(rng, len(weights), func(i int) float64 { return weights[i] })
		if idx == 0 {
			first++
		}
	}

	freq := float64(first) / draws
	assert.InDelta(t, 0.75, freq, 0.03, "first item should be drawn ~75%% of the time, got %.4f", freq)
}

func TestPickWeighted_ZeroTotalWeight(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	assert.Equal(t, -1, PickWeighted(rng, 3, func(i int) float64 { return 0 }))
	assert.Equal(t, -1, PickWeighted(rng, 0, func(i int) float64 { return 1 }))
}

func TestPickWeighted_CoercesInvalidWeights(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	weights := []float64{math.NaN(), -5, math.Inf(1), 2}

	for i := 0; i < 200; i++ {
		idx := PickWeighted(rng, len(weights), func(i int) float64 { return weights[i] })
		assert.Equal(t, 3, idx, "only the one valid weight can ever win")
	}
}

func TestPickWeighted_AlwaysSelectsWhenTotalPositive(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	weights := []float64{0.1, 0.1, 0.1}

	for i := 0; i < 1000; i++ {
		idx := PickWeighted(rng, len(weights), func(i int) float64 { return weights[i] })
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, len(weights))
	}
}

func TestChallengeWeight_Composition(t *testing.T) {
	season := &models.Season{Number: 2}

	plain := &models.User{CardType: models.CardTypeDefi, DropRate: f64(2)}
	assert.Equal(t, 2.0, ChallengeWeight(plain, season))

	boosted := &models.User{CardType: models.CardTypeDefi, DropRate: f64(2), SeasonAffinity: intp(2)}
	assert.Equal(t, 3.0, ChallengeWeight(boosted, season))

	// Affinity below the resolved season stays eligible but unboosted.
	older := &models.User{CardType: models.CardTypeDefi, DropRate: f64(2), SeasonAffinity: intp(1)}
	assert.Equal(t, 2.0, ChallengeWeight(older, season))

	rare := &models.User{CardType: models.CardTypeRare, DropRate: f64(2)}
	assert.Equal(t, 1.0, ChallengeWeight(rare, season))

	rareBoosted := &models.User{CardType: models.CardTypeRare, DropRate: f64(2), SeasonAffinity: intp(2)}
	assert.Equal(t, 1.5, ChallengeWeight(rareBoosted, season))

	// Absent or negative drop rates default to 1.
	defaulted := &models.User{CardType: models.CardTypeDefi}
	assert.Equal(t, 1.0, ChallengeWeight(defaulted, nil))
	negative := &models.User{CardType: models.CardTypeDefi, DropRate: f64(-3)}
	assert.Equal(t, 1.0, ChallengeWeight(negative, nil))
}
