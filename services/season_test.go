package services

import (
	"testing"
	"time"

	"fitness-challenge-system/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveSeason(t *testing.T) {
	db := newTestDB(t)
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	// No seasons defined at all.
	season, err := ResolveSeason(db, now)
	require.NoError(t, err)
	assert.Nil(t, season)

	for _, s := range []models.Season{
		{ID: uuid.NewString(), Number: 1, StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.NewString(), Number: 2, StartDate: time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.NewString(), Number: 3, StartDate: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)},
	} {
		require.NoError(t, db.Create(&s).Error)
	}

	// Greatest start date ≤ today wins; the December season is ignored.
	season, err = ResolveSeason(db, now)
	require.NoError(t, err)
	require.NotNil(t, season)
	assert.Equal(t, 2, season.Number)

	// Before any season starts, none resolves.
	season, err = ResolveSeason(db, time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Nil(t, season)

	// Exactly on a start date counts.
	season, err = ResolveSeason(db, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, season)
	assert.Equal(t, 2, season.Number)
}

func TestSeasonEligible(t *testing.T) {
	s2 := &models.Season{Number: 2}

	free := &models.User{}
	assert.True(t, seasonEligible(free, s2))
	assert.True(t, seasonEligible(free, nil), "affinity-free bots always participate")

	affine1 := &models.User{SeasonAffinity: intp(1)}
	affine2 := &models.User{SeasonAffinity: intp(2)}
	affine3 := &models.User{SeasonAffinity: intp(3)}

	assert.True(t, seasonEligible(affine1, s2))
	assert.True(t, seasonEligible(affine2, s2))
	assert.False(t, seasonEligible(affine3, s2), "future-season bots stay out")
	assert.False(t, seasonEligible(affine1, nil), "no resolved season excludes all affine bots")
}
