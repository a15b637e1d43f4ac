// services/transitions.go
package services

import (
	"fmt"

	"fitness-challenge-system/models"

	"gorm.io/gorm"
)

// TransitionChallenge moves a challenge along a legal status edge as a
// single conditional UPDATE guarded on the current status. A false
// return with a nil error means a concurrent writer moved the row
// first — both the batch and the request-time path rely on this as
// their only concurrency control.
func TransitionChallenge(db *gorm.DB, challengeID string, from, to models.ChallengeStatus, extra map[string]interface{}) (bool, error) {
	if !models.CanTransition(from, to) {
		return false, fmt.Errorf("illegal challenge transition %s to %s", from, to)
	}

	updates := map[string]interface{}{"status": to}
	for k, v := range extra {
		updates[k] = v
	}

	res := db.Model(&models.Challenge{}).
		Where("id = ? AND status = ?", challengeID, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
