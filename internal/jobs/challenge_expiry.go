package jobs

import (
	"context"

	"github.com/Adilet2201/Wellness_Tracker/internal/services"
	"github.com/sirupsen/logrus"
)

// ChallengeExpirySweeper deactivates challenges whose end date has
// passed so they stop showing up in the active listing.
type ChallengeExpirySweeper struct {
	ChallengeService *services.ChallengeService
}

// NewChallengeExpirySweeper creates a new instance of ChallengeExpirySweeper.
func NewChallengeExpirySweeper(challengeService *services.ChallengeService) *ChallengeExpirySweeper {
	return &ChallengeExpirySweeper{
		ChallengeService: challengeService,
	}
}

// Run performs one sweep over the challenges collection.
func (s *ChallengeExpirySweeper) Run(ctx context.Context) error {
	count, err := s.ChallengeService.DeactivateExpired(ctx)
	if err != nil {
		return err
	}

	logrus.WithField("deactivated", count).Info("Challenge expiry sweep completed")
	return nil
}
