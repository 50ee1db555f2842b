package cron

import (
	"context"

	"github.com/Adilet2201/Wellness_Tracker/internal/jobs"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// StartChallengeCronJobs schedules the hourly challenge expiry sweep.
func StartChallengeCronJobs(sweeper *jobs.ChallengeExpirySweeper) {
	c := cron.New()

	c.AddFunc("@hourly", func() {
		if err := sweeper.Run(context.Background()); err != nil {
			logrus.WithError(err).Error("Challenge expiry sweep failed")
		}
	})

	c.Start()
}
