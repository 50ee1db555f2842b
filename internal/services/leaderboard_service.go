package services

import (
	"context"

	"github.com/Adilet2201/Wellness_Tracker/internal/models"
	"github.com/Adilet2201/Wellness_Tracker/pkg/logger"
)

// DefaultLeaderboardSize caps the leaderboard when no limit is given.
const DefaultLeaderboardSize = 50

// LeaderboardStore is the read surface the projector needs.
type LeaderboardStore interface {
	GetTopByPoints(ctx context.Context, limit int64) ([]models.User, error)
}

// LeaderboardService derives a ranked view from stored point totals.
// It is a pure read; it never mutates anything.
type LeaderboardService struct {
	store LeaderboardStore
}

// NewLeaderboardService creates a new instance of LeaderboardService.
func NewLeaderboardService(store LeaderboardStore) *LeaderboardService {
	return &LeaderboardService{store: store}
}

// Top returns the top n non-admin users by points, each annotated with
// its 1-based position. Ties keep whatever secondary order the store
// returned.
func (s *LeaderboardService) Top(ctx context.Context, n int) ([]models.LeaderboardEntry, error) {
	if n <= 0 {
		n = DefaultLeaderboardSize
	}

	users, err := s.store.GetTopByPoints(ctx, int64(n))
	if err != nil {
		logger.Log.WithError(err).Error("Failed to build leaderboard")
		return nil, err
	}

	entries := make([]models.LeaderboardEntry, 0, len(users))
	for i, user := range users {
		entries = append(entries, models.LeaderboardEntry{
			Rank:       i + 1,
			UserID:     user.ID,
			Name:       user.Name,
			Points:     user.TotalPoints,
			ProfilePic: user.ProfilePic,
		})
	}

	return entries, nil
}
