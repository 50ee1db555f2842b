package services

import (
	"context"

	"github.com/Adilet2201/Wellness_Tracker/internal/models"
	"github.com/Adilet2201/Wellness_Tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PointsStore is the persistence surface the points ledger needs.
type PointsStore interface {
	IncrementPoints(ctx context.Context, id primitive.ObjectID, delta int) (*models.User, error)
	SetPoints(ctx context.Context, id primitive.ObjectID, points int) (*models.User, error)
}

// PointsService is the single authorized mutation path for a user's
// point total. Every engine that awards or removes points goes through
// ApplyDelta; nothing else writes total_points.
type PointsService struct {
	store PointsStore
}

// NewPointsService creates a new instance of PointsService.
func NewPointsService(store PointsStore) *PointsService {
	return &PointsService{store: store}
}

// ApplyDelta atomically adds delta to the user's total and returns the
// updated user. Negative deltas are allowed; no floor is enforced.
func (s *PointsService) ApplyDelta(ctx context.Context, userID primitive.ObjectID, delta int) (*models.User, error) {
	user, err := s.store.IncrementPoints(ctx, userID, delta)
	if err != nil {
		logger.Log.WithError(err).WithFields(map[string]interface{}{
			"user_id": userID.Hex(),
			"delta":   delta,
		}).Error("Failed to apply points delta")
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"user_id": userID.Hex(),
		"delta":   delta,
		"total":   user.TotalPoints,
	}).Info("Points delta applied")

	return user, nil
}

// ResetPoints sets the user's total back to zero.
func (s *PointsService) ResetPoints(ctx context.Context, userID primitive.ObjectID) (*models.User, error) {
	user, err := s.store.SetPoints(ctx, userID, 0)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to reset points")
		return nil, err
	}

	logger.Log.WithField("user_id", userID.Hex()).Info("Points reset to zero")
	return user, nil
}
