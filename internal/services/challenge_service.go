package services

import (
	"context"
	"time"

	"github.com/Adilet2201/Wellness_Tracker/internal/models"
	"github.com/Adilet2201/Wellness_Tracker/pkg/apperrors"
	"github.com/Adilet2201/Wellness_Tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ChallengeStore is the persistence surface the challenge engine needs.
type ChallengeStore interface {
	CreateChallenge(ctx context.Context, challenge *models.Challenge) (*models.Challenge, error)
	GetChallengeByID(ctx context.Context, id primitive.ObjectID) (*models.Challenge, error)
	GetActiveChallenges(ctx context.Context) ([]models.Challenge, error)
	GetChallengesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Challenge, error)
	DeactivateExpired(ctx context.Context, before time.Time) (int64, error)
	CreateParticipant(ctx context.Context, participant *models.ChallengeParticipant) (*models.ChallengeParticipant, error)
	FindParticipant(ctx context.Context, challengeID, userID primitive.ObjectID) (*models.ChallengeParticipant, error)
	UpdateParticipant(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.ChallengeParticipant, error)
	GetParticipantsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.ChallengeParticipant, error)
}

// ChallengeService encapsulates challenge lifecycle and per-user
// progress tracking.
type ChallengeService struct {
	store  ChallengeStore
	points *PointsService
}

// NewChallengeService creates a new instance of ChallengeService.
func NewChallengeService(store ChallengeStore, points *PointsService) *ChallengeService {
	return &ChallengeService{
		store:  store,
		points: points,
	}
}

// CreateChallenge validates and stores a new challenge. Any
// authenticated user may create one; it is active immediately.
func (s *ChallengeService) CreateChallenge(ctx context.Context, challenge *models.Challenge) (*models.Challenge, error) {
	if challenge.Title == "" {
		return nil, apperrors.E(apperrors.KindValidation, "challenge title is required")
	}
	if challenge.Goal <= 0 {
		return nil, apperrors.E(apperrors.KindValidation, "challenge goal must be positive")
	}
	if challenge.Points <= 0 {
		return nil, apperrors.E(apperrors.KindValidation, "challenge points must be positive")
	}
	if challenge.EndDate.IsZero() {
		return nil, apperrors.E(apperrors.KindValidation, "challenge end date is required")
	}

	if challenge.StartDate.IsZero() {
		challenge.StartDate = time.Now()
	}
	challenge.IsActive = true

	created, err := s.store.CreateChallenge(ctx, challenge)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create challenge")
		return nil, err
	}

	logger.Log.WithField("challenge_id", created.ID.Hex()).Info("Challenge created in service layer")
	return created, nil
}

// ListActive returns all currently active challenges.
func (s *ChallengeService) ListActive(ctx context.Context) ([]models.Challenge, error) {
	return s.store.GetActiveChallenges(ctx)
}

// Join creates the participant row for (challenge, user) with zero
// progress. Joining the same challenge twice is a conflict.
func (s *ChallengeService) Join(ctx context.Context, challengeID string, userID primitive.ObjectID) (*models.ChallengeParticipant, error) {
	objID, err := primitive.ObjectIDFromHex(challengeID)
	if err != nil {
		logger.Log.WithField("challenge_id", challengeID).Warn("Invalid challenge ID")
		return nil, apperrors.E(apperrors.KindValidation, "invalid challenge ID")
	}

	if _, err := s.store.GetChallengeByID(ctx, objID); err != nil {
		return nil, err
	}

	existing, err := s.store.FindParticipant(ctx, objID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.E(apperrors.KindConflict, "already joined this challenge")
	}

	// The unique (challenge_id, user_id) index still backs this up if
	// two joins race past the check above.
	participant, err := s.store.CreateParticipant(ctx, &models.ChallengeParticipant{
		ChallengeID: objID,
		UserID:      userID,
		Progress:    0,
		Completed:   false,
	})
	if err != nil {
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"challenge_id": challengeID,
		"user_id":      userID.Hex(),
	}).Info("User joined challenge")

	return participant, nil
}

// UpdateProgress sets the participant's progress to the given value.
// Progress may move in either direction; no monotonicity is enforced.
// Reaching the goal completes the challenge and pays the reward exactly
// once: a participant who is already completed never transitions or
// earns again, whatever value is submitted.
func (s *ChallengeService) UpdateProgress(ctx context.Context, challengeID string, userID primitive.ObjectID, progress int) (*models.ChallengeParticipant, error) {
	objID, err := primitive.ObjectIDFromHex(challengeID)
	if err != nil {
		logger.Log.WithField("challenge_id", challengeID).Warn("Invalid challenge ID")
		return nil, apperrors.E(apperrors.KindValidation, "invalid challenge ID")
	}

	challenge, err := s.store.GetChallengeByID(ctx, objID)
	if err != nil {
		return nil, err
	}

	participant, err := s.store.FindParticipant(ctx, objID, userID)
	if err != nil {
		return nil, err
	}
	if participant == nil {
		return nil, apperrors.E(apperrors.KindNotFound, "you haven't joined this challenge")
	}

	update := bson.M{"progress": progress}

	completing := progress >= challenge.Goal && !participant.Completed
	if completing {
		now := time.Now()
		update["completed"] = true
		update["points_earned"] = challenge.Points
		update["completed_at"] = now
	}

	updated, err := s.store.UpdateParticipant(ctx, participant.ID, update)
	if err != nil {
		return nil, err
	}

	if completing {
		if _, err := s.points.ApplyDelta(ctx, userID, challenge.Points); err != nil {
			// The completion is already persisted; the award is lost.
			// Known inconsistency window, surfaced to the caller.
			logger.Log.WithError(err).WithField("challenge_id", challengeID).Error("Challenge completed but points award failed")
			return nil, err
		}

		logger.Log.WithFields(map[string]interface{}{
			"challenge_id": challengeID,
			"user_id":      userID.Hex(),
			"points":       challenge.Points,
		}).Info("Challenge completed, points awarded")
	}

	return updated, nil
}

// ListMine returns the user's participant rows joined with their
// challenges for the "my challenges" view.
func (s *ChallengeService) ListMine(ctx context.Context, userID primitive.ObjectID) ([]models.ParticipantWithChallenge, error) {
	participants, err := s.store.GetParticipantsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(participants) == 0 {
		return []models.ParticipantWithChallenge{}, nil
	}

	ids := make([]primitive.ObjectID, 0, len(participants))
	for _, p := range participants {
		ids = append(ids, p.ChallengeID)
	}

	challenges, err := s.store.GetChallengesByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[primitive.ObjectID]*models.Challenge, len(challenges))
	for i := range challenges {
		byID[challenges[i].ID] = &challenges[i]
	}

	result := make([]models.ParticipantWithChallenge, 0, len(participants))
	for _, p := range participants {
		result = append(result, models.ParticipantWithChallenge{
			ChallengeParticipant: p,
			Challenge:            byID[p.ChallengeID],
		})
	}

	return result, nil
}

// DeactivateExpired flips off challenges whose end date has passed.
// Called from the hourly sweep.
func (s *ChallengeService) DeactivateExpired(ctx context.Context) (int64, error) {
	count, err := s.store.DeactivateExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	if count > 0 {
		logger.Log.WithField("count", count).Info("Expired challenges deactivated")
	}
	return count, nil
}
