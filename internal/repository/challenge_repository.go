package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Adilet2201/Wellness_Tracker/internal/models"
	"github.com/Adilet2201/Wellness_Tracker/pkg/apperrors"
	"github.com/Adilet2201/Wellness_Tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ChallengeRepository handles database operations for challenges and
// their participant rows.
type ChallengeRepository struct {
	challenges   *mongo.Collection
	participants *mongo.Collection
}

// NewChallengeRepository creates a new instance of ChallengeRepository.
func NewChallengeRepository(db *mongo.Database) *ChallengeRepository {
	return &ChallengeRepository{
		challenges:   db.Collection("challenges"),
		participants: db.Collection("challenge_participants"),
	}
}

// CreateChallenge inserts a new challenge into the database.
func (r *ChallengeRepository) CreateChallenge(ctx context.Context, challenge *models.Challenge) (*models.Challenge, error) {
	challenge.CreatedAt = time.Now()

	result, err := r.challenges.InsertOne(ctx, challenge)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert challenge")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to insert challenge", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted challenge ID")
		return nil, apperrors.E(apperrors.KindStore, "failed to cast inserted ID")
	}
	challenge.ID = insertedID

	logger.Log.WithField("challenge_id", challenge.ID.Hex()).Info("Challenge created successfully")
	return challenge, nil
}

// GetChallengeByID fetches a challenge by its ID.
func (r *ChallengeRepository) GetChallengeByID(ctx context.Context, id primitive.ObjectID) (*models.Challenge, error) {
	var challenge models.Challenge
	err := r.challenges.FindOne(ctx, bson.M{"_id": id}).Decode(&challenge)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.KindNotFound, "challenge not found")
		}
		logger.Log.WithError(err).WithField("challenge_id", id.Hex()).Error("Failed to find challenge by ID")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to find challenge", err)
	}
	return &challenge, nil
}

// GetActiveChallenges fetches all currently active challenges.
func (r *ChallengeRepository) GetActiveChallenges(ctx context.Context) ([]models.Challenge, error) {
	cursor, err := r.challenges.Find(ctx, bson.M{"is_active": true})
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch active challenges")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to fetch challenges", err)
	}
	defer cursor.Close(ctx)

	var challenges []models.Challenge
	for cursor.Next(ctx) {
		var challenge models.Challenge
		if err := cursor.Decode(&challenge); err != nil {
			logger.Log.WithError(err).Error("Failed to decode challenge")
			return nil, apperrors.Wrap(apperrors.KindStore, "failed to decode challenge", err)
		}
		challenges = append(challenges, challenge)
	}

	return challenges, nil
}

// GetChallengesByIDs fetches challenge details for a list of ObjectIDs.
func (r *ChallengeRepository) GetChallengesByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Challenge, error) {
	filter := bson.M{"_id": bson.M{"$in": ids}}

	cursor, err := r.challenges.Find(ctx, filter)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to fetch challenges by IDs")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to fetch challenges by IDs", err)
	}
	defer cursor.Close(ctx)

	var challenges []models.Challenge
	for cursor.Next(ctx) {
		var challenge models.Challenge
		if err := cursor.Decode(&challenge); err != nil {
			return nil, apperrors.Wrap(apperrors.KindStore, "failed to decode challenge", err)
		}
		challenges = append(challenges, challenge)
	}

	return challenges, nil
}

// DeactivateExpired flips is_active off for challenges whose end date has
// passed and returns how many were updated.
func (r *ChallengeRepository) DeactivateExpired(ctx context.Context, before time.Time) (int64, error) {
	result, err := r.challenges.UpdateMany(
		ctx,
		bson.M{"is_active": true, "end_date": bson.M{"$lt": before}},
		bson.M{"$set": bson.M{"is_active": false}},
	)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to deactivate expired challenges")
		return 0, apperrors.Wrap(apperrors.KindStore, "failed to deactivate expired challenges", err)
	}

	return result.ModifiedCount, nil
}

// CreateParticipant inserts a participant row. The unique
// (challenge_id, user_id) index turns a join race into a Conflict.
func (r *ChallengeRepository) CreateParticipant(ctx context.Context, participant *models.ChallengeParticipant) (*models.ChallengeParticipant, error) {
	participant.JoinedAt = time.Now()

	result, err := r.participants.InsertOne(ctx, participant)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.E(apperrors.KindConflict, "already joined this challenge")
		}
		logger.Log.WithError(err).Error("Failed to insert challenge participant")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to insert participant", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, apperrors.E(apperrors.KindStore, "failed to cast inserted ID")
	}
	participant.ID = insertedID

	logger.Log.WithFields(map[string]interface{}{
		"challenge_id": participant.ChallengeID.Hex(),
		"user_id":      participant.UserID.Hex(),
	}).Info("Challenge participant created")

	return participant, nil
}

// FindParticipant looks up the participant row for a (challenge, user)
// pair, returning nil if the user has not joined.
func (r *ChallengeRepository) FindParticipant(ctx context.Context, challengeID, userID primitive.ObjectID) (*models.ChallengeParticipant, error) {
	var participant models.ChallengeParticipant
	err := r.participants.FindOne(ctx, bson.M{
		"challenge_id": challengeID,
		"user_id":      userID,
	}).Decode(&participant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.Log.WithError(err).Error("Failed to find challenge participant")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to find participant", err)
	}
	return &participant, nil
}

// UpdateParticipant applies a partial update to a participant row and
// returns the updated document.
func (r *ChallengeRepository) UpdateParticipant(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.ChallengeParticipant, error) {
	var participant models.ChallengeParticipant
	err := r.participants.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&participant)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.KindNotFound, "participant not found")
		}
		logger.Log.WithError(err).WithField("participant_id", id.Hex()).Error("Failed to update participant")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to update participant", err)
	}

	return &participant, nil
}

// GetParticipantsByUser fetches all participant rows for a user.
func (r *ChallengeRepository) GetParticipantsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.ChallengeParticipant, error) {
	cursor, err := r.participants.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch participants")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to fetch participants", err)
	}
	defer cursor.Close(ctx)

	var participants []models.ChallengeParticipant
	for cursor.Next(ctx) {
		var participant models.ChallengeParticipant
		if err := cursor.Decode(&participant); err != nil {
			return nil, apperrors.Wrap(apperrors.KindStore, "failed to decode participant", err)
		}
		participants = append(participants, participant)
	}

	return participants, nil
}
