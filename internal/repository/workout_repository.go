package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Adilet2201/Wellness_Tracker/internal/models"
	"github.com/Adilet2201/Wellness_Tracker/pkg/apperrors"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// WorkoutRepository handles database operations for workout templates
// and session logs.
type WorkoutRepository struct {
	workouts *mongo.Collection
	logs     *mongo.Collection
}

// NewWorkoutRepository creates a new instance of WorkoutRepository.
func NewWorkoutRepository(db *mongo.Database) *WorkoutRepository {
	return &WorkoutRepository{
		workouts: db.Collection("workouts"),
		logs:     db.Collection("workout_logs"),
	}
}

// CreateWorkout inserts a new workout template.
func (r *WorkoutRepository) CreateWorkout(ctx context.Context, workout *models.Workout) (*models.Workout, error) {
	workout.CreatedAt = time.Now()

	result, err := r.workouts.InsertOne(ctx, workout)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert workout")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to insert workout", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, apperrors.E(apperrors.KindStore, "failed to cast inserted ID")
	}
	workout.ID = insertedID

	logrus.WithField("workoutID", workout.ID.Hex()).Info("Workout created successfully")
	return workout, nil
}

// GetWorkoutByID fetches a workout template by its ID.
func (r *WorkoutRepository) GetWorkoutByID(ctx context.Context, id primitive.ObjectID) (*models.Workout, error) {
	var workout models.Workout
	err := r.workouts.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.KindNotFound, "workout not found")
		}
		logrus.WithFields(logrus.Fields{
			"workoutID": id.Hex(),
			"error":     err,
		}).Error("Failed to find workout by ID")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to find workout", err)
	}
	return &workout, nil
}

// GetWorkoutsByUser fetches all workout templates owned by a user.
func (r *WorkoutRepository) GetWorkoutsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Workout, error) {
	cursor, err := r.workouts.Find(ctx, bson.M{"user_id": userID})
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch workouts")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to fetch workouts", err)
	}
	defer cursor.Close(ctx)

	var workouts []models.Workout
	for cursor.Next(ctx) {
		var workout models.Workout
		if err := cursor.Decode(&workout); err != nil {
			return nil, apperrors.Wrap(apperrors.KindStore, "failed to decode workout", err)
		}
		workouts = append(workouts, workout)
	}

	return workouts, nil
}

// CreateLog inserts a session log.
func (r *WorkoutRepository) CreateLog(ctx context.Context, log *models.WorkoutLog) (*models.WorkoutLog, error) {
	log.CreatedAt = time.Now()

	result, err := r.logs.InsertOne(ctx, log)
	if err != nil {
		logrus.WithError(err).Error("Failed to insert workout log")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to insert workout log", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, apperrors.E(apperrors.KindStore, "failed to cast inserted ID")
	}
	log.ID = insertedID

	logrus.WithField("logID", log.ID.Hex()).Info("Workout log created successfully")
	return log, nil
}

// GetLogsByUser fetches all of a user's session logs, newest first.
func (r *WorkoutRepository) GetLogsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.WorkoutLog, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.logs.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		logrus.WithError(err).Error("Failed to fetch workout logs")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to fetch workout logs", err)
	}
	defer cursor.Close(ctx)

	var logs []models.WorkoutLog
	for cursor.Next(ctx) {
		var log models.WorkoutLog
		if err := cursor.Decode(&log); err != nil {
			return nil, apperrors.Wrap(apperrors.KindStore, "failed to decode workout log", err)
		}
		logs = append(logs, log)
	}

	return logs, nil
}
