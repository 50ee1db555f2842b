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

// HabitRepository handles database operations for habits and their
// per-day completion logs.
type HabitRepository struct {
	habits *mongo.Collection
	logs   *mongo.Collection
}

// NewHabitRepository creates a new instance of HabitRepository.
func NewHabitRepository(db *mongo.Database) *HabitRepository {
	return &HabitRepository{
		habits: db.Collection("habits"),
		logs:   db.Collection("habit_logs"),
	}
}

// CreateHabit inserts a new habit into the database.
func (r *HabitRepository) CreateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	habit.CreatedAt = time.Now()

	result, err := r.habits.InsertOne(ctx, habit)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to insert habit")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to insert habit", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		logger.Log.Error("Failed to cast inserted habit ID")
		return nil, apperrors.E(apperrors.KindStore, "failed to cast inserted ID")
	}
	habit.ID = insertedID

	logger.Log.WithField("habit_id", habit.ID.Hex()).Info("Habit created successfully")
	return habit, nil
}

// GetHabitByID fetches a habit by its ID.
func (r *HabitRepository) GetHabitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error) {
	var habit models.Habit
	err := r.habits.FindOne(ctx, bson.M{"_id": id}).Decode(&habit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.KindNotFound, "habit not found")
		}
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Error("Failed to find habit by ID")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to find habit", err)
	}
	return &habit, nil
}

// GetHabitsByUser fetches all habits owned by a user, optionally only
// the active ones.
func (r *HabitRepository) GetHabitsByUser(ctx context.Context, userID primitive.ObjectID, activeOnly bool) ([]models.Habit, error) {
	filter := bson.M{"user_id": userID}
	if activeOnly {
		filter["is_active"] = true
	}

	cursor, err := r.habits.Find(ctx, filter)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch habits")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to fetch habits", err)
	}
	defer cursor.Close(ctx)

	var habits []models.Habit
	for cursor.Next(ctx) {
		var habit models.Habit
		if err := cursor.Decode(&habit); err != nil {
			logger.Log.WithError(err).Error("Failed to decode habit")
			return nil, apperrors.Wrap(apperrors.KindStore, "failed to decode habit", err)
		}
		habits = append(habits, habit)
	}

	return habits, nil
}

// UpdateHabit applies a partial update to a habit document.
func (r *HabitRepository) UpdateHabit(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Habit, error) {
	var habit models.Habit
	err := r.habits.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": update},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&habit)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.E(apperrors.KindNotFound, "habit not found")
		}
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Error("Failed to update habit")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to update habit", err)
	}

	logger.Log.WithField("habit_id", id.Hex()).Info("Habit updated successfully")
	return &habit, nil
}

// DeleteHabit removes a habit from the database.
func (r *HabitRepository) DeleteHabit(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.habits.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", id.Hex()).Error("Failed to delete habit")
		return apperrors.Wrap(apperrors.KindStore, "failed to delete habit", err)
	}

	logger.Log.WithField("habit_id", id.Hex()).Info("Habit deleted successfully")
	return nil
}

// FindLog looks up the completion log for a habit on a given day,
// returning nil if none exists.
func (r *HabitRepository) FindLog(ctx context.Context, habitID, userID primitive.ObjectID, date time.Time) (*models.HabitLog, error) {
	var log models.HabitLog
	err := r.logs.FindOne(ctx, bson.M{
		"habit_id": habitID,
		"user_id":  userID,
		"date":     date,
	}).Decode(&log)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		logger.Log.WithError(err).WithField("habit_id", habitID.Hex()).Error("Failed to find habit log")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to find habit log", err)
	}
	return &log, nil
}

// CreateLog inserts a completion log. The unique (habit_id, user_id, date)
// index turns a concurrent double-insert into a Conflict.
func (r *HabitRepository) CreateLog(ctx context.Context, log *models.HabitLog) (*models.HabitLog, error) {
	log.CreatedAt = time.Now()

	result, err := r.logs.InsertOne(ctx, log)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, apperrors.E(apperrors.KindConflict, "habit already logged for this date")
		}
		logger.Log.WithError(err).Error("Failed to insert habit log")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to insert habit log", err)
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, apperrors.E(apperrors.KindStore, "failed to cast inserted ID")
	}
	log.ID = insertedID

	return log, nil
}

// DeleteLog removes a completion log by its ID.
func (r *HabitRepository) DeleteLog(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.logs.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		logger.Log.WithError(err).WithField("log_id", id.Hex()).Error("Failed to delete habit log")
		return apperrors.Wrap(apperrors.KindStore, "failed to delete habit log", err)
	}
	return nil
}

// GetLogsByUser fetches all of a user's habit logs, newest first.
func (r *HabitRepository) GetLogsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.HabitLog, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})

	cursor, err := r.logs.Find(ctx, bson.M{"user_id": userID}, findOptions)
	if err != nil {
		logger.Log.WithError(err).WithField("user_id", userID.Hex()).Error("Failed to fetch habit logs")
		return nil, apperrors.Wrap(apperrors.KindStore, "failed to fetch habit logs", err)
	}
	defer cursor.Close(ctx)

	var logs []models.HabitLog
	for cursor.Next(ctx) {
		var log models.HabitLog
		if err := cursor.Decode(&log); err != nil {
			return nil, apperrors.Wrap(apperrors.KindStore, "failed to decode habit log", err)
		}
		logs = append(logs, log)
	}

	return logs, nil
}
