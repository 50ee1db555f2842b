package services

import (
	"context"
	"time"

	"github.com/Adilet2201/Wellness_Tracker/internal/models"
	"github.com/Adilet2201/Wellness_Tracker/pkg/apperrors"
	"github.com/Adilet2201/Wellness_Tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutSessionPoints is the fixed award for logging a session. There
// is no daily cap and no dedup; every logged session pays out.
const WorkoutSessionPoints = 50

// WorkoutStore is the persistence surface the workout recorder needs.
type WorkoutStore interface {
	CreateWorkout(ctx context.Context, workout *models.Workout) (*models.Workout, error)
	GetWorkoutByID(ctx context.Context, id primitive.ObjectID) (*models.Workout, error)
	GetWorkoutsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Workout, error)
	CreateLog(ctx context.Context, log *models.WorkoutLog) (*models.WorkoutLog, error)
	GetLogsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.WorkoutLog, error)
}

// WorkoutService encapsulates workout templates and session logging.
type WorkoutService struct {
	store  WorkoutStore
	points *PointsService
}

// NewWorkoutService creates a new instance of WorkoutService.
func NewWorkoutService(store WorkoutStore, points *PointsService) *WorkoutService {
	return &WorkoutService{
		store:  store,
		points: points,
	}
}

// SessionResult is the outcome of logging a workout session.
type SessionResult struct {
	Log          *models.WorkoutLog `json:"log"`
	PointsEarned int                `json:"pointsEarned"`
}

// CreateWorkout validates and stores a new workout template.
func (s *WorkoutService) CreateWorkout(ctx context.Context, workout *models.Workout) (*models.Workout, error) {
	if workout.Name == "" {
		return nil, apperrors.E(apperrors.KindValidation, "workout name is required")
	}
	if !models.AllowedWorkoutTypes[workout.Type] {
		logger.Log.WithField("type", workout.Type).Warn("Invalid workout type")
		return nil, apperrors.E(apperrors.KindValidation, "invalid workout type")
	}
	if workout.DurationMinutes <= 0 {
		return nil, apperrors.E(apperrors.KindValidation, "duration must be positive")
	}

	return s.store.CreateWorkout(ctx, workout)
}

// GetWorkouts returns all workout templates owned by the user.
func (s *WorkoutService) GetWorkouts(ctx context.Context, userID primitive.ObjectID) ([]models.Workout, error) {
	return s.store.GetWorkoutsByUser(ctx, userID)
}

// LogSession records an immutable session log against an existing
// workout template and awards the fixed point bonus. The template does
// not have to belong to the logging user.
func (s *WorkoutService) LogSession(ctx context.Context, workoutID string, userID primitive.ObjectID, date *time.Time, caloriesBurned int) (*SessionResult, error) {
	objID, err := primitive.ObjectIDFromHex(workoutID)
	if err != nil {
		logger.Log.WithField("workout_id", workoutID).Warn("Invalid workout ID")
		return nil, apperrors.E(apperrors.KindValidation, "invalid workout ID")
	}

	if _, err := s.store.GetWorkoutByID(ctx, objID); err != nil {
		return nil, err
	}

	logDate := time.Now()
	if date != nil {
		logDate = *date
	}

	log, err := s.store.CreateLog(ctx, &models.WorkoutLog{
		WorkoutID:      objID,
		UserID:         userID,
		Date:           logDate,
		Completed:      true,
		CaloriesBurned: caloriesBurned,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.points.ApplyDelta(ctx, userID, WorkoutSessionPoints); err != nil {
		logger.Log.WithError(err).WithField("workout_id", workoutID).Error("Workout log created but points award failed")
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"workout_id": workoutID,
		"user_id":    userID.Hex(),
		"log_id":     log.ID.Hex(),
	}).Info("Workout session logged")

	return &SessionResult{
		Log:          log,
		PointsEarned: WorkoutSessionPoints,
	}, nil
}

// GetLogs returns all of the user's session logs, newest first.
func (s *WorkoutService) GetLogs(ctx context.Context, userID primitive.ObjectID) ([]models.WorkoutLog, error) {
	return s.store.GetLogsByUser(ctx, userID)
}
