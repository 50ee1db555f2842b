package services

import (
	"context"
	"time"

	"github.com/Adilet2201/Wellness_Tracker/internal/models"
	"github.com/Adilet2201/Wellness_Tracker/pkg/apperrors"
	"github.com/Adilet2201/Wellness_Tracker/pkg/dateutil"
	"github.com/Adilet2201/Wellness_Tracker/pkg/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// HabitCompletionPoints is the award for completing a habit for one day;
// toggling the completion off removes the same amount.
const HabitCompletionPoints = 10

// HabitStore is the persistence surface the habit engine needs.
type HabitStore interface {
	CreateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error)
	GetHabitByID(ctx context.Context, id primitive.ObjectID) (*models.Habit, error)
	GetHabitsByUser(ctx context.Context, userID primitive.ObjectID, activeOnly bool) ([]models.Habit, error)
	UpdateHabit(ctx context.Context, id primitive.ObjectID, update bson.M) (*models.Habit, error)
	DeleteHabit(ctx context.Context, id primitive.ObjectID) error
	FindLog(ctx context.Context, habitID, userID primitive.ObjectID, date time.Time) (*models.HabitLog, error)
	CreateLog(ctx context.Context, log *models.HabitLog) (*models.HabitLog, error)
	DeleteLog(ctx context.Context, id primitive.ObjectID) error
	GetLogsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.HabitLog, error)
}

// HabitService encapsulates habit CRUD and the daily streak engine.
type HabitService struct {
	store  HabitStore
	points *PointsService
}

// NewHabitService creates a new instance of HabitService.
func NewHabitService(store HabitStore, points *PointsService) *HabitService {
	return &HabitService{
		store:  store,
		points: points,
	}
}

// ToggleResult is the outcome of toggling a habit's completion for a day.
type ToggleResult struct {
	Completed     bool `json:"completed"`
	PointsEarned  int  `json:"pointsEarned,omitempty"`
	CurrentStreak int  `json:"currentStreak,omitempty"`
}

// CreateHabit validates and stores a new habit for the given user.
func (s *HabitService) CreateHabit(ctx context.Context, habit *models.Habit) (*models.Habit, error) {
	if habit.Title == "" {
		logger.Log.Warn("Habit title is empty during creation")
		return nil, apperrors.E(apperrors.KindValidation, "habit title is required")
	}

	if habit.Frequency == "" {
		habit.Frequency = models.FrequencyDaily
	}
	habit.IsActive = true
	habit.CurrentStreak = 0
	habit.LastLoggedDate = nil

	created, err := s.store.CreateHabit(ctx, habit)
	if err != nil {
		logger.Log.WithError(err).Error("Service failed to create habit")
		return nil, err
	}

	logger.Log.WithField("habit_id", created.ID.Hex()).Info("Habit created in service layer")
	return created, nil
}

// GetHabits returns all habits owned by the user.
func (s *HabitService) GetHabits(ctx context.Context, userID primitive.ObjectID) ([]models.Habit, error) {
	return s.store.GetHabitsByUser(ctx, userID, false)
}

// UpdateHabit applies owner-checked updates to a habit's mutable fields.
func (s *HabitService) UpdateHabit(ctx context.Context, habitID string, userID primitive.ObjectID, update bson.M) (*models.Habit, error) {
	habit, err := s.getOwnedHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateHabit(ctx, habit.ID, update)
	if err != nil {
		logger.Log.WithError(err).WithField("habit_id", habitID).Error("Failed to update habit")
		return nil, err
	}

	return updated, nil
}

// DeleteHabit removes a habit after checking ownership.
func (s *HabitService) DeleteHabit(ctx context.Context, habitID string, userID primitive.ObjectID) error {
	habit, err := s.getOwnedHabit(ctx, habitID, userID)
	if err != nil {
		return err
	}

	if err := s.store.DeleteHabit(ctx, habit.ID); err != nil {
		logger.Log.WithError(err).WithField("habit_id", habitID).Error("Failed to delete habit")
		return err
	}

	logger.Log.WithField("habit_id", habitID).Info("Habit deleted in service layer")
	return nil
}

// ToggleCompletion flips the habit's completion state for the given day.
// Marking complete recomputes the streak, creates the day's log and
// awards points; toggling off deletes the log and removes the same
// points. The streak counter is intentionally not rolled back on
// toggle-off, matching the long-standing behavior of the tracker.
func (s *HabitService) ToggleCompletion(ctx context.Context, habitID string, userID primitive.ObjectID, today dateutil.Date) (*ToggleResult, error) {
	habit, err := s.getOwnedHabit(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindLog(ctx, habit.ID, userID, today.Time())
	if err != nil {
		return nil, err
	}

	if existing != nil {
		// Already completed today: undo the log and take the points back.
		if err := s.store.DeleteLog(ctx, existing.ID); err != nil {
			return nil, err
		}
		if _, err := s.points.ApplyDelta(ctx, userID, -HabitCompletionPoints); err != nil {
			// The log is already gone; the points removal is lost. Known
			// inconsistency window, surfaced to the caller.
			logger.Log.WithError(err).WithField("habit_id", habitID).Error("Habit log removed but points deduction failed")
			return nil, err
		}

		logger.Log.WithFields(map[string]interface{}{
			"habit_id": habitID,
			"user_id":  userID.Hex(),
			"date":     today.String(),
		}).Info("Habit completion undone")

		return &ToggleResult{Completed: false}, nil
	}

	newStreak := s.computeStreak(habit, today)

	if _, err := s.store.UpdateHabit(ctx, habit.ID, bson.M{
		"current_streak":   newStreak,
		"last_logged_date": today.Time(),
	}); err != nil {
		return nil, err
	}

	_, err = s.store.CreateLog(ctx, &models.HabitLog{
		HabitID:   habit.ID,
		UserID:    userID,
		Date:      today.Time(),
		Completed: true,
	})
	if err != nil {
		// A concurrent toggle already logged this day; surface the
		// conflict instead of double-awarding points.
		return nil, err
	}

	if _, err := s.points.ApplyDelta(ctx, userID, HabitCompletionPoints); err != nil {
		logger.Log.WithError(err).WithField("habit_id", habitID).Error("Habit log created but points award failed")
		return nil, err
	}

	logger.Log.WithFields(map[string]interface{}{
		"habit_id": habitID,
		"user_id":  userID.Hex(),
		"date":     today.String(),
		"streak":   newStreak,
	}).Info("Habit marked complete")

	return &ToggleResult{
		Completed:     true,
		PointsEarned:  HabitCompletionPoints,
		CurrentStreak: newStreak,
	}, nil
}

// computeStreak applies the continuity rules: logging the day after the
// last log extends the streak, a gap of two or more days resets it to 1,
// and a same-day duplicate leaves it unchanged.
func (s *HabitService) computeStreak(habit *models.Habit, today dateutil.Date) int {
	if habit.LastLoggedDate == nil {
		return 1
	}

	last := dateutil.FromTime(*habit.LastLoggedDate)
	switch {
	case last.Equal(today.AddDays(-1)):
		return habit.CurrentStreak + 1
	case last.Equal(today):
		return habit.CurrentStreak
	default:
		return 1
	}
}

// LongestActiveStreak returns the highest current streak across the
// user's active habits, or 0 if they have none.
func (s *HabitService) LongestActiveStreak(ctx context.Context, userID primitive.ObjectID) (int, error) {
	habits, err := s.store.GetHabitsByUser(ctx, userID, true)
	if err != nil {
		return 0, err
	}

	longest := 0
	for _, habit := range habits {
		if habit.CurrentStreak > longest {
			longest = habit.CurrentStreak
		}
	}

	return longest, nil
}

// GetLogs returns all of the user's habit logs, newest first.
func (s *HabitService) GetLogs(ctx context.Context, userID primitive.ObjectID) ([]models.HabitLog, error) {
	return s.store.GetLogsByUser(ctx, userID)
}

// getOwnedHabit fetches a habit and verifies the actor owns it. A
// mismatched owner is an authorization failure, not a missing habit.
func (s *HabitService) getOwnedHabit(ctx context.Context, habitID string, userID primitive.ObjectID) (*models.Habit, error) {
	objID, err := primitive.ObjectIDFromHex(habitID)
	if err != nil {
		logger.Log.WithField("habit_id", habitID).Warn("Invalid habit ID")
		return nil, apperrors.E(apperrors.KindValidation, "invalid habit ID")
	}

	habit, err := s.store.GetHabitByID(ctx, objID)
	if err != nil {
		return nil, err
	}

	if habit.UserID != userID {
		logger.Log.WithFields(map[string]interface{}{
			"habit_id": habitID,
			"user_id":  userID.Hex(),
		}).Warn("User attempted to act on a habit they do not own")
		return nil, apperrors.E(apperrors.KindUnauthorized, "not authorized")
	}

	return habit, nil
}
