package services

import (
	"context"
	"testing"
	"time"

	"github.com/Adilet2201/Wellness_Tracker/internal/models"
	"github.com/Adilet2201/Wellness_Tracker/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func setupWorkoutService(t *testing.T) (*WorkoutService, *fakeWorkoutStore, *fakeUserStore, primitive.ObjectID) {
	t.Helper()

	users := newFakeUserStore()
	user := users.addUser(&models.User{Name: "Aibek", Email: "aibek@example.com"})

	workouts := newFakeWorkoutStore()
	svc := NewWorkoutService(workouts, NewPointsService(users))

	return svc, workouts, users, user.ID
}

func TestCreateWorkout(t *testing.T) {
	svc, _, _, userID := setupWorkoutService(t)

	workout, err := svc.CreateWorkout(context.Background(), &models.Workout{
		UserID:          userID,
		Name:            "Evening ride",
		Type:            "cardio",
		DurationMinutes: 45,
	})
	require.NoError(t, err)
	assert.False(t, workout.ID.IsZero())
}

func TestCreateWorkout_InvalidType(t *testing.T) {
	svc, _, _, userID := setupWorkoutService(t)

	_, err := svc.CreateWorkout(context.Background(), &models.Workout{
		UserID:          userID,
		Name:            "Yoga",
		Type:            "balance",
		DurationMinutes: 30,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestLogSession_AwardsFixedPoints(t *testing.T) {
	svc, workouts, users, userID := setupWorkoutService(t)

	workout, err := svc.CreateWorkout(context.Background(), &models.Workout{
		UserID:          userID,
		Name:            "Evening ride",
		Type:            "cardio",
		DurationMinutes: 45,
	})
	require.NoError(t, err)

	result, err := svc.LogSession(context.Background(), workout.ID.Hex(), userID, nil, 320)
	require.NoError(t, err)

	assert.Equal(t, WorkoutSessionPoints, result.PointsEarned)
	assert.Equal(t, 50, users.users[userID].TotalPoints)
	assert.Equal(t, 320, result.Log.CaloriesBurned)
	assert.True(t, result.Log.Completed)
	assert.Len(t, workouts.logs, 1)
}

func TestLogSession_NoDailyCap(t *testing.T) {
	svc, workouts, users, userID := setupWorkoutService(t)

	workout, err := svc.CreateWorkout(context.Background(), &models.Workout{
		UserID:          userID,
		Name:            "Evening ride",
		Type:            "cardio",
		DurationMinutes: 45,
	})
	require.NoError(t, err)

	// Every session pays out, however many were already logged today.
	for i := 0; i < 3; i++ {
		_, err := svc.LogSession(context.Background(), workout.ID.Hex(), userID, nil, 0)
		require.NoError(t, err)
	}

	assert.Equal(t, 150, users.users[userID].TotalPoints)
	assert.Len(t, workouts.logs, 3)
}

func TestLogSession_AnyUserMayLog(t *testing.T) {
	svc, _, users, ownerID := setupWorkoutService(t)

	workout, err := svc.CreateWorkout(context.Background(), &models.Workout{
		UserID:          ownerID,
		Name:            "Deadlift day",
		Type:            "strength",
		DurationMinutes: 60,
	})
	require.NoError(t, err)

	// Ownership of the template is not checked when logging a session.
	other := users.addUser(&models.User{Name: "Dana", Email: "dana@example.com"})
	result, err := svc.LogSession(context.Background(), workout.ID.Hex(), other.ID, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, other.ID, result.Log.UserID)
	assert.Equal(t, 50, users.users[other.ID].TotalPoints)
	assert.Equal(t, 0, users.users[ownerID].TotalPoints)
}

func TestLogSession_WorkoutNotFound(t *testing.T) {
	svc, _, users, userID := setupWorkoutService(t)

	_, err := svc.LogSession(context.Background(), primitive.NewObjectID().Hex(), userID, nil, 0)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	assert.Equal(t, 0, users.users[userID].TotalPoints)
}

func TestLogSession_UsesProvidedDate(t *testing.T) {
	svc, _, _, userID := setupWorkoutService(t)

	workout, err := svc.CreateWorkout(context.Background(), &models.Workout{
		UserID:          userID,
		Name:            "Stretching",
		Type:            "flexibility",
		DurationMinutes: 15,
	})
	require.NoError(t, err)

	date := time.Date(2026, time.February, 14, 8, 0, 0, 0, time.UTC)
	result, err := svc.LogSession(context.Background(), workout.ID.Hex(), userID, &date, 0)
	require.NoError(t, err)

	assert.True(t, result.Log.Date.Equal(date))
}
