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

func setupChallengeService(t *testing.T) (*ChallengeService, *fakeChallengeStore, *fakeUserStore, primitive.ObjectID) {
	t.Helper()

	users := newFakeUserStore()
	user := users.addUser(&models.User{Name: "Aibek", Email: "aibek@example.com"})

	challenges := newFakeChallengeStore()
	svc := NewChallengeService(challenges, NewPointsService(users))

	return svc, challenges, users, user.ID
}

func addChallenge(store *fakeChallengeStore, goal, points int) *models.Challenge {
	challenge := &models.Challenge{
		ID:        primitive.NewObjectID(),
		Title:     "30 day plank",
		Goal:      goal,
		Points:    points,
		StartDate: time.Now(),
		EndDate:   time.Now().Add(30 * 24 * time.Hour),
		IsActive:  true,
	}
	store.challenges[challenge.ID] = challenge
	return challenge
}

func TestJoinChallenge(t *testing.T) {
	svc, challenges, _, userID := setupChallengeService(t)
	challenge := addChallenge(challenges, 30, 100)

	participant, err := svc.Join(context.Background(), challenge.ID.Hex(), userID)
	require.NoError(t, err)

	assert.Equal(t, 0, participant.Progress)
	assert.False(t, participant.Completed)
	assert.Equal(t, 0, participant.PointsEarned)
}

func TestJoinChallenge_TwiceIsConflict(t *testing.T) {
	svc, challenges, _, userID := setupChallengeService(t)
	challenge := addChallenge(challenges, 30, 100)
	ctx := context.Background()

	_, err := svc.Join(ctx, challenge.ID.Hex(), userID)
	require.NoError(t, err)

	_, err = svc.Join(ctx, challenge.ID.Hex(), userID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindConflict, apperrors.KindOf(err))
	assert.Len(t, challenges.participants, 1)
}

func TestJoinChallenge_NotFound(t *testing.T) {
	svc, _, _, userID := setupChallengeService(t)

	_, err := svc.Join(context.Background(), primitive.NewObjectID().Hex(), userID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestUpdateProgress_BelowGoal(t *testing.T) {
	svc, challenges, users, userID := setupChallengeService(t)
	challenge := addChallenge(challenges, 30, 100)
	ctx := context.Background()

	_, err := svc.Join(ctx, challenge.ID.Hex(), userID)
	require.NoError(t, err)

	participant, err := svc.UpdateProgress(ctx, challenge.ID.Hex(), userID, 20)
	require.NoError(t, err)

	assert.Equal(t, 20, participant.Progress)
	assert.False(t, participant.Completed)
	assert.Equal(t, 0, users.users[userID].TotalPoints)
}

func TestUpdateProgress_CompletionAwardsOnce(t *testing.T) {
	svc, challenges, users, userID := setupChallengeService(t)
	challenge := addChallenge(challenges, 30, 100)
	ctx := context.Background()

	_, err := svc.Join(ctx, challenge.ID.Hex(), userID)
	require.NoError(t, err)

	_, err = svc.UpdateProgress(ctx, challenge.ID.Hex(), userID, 20)
	require.NoError(t, err)

	participant, err := svc.UpdateProgress(ctx, challenge.ID.Hex(), userID, 35)
	require.NoError(t, err)
	assert.True(t, participant.Completed)
	assert.Equal(t, 100, participant.PointsEarned)
	assert.NotNil(t, participant.CompletedAt)
	assert.Equal(t, 100, users.users[userID].TotalPoints)

	// Re-submitting at or above goal must not pay out again.
	participant, err = svc.UpdateProgress(ctx, challenge.ID.Hex(), userID, 40)
	require.NoError(t, err)
	assert.True(t, participant.Completed)
	assert.Equal(t, 40, participant.Progress)
	assert.Equal(t, 100, users.users[userID].TotalPoints)
}

func TestUpdateProgress_CompletionNeverReverts(t *testing.T) {
	svc, challenges, users, userID := setupChallengeService(t)
	challenge := addChallenge(challenges, 30, 100)
	ctx := context.Background()

	_, err := svc.Join(ctx, challenge.ID.Hex(), userID)
	require.NoError(t, err)

	_, err = svc.UpdateProgress(ctx, challenge.ID.Hex(), userID, 30)
	require.NoError(t, err)

	// Progress may move backward, but the completed flag stays set.
	participant, err := svc.UpdateProgress(ctx, challenge.ID.Hex(), userID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, participant.Progress)
	assert.True(t, participant.Completed)
	assert.Equal(t, 100, users.users[userID].TotalPoints)
}

func TestUpdateProgress_NotJoined(t *testing.T) {
	svc, challenges, _, userID := setupChallengeService(t)
	challenge := addChallenge(challenges, 30, 100)

	_, err := svc.UpdateProgress(context.Background(), challenge.ID.Hex(), userID, 10)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCreateChallenge_Validation(t *testing.T) {
	svc, _, _, userID := setupChallengeService(t)
	ctx := context.Background()

	cases := []struct {
		name      string
		challenge models.Challenge
	}{
		{"missing title", models.Challenge{Goal: 10, Points: 50, EndDate: time.Now().Add(time.Hour)}},
		{"zero goal", models.Challenge{Title: "x", Points: 50, EndDate: time.Now().Add(time.Hour)}},
		{"zero points", models.Challenge{Title: "x", Goal: 10, EndDate: time.Now().Add(time.Hour)}},
		{"missing end date", models.Challenge{Title: "x", Goal: 10, Points: 50}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.challenge.CreatedBy = userID
			_, err := svc.CreateChallenge(ctx, &tc.challenge)
			require.Error(t, err)
			assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
		})
	}
}

func TestCreateChallenge_Defaults(t *testing.T) {
	svc, _, _, userID := setupChallengeService(t)

	challenge, err := svc.CreateChallenge(context.Background(), &models.Challenge{
		Title:       "Hydration week",
		Description: "Drink 2L a day",
		Goal:        7,
		Points:      70,
		EndDate:     time.Now().Add(7 * 24 * time.Hour),
		CreatedBy:   userID,
	})
	require.NoError(t, err)

	assert.True(t, challenge.IsActive)
	assert.False(t, challenge.StartDate.IsZero())
}

func TestListMine(t *testing.T) {
	svc, challenges, _, userID := setupChallengeService(t)
	first := addChallenge(challenges, 30, 100)
	second := addChallenge(challenges, 10, 25)
	ctx := context.Background()

	_, err := svc.Join(ctx, first.ID.Hex(), userID)
	require.NoError(t, err)
	_, err = svc.Join(ctx, second.ID.Hex(), userID)
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, userID)
	require.NoError(t, err)
	require.Len(t, mine, 2)

	for _, entry := range mine {
		require.NotNil(t, entry.Challenge)
		assert.Equal(t, entry.ChallengeID, entry.Challenge.ID)
	}
}

func TestListMine_Empty(t *testing.T) {
	svc, _, _, userID := setupChallengeService(t)

	mine, err := svc.ListMine(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, mine)
}

func TestDeactivateExpired(t *testing.T) {
	svc, challenges, _, _ := setupChallengeService(t)

	expired := addChallenge(challenges, 10, 50)
	expired.EndDate = time.Now().Add(-time.Hour)

	active := addChallenge(challenges, 10, 50)

	count, err := svc.DeactivateExpired(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(1), count)
	assert.False(t, challenges.challenges[expired.ID].IsActive)
	assert.True(t, challenges.challenges[active.ID].IsActive)
}
