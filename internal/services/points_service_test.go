package services

import (
	"context"
	"testing"

	"github.com/Adilet2201/Wellness_Tracker/internal/models"
	"github.com/Adilet2201/Wellness_Tracker/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestApplyDelta(t *testing.T) {
	users := newFakeUserStore()
	user := users.addUser(&models.User{Name: "Aibek", Email: "a@example.com", TotalPoints: 30})

	svc := NewPointsService(users)
	ctx := context.Background()

	updated, err := svc.ApplyDelta(ctx, user.ID, 50)
	require.NoError(t, err)
	assert.Equal(t, 80, updated.TotalPoints)

	updated, err = svc.ApplyDelta(ctx, user.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, 70, updated.TotalPoints)
}

func TestApplyDelta_MayGoNegative(t *testing.T) {
	users := newFakeUserStore()
	user := users.addUser(&models.User{Name: "Aibek", Email: "a@example.com", TotalPoints: 5})

	svc := NewPointsService(users)

	// No floor is enforced on the total.
	updated, err := svc.ApplyDelta(context.Background(), user.ID, -10)
	require.NoError(t, err)
	assert.Equal(t, -5, updated.TotalPoints)
}

func TestApplyDelta_UnknownUser(t *testing.T) {
	svc := NewPointsService(newFakeUserStore())

	_, err := svc.ApplyDelta(context.Background(), primitive.NewObjectID(), 10)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestResetPoints(t *testing.T) {
	users := newFakeUserStore()
	user := users.addUser(&models.User{Name: "Aibek", Email: "a@example.com", TotalPoints: 480})

	svc := NewPointsService(users)

	updated, err := svc.ResetPoints(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, updated.TotalPoints)
}
