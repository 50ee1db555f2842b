package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Challenge is a point-rewarding goal visible to all users while active.
type Challenge struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Goal        int                `bson:"goal" json:"goal"`
	Points      int                `bson:"points" json:"points"`
	StartDate   time.Time          `bson:"start_date" json:"startDate"`
	EndDate     time.Time          `bson:"end_date" json:"endDate"`
	IsActive    bool               `bson:"is_active" json:"isActive"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"createdBy"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

// ChallengeParticipant joins one user to one challenge. Completed only
// ever transitions false to true, and the reward is paid exactly once.
type ChallengeParticipant struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ChallengeID  primitive.ObjectID `bson:"challenge_id" json:"challengeId"`
	UserID       primitive.ObjectID `bson:"user_id" json:"userId"`
	Progress     int                `bson:"progress" json:"progress"`
	Completed    bool               `bson:"completed" json:"completed"`
	PointsEarned int                `bson:"points_earned" json:"pointsEarned"`
	JoinedAt     time.Time          `bson:"joined_at" json:"joinedAt"`
	CompletedAt  *time.Time         `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
}

// ParticipantWithChallenge pairs a participant row with its challenge for
// the "my challenges" view.
type ParticipantWithChallenge struct {
	ChallengeParticipant `bson:",inline"`
	Challenge            *Challenge `bson:"challenge,omitempty" json:"challenge,omitempty"`
}
