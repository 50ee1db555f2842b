package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Workout is a reusable session template owned by a user.
type Workout struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user_id" json:"userId"`
	Name            string             `bson:"name" json:"name"`
	Type            string             `bson:"type" json:"type"`
	DurationMinutes int                `bson:"duration_minutes" json:"durationMinutes"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
}

// AllowedWorkoutTypes lists the valid workout categories.
var AllowedWorkoutTypes = map[string]bool{
	"cardio":      true,
	"strength":    true,
	"flexibility": true,
}

// WorkoutLog is an immutable record of one completed session. Logs are
// never updated or toggled off.
type WorkoutLog struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkoutID      primitive.ObjectID `bson:"workout_id" json:"workoutId"`
	UserID         primitive.ObjectID `bson:"user_id" json:"userId"`
	Date           time.Time          `bson:"date" json:"date"`
	Completed      bool               `bson:"completed" json:"completed"`
	CaloriesBurned int                `bson:"calories_burned" json:"caloriesBurned"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
}
