package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Habit is a recurring daily activity owned by a single user.
// CurrentStreak counts consecutive calendar days of completion and
// LastLoggedDate is always a date-only value at UTC midnight.
type Habit struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID         primitive.ObjectID `bson:"user_id" json:"userId"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Frequency      string             `bson:"frequency" json:"frequency"`
	IsActive       bool               `bson:"is_active" json:"isActive"`
	CurrentStreak  int                `bson:"current_streak" json:"currentStreak"`
	LastLoggedDate *time.Time         `bson:"last_logged_date,omitempty" json:"lastLoggedDate,omitempty"`
	CreatedAt      time.Time          `bson:"created_at" json:"createdAt"`
}

// FrequencyDaily is the only supported habit frequency.
const FrequencyDaily = "daily"

// HabitLog records one completed day for a habit. At most one log exists
// per (habit, user, date); the toggle deletes it to undo a completion.
type HabitLog struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	HabitID   primitive.ObjectID `bson:"habit_id" json:"habitId"`
	UserID    primitive.ObjectID `bson:"user_id" json:"userId"`
	Date      time.Time          `bson:"date" json:"date"`
	Completed bool               `bson:"completed" json:"completed"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}
