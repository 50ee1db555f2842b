package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents an account in the wellness tracker. TotalPoints is only
// ever changed through the points service.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"`
	TotalPoints  int                `bson:"total_points" json:"totalPoints"`
	ProfilePic   string             `bson:"profile_pic,omitempty" json:"profilePic,omitempty"`
	Age          *int               `bson:"age,omitempty" json:"age,omitempty"`
	Weight       *float64           `bson:"weight,omitempty" json:"weight,omitempty"` // kg
	Height       *float64           `bson:"height,omitempty" json:"height,omitempty"` // cm
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updated_at" json:"updatedAt"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
