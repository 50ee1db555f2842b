package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// LeaderboardEntry is one ranked row of the points leaderboard.
// Rank is the 1-based position in the sorted result.
type LeaderboardEntry struct {
	Rank       int                `json:"rank"`
	UserID     primitive.ObjectID `json:"userId"`
	Name       string             `json:"name"`
	Points     int                `json:"points"`
	ProfilePic string             `json:"profilePic,omitempty"`
}
